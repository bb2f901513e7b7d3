// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"context"
	"crypto/tls"
	"errors"
	"regexp"

	_ "golang.org/x/crypto/x509roots/fallback"

	"github.com/sammodule/sam-boot/shell"
	"github.com/sammodule/sam-boot/tcpecho"
)

func init() {
	shell.Add(shell.Cmd{
		Name:    "tcp",
		Args:    2,
		Pattern: regexp.MustCompile(`^tcp(.*?)( tls)?$`),
		Syntax:  "<ip> <port> (tls)?",
		Help:    "TCP client session, `q` quits",
		Fn:      tcpCmd,
	})
}

func tcpCmd(iface *shell.Interface, arg []string) (_ string, err error) {
	if !networking {
		return "", errNoNetwork
	}

	c := &tcpecho.Client{
		Input:  iface,
		Output: iface.Output(),
	}

	args := parseArgs("tcp", arg[0])

	if len(arg[1]) > 0 && len(args) == 3 {
		c.TLS = &tls.Config{
			ServerName: args[1],
		}
	}

	if err = c.Run(context.Background(), args); errors.Is(err, tcpecho.ErrUsage) {
		return "", nil
	}

	return
}
