// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"fmt"
	"net"
	"regexp"

	"github.com/usbarmory/go-net"

	"github.com/sammodule/sam-boot/shell"
	"github.com/sammodule/sam-boot/uefi/x64"
)

// Resolver represents the default name server
var Resolver = "8.8.8.8:53"

var errNoNetwork = errors.New("network not initialized, use `net` first")

// networking reports whether the UEFI network stack has been started.
var networking bool

func init() {
	shell.Add(shell.Cmd{
		Name:    "net",
		Args:    2,
		Pattern: regexp.MustCompile(`^net (\S+) (\S+)$`),
		Syntax:  "<ip> <gateway>",
		Help:    "start UEFI networking",
		Fn:      netCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "dns",
		Args:    1,
		Pattern: regexp.MustCompile(`^dns (.*)`),
		Syntax:  "<host>",
		Help:    "resolve domain",
		Fn:      dnsCmd,
	})

	net.SetDefaultNS([]string{Resolver})
}

func netCmd(_ *shell.Interface, arg []string) (res string, err error) {
	if networking {
		return "", errors.New("network already initialized")
	}

	nic, err := x64.UEFI.Boot.GetNetwork()

	if err != nil {
		return "", fmt.Errorf("could not locate network protocol, %v", err)
	}

	if err = nic.Open(); err != nil {
		return
	}

	iface := gnet.Interface{}

	if err := iface.Init(nic, arg[0], "", arg[1]); err != nil {
		return "", fmt.Errorf("could not initialize networking, %v", err)
	}

	iface.EnableICMP()
	go iface.NIC.Start()

	// hook interface into Go runtime
	net.SocketFunc = iface.Socket
	networking = true

	return "network initialized", nil
}

func dnsCmd(_ *shell.Interface, arg []string) (res string, err error) {
	if !networking {
		return "", errNoNetwork
	}

	cname, err := net.LookupHost(arg[0])

	if err != nil {
		return "", fmt.Errorf("query error: %v", err)
	}

	return fmt.Sprintf("%+v", cname), nil
}
