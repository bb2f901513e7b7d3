// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build net && debug

package cmd

import (
	"log"
	"net/http"
	_ "net/http/pprof"

	"github.com/arl/statsviz"

	"github.com/sammodule/sam-boot/shell"
)

func init() {
	statsviz.RegisterDefault()

	shell.Add(shell.Cmd{
		Name: "debug",
		Help: "start runtime statistics server on port 80",
		Fn:   debugCmd,
	})
}

func debugCmd(_ *shell.Interface, _ []string) (string, error) {
	if !networking {
		return "", errNoNetwork
	}

	go func() {
		if err := http.ListenAndServe(":80", nil); err != nil {
			log.Printf("debug server error, %v", err)
		}
	}()

	return "statsviz available at /debug/statsviz", nil
}
