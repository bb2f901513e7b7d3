// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"regexp"
	"strings"

	"github.com/sammodule/sam-boot/delay"
	"github.com/sammodule/sam-boot/hello"
	"github.com/sammodule/sam-boot/shell"
)

func init() {
	shell.Add(shell.Cmd{
		Name:    "hello",
		Args:    1,
		Pattern: regexp.MustCompile(`^hello(?: (uefi|shell|stdlib|capsulation))?$`),
		Syntax:  "(uefi|shell|stdlib|capsulation)?",
		Help:    "hello world entry point variants",
		Fn:      helloCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "delay",
		Args:    1,
		Pattern: regexp.MustCompile(`^delay(.*)$`),
		Syntax:  "<hex seconds>",
		Help:    "stall with progress bar",
		Fn:      delayCmd,
	})
}

func helloCmd(iface *shell.Interface, arg []string) (_ string, err error) {
	w := iface.Output()

	switch arg[0] {
	case "capsulation":
		hello.RunCapsulation(w)
		return
	case "":
		arg[0] = "uefi"
	}

	v, err := hello.ParseVariant(arg[0])

	if err != nil {
		return
	}

	return "", hello.Run(w, v, firmware{})
}

func delayCmd(iface *shell.Interface, arg []string) (string, error) {
	return "", delay.Run(iface.Output(), firmware{}, parseArgs("delay", arg[0]))
}

// parseArgs returns a command line argument vector with the command name as
// first element.
func parseArgs(name string, s string) []string {
	return append([]string{name}, strings.Fields(s)...)
}
