// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"regexp"

	"github.com/sammodule/sam-boot/color"
	"github.com/sammodule/sam-boot/shell"
	"github.com/sammodule/sam-boot/uefi/x64"
)

func init() {
	shell.Add(shell.Cmd{
		Name:    "color",
		Args:    3,
		Pattern: regexp.MustCompile(`^color(?: (\w+) (\w+) (.*))?$`),
		Syntax:  "(<fg> <bg> <text>)?",
		Help:    "print colored text",
		Fn:      colorCmd,
	})
}

func colorCmd(_ *shell.Interface, arg []string) (_ string, err error) {
	c := x64.UEFI.Console

	if len(arg[0]) == 0 {
		for i, name := range color.Names() {
			if err = color.PrintBoth(c, i, color.Black, name+" ", uint64(i)); err != nil {
				return
			}

			fmt.Fprintln(c)
		}

		return
	}

	fg, err := color.Parse(arg[0])

	if err != nil {
		return
	}

	bg, err := color.Parse(arg[1])

	if err != nil {
		return
	}

	if err = color.Print(c, fg, bg, arg[2]); err != nil {
		return
	}

	fmt.Fprintln(c)

	return
}
