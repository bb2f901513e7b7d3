// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package shell implements a terminal console handler for user defined
// commands.
package shell

import (
	"errors"
	"fmt"
	"io"
	"log"

	"golang.org/x/term"
)

// DefaultPrompt is the prompt of command lines.
const DefaultPrompt = "> "

// Interface represents a terminal interface.
type Interface struct {
	// Banner represents the welcome message
	Banner string

	// ReadWriter represents the terminal connection
	ReadWriter io.ReadWriter

	// VT100 enables colored prompts
	VT100 bool

	t      *term.Terminal
	prompt string
}

func (iface *Interface) handleLine(line string) (err error) {
	var match *Cmd
	var arg []string
	var res string

	for _, cmd := range sorted() {
		if cmd.Pattern == nil {
			if cmd.Name == line {
				match = cmd
				break
			}
		} else if m := cmd.Pattern.FindStringSubmatch(line); len(m) > 0 && (len(m)-1 == cmd.Args) {
			match = cmd
			arg = m[1:]
			break
		}
	}

	if match == nil {
		return errors.New("unknown command, type `help`")
	}

	if res, err = match.Fn(iface, arg); err != nil {
		return
	}

	if len(res) > 0 {
		fmt.Fprintln(iface.t, res)
	}

	return
}

func (iface *Interface) readLine() error {
	s, err := iface.t.ReadLine()

	if err == io.EOF {
		return err
	}

	if err != nil {
		log.Printf("readline error, %v", err)
		return nil
	}

	if len(s) == 0 {
		return nil
	}

	if err = iface.handleLine(s); err != nil {
		if err == io.EOF {
			return err
		}

		fmt.Fprintf(iface.t, "command error, %v\n", err)
		return nil
	}

	return nil
}

// Output returns the terminal writer, valid once the interface is started.
func (iface *Interface) Output() io.Writer {
	if iface.t == nil {
		return iface.ReadWriter
	}

	return iface.t
}

// ReadLine reads a line from the terminal with the argument prompt, the
// command prompt is restored afterwards.
func (iface *Interface) ReadLine(prompt string) (string, error) {
	if iface.t == nil {
		return "", errors.New("terminal not started")
	}

	iface.t.SetPrompt(prompt)
	defer iface.t.SetPrompt(iface.prompt)

	return iface.t.ReadLine()
}

// Start handles registered commands over the interface ReadWriter.
func (iface *Interface) Start() {
	iface.t = term.NewTerminal(iface.ReadWriter, "")
	iface.prompt = DefaultPrompt

	if iface.VT100 {
		iface.prompt = string(iface.t.Escape.Red) + DefaultPrompt + string(iface.t.Escape.Reset)
	}

	iface.t.SetPrompt(iface.prompt)

	Add(Cmd{
		Name: "help",
		Help: "this help",
		Fn:   Help,
	})

	help, _ := Help(iface, nil)

	fmt.Fprintf(iface.t, "\n%s\n\n", iface.Banner)
	fmt.Fprintf(iface.t, "%s\n", help)

	for {
		if err := iface.readLine(); err != nil {
			return
		}
	}
}
