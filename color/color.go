// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package color implements colored text output on consoles supporting EFI
// Simple Text Output attributes.
package color

import (
	"fmt"
	"io"
	"strings"
)

// EFI text attribute colors
const (
	Black = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGray
	DarkGray
	LightBlue
	LightGreen
	LightCyan
	LightRed
	LightMagenta
	Yellow
	White
)

var names = []string{
	"black",
	"blue",
	"green",
	"cyan",
	"red",
	"magenta",
	"brown",
	"lightgray",
	"darkgray",
	"lightblue",
	"lightgreen",
	"lightcyan",
	"lightred",
	"lightmagenta",
	"yellow",
	"white",
}

// Console represents an output console supporting text attributes.
type Console interface {
	io.Writer
	Attribute() (int, error)
	SetAttribute(attr int) error
}

// Attr returns the text attribute for the argument foreground and background
// colors, only the first 8 colors are valid as background.
func Attr(fg int, bg int) int {
	return (fg & 0x0f) | (bg&0x07)<<4
}

// Parse returns the color matching the argument name.
func Parse(name string) (int, error) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return i, nil
		}
	}

	return 0, fmt.Errorf("invalid color %q", name)
}

// Name returns the name of the argument color.
func Name(c int) string {
	if c < 0 || c >= len(names) {
		return fmt.Sprintf("%#x", c)
	}

	return names[c]
}

// Names returns all color names.
func Names() []string {
	return append([]string{}, names...)
}

func printWith(c Console, fg int, bg int, fn func(w io.Writer) error) (err error) {
	attr, err := c.Attribute()

	if err != nil {
		return
	}

	if err = c.SetAttribute(Attr(fg, bg)); err != nil {
		return
	}

	defer func() {
		if restoreErr := c.SetAttribute(attr); err == nil {
			err = restoreErr
		}
	}()

	return fn(c)
}

// Print writes a string with the argument colors, the previous console
// attribute is restored afterwards.
func Print(c Console, fg int, bg int, s string) error {
	return printWith(c, fg, bg, func(w io.Writer) (err error) {
		_, err = io.WriteString(w, s)
		return
	})
}

// PrintNumber writes a number in hexadecimal format with the argument
// colors, the previous console attribute is restored afterwards.
func PrintNumber(c Console, fg int, bg int, n uint64) error {
	return printWith(c, fg, bg, func(w io.Writer) (err error) {
		_, err = fmt.Fprintf(w, "%x", n)
		return
	})
}

// PrintBoth writes a string followed by a number in hexadecimal format with
// the argument colors.
func PrintBoth(c Console, fg int, bg int, s string, n uint64) error {
	return printWith(c, fg, bg, func(w io.Writer) (err error) {
		_, err = fmt.Fprintf(w, "%s%x", s, n)
		return
	})
}
