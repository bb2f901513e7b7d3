// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"io"
	"unicode/utf16"
)

var (
	EFI_SIMPLE_TEXT_INPUT_PROTOCOL_GUID  = MustParseGUID("387477c1-69c7-11d2-8e39-00a0c969723b")
	EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL_GUID = MustParseGUID("387477c2-69c7-11d2-8e39-00a0c969723b")
)

const (
	// EFI ConIn offset for ReadKeyStroke
	readKeyStroke = 0x08
)

// EFI Simple Text Output Protocol offsets
const (
	outputString      = 0x08
	setAttribute      = 0x28
	clearScreen       = 0x30
	setCursorPosition = 0x38
	enableCursor      = 0x40
	textMode          = 0x48
)

// InputKey represents an EFI Input Key descriptor.
type InputKey struct {
	ScanCode    uint16
	UnicodeChar [2]byte
}

// TextMode represents an EFI Simple Text Output Mode instance.
type TextMode struct {
	MaxMode       int32
	Mode          int32
	Attribute     int32
	CursorColumn  int32
	CursorRow     int32
	CursorVisible bool
}

// Console implements the [io.ReadWriter] interface over EFI Simple Text
// Input/Output protocol.
type Console struct {
	io.ReadWriter

	// ForceLine controls whether line feeds (LF) should be supplemented
	// with a carriage return (CR).
	ForceLine bool

	// ReplaceTabs controls whether Console I/O output should have Tab
	// characters replaced with a number of spaces.
	ReplaceTabs int

	// EFI Simple Text Input/Output protocol instances
	In  uint64
	Out uint64
}

// Input calls EFI_SIMPLE_TEXT_INPUT_PROTOCOL.ReadKeyStroke().
func (c *Console) Input(k *InputKey) (status uint64) {
	if c.In == 0 {
		return EFI_NOT_READY
	}

	return callService(c.In+readKeyStroke,
		[]uint64{
			c.In,
			ptrval(k),
		},
	)
}

// Output calls EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL.OutputString(), the argument
// must be an UTF-16 encoded string.
func (c *Console) Output(p []byte) (status uint64) {
	if c.Out == 0 || len(p) == 0 {
		return
	}

	// null terminated UTF-16
	p = append(p, 0x00, 0x00)

	return callService(c.Out+outputString,
		[]uint64{
			c.Out,
			ptrval(&p[0]),
		},
	)
}

// SetAttribute calls EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL.SetAttribute().
func (c *Console) SetAttribute(attr int) (err error) {
	if c.Out == 0 {
		return
	}

	status := callService(c.Out+setAttribute,
		[]uint64{
			c.Out,
			uint64(attr),
		},
	)

	return parseStatus(status)
}

// Mode returns the EFI Simple Text Output Mode instance.
func (c *Console) Mode() (m *TextMode, err error) {
	var addr uint64

	if err = decode(&addr, c.Out+textMode); err != nil {
		return
	}

	m = &TextMode{}
	err = decode(m, addr)

	return
}

// Attribute returns the current text attribute of the output console.
func (c *Console) Attribute() (attr int, err error) {
	m, err := c.Mode()

	if err != nil {
		return
	}

	return int(m.Attribute), nil
}

// ClearScreen calls EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL.ClearScreen().
func (c *Console) ClearScreen() (err error) {
	if c.Out == 0 {
		return
	}

	status := callService(c.Out+clearScreen,
		[]uint64{
			c.Out,
		},
	)

	return parseStatus(status)
}

// SetCursorPosition calls EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL.SetCursorPosition().
func (c *Console) SetCursorPosition(column int, row int) (err error) {
	status := callService(c.Out+setCursorPosition,
		[]uint64{
			c.Out,
			uint64(column),
			uint64(row),
		},
	)

	return parseStatus(status)
}

// EnableCursor calls EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL.EnableCursor().
func (c *Console) EnableCursor(visible bool) (err error) {
	var arg uint64

	if visible {
		arg = 1
	}

	status := callService(c.Out+enableCursor,
		[]uint64{
			c.Out,
			arg,
		},
	)

	return parseStatus(status)
}

// Read available data to buffer from console.
func (c *Console) Read(p []byte) (n int, err error) {
	k := &InputKey{}

	for n = 0; n < len(p); {
		status := c.Input(k)

		switch {
		case status == EFI_SUCCESS:
			if k.UnicodeChar[0] == 0 && k.UnicodeChar[1] == 0 {
				continue
			}

			// only the ASCII range is passed through to the terminal
			p[n] = k.UnicodeChar[0]
			n += 1
		case status&0xff == EFI_NOT_READY:
			return
		default:
			return n, parseStatus(status)
		}
	}

	return
}

// Write data from buffer to console.
func (c *Console) Write(p []byte) (n int, err error) {
	var s []byte

	if len(p) == 0 {
		return
	}

	// We receive an UTF-8 string but we can output only UTF-16 ones.
	b := utf16.Encode([]rune(string(p)))

	for _, r := range b {
		if r == 0x09 && c.ReplaceTabs > 0 { // Tab
			for i := 0; i < c.ReplaceTabs; i++ {
				s = append(s, []byte{0x20, 0x00}...) // Space
			}
			continue
		}

		s = append(s, byte(r&0xff))
		s = append(s, byte(r>>8))

		if r == 0x0a && c.ForceLine { // LF
			s = append(s, []byte{0x0d, 0x00}...) // CR
		}
	}

	if status := c.Output(s); status != EFI_SUCCESS {
		return n, parseStatus(status)
	}

	return len(p), nil
}
