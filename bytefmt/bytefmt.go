// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package bytefmt implements helpers for printing raw memory and converting
// between hexadecimal and ASCII representations on text consoles.
package bytefmt

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unsafe"
)

const (
	// BytesPerLine is the number of bytes printed on each dump row.
	BytesPerLine = 16
	// ProgressBarWidth is the number of progress bar cells.
	ProgressBarWidth = 50
	// MaxHexDigits is the maximum number of digits accepted by ParseHex.
	MaxHexDigits = 8
)

// ErrUnsupported is returned for characters outside the hexadecimal range.
var ErrUnsupported = errors.New("unsupported character")

// IsPrint reports whether a character is printable ASCII.
func IsPrint(c byte) bool {
	return c >= 0x20 && c <= 0x7e
}

// Dump writes the argument buffer in hexadecimal and ASCII format, addresses
// are relative to the buffer start.
func Dump(w io.Writer, buf []byte) {
	var line strings.Builder

	fmt.Fprintf(w, "[Address]  [                 Data Region                 ]  [ Ascii Region ]\n")

	line.WriteString("           ")

	for column := 0; column < BytesPerLine; column++ {
		fmt.Fprintf(&line, "%02X ", column)
	}

	line.WriteString(" ")

	for column := 0; column < BytesPerLine; column++ {
		line.WriteByte(HexToASCII(byte(column)))
	}

	fmt.Fprintln(w, line.String())

	for index := 0; index < len(buf); index += BytesPerLine {
		line.Reset()
		fmt.Fprintf(&line, "%08X:  ", index)

		for i := index; i < index+BytesPerLine; i++ {
			if i < len(buf) {
				fmt.Fprintf(&line, "%02x ", buf[i])
			} else {
				line.WriteString("   ")
			}
		}

		line.WriteString(" ")

		for i := index; i < index+BytesPerLine && i < len(buf); i++ {
			line.WriteByte(ASCII(buf[i]))
		}

		fmt.Fprintln(w, line.String())
	}
}

// ASCII returns the argument character if printable, '.' otherwise.
func ASCII(c byte) byte {
	if IsPrint(c) {
		return c
	}

	return '.'
}

// ToASCII converts binary data to a printable string, non printable
// characters are replaced with '.'.
func ToASCII(buf []byte) string {
	s := make([]byte, len(buf))

	for i, c := range buf {
		s[i] = ASCII(c)
	}

	return string(s)
}

// HexToASCII converts the lower nibble of the argument to its uppercase
// hexadecimal digit.
func HexToASCII(n byte) byte {
	return "0123456789ABCDEF"[n&0x0f]
}

// ASCIIToHex converts a hexadecimal digit to its value.
func ASCIIToHex(c byte) (h byte, err error) {
	switch {
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	case c >= '0' && c <= '9':
		return c - '0', nil
	}

	return 0, fmt.Errorf("%q, %w", c, ErrUnsupported)
}

// ParseHex converts up to 8 hexadecimal digits to their value, digits
// beyond the eighth are ignored.
func ParseHex(s string) (n uint32, err error) {
	if len(s) == 0 {
		return 0, ErrUnsupported
	}

	for i := 0; i < MaxHexDigits && i < len(s); i++ {
		h, err := ASCIIToHex(s[i])

		if err != nil {
			return 0, err
		}

		n = n<<4 | uint32(h)
	}

	return
}

// ProgressBar writes a carriage return prefixed progress bar for the argument
// percentage, which is capped to 100.
func ProgressBar(w io.Writer, progress int) {
	var bar [ProgressBarWidth]byte

	progress = max(0, min(progress, 100))

	for i := 1; i <= ProgressBarWidth; i++ {
		if i <= progress/2 {
			bar[i-1] = '#'
		} else {
			bar[i-1] = '-'
		}
	}

	fmt.Fprintf(w, "\rProgress: [%s] %d%%", bar[:], progress)
}

// Repeat writes the argument string count times.
func Repeat(w io.Writer, s string, count int) {
	if count <= 0 {
		return
	}

	io.WriteString(w, strings.Repeat(s, count))
}

// BitMode returns the firmware bit mode, 32 or 64, from the native pointer
// size.
func BitMode() int {
	return int(unsafe.Sizeof(uintptr(0))) * 8
}

// Elapsed returns the wall clock time elapsed between two times of the same
// day, an end time earlier than the start time is considered to be on the
// following day.
func Elapsed(start time.Time, end time.Time) time.Duration {
	clock := func(t time.Time) time.Duration {
		return time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second
	}

	d := clock(end) - clock(start)

	if d < 0 {
		d += 24 * time.Hour
	}

	return d
}

// ElapsedTime writes the total number of seconds elapsed between two times
// along with both clock readings.
func ElapsedTime(w io.Writer, start time.Time, end time.Time) {
	fmt.Fprintf(w, "Total Time: %ds (%02d:%02d:%02d - %02d:%02d:%02d)\n",
		int(Elapsed(start, end).Seconds()),
		start.Hour(), start.Minute(), start.Second(),
		end.Hour(), end.Minute(), end.Second())
}
