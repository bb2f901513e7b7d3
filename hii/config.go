// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package hii

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Element represents a configuration string block element, a variable store
// byte range along with its value when part of a response.
type Element struct {
	Offset int
	Width  int
	Value  []byte
}

// pair represents a configuration string `<key>=<value>` token and its
// position within the string.
type pair struct {
	key   string
	value string
	pos   int
}

func tokenize(s string) (pairs []pair) {
	pos := 0

	for _, tok := range strings.Split(s, "&") {
		k, v, _ := strings.Cut(tok, "=")
		pairs = append(pairs, pair{strings.ToUpper(k), v, pos})
		pos += len(tok) + 1
	}

	return
}

// ConfigHeader returns the configuration string header (<ConfigHdr>) for
// the argument variable store GUID, name and device path.
func ConfigHeader(guid [16]byte, name string, path []byte) string {
	var sb strings.Builder

	sb.WriteString("GUID=")
	sb.WriteString(hex.EncodeToString(guid[:]))
	sb.WriteString("&NAME=")

	for _, c := range utf16.Encode([]rune(name)) {
		fmt.Fprintf(&sb, "%04x", c)
	}

	sb.WriteString("&PATH=")
	sb.WriteString(hex.EncodeToString(path))

	return sb.String()
}

// EncodeValue returns the configuration string representation of a
// variable store value, bytes are written in reverse order.
func EncodeValue(buf []byte) string {
	r := make([]byte, len(buf))

	for i, b := range buf {
		r[len(buf)-1-i] = b
	}

	return hex.EncodeToString(r)
}

// DecodeValue converts a configuration string value to width bytes, the
// reverse of EncodeValue. Shorter values are zero extended.
func DecodeValue(s string, width int) (buf []byte, err error) {
	if len(s) > width*2 {
		return nil, fmt.Errorf("value exceeds width %d, %w", width, ErrInvalidParameter)
	}

	if len(s)%2 != 0 {
		s = "0" + s
	}

	r, err := hex.DecodeString(s)

	if err != nil {
		return nil, fmt.Errorf("invalid value, %w", ErrInvalidParameter)
	}

	buf = make([]byte, width)

	for i, b := range r {
		buf[len(r)-1-i] = b
	}

	return
}

func parseNumber(p pair, key string) (n int, err error) {
	if p.key != key {
		return 0, fmt.Errorf("expected %s at %d, %w", key, p.pos, ErrInvalidParameter)
	}

	v, err := strconv.ParseUint(p.value, 16, 32)

	if err != nil {
		return 0, fmt.Errorf("invalid %s at %d, %w", key, p.pos, ErrInvalidParameter)
	}

	return int(v), nil
}

// parseElements parses the block elements following a configuration
// header, on error the returned progress points to the failing token.
func parseElements(pairs []pair, withValue bool) (elements []*Element, progress int, err error) {
	for i := 0; i < len(pairs); {
		e := &Element{}
		progress = pairs[i].pos

		if e.Offset, err = parseNumber(pairs[i], "OFFSET"); err != nil {
			return
		}

		if i+1 >= len(pairs) {
			return nil, progress, fmt.Errorf("missing WIDTH, %w", ErrInvalidParameter)
		}

		if e.Width, err = parseNumber(pairs[i+1], "WIDTH"); err != nil {
			return nil, pairs[i+1].pos, err
		}

		if e.Width == 0 || e.Offset+e.Width > DataSize {
			return nil, progress, fmt.Errorf("range %#x+%#x out of bounds, %w", e.Offset, e.Width, ErrInvalidParameter)
		}

		i += 2

		if withValue {
			if i >= len(pairs) || pairs[i].key != "VALUE" {
				return nil, progress, fmt.Errorf("missing VALUE, %w", ErrInvalidParameter)
			}

			if e.Value, err = DecodeValue(pairs[i].value, e.Width); err != nil {
				return nil, pairs[i].pos, err
			}

			i++
		}

		elements = append(elements, e)
	}

	return
}
