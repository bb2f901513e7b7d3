// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"encoding/binary"
	"unicode/utf16"
)

// toUTF16 converts a string to a null terminated UTF-16 little-endian byte
// slice.
func toUTF16(s string) []byte {
	r := utf16.Encode([]rune(s))
	buf := make([]byte, (len(r)+1)*2)

	for i, c := range r {
		binary.LittleEndian.PutUint16(buf[i*2:], c)
	}

	return buf
}

// fromUTF16 converts a (possibly null terminated) UTF-16 little-endian byte
// slice to a string.
func fromUTF16(buf []byte) string {
	var s []uint16

	for i := 0; i+1 < len(buf); i += 2 {
		c := binary.LittleEndian.Uint16(buf[i:])

		if c == 0 {
			break
		}

		s = append(s, c)
	}

	return string(utf16.Decode(s))
}
