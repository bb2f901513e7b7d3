// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package acpi

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// AML opcodes and data object prefixes
// (ACPI Specification 6.5 - 20.2 AML Grammar Definition).
const (
	NameOp       = 0x08
	BytePrefix   = 0x0a
	WordPrefix   = 0x0b
	DWordPrefix  = 0x0c
	StringPrefix = 0x0d
	QWordPrefix  = 0x0e
)

// NameObject represents an AML Name object located within a DSDT or SSDT.
type NameObject struct {
	// Name is the 4 character NameSeg.
	Name string
	// Offset is the Name opcode offset within the table.
	Offset int
	// Prefix is the data object prefix following the name.
	Prefix byte
	// ValueOffset is the data object offset within the table.
	ValueOffset int
	// Width is the data object size in bytes, string objects exclude
	// their null terminator.
	Width int
}

// IsString reports whether the object holds a string.
func (o *NameObject) IsString() bool {
	return o.Prefix == StringPrefix
}

// Value returns the integer or string value of the object from the
// argument table.
func (o *NameObject) Value(table []byte) (n uint64, s string, err error) {
	if o.ValueOffset+o.Width > len(table) {
		return 0, "", ErrOutOfBounds
	}

	v := table[o.ValueOffset : o.ValueOffset+o.Width]

	switch o.Prefix {
	case BytePrefix:
		n = uint64(v[0])
	case WordPrefix:
		n = uint64(binary.LittleEndian.Uint16(v))
	case DWordPrefix:
		n = uint64(binary.LittleEndian.Uint32(v))
	case QWordPrefix:
		n = binary.LittleEndian.Uint64(v)
	case StringPrefix:
		s = string(v)
	default:
		err = fmt.Errorf("data prefix %#02x %w", o.Prefix, ErrUnsupported)
	}

	return
}

// Encode returns the little-endian representation of the argument value
// narrowed to the object width.
func (o *NameObject) Encode(val uint64) (buf []byte, err error) {
	switch o.Prefix {
	case BytePrefix:
		buf = []byte{uint8(val)}
	case WordPrefix:
		buf = binary.LittleEndian.AppendUint16(nil, uint16(val))
	case DWordPrefix:
		buf = binary.LittleEndian.AppendUint32(nil, uint32(val))
	case QWordPrefix:
		buf = binary.LittleEndian.AppendUint64(nil, val)
	default:
		err = fmt.Errorf("data prefix %#02x %w", o.Prefix, ErrUnsupported)
	}

	return
}

// Set overwrites the object integer value in the argument table, the value
// is narrowed to the object width. String objects are not supported.
func (o *NameObject) Set(table []byte, val uint64) (err error) {
	buf, err := o.Encode(val)

	if err != nil {
		return
	}

	if o.ValueOffset+len(buf) > len(table) {
		return ErrOutOfBounds
	}

	copy(table[o.ValueOffset:], buf)

	return
}

// nameSeg converts a 1 to 4 character name to an AML NameSeg, padding it with
// underscores.
func nameSeg(name string) (seg []byte, err error) {
	if len(name) == 0 || len(name) > 4 {
		return nil, fmt.Errorf("name %q %w", name, ErrInvalidParameter)
	}

	return []byte(name + strings.Repeat("_", 4-len(name))), nil
}

// supported reports whether a table can hold AML Name objects.
func supported(h *Header) error {
	switch string(h.Signature[:]) {
	case DSDTSignature, SSDTSignature:
		return nil
	default:
		return fmt.Errorf("%s table %w", h.Signature[:], ErrUnsupported)
	}
}

// FindNameObject scans the definition block body of a DSDT or SSDT for the
// first Name object matching the argument name.
func FindNameObject(table []byte, name string) (o *NameObject, err error) {
	h, err := ParseHeader(table)

	if err != nil {
		return
	}

	if err = supported(h); err != nil {
		return
	}

	seg, err := nameSeg(name)

	if err != nil {
		return
	}

	body := table[:h.Length]

	for off := HeaderSize; off+len(seg) <= len(body); off++ {
		i := bytes.Index(body[off:], seg)

		if i < 0 {
			break
		}

		off += i

		if body[off-1] != NameOp {
			continue
		}

		o = &NameObject{
			Name:        string(seg),
			Offset:      off - 1,
			ValueOffset: off + len(seg) + 1,
		}

		if off+len(seg) >= len(body) {
			return nil, fmt.Errorf("name %s data prefix %w", seg, ErrOutOfBounds)
		}

		o.Prefix = body[off+len(seg)]

		switch o.Prefix {
		case BytePrefix:
			o.Width = 1
		case WordPrefix:
			o.Width = 2
		case DWordPrefix:
			o.Width = 4
		case QWordPrefix:
			o.Width = 8
		case StringPrefix:
			n := bytes.IndexByte(body[min(o.ValueOffset, len(body)):], 0x00)

			if n < 0 {
				return nil, fmt.Errorf("name %s string %w", seg, ErrOutOfBounds)
			}

			o.Width = n
		}

		if o.ValueOffset+o.Width > len(body) {
			return nil, fmt.Errorf("name %s value %w", seg, ErrOutOfBounds)
		}

		return
	}

	return nil, fmt.Errorf("name %s %w", seg, ErrNotFound)
}

// UpdateNameObject locates the named AML Name object in the DSDT or SSDT at
// the argument address and overwrites its integer value in place.
//
// The table checksum is left untouched, use [UpdateChecksum] to recompute
// it.
func UpdateNameObject(mem Memory, addr uint64, name string, val uint64) (o *NameObject, err error) {
	table, err := ReadTable(mem, addr)

	if err != nil {
		return
	}

	if o, err = FindNameObject(table, name); err != nil {
		return
	}

	buf, err := o.Encode(val)

	if err != nil {
		return
	}

	_, err = mem.WriteAt(buf, int64(addr)+int64(o.ValueOffset))

	return
}
