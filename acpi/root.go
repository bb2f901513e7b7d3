// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package acpi

import (
	"encoding/binary"
	"fmt"
)

// RootTable represents a Root System Description Table (RSDT) or an Extended
// System Description Table (XSDT).
type RootTable struct {
	Header

	// Address is the table physical address.
	Address uint64
	// Width is the size of each entry (4 for RSDT, 8 for XSDT).
	Width int
	// Entries holds the addresses of the referenced tables.
	Entries []uint64
}

// ReadRoot reads the root system description table at the argument address,
// the table flavor is selected by the entry width.
func ReadRoot(mem Memory, addr uint64, width int) (t *RootTable, err error) {
	var sig string

	switch width {
	case 4:
		sig = RSDTSignature
	case 8:
		sig = XSDTSignature
	default:
		return nil, fmt.Errorf("entry width %d %w", width, ErrUnsupported)
	}

	buf, err := ReadTable(mem, addr)

	if err != nil {
		return
	}

	if t, err = ParseRoot(buf, width); err != nil {
		return
	}

	if string(t.Signature[:]) != sig {
		return nil, fmt.Errorf("%s %w (%q)", sig, ErrInvalidSignature, t.Signature[:])
	}

	t.Address = addr

	return
}

// ParseRoot parses a root system description table from the argument
// buffer, the number of entries is derived from the header length.
func ParseRoot(buf []byte, width int) (t *RootTable, err error) {
	h, err := ParseHeader(buf)

	if err != nil {
		return
	}

	if width != 4 && width != 8 {
		return nil, ErrUnsupported
	}

	t = &RootTable{
		Header: *h,
		Width:  width,
	}

	n := (int(h.Length) - HeaderSize) / width

	for i := 0; i < n; i++ {
		off := HeaderSize + i*width

		switch width {
		case 4:
			t.Entries = append(t.Entries, uint64(binary.LittleEndian.Uint32(buf[off:])))
		case 8:
			t.Entries = append(t.Entries, binary.LittleEndian.Uint64(buf[off:]))
		}
	}

	return
}

// Tables returns the headers of all tables referenced by the root table,
// entries which cannot be read are skipped and returned as errors.
func (t *RootTable) Tables(mem Memory) (tables []*Table, errs []error) {
	for _, addr := range t.Entries {
		h, err := ReadHeader(mem, addr)

		if err != nil {
			errs = append(errs, err)
			continue
		}

		tables = append(tables, &Table{Header: *h, Address: addr})
	}

	return
}

// Find returns the first referenced table matching the argument 4-byte
// signature.
func (t *RootTable) Find(mem Memory, signature string) (table *Table, err error) {
	return t.find(mem, func(h *Header) bool {
		return string(h.Signature[:]) == signature
	})
}

// FindOEMTableID returns the first referenced SSDT matching the argument
// 8-byte OEM table identifier, shorter identifiers are padded with spaces.
func (t *RootTable) FindOEMTableID(mem Memory, id string) (table *Table, err error) {
	if len(id) == 0 || len(id) > 8 {
		return nil, ErrInvalidParameter
	}

	var oemTableID [8]byte

	copy(oemTableID[:], fmt.Sprintf("%-8s", id))

	return t.find(mem, func(h *Header) bool {
		return string(h.Signature[:]) == SSDTSignature && h.OEMTableID == oemTableID
	})
}

func (t *RootTable) find(mem Memory, match func(*Header) bool) (table *Table, err error) {
	for _, addr := range t.Entries {
		h, err := ReadHeader(mem, addr)

		if err != nil {
			continue
		}

		if match(h) {
			return &Table{Header: *h, Address: addr}, nil
		}
	}

	return nil, ErrNotFound
}

// Fixed ACPI Description Table offsets of the DSDT pointers
const (
	fadtDSDT  = 40
	fadtXDSDT = 140
)

// DSDT returns the Differentiated System Description Table referenced by the
// FADT, the 64-bit X_DSDT pointer takes precedence when present.
func (t *RootTable) DSDT(mem Memory) (table *Table, err error) {
	fadt, err := t.Find(mem, FACPSignature)

	if err != nil {
		return nil, fmt.Errorf("FACP %w", err)
	}

	buf, err := ReadTable(mem, fadt.Address)

	if err != nil {
		return
	}

	var addr uint64

	if len(buf) >= fadtXDSDT+8 {
		addr = binary.LittleEndian.Uint64(buf[fadtXDSDT:])
	}

	if addr == 0 && len(buf) >= fadtDSDT+4 {
		addr = uint64(binary.LittleEndian.Uint32(buf[fadtDSDT:]))
	}

	if addr == 0 {
		return nil, fmt.Errorf("DSDT %w", ErrNotFound)
	}

	h, err := ReadHeader(mem, addr)

	if err != nil {
		return
	}

	if string(h.Signature[:]) != DSDTSignature {
		return nil, fmt.Errorf("DSDT %w (%q)", ErrInvalidSignature, h.Signature[:])
	}

	return &Table{Header: *h, Address: addr}, nil
}
