// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package acpi

import (
	"encoding/binary"
	"fmt"
)

const (
	// ACPI 1.0 RSDP structure size, covered by Checksum
	rsdpV1Size = 20
	// ACPI 2.0+ RSDP structure size
	rsdpV2Size = 36
)

// RSDP represents the Root System Description Pointer.
type RSDP struct {
	Signature        [8]byte
	Checksum         uint8
	OEMID            [6]byte
	Revision         uint8
	RsdtAddress      uint32
	Length           uint32
	XsdtAddress      uint64
	ExtendedChecksum uint8
	Reserved         [3]byte

	// Valid reports whether the structure checksums are correct.
	Valid bool
}

// ReadRSDP reads the Root System Description Pointer at the argument address.
func ReadRSDP(mem Memory, addr uint64) (r *RSDP, err error) {
	if addr == 0 {
		return nil, ErrInvalidParameter
	}

	buf := make([]byte, rsdpV2Size)

	if _, err = mem.ReadAt(buf, int64(addr)); err != nil {
		// ACPI 1.0 tables might be at the end of the address space
		if _, err = mem.ReadAt(buf[:rsdpV1Size], int64(addr)); err != nil {
			return nil, fmt.Errorf("could not read RSDP at %#x, %v", addr, err)
		}
	}

	return ParseRSDP(buf)
}

// ParseRSDP parses a Root System Description Pointer, ACPI 1.0 structures
// require at least 20 bytes and ACPI 2.0+ ones 36.
func ParseRSDP(buf []byte) (r *RSDP, err error) {
	if len(buf) < rsdpV1Size {
		return nil, ErrOutOfBounds
	}

	r = &RSDP{}

	copy(r.Signature[:], buf[0:8])

	if string(r.Signature[:]) != RSDPSignature {
		return nil, fmt.Errorf("RSDP %w (%q)", ErrInvalidSignature, r.Signature[:])
	}

	r.Checksum = buf[8]
	copy(r.OEMID[:], buf[9:15])
	r.Revision = buf[15]
	r.RsdtAddress = binary.LittleEndian.Uint32(buf[16:20])
	r.Valid = Checksum(buf[:rsdpV1Size]) == 0

	if r.Revision < 2 {
		return
	}

	if len(buf) < rsdpV2Size {
		return nil, ErrOutOfBounds
	}

	r.Length = binary.LittleEndian.Uint32(buf[20:24])
	r.XsdtAddress = binary.LittleEndian.Uint64(buf[24:32])
	r.ExtendedChecksum = buf[32]
	copy(r.Reserved[:], buf[33:36])

	n := int(r.Length)

	if n < rsdpV2Size || n > len(buf) {
		n = rsdpV2Size
	}

	r.Valid = r.Valid && Checksum(buf[:n]) == 0

	return
}

// Root returns the address and entry width of the root system description
// table suitable for the argument firmware bit mode. 64-bit firmware uses
// the XSDT, when present, while 32-bit firmware uses the RSDT.
func (r *RSDP) Root(bits int) (addr uint64, width int, err error) {
	switch bits {
	case 64:
		if r.Revision >= 2 && r.XsdtAddress != 0 {
			return r.XsdtAddress, 8, nil
		}

		fallthrough
	case 32:
		if r.RsdtAddress == 0 {
			return 0, 0, fmt.Errorf("RSDT address %w", ErrNotFound)
		}

		return uint64(r.RsdtAddress), 4, nil
	default:
		return 0, 0, fmt.Errorf("%d-bit mode %w", bits, ErrUnsupported)
	}
}
