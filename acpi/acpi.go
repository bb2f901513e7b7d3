// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package acpi implements parsing of the Advanced Configuration and Power
// Interface (ACPI) root and system description tables, as well as in place
// patching of AML Name objects, following the specifications at:
//
//	https://uefi.org/specs/ACPI/6.5/
//
// Tables are accessed through the [Memory] interface, which allows the
// package to operate on physical memory as well as on table dumps.
package acpi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderSize represents the size of the common system description table
// header.
const HeaderSize = 36

// MaxTableSize limits the table length accepted from memory.
const MaxTableSize = 1 << 20

// Table signatures
const (
	RSDPSignature = "RSD PTR "
	RSDTSignature = "RSDT"
	XSDTSignature = "XSDT"
	DSDTSignature = "DSDT"
	SSDTSignature = "SSDT"
	FACPSignature = "FACP"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrUnsupported      = errors.New("unsupported")
	ErrOutOfBounds      = errors.New("out of bounds")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Memory represents the address space holding ACPI tables, offsets are
// physical addresses.
type Memory interface {
	io.ReaderAt
	io.WriterAt
}

// Buffer implements [Memory] over a byte slice mapped at a base address.
type Buffer struct {
	Base uint64
	Data []byte
}

// ReadAt implements [io.ReaderAt].
func (b *Buffer) ReadAt(p []byte, off int64) (n int, err error) {
	start := uint64(off)

	if start < b.Base || start-b.Base >= uint64(len(b.Data)) {
		return 0, ErrOutOfBounds
	}

	n = copy(p, b.Data[start-b.Base:])

	if n < len(p) {
		err = io.EOF
	}

	return
}

// WriteAt implements [io.WriterAt].
func (b *Buffer) WriteAt(p []byte, off int64) (n int, err error) {
	start := uint64(off)

	if start < b.Base || start-b.Base+uint64(len(p)) > uint64(len(b.Data)) {
		return 0, ErrOutOfBounds
	}

	return copy(b.Data[start-b.Base:], p), nil
}

// Header represents the common ACPI system description table header.
type Header struct {
	Signature       [4]byte
	Length          uint32
	Revision        uint8
	Checksum        uint8
	OEMID           [6]byte
	OEMTableID      [8]byte
	OEMRevision     uint32
	CreatorID       [4]byte
	CreatorRevision uint32
}

// Table represents a system description table header located in memory.
type Table struct {
	Header
	Address uint64
}

func read(mem Memory, addr uint64, data any) (err error) {
	buf := make([]byte, binary.Size(data))

	if _, err = mem.ReadAt(buf, int64(addr)); err != nil && !errors.Is(err, io.EOF) {
		return
	}

	return binary.Read(bytes.NewReader(buf), binary.LittleEndian, data)
}

// ReadHeader reads the system description table header at the argument
// address.
func ReadHeader(mem Memory, addr uint64) (h *Header, err error) {
	if addr == 0 {
		return nil, ErrInvalidParameter
	}

	h = &Header{}

	if err = read(mem, addr, h); err != nil {
		return nil, fmt.Errorf("could not read table header at %#x, %v", addr, err)
	}

	if h.Length < HeaderSize || h.Length > MaxTableSize {
		return nil, fmt.Errorf("table at %#x, invalid length %d, %w", addr, h.Length, ErrOutOfBounds)
	}

	return
}

// ReadTable returns the full contents of the system description table at the
// argument address.
func ReadTable(mem Memory, addr uint64) (buf []byte, err error) {
	h, err := ReadHeader(mem, addr)

	if err != nil {
		return
	}

	buf = make([]byte, h.Length)

	if _, err = mem.ReadAt(buf, int64(addr)); err != nil {
		return nil, fmt.Errorf("could not read table at %#x, %v", addr, err)
	}

	return
}

// ParseHeader parses the system description table header of a table held in
// the argument buffer.
func ParseHeader(buf []byte) (h *Header, err error) {
	if len(buf) < HeaderSize {
		return nil, ErrOutOfBounds
	}

	h = &Header{}

	if err = binary.Read(bytes.NewReader(buf[:HeaderSize]), binary.LittleEndian, h); err != nil {
		return nil, err
	}

	if int(h.Length) > len(buf) || h.Length < HeaderSize {
		return nil, ErrOutOfBounds
	}

	return
}

// Bytes converts the header to byte array format.
func (h *Header) Bytes() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, h)
	return buf.Bytes()
}

// String returns a one line summary of the table header.
func (h *Header) String() string {
	return fmt.Sprintf("%s %-6s %-8s rev:%d len:%d", h.Signature[:], h.OEMID[:], h.OEMTableID[:], h.Revision, h.Length)
}
