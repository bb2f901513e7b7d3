// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/usbarmory/tamago/dma"
)

// ErrInvalidAddress is returned on physical memory accesses at address zero
// or with an empty buffer.
var ErrInvalidAddress = errors.New("invalid address")

// Memory gives byte access to physical memory through temporary DMA regions,
// it implements io.ReaderAt and io.WriterAt with offsets used as physical
// addresses.
type Memory struct{}

func (Memory) region(off int64, n int) (r *dma.Region, addr uint, buf []byte, err error) {
	if off <= 0 || n <= 0 {
		return nil, 0, nil, ErrInvalidAddress
	}

	if r, err = dma.NewRegion(uint(off), n, false); err != nil {
		return
	}

	addr, buf = r.Reserve(n, 0)

	return
}

// ReadAt copies len(p) bytes of physical memory at address off into p.
func (m Memory) ReadAt(p []byte, off int64) (n int, err error) {
	r, addr, buf, err := m.region(off, len(p))

	if err != nil {
		return
	}
	defer r.Release(addr)

	return copy(p, buf), nil
}

// WriteAt copies p to physical memory at address off.
func (m Memory) WriteAt(p []byte, off int64) (n int, err error) {
	r, addr, buf, err := m.region(off, len(p))

	if err != nil {
		return
	}
	defer r.Release(addr)

	return copy(buf, p), nil
}

// Read returns a copy of size bytes at the argument physical address.
func (m Memory) Read(addr uint64, size int) (buf []byte, err error) {
	buf = make([]byte, size)

	if _, err = m.ReadAt(buf, int64(addr)); err != nil {
		return nil, err
	}

	return
}

func marshalBinary(data any) (buf []byte, err error) {
	b := new(bytes.Buffer)
	err = binary.Write(b, binary.LittleEndian, data)
	return b.Bytes(), err
}

func unmarshalBinary(buf []byte, data any) (err error) {
	_, err = binary.Decode(buf, binary.LittleEndian, data)
	return
}

// decode fills the argument fixed size structure from physical memory.
func decode(data any, addr uint64) (err error) {
	buf, err := Memory{}.Read(addr, binary.Size(data))

	if err != nil {
		return
	}

	return unmarshalBinary(buf, data)
}
