// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"errors"
	"fmt"
)

var EFI_SIMPLE_NETWORK_PROTOCOL_GUID = MustParseGUID("a19832b9-ac25-11d3-9a2d-0090273fc14d")

const (
	EFI_SIMPLE_NETWORK_PROTOCOL_REVISION = 0x00010000

	EFI_SIMPLE_NETWORK_TRANSMIT_INTERRUPT = 0x02
)

// EFI Simple Network Protocol offsets
const (
	start      = 0x08
	stop       = 0x10
	initialize = 0x18
	getStatus  = 0x58
	transmit   = 0x60
	receive    = 0x68
)

// SimpleNetwork represents an EFI Simple Network Protocol instance.
type SimpleNetwork struct {
	base uint64
}

func (sn *SimpleNetwork) call(fn uint64, args ...uint64) uint64 {
	return callService(sn.base+fn, append([]uint64{sn.base}, args...))
}

// Start calls EFI_SIMPLE_NETWORK.Start()
func (sn *SimpleNetwork) Start() (err error) {
	return parseStatus(sn.call(start))
}

// Stop calls EFI_SIMPLE_NETWORK.Stop()
func (sn *SimpleNetwork) Stop() (err error) {
	return parseStatus(sn.call(stop))
}

// Initialize calls EFI_SIMPLE_NETWORK.Initialize() without extra buffers.
func (sn *SimpleNetwork) Initialize() (err error) {
	return parseStatus(sn.call(initialize, 0, 0))
}

// Open brings the interface to the initialized state, an interface already
// started by firmware drivers is reused.
func (sn *SimpleNetwork) Open() (err error) {
	if err = sn.Start(); err != nil && !errors.Is(err, ErrEfiAlreadyStarted) {
		return fmt.Errorf("could not start interface, %w", err)
	}

	if err = sn.Initialize(); err != nil {
		sn.Stop()
		return fmt.Errorf("could not initialize interface, %w", err)
	}

	return
}

// GetStatus calls EFI_SIMPLE_NETWORK.GetStatus()
func (sn *SimpleNetwork) GetStatus() (interruptStatus uint32, txBuf uint64, err error) {
	err = parseStatus(sn.call(getStatus, ptrval(&interruptStatus), ptrval(&txBuf)))
	return
}

// Transmit calls EFI_SIMPLE_NETWORK.Transmit() with a fully formed frame and
// polls EFI_SIMPLE_NETWORK.GetStatus() until its transmit interrupt is
// reported.
func (sn *SimpleNetwork) Transmit(buf []byte) (err error) {
	var interruptStatus uint32

	if len(buf) == 0 {
		return ErrEfiInvalidParameter
	}

	if err = parseStatus(sn.call(transmit, 0, uint64(len(buf)), ptrval(&buf[0]), 0, 0, 0)); err != nil {
		return
	}

	for interruptStatus&EFI_SIMPLE_NETWORK_TRANSMIT_INTERRUPT == 0 {
		if interruptStatus, _, err = sn.GetStatus(); err != nil {
			return
		}
	}

	return
}

// Receive calls EFI_SIMPLE_NETWORK.Receive(), a zero length is returned when
// no frame is pending.
func (sn *SimpleNetwork) Receive(buf []byte) (n int, err error) {
	size := uint64(len(buf))

	if size == 0 {
		return 0, ErrEfiInvalidParameter
	}

	status := sn.call(receive, 0, ptrval(&size), ptrval(&buf[0]), 0, 0, 0)

	if status&0xff == EFI_NOT_READY {
		return 0, nil
	}

	return int(size), parseStatus(status)
}

// GetNetwork locates and returns the EFI Simple Network Protocol instance.
func (s *BootServices) GetNetwork() (sn *SimpleNetwork, err error) {
	sn = &SimpleNetwork{}

	if sn.base, err = s.LocateProtocol(EFI_SIMPLE_NETWORK_PROTOCOL_GUID); err != nil {
		return nil, err
	}

	return
}
