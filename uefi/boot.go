// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"encoding/binary"
	"fmt"
)

// EFI Boot Services offsets
// See: https://uefi.org/specs/UEFI/2.11/04_EFI_System_Table.html#efi-boot-services-table
const (
	allocatePages    = 0x28
	freePages        = 0x30
	handleProtocol   = 0x98
	locateHandle     = 0xb0
	exit             = 0xd8
	setWatchdogTimer = 0x100
	locateProtocol   = 0x140
)

// EFI_ALLOCATE_TYPE
const (
	AllocateAnyPages = iota
	AllocateMaxAddress
	AllocateAddress
	MaxAllocateType
)

// EFI_MEMORY_TYPE
const (
	EfiReservedMemoryType = iota
	EfiLoaderCode
	EfiLoaderData
	EfiBootServicesCode
	EfiBootServicesData
	EfiRuntimeServicesCode
	EfiRuntimeServicesData
	EfiConventionalMemory
	EfiUnusableMemory
	EfiACPIReclaimMemory
	EfiACPIMemoryNVS
	EfiMemoryMappedIO
	EfiMemoryMappedIOPortSpace
	EfiPalCode
	EfiPersistentMemory
	EfiUnacceptedMemoryType
	EfiMaxMemoryType
)

// EFI_LOCATE_SEARCH_TYPE
const (
	AllHandles = iota
	ByRegisterNotify
	ByProtocol
)

const (
	maxHandles = 256

	// watchdog code reported on expiration, not interpreted by firmware
	watchdogCode = 0x5a4d
)

func pages(size int) uint64 {
	return (uint64(size) + PageSize - 1) / PageSize
}

// AllocatePages calls EFI_BOOT_SERVICES.AllocatePages(), the argument size
// is rounded up to the next page.
func (s *BootServices) AllocatePages(allocateType int, memoryType int, size int, physicalAddress uint64) error {
	status := callService(s.base+allocatePages,
		[]uint64{
			uint64(allocateType),
			uint64(memoryType),
			pages(size),
			ptrval(&physicalAddress),
		},
	)

	return parseStatus(status)
}

// FreePages calls EFI_BOOT_SERVICES.FreePages().
func (s *BootServices) FreePages(physicalAddress uint64, size int) error {
	status := callService(s.base+freePages,
		[]uint64{
			physicalAddress,
			pages(size),
		},
	)

	return parseStatus(status)
}

// HandleProtocol calls EFI_BOOT_SERVICES.HandleProtocol() and returns the
// protocol interface address.
func (s *BootServices) HandleProtocol(handle uint64, guid GUID) (addr uint64, err error) {
	status := callService(s.base+handleProtocol,
		[]uint64{
			handle,
			guid.ptrval(),
			ptrval(&addr),
		},
	)

	return addr, parseStatus(status)
}

// LocateProtocol calls EFI_BOOT_SERVICES.LocateProtocol() and returns the
// first matching protocol interface address.
func (s *BootServices) LocateProtocol(guid GUID) (addr uint64, err error) {
	status := callService(s.base+locateProtocol,
		[]uint64{
			guid.ptrval(),
			0,
			ptrval(&addr),
		},
	)

	return addr, parseStatus(status)
}

// LocateProtocolString is like LocateProtocol but takes a GUID in registry
// format.
func (s *BootServices) LocateProtocolString(guid string) (addr uint64, err error) {
	g, err := ParseGUID(guid)

	if err != nil {
		return 0, fmt.Errorf("invalid GUID, %v", err)
	}

	return s.LocateProtocol(g)
}

func (s *BootServices) locateHandle(searchType uint64, protocol uint64) (handles []uint64, err error) {
	buf := make([]byte, maxHandles*8)
	size := uint64(len(buf))

	status := callService(s.base+locateHandle,
		[]uint64{
			searchType,
			protocol,
			0,
			ptrval(&size),
			ptrval(&buf[0]),
		},
	)

	if err = parseStatus(status); err != nil {
		return
	}

	for i := 0; i+8 <= int(size); i += 8 {
		handles = append(handles, binary.LittleEndian.Uint64(buf[i:]))
	}

	return
}

// LocateHandle calls EFI_BOOT_SERVICES.LocateHandle() to return all handles
// supporting the argument protocol.
func (s *BootServices) LocateHandle(guid GUID) (handles []uint64, err error) {
	return s.locateHandle(ByProtocol, guid.ptrval())
}

// Handles calls EFI_BOOT_SERVICES.LocateHandle() to return every handle in
// the handle database.
func (s *BootServices) Handles() (handles []uint64, err error) {
	return s.locateHandle(AllHandles, 0)
}

// SetWatchdogTimer calls EFI_BOOT_SERVICES.SetWatchdogTimer(), a zero
// timeout disables the watchdog.
func (s *BootServices) SetWatchdogTimer(timeout int) (err error) {
	status := callService(s.base+setWatchdogTimer,
		[]uint64{
			uint64(timeout),
			watchdogCode,
			0,
			0,
		},
	)

	return parseStatus(status)
}

// Exit calls EFI_BOOT_SERVICES.Exit() to return the argument exit code to
// the image loader.
func (s *BootServices) Exit(code int) (err error) {
	status := callService(s.base+exit,
		[]uint64{
			s.imageHandle,
			uint64(code),
			0,
			0,
		},
	)

	return parseStatus(status)
}
