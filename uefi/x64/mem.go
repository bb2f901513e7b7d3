// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package x64

import (
	"errors"
	"fmt"
	"runtime"
	_ "unsafe"

	"github.com/sammodule/sam-boot/uefi"
)

//go:linkname _unused runtime.ramStart
var _unused uint64 = 0x00100000 // overridden in x64.s

//go:linkname RamSize runtime.ramSize
var RamSize uint64 = 0x2c000000 // 704MB

// heapStart returns the end of the EFI loader code descriptor holding the
// runtime image, the runtime heap follows it.
func heapStart(memoryMap *uefi.MemoryMap, ramStart uint64) (uint64, error) {
	for _, desc := range memoryMap.Descriptors {
		if desc.Type == uefi.EfiLoaderCode && desc.PhysicalStart == ramStart {
			return desc.PhysicalEnd(), nil
		}
	}

	return 0, errors.New("could not find heap offset")
}

// allocateHeap reserves the runtime heap in UEFI memory so that firmware
// allocations cannot overlap it.
func allocateHeap() (err error) {
	memoryMap, err := UEFI.Boot.GetMemoryMap()

	if err != nil {
		return fmt.Errorf("could not get memory map, %v", err)
	}

	ramStart, ramEnd := runtime.MemRegion()
	start, err := heapStart(memoryMap, ramStart)

	if err != nil {
		return
	}

	if err = UEFI.Boot.AllocatePages(uefi.AllocateAddress, uefi.EfiLoaderData, int(ramEnd-start), start); err != nil {
		return fmt.Errorf("could not allocate heap at %#x, %v", start, err)
	}

	return
}
