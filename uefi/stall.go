// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"time"
)

// EFI Boot Services offset for Stall
const stall = 0xf8

// Stall calls EFI_BOOT_SERVICES.Stall().
func (s *BootServices) Stall(d time.Duration) (err error) {
	status := callService(s.base+stall,
		[]uint64{
			uint64(d.Microseconds()),
		},
	)

	return parseStatus(status)
}
