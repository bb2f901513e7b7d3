// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

// EFI Runtime Services offset for ResetSystem
const resetSystem = 0x68

// EFI_RESET_TYPE
const (
	EfiResetCold = iota
	EfiResetWarm
	EfiResetShutdown
	EfiResetPlatformSpecific
)

// ResetSystem calls EFI_RUNTIME_SERVICES.ResetSystem(), the optional reason
// is passed to firmware as reset data.
func (s *RuntimeServices) ResetSystem(resetType int, reason string) (err error) {
	var data []byte
	var dataPtr uint64

	if len(reason) > 0 {
		data = toUTF16(reason)
		dataPtr = ptrval(&data[0])
	}

	status := callService(s.base+resetSystem,
		[]uint64{
			uint64(resetType),
			EFI_SUCCESS,
			uint64(len(data)),
			dataPtr,
		},
	)

	return parseStatus(status)
}
