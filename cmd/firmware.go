// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"time"

	"github.com/sammodule/sam-boot/uefi/x64"
)

// firmware exposes the boot services stall and the runtime services clock,
// it implements hello.Firmware and delay.Firmware.
type firmware struct{}

func (firmware) Stall(d time.Duration) error {
	return x64.UEFI.Boot.Stall(d)
}

func (firmware) Now() (time.Time, error) {
	t, err := x64.UEFI.Runtime.GetTime()

	if err != nil {
		return time.Time{}, err
	}

	return t.Time(), nil
}
