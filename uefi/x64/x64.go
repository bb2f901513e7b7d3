// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package x64 initializes, on import, the sam-boot firmware application
// environment on a single x86_64 core: CPU timer, serial port, EFI services
// and the runtime heap within UEFI memory.
//
// This package is only meant to be used with `GOOS=tamago` as
// supported by the TamaGo framework for bare metal Go, see
// https://github.com/usbarmory/tamago.
package x64

import (
	"fmt"
	"runtime/goos"
	_ "unsafe"

	"github.com/usbarmory/tamago/amd64"
	"github.com/usbarmory/tamago/soc/intel/rtc"
	"github.com/usbarmory/tamago/soc/intel/uart"

	"github.com/sammodule/sam-boot/uefi"
)

// Peripheral registers
const (
	// Keyboard controller port
	KBD_PORT = 0x64

	// Communication port
	COM1 = 0x3f8
)

// set in x64.s
var (
	imageHandle uint64
	systemTable uint64
	conIn       uint64
	conOut      uint64
)

// Peripheral instances
var (
	// AMD64 core
	AMD64 = &amd64.CPU{
		// required before Init()
		TimerMultiplier: 1,
	}

	// Real-Time Clock
	RTC = &rtc.RTC{}

	// Serial port
	UART0 = &uart.UART{
		Index: 1,
		Base:  COM1,
		DTR:   true,
		RTS:   true,
	}

	// UEFI services
	UEFI = &uefi.Services{}
)

//go:linkname nanotime runtime/goos.Nanotime
func nanotime() int64 {
	return AMD64.GetTime()
}

// Init takes care of the lower level initialization triggered early in runtime
// setup.
//
//go:linkname Init runtime/goos.Hwinit1
func Init() {
	// initialize CPU
	AMD64.Init()

	// disable CPU idle time management
	goos.Idle = nil

	// initialize serial console
	UART0.Init()
}

// initTime seeds the CPU timer from the CMOS RTC, falling back to the EFI
// runtime clock on platforms without legacy RTC access.
func initTime() {
	if t, err := RTC.Now(); err == nil {
		AMD64.SetTime(t.UnixNano())
		return
	}

	if t, err := UEFI.Runtime.GetTime(); err == nil {
		AMD64.SetTime(t.Time().UnixNano())
	}
}

func init() {
	Console.ClearScreen()

	print("initializing EFI services\n")

	if err := UEFI.Init(imageHandle, systemTable); err != nil {
		fmt.Printf("could not initialize EFI services, %v\n", err)
	}

	initTime()

	// the watchdog would reset the platform while the shell is idle
	if err := UEFI.Boot.SetWatchdogTimer(0); err != nil {
		fmt.Printf("could not disable watchdog, %v\n", err)
	}

	if err := allocateHeap(); err != nil {
		fmt.Printf("WARNING: %v\n", err)
	}
}
