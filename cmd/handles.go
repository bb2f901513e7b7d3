// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"

	"github.com/sammodule/sam-boot/shell"
	"github.com/sammodule/sam-boot/uefi"
	"github.com/sammodule/sam-boot/uefi/x64"
)

// maxVariables bounds variable enumeration on firmware looping over names
const maxVariables = 4096

func init() {
	shell.Add(shell.Cmd{
		Name:    "handles",
		Args:    1,
		Pattern: regexp.MustCompile(`^handles(?: ([[:xdigit:]]{8}-[[:xdigit:]]{4}-[[:xdigit:]]{4}-[[:xdigit:]]{4}-[[:xdigit:]]{12}))?$`),
		Syntax:  "(registry format GUID)?",
		Help:    "EFI_BOOT_SERVICES.LocateHandle() with device paths",
		Fn:      handlesCmd,
	})

	shell.Add(shell.Cmd{
		Name: "vars",
		Help: "EFI_RUNTIME_SERVICES.GetNextVariableName()",
		Fn:   varsCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "free",
		Args:    2,
		Pattern: regexp.MustCompile(`^free ([[:xdigit:]]+) (\d+)$`),
		Syntax:  "<hex offset> <size>",
		Help:    "EFI_BOOT_SERVICES.FreePages()",
		Fn:      freeCmd,
	})

	shell.Add(shell.Cmd{
		Name: "clear",
		Help: "clear screen",
		Fn:   clearCmd,
	})
}

func handlesCmd(_ *shell.Interface, arg []string) (res string, err error) {
	var buf bytes.Buffer
	var handles []uint64

	if len(arg[0]) > 0 {
		var guid uefi.GUID

		if guid, err = uefi.ParseGUID(arg[0]); err != nil {
			return
		}

		handles, err = x64.UEFI.Boot.LocateHandle(guid)
	} else {
		handles, err = x64.UEFI.Boot.Handles()
	}

	if err != nil {
		return
	}

	for _, h := range handles {
		fmt.Fprintf(&buf, "%#016x", h)

		if path, err := x64.UEFI.Boot.DevicePath(h); err == nil {
			fmt.Fprintf(&buf, " %s", uefi.FormatDevicePath(path))
		}

		fmt.Fprintln(&buf)
	}

	return buf.String(), nil
}

func varsCmd(_ *shell.Interface, _ []string) (res string, err error) {
	var buf bytes.Buffer
	var name string
	var guid uefi.GUID

	for i := 0; i < maxVariables; i++ {
		if err = x64.UEFI.Runtime.GetNextVariableName(&name, &guid); err != nil {
			break
		}

		attr, size, _, err := x64.UEFI.Runtime.GetVariable(name, guid, false)

		if err != nil {
			fmt.Fprintf(&buf, "%s %s (%v)\n", guid, name, err)
			continue
		}

		fmt.Fprintf(&buf, "%s %s attr:%#02x size:%d\n", guid, name, attr.Bits(), size)
	}

	if errors.Is(err, uefi.ErrEfiNotFound) {
		err = nil
	}

	return buf.String(), err
}

func freeCmd(_ *shell.Interface, arg []string) (res string, err error) {
	addr, err := strconv.ParseUint(arg[0], 16, 64)

	if err != nil {
		return "", fmt.Errorf("invalid address, %v", err)
	}

	size, err := strconv.Atoi(arg[1])

	if err != nil {
		return "", fmt.Errorf("invalid size, %v", err)
	}

	log.Printf("freeing memory range %#08x - %#08x", addr, addr+uint64(size))

	return "", x64.UEFI.Boot.FreePages(addr, size)
}

func clearCmd(_ *shell.Interface, _ []string) (res string, err error) {
	c := x64.UEFI.Console

	if err = c.ClearScreen(); err != nil {
		return
	}

	if err = c.SetCursorPosition(0, 0); err != nil {
		return
	}

	return "", c.EnableCursor(true)
}
