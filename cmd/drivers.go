// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/sammodule/sam-boot/driver"
	"github.com/sammodule/sam-boot/shell"
	"github.com/sammodule/sam-boot/uefi"
	"github.com/sammodule/sam-boot/uefi/x64"
)

var (
	manager     = &driver.Manager{Source: handleSource{}}
	loadDrivers sync.Once
)

func init() {
	shell.Add(shell.Cmd{
		Name: "drivers",
		Help: "list loaded drivers",
		Fn:   driversCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "load",
		Args:    1,
		Pattern: regexp.MustCompile(`^load (demo|cyclic)$`),
		Syntax:  "<demo|cyclic>",
		Help:    "load driver",
		Fn:      loadCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "connect",
		Args:    1,
		Pattern: regexp.MustCompile(`^connect (\d+)$`),
		Syntax:  "<index>",
		Help:    "start driver on supported controllers",
		Fn:      connectCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "disconnect",
		Args:    1,
		Pattern: regexp.MustCompile(`^disconnect (\d+)$`),
		Syntax:  "<index>",
		Help:    "stop driver on all controllers",
		Fn:      disconnectCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "unload",
		Args:    1,
		Pattern: regexp.MustCompile(`^unload (\d+)$`),
		Syntax:  "<index>",
		Help:    "stop and unload driver",
		Fn:      unloadCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "draw",
		Args:    1,
		Pattern: regexp.MustCompile(`^draw(?: (orange|black))?$`),
		Syntax:  "(orange|black)?",
		Help:    "draw circle at screen center",
		Fn:      drawCmd,
	})
}

// handleSource enumerates the EFI handle database, it implements
// driver.HandleSource.
type handleSource struct{}

func (handleSource) Handles() (handles []driver.Handle, err error) {
	h, err := x64.UEFI.Boot.Handles()

	for _, handle := range h {
		handles = append(handles, driver.Handle(handle))
	}

	return
}

// platform exposes the console and graphics output services, it implements
// driver.Platform.
type platform struct{}

func (platform) ConsoleOut() driver.Handle {
	return driver.Handle(x64.UEFI.SystemTable.ConsoleOutHandle)
}

func (platform) TextOutput(h driver.Handle) (driver.TextOutput, error) {
	addr, err := x64.UEFI.Boot.HandleProtocol(uint64(h), uefi.EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL_GUID)

	if err != nil {
		return nil, err
	}

	return &uefi.Console{Out: addr}, nil
}

func (platform) Display() (driver.Display, error) {
	gop, err := x64.UEFI.Boot.GetGraphicsOutput()

	if err != nil {
		return nil, fmt.Errorf("could not locate graphics output, %v", err)
	}

	return &display{gop: gop}, nil
}

func (platform) Now() (time.Time, error) {
	return firmware{}.Now()
}

// display implements driver.Display over the EFI Graphics Output Protocol.
type display struct {
	gop *uefi.GraphicsOutput
}

func (d *display) Resolution() (width int, height int, err error) {
	pm, err := d.gop.GetMode()

	if err != nil {
		return
	}

	info, err := pm.GetInfo()

	if err != nil {
		return
	}

	return int(info.HorizontalResolution), int(info.VerticalResolution), nil
}

func (d *display) BltBufferToVideo(buf []driver.Pixel, width int, height int) error {
	return d.gop.Blt(driver.PixelBytes(buf), uefi.EfiBltBufferToVideo,
		0, 0, 0, 0, uint64(width), uint64(height), 0)
}

func newDriver(name string) driver.Driver {
	switch name {
	case "cyclic":
		return driver.NewCyclic(platform{}, x64.UEFI.Console)
	default:
		return driver.NewDemo(x64.UEFI.Console)
	}
}

func register() {
	loadDrivers.Do(func() {
		manager.Register(newDriver("demo"))
		manager.Register(newDriver("cyclic"))
	})
}

func parseIndex(s string) (int, error) {
	register()
	return strconv.Atoi(s)
}

func driversCmd(_ *shell.Interface, _ []string) (string, error) {
	var buf bytes.Buffer

	register()

	fmt.Fprintf(&buf, "Index Version Name                      Controllers\n")

	for _, d := range manager.Drivers() {
		fmt.Fprintf(&buf, "%5d %#7x %-25s", d.Index, d.Version, d.Name)

		for _, h := range d.Controllers {
			fmt.Fprintf(&buf, " %#x", uint64(h))
		}

		fmt.Fprintln(&buf)
	}

	return buf.String(), nil
}

func loadCmd(_ *shell.Interface, arg []string) (string, error) {
	register()
	index := manager.Register(newDriver(arg[0]))
	return fmt.Sprintf("driver loaded at index %d", index), nil
}

func connectCmd(_ *shell.Interface, arg []string) (string, error) {
	index, err := parseIndex(arg[0])

	if err != nil {
		return "", err
	}

	started, err := manager.Connect(index)

	if err != nil {
		return "", fmt.Errorf("could not connect driver, %v", err)
	}

	return fmt.Sprintf("driver started on %d controller(s)", len(started)), nil
}

func disconnectCmd(_ *shell.Interface, arg []string) (string, error) {
	index, err := parseIndex(arg[0])

	if err != nil {
		return "", err
	}

	if err = manager.Disconnect(index); err != nil {
		return "", fmt.Errorf("could not disconnect driver, %v", err)
	}

	return "", nil
}

func unloadCmd(_ *shell.Interface, arg []string) (string, error) {
	index, err := parseIndex(arg[0])

	if err != nil {
		return "", err
	}

	if err = manager.Unload(index); err != nil {
		return "", fmt.Errorf("could not unload driver, %v", err)
	}

	return "", nil
}

func drawCmd(_ *shell.Interface, arg []string) (string, error) {
	color := driver.Orange

	if arg[0] == "black" {
		color = driver.Black
	}

	d, err := platform{}.Display()

	if err != nil {
		return "", err
	}

	return "", driver.DrawCircle(d, color)
}
