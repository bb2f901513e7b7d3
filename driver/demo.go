// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package driver

import (
	"fmt"
	"io"
)

// DemoVersion is the demo driver version.
const DemoVersion = 0x10

// Demo is a driver which supports every controller and only reports its
// binding operations.
type Demo struct {
	Names

	// Output receives the operation reports
	Output io.Writer
}

// NewDemo returns a demo driver instance.
func NewDemo(w io.Writer) *Demo {
	return &Demo{
		Names: Names{
			Driver:     "UEFI Demo Driver",
			Controller: "UEFI Demo Controller",
		},
		Output: w,
	}
}

func (d *Demo) report(op string, controller Handle) {
	fmt.Fprintf(d.Output, "[DemoDriver] %s: ControllerHandle = %#x\n", op, uint64(controller))
}

// Supported reports the call and accepts any controller.
func (d *Demo) Supported(controller Handle) error {
	d.report("Supported", controller)
	return nil
}

// Start reports the call.
func (d *Demo) Start(controller Handle) error {
	d.report("Start", controller)
	return nil
}

// Stop reports the call.
func (d *Demo) Stop(controller Handle) error {
	d.report("Stop", controller)
	fmt.Fprintln(d.Output, "[DemoDriver] driver successfully stopped")
	return nil
}

// Version returns DemoVersion.
func (d *Demo) Version() uint32 {
	return DemoVersion
}
