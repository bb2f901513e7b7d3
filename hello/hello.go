// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package hello implements the hello world application variants along with
// their demo libraries.
package hello

import (
	"fmt"
	"io"
	"time"
)

// StallTime is the delay between the library call and the clock reading.
const StallTime = 2000 * time.Microsecond

// Firmware represents the services required by the hello variants.
type Firmware interface {
	// Stall busy waits for the argument duration.
	Stall(d time.Duration) error
	// Now returns the firmware clock reading.
	Now() (time.Time, error)
}

// Variant represents an application entry point flavor.
type Variant int

// Entry point variants
const (
	UefiMain Variant = iota
	ShellAppMain
	StdlibMain
)

var variants = map[string]Variant{
	"uefi":   UefiMain,
	"shell":  ShellAppMain,
	"stdlib": StdlibMain,
}

// ParseVariant returns the entry point variant matching the argument name
// (uefi, shell or stdlib).
func ParseVariant(name string) (v Variant, err error) {
	v, ok := variants[name]

	if !ok {
		return 0, fmt.Errorf("invalid variant %q", name)
	}

	return
}

// String returns the prefix printed by the variant.
func (v Variant) String() string {
	switch v {
	case UefiMain:
		return "UefiMain"
	case ShellAppMain:
		return "ShellAppMain"
	case StdlibMain:
		return "Stdlib main"
	}

	return fmt.Sprintf("Variant(%d)", int(v))
}

// Run executes the hello application variant, library constructor and
// destructor messages bracket its output.
func Run(w io.Writer, v Variant, fw Firmware) (err error) {
	DemoLib.Construct(w)
	defer DemoLib.Destruct(w)

	fmt.Fprintf(w, "%s: Hello!\n", v)
	DemoLib.Call(w)

	if err = fw.Stall(StallTime); err != nil {
		return fmt.Errorf("could not stall, %v", err)
	}

	t, err := fw.Now()

	if err != nil {
		return fmt.Errorf("could not get time, %v", err)
	}

	fmt.Fprintf(w, "%s: Current Time: %d-%d-%d %02d:%02d:%02d\n", v,
		t.Year(), int(t.Month()), t.Day(),
		t.Hour(), t.Minute(), t.Second())

	fmt.Fprintf(w, "%s: Bye!\n", v)

	return
}

// RunCapsulation executes the capsulation application, which only relies on
// its own library.
func RunCapsulation(w io.Writer) {
	DemoCapsulationLib.Construct(w)
	defer DemoCapsulationLib.Destruct(w)

	DemoCapsulationLib.Call(w)
	fmt.Fprintln(w, "DemoCapsulationApp: Hello!")
}
