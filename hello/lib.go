// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package hello

import (
	"fmt"
	"io"
)

// Library represents a demo library, each hook only announces itself.
type Library struct {
	Constructor string
	Function    string
	Destructor  string
}

// Demo libraries
var (
	DemoLib = &Library{
		Constructor: "DemoLibConstructor",
		Function:    "LibFunction",
		Destructor:  "DemoLibDestructor",
	}

	DemoCapsulationLib = &Library{
		Constructor: "DemoCapsulationLibConstructor",
		Function:    "DemoCapsulationLibFunction",
		Destructor:  "DemoCapsulationLibDestructor",
	}
)

func called(w io.Writer, name string) {
	fmt.Fprintf(w, "%s() is called!\n", name)
}

// Construct runs the library constructor.
func (l *Library) Construct(w io.Writer) {
	called(w, l.Constructor)
}

// Call runs the library function.
func (l *Library) Call(w io.Writer) {
	called(w, l.Function)
}

// Destruct runs the library destructor.
func (l *Library) Destruct(w io.Writer) {
	called(w, l.Destructor)
}
