// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package driver implements a UEFI style driver model, where drivers bind to
// controller handles through Supported, Start and Stop operations, along
// with two demo drivers.
package driver

import (
	"errors"
	"strings"
)

// LanguageEnglish is the only language supported by component names.
const LanguageEnglish = "en-US"

// Errors
var (
	ErrUnsupported      = errors.New("unsupported")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrAlreadyStarted   = errors.New("already started")
	ErrNotStarted       = errors.New("not started")
	ErrNotFound         = errors.New("not found")
)

// Handle represents a firmware controller handle.
type Handle uint64

// Binding represents the driver binding operations on a controller.
type Binding interface {
	// Supported tests whether the driver supports the controller.
	Supported(controller Handle) error
	// Start binds the driver to the controller.
	Start(controller Handle) error
	// Stop unbinds the driver from the controller.
	Stop(controller Handle) error
	// Version returns the driver version.
	Version() uint32
}

// ComponentName represents the driver user readable names.
type ComponentName interface {
	// DriverName returns the driver name in the argument language.
	DriverName(language string) (string, error)
	// ControllerName returns the name of a controller managed by the
	// driver in the argument language.
	ControllerName(controller Handle, child Handle, language string) (string, error)
}

// Driver represents a driver exposing binding and component name
// operations.
type Driver interface {
	Binding
	ComponentName
}

// Names implements ComponentName for drivers with fixed English names.
type Names struct {
	Driver     string
	Controller string
}

func checkLanguage(language string) error {
	if len(language) == 0 {
		return ErrInvalidParameter
	}

	if !strings.EqualFold(language, LanguageEnglish) {
		return ErrUnsupported
	}

	return nil
}

// DriverName returns the driver name, only LanguageEnglish is supported.
func (n *Names) DriverName(language string) (string, error) {
	if err := checkLanguage(language); err != nil {
		return "", err
	}

	return n.Driver, nil
}

// ControllerName returns the controller name, only LanguageEnglish is
// supported.
func (n *Names) ControllerName(controller Handle, _ Handle, language string) (string, error) {
	if controller == 0 {
		return "", ErrInvalidParameter
	}

	if err := checkLanguage(language); err != nil {
		return "", err
	}

	return n.Controller, nil
}
