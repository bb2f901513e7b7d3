// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package hii implements a Human Interface Infrastructure (HII) option form,
// its configuration access routines over HII configuration strings and a
// non-volatile variable backing store.
//
// The package does not depend on firmware services, storage is provided by
// the caller through the Store interface.
package hii

import (
	"errors"
)

// FormSetGUID is the option formset GUID in registry format, it is also used
// as variable store GUID and vendor device path GUID.
const FormSetGUID = "6086f8c4-3f16-47a4-92fe-982c8f78fc92"

// Option form identifiers
const (
	FormID        = 0x1000
	MaximumFormID = 0x10ff
	VarStoreID    = 0x2000
)

// VariableName is the name of the non-volatile variable holding the option
// data.
const VariableName = "SamOptionData"

// QuestionID represents a form question identifier.
type QuestionID uint16

// Question identifiers
const (
	KeyCheckBox QuestionID = 0x1100
	KeyString   QuestionID = 0x1101
	KeyOneOf    QuestionID = 0x1102
	KeyNumeric  QuestionID = 0x1103
	KeyAction   QuestionID = 0x1104
	KeyPassword QuestionID = 0x1105
)

// BrowserAction represents the form browser action triggering a callback.
type BrowserAction uint

// Browser actions
const (
	ActionChanging BrowserAction = iota
	ActionChanged
	ActionRetrieve
	ActionFormOpen
	ActionFormClose
	ActionSubmitted
)

// ActionRequest represents the action requested to the browser by a
// callback.
type ActionRequest uint

// Browser action requests
const (
	RequestNone ActionRequest = iota
	RequestReset
	RequestSubmit
	RequestExit
)

// Errors
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNotFound         = errors.New("not found")
	ErrUnsupported      = errors.New("unsupported")
)
