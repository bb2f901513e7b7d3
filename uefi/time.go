// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"time"
)

// EFI Runtime Services offsets for Time Services
const (
	getTime = 0x18
	setTime = 0x20
)

// EFI_UNSPECIFIED_TIMEZONE
const UnspecifiedTimezone = 0x07ff

// Time represents an EFI Time instance.
type Time struct {
	Year       uint16
	Month      uint8
	Day        uint8
	Hour       uint8
	Minute     uint8
	Second     uint8
	_          uint8
	Nanosecond uint32
	TimeZone   int16
	Daylight   uint8
	_          uint8
}

// TimeCapabilities represents an EFI Time Capabilities instance.
type TimeCapabilities struct {
	Resolution uint32
	Accuracy   uint32
	SetsToZero uint8
}

// Time converts the EFI Time to a Go [time.Time], an unspecified timezone
// is treated as UTC.
func (t *Time) Time() time.Time {
	loc := time.UTC

	if t.TimeZone != UnspecifiedTimezone {
		loc = time.FixedZone("", -int(t.TimeZone)*60)
	}

	return time.Date(int(t.Year), time.Month(t.Month), int(t.Day),
		int(t.Hour), int(t.Minute), int(t.Second), int(t.Nanosecond), loc)
}

// GetTime calls EFI_RUNTIME_SERVICES.GetTime().
func (s *RuntimeServices) GetTime() (t *Time, err error) {
	t = &Time{}
	caps := &TimeCapabilities{}

	status := callService(s.base+getTime,
		[]uint64{
			ptrval(t),
			ptrval(caps),
		},
	)

	return t, parseStatus(status)
}

// SetTime calls EFI_RUNTIME_SERVICES.SetTime().
func (s *RuntimeServices) SetTime(tm time.Time) (err error) {
	t := &Time{
		Year:       uint16(tm.Year()),
		Month:      uint8(tm.Month()),
		Day:        uint8(tm.Day()),
		Hour:       uint8(tm.Hour()),
		Minute:     uint8(tm.Minute()),
		Second:     uint8(tm.Second()),
		Nanosecond: uint32(tm.Nanosecond()),
		TimeZone:   UnspecifiedTimezone,
	}

	status := callService(s.base+setTime,
		[]uint64{
			ptrval(t),
		},
	)

	return parseStatus(status)
}
