// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package hii

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

// StringSize is the maximum number of UTF-16 characters of string and
// password questions.
const StringSize = 16

// Option data record layout
const (
	CheckBoxOffset = 0
	StringOffset   = 1
	OneOfOffset    = 33
	NumericOffset  = 34
	PasswordOffset = 36

	// DataSize is the size of the binary option record.
	DataSize = 68
)

// Numeric question range
const (
	NumericMin     = 0
	NumericMax     = 1000
	NumericStep    = 1
	NumericDefault = 100
)

// OneOfOptions represents the one-of question choices.
var OneOfOptions = []string{
	"Disabled",
	"Enabled",
	"Auto",
}

// record represents the packed variable layout.
type record struct {
	CheckBox bool
	String   [StringSize]uint16
	OneOf    uint8
	Numeric  uint16
	Password [StringSize]uint16
}

// OptionData represents the option form variable store.
type OptionData struct {
	CheckBox bool
	String   string
	OneOf    uint8
	Numeric  uint16
	Password string
}

// Defaults returns the option data defaults.
func Defaults() OptionData {
	return OptionData{
		String:  "SamModule",
		OneOf:   1,
		Numeric: NumericDefault,
	}
}

func encodeString(s string) (buf [StringSize]uint16, err error) {
	u := utf16.Encode([]rune(s))

	if len(u) > StringSize {
		return buf, fmt.Errorf("string exceeds %d characters, %w", StringSize, ErrInvalidParameter)
	}

	copy(buf[:], u)

	return
}

func decodeString(buf [StringSize]uint16) string {
	n := 0

	for n < len(buf) && buf[n] != 0 {
		n++
	}

	return string(utf16.Decode(buf[:n]))
}

// Validate verifies that the option data fits the form question ranges.
func (d *OptionData) Validate() (err error) {
	if int(d.OneOf) >= len(OneOfOptions) {
		return fmt.Errorf("one-of value %d out of range, %w", d.OneOf, ErrInvalidParameter)
	}

	if d.Numeric > NumericMax {
		return fmt.Errorf("numeric value %d out of range, %w", d.Numeric, ErrInvalidParameter)
	}

	if _, err = encodeString(d.String); err != nil {
		return
	}

	_, err = encodeString(d.Password)

	return
}

// MarshalBinary encodes the option data in its variable format.
func (d *OptionData) MarshalBinary() (buf []byte, err error) {
	r := record{
		CheckBox: d.CheckBox,
		OneOf:    d.OneOf,
		Numeric:  d.Numeric,
	}

	if r.String, err = encodeString(d.String); err != nil {
		return
	}

	if r.Password, err = encodeString(d.Password); err != nil {
		return
	}

	b := new(bytes.Buffer)
	err = binary.Write(b, binary.LittleEndian, &r)

	return b.Bytes(), err
}

// UnmarshalBinary decodes the option data from its variable format.
func (d *OptionData) UnmarshalBinary(buf []byte) (err error) {
	var r record

	if len(buf) < DataSize {
		return fmt.Errorf("invalid option data size %d, %w", len(buf), ErrInvalidParameter)
	}

	if err = binary.Read(bytes.NewReader(buf), binary.LittleEndian, &r); err != nil {
		return
	}

	d.CheckBox = r.CheckBox
	d.String = decodeString(r.String)
	d.OneOf = r.OneOf
	d.Numeric = r.Numeric
	d.Password = decodeString(r.Password)

	return
}
