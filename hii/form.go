// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package hii

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// QuestionType represents a form question kind.
type QuestionType int

// Question kinds
const (
	CheckBox QuestionType = iota
	String
	OneOf
	Numeric
	Action
	Password
)

// Question represents a form question.
type Question struct {
	ID     QuestionID
	Type   QuestionType
	Name   string
	Prompt string
	Help   string
}

// Questions represents the option form questions in display order.
var Questions = []*Question{
	{KeyCheckBox, CheckBox, "checkbox", "Sam CheckBox", "enable or disable the option"},
	{KeyString, String, "string", "Sam String", fmt.Sprintf("up to %d characters", StringSize)},
	{KeyOneOf, OneOf, "oneof", "Sam OneOf", strings.Join(OneOfOptions, ", ")},
	{KeyNumeric, Numeric, "numeric", "Sam Numeric", fmt.Sprintf("%d-%d", NumericMin, NumericMax)},
	{KeyAction, Action, "save", "Save Settings", "store the option data"},
	{KeyPassword, Password, "password", "Sam Password", fmt.Sprintf("up to %d characters", StringSize)},
}

// LookupQuestion returns the question matching the argument name or
// hexadecimal identifier.
func LookupQuestion(s string) (*Question, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 16)

	for _, q := range Questions {
		if strings.EqualFold(q.Name, s) || (err == nil && QuestionID(id) == q.ID) {
			return q, nil
		}
	}

	return nil, fmt.Errorf("question %q, %w", s, ErrNotFound)
}

// ParseValue converts the argument text to a question value.
func (q *Question) ParseValue(s string) (v Value, err error) {
	switch q.Type {
	case CheckBox:
		b, err := strconv.ParseBool(s)

		if err != nil {
			return v, fmt.Errorf("invalid checkbox value %q, %w", s, ErrInvalidParameter)
		}

		if b {
			v.Number = 1
		}
	case OneOf:
		for i, o := range OneOfOptions {
			if strings.EqualFold(o, s) {
				v.Number = uint64(i)
				return
			}
		}

		if v.Number, err = strconv.ParseUint(s, 0, 8); err != nil {
			return v, fmt.Errorf("invalid one-of value %q, %w", s, ErrInvalidParameter)
		}
	case Numeric:
		if v.Number, err = strconv.ParseUint(s, 0, 16); err != nil {
			return v, fmt.Errorf("invalid numeric value %q, %w", s, ErrInvalidParameter)
		}
	case String, Password:
		v.String = s
	}

	return
}

func (q *Question) display(d OptionData) string {
	switch q.Type {
	case CheckBox:
		if d.CheckBox {
			return "[X]"
		}
		return "[ ]"
	case String:
		return d.String
	case OneOf:
		if int(d.OneOf) < len(OneOfOptions) {
			return "<" + OneOfOptions[d.OneOf] + ">"
		}
		return fmt.Sprintf("<%d>", d.OneOf)
	case Numeric:
		return strconv.Itoa(int(d.Numeric))
	case Password:
		return strings.Repeat("*", len([]rune(d.Password)))
	}

	return ""
}

// Form represents the option form, its configuration access and its timer
// driven counters.
type Form struct {
	*ConfigAccess

	Title    string
	Counters []*Counter
}

// NewForm returns an option form for the argument store, the variable store
// GUID and device path identify its configuration strings.
func NewForm(guid [16]byte, path []byte, store Store) *Form {
	return &Form{
		ConfigAccess: &ConfigAccess{
			GUID:  guid,
			Name:  VariableName,
			Path:  path,
			Store: store,
		},
		Title: "Sam Option",
		Counters: []*Counter{
			{Name: "Counter 1s", Interval: 1 * time.Second},
			{Name: "Counter 2s", Interval: 2 * time.Second},
		},
	}
}

// Start starts all form counters.
func (f *Form) Start(ctx context.Context) {
	for _, c := range f.Counters {
		c.Start(ctx)
	}
}

// Stop stops all form counters.
func (f *Form) Stop() {
	for _, c := range f.Counters {
		c.Stop()
	}
}

// Set applies a change to the argument question through the form callback.
func (f *Form) Set(name string, text string) (req ActionRequest, err error) {
	q, err := LookupQuestion(name)

	if err != nil {
		return
	}

	v, err := q.ParseValue(text)

	if err != nil {
		return
	}

	if req, err = f.Callback(ActionChanging, q.ID, v); err != nil {
		return
	}

	return f.Callback(ActionChanged, q.ID, v)
}

// Render writes the form in text format.
func (f *Form) Render(w io.Writer) {
	d := f.Data()

	fmt.Fprintf(w, "%s (formset %s, form %#x)\n", f.Title, FormSetGUID, FormID)

	for _, q := range Questions {
		v := q.display(d)

		if q.Type == Action {
			v = "(" + q.Name + ")"
		}

		fmt.Fprintf(w, "  %#04x %-16s %s\n", uint16(q.ID), q.Prompt, v)
	}

	for _, c := range f.Counters {
		fmt.Fprintf(w, "         %-16s %s\n", c.Name, c.String())
	}
}
