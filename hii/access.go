// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package hii

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"unicode/utf16"
)

// Store represents the option data persistent storage, Load must return an
// error wrapping ErrNotFound when no data has been saved yet.
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// Value represents a question value passed to a form callback.
type Value struct {
	Number uint64
	String string
}

// ConfigAccess implements configuration access for the option form variable
// store, through HII configuration strings or form callbacks.
type ConfigAccess struct {
	// GUID is the variable store GUID
	GUID [16]byte
	// Name is the variable store name
	Name string
	// Path is the binary device path of the form driver handle
	Path []byte
	// Store is the persistent variable storage
	Store Store

	mu   sync.Mutex
	data OptionData
}

// Header returns the configuration string header of the variable store.
func (c *ConfigAccess) Header() string {
	return ConfigHeader(c.GUID, c.Name, c.Path)
}

// Load reads the option data from the store, defaults are saved when the
// store is empty.
func (c *ConfigAccess) Load() (err error) {
	var d OptionData

	c.mu.Lock()
	defer c.mu.Unlock()

	buf, err := c.Store.Load()

	if errors.Is(err, ErrNotFound) {
		c.data = Defaults()
		return c.save(c.data)
	}

	if err != nil {
		return
	}

	if err = d.UnmarshalBinary(buf); err != nil {
		return
	}

	c.data = d

	return
}

func (c *ConfigAccess) save(d OptionData) (err error) {
	buf, err := d.MarshalBinary()

	if err != nil {
		return
	}

	if err = c.Store.Save(buf); err != nil {
		return fmt.Errorf("could not save option data, %v", err)
	}

	c.data = d

	return
}

// Data returns a copy of the current option data.
func (c *ConfigAccess) Data() OptionData {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.data
}

// Save validates and persists the argument option data.
func (c *ConfigAccess) Save(d OptionData) (err error) {
	if err = d.Validate(); err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.save(d)
}

func (c *ConfigAccess) matchHeader(pairs []pair) (rest []pair, err error) {
	if len(pairs) < 2 || pairs[0].key != "GUID" || pairs[1].key != "NAME" {
		return nil, fmt.Errorf("invalid configuration header, %w", ErrInvalidParameter)
	}

	if !strings.EqualFold(pairs[0].value, hex.EncodeToString(c.GUID[:])) {
		return nil, ErrNotFound
	}

	var name strings.Builder

	for _, ch := range utf16.Encode([]rune(c.Name)) {
		fmt.Fprintf(&name, "%04x", ch)
	}

	if !strings.EqualFold(pairs[1].value, name.String()) {
		return nil, ErrNotFound
	}

	rest = pairs[2:]

	if len(rest) > 0 && rest[0].key == "PATH" {
		if !strings.EqualFold(rest[0].value, hex.EncodeToString(c.Path)) {
			return nil, ErrNotFound
		}

		rest = rest[1:]
	}

	return
}

// ExtractConfig returns the configuration response for the argument request
// string. A request without block elements returns the whole variable store.
//
// The returned progress is the request offset where processing stopped, it
// points at the request start when the request targets another storage.
func (c *ConfigAccess) ExtractConfig(request string) (progress int, results string, err error) {
	if len(request) == 0 {
		return 0, "", ErrInvalidParameter
	}

	rest, err := c.matchHeader(tokenize(request))

	if err != nil {
		return
	}

	elements, progress, err := parseElements(rest, false)

	if err != nil {
		return
	}

	if len(elements) == 0 {
		elements = append(elements, &Element{Offset: 0, Width: DataSize})
	}

	c.mu.Lock()
	buf, err := c.data.MarshalBinary()
	c.mu.Unlock()

	if err != nil {
		return 0, "", err
	}

	var sb strings.Builder

	sb.WriteString(c.Header())

	for _, e := range elements {
		fmt.Fprintf(&sb, "&OFFSET=%x&WIDTH=%x&VALUE=%s",
			e.Offset, e.Width, EncodeValue(buf[e.Offset:e.Offset+e.Width]))
	}

	return len(request), sb.String(), nil
}

// RouteConfig applies the argument configuration string to the variable
// store and persists the result.
//
// The returned progress is the configuration offset where processing
// stopped, it points at the configuration start when the configuration
// targets another storage.
func (c *ConfigAccess) RouteConfig(config string) (progress int, err error) {
	var d OptionData

	if len(config) == 0 {
		return 0, ErrInvalidParameter
	}

	rest, err := c.matchHeader(tokenize(config))

	if err != nil {
		return
	}

	elements, progress, err := parseElements(rest, true)

	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	buf, err := c.data.MarshalBinary()

	if err != nil {
		return 0, err
	}

	for _, e := range elements {
		copy(buf[e.Offset:], e.Value)
	}

	if err = d.UnmarshalBinary(buf); err != nil {
		return 0, err
	}

	if err = d.Validate(); err != nil {
		return 0, err
	}

	if err = c.save(d); err != nil {
		return 0, err
	}

	return len(config), nil
}

// Callback handles a form browser action on a question, changed values of
// known questions are applied to the current data while the action question
// saves it.
func (c *ConfigAccess) Callback(action BrowserAction, id QuestionID, value Value) (req ActionRequest, err error) {
	log.Printf("option callback: Action = %#x, QuestionId = %#x", uint(action), uint16(id))

	if action != ActionChanged {
		return RequestNone, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	d := c.data

	switch id {
	case KeyCheckBox:
		d.CheckBox = value.Number != 0
	case KeyString:
		d.String = value.String
	case KeyOneOf:
		if value.Number >= uint64(len(OneOfOptions)) {
			return RequestNone, fmt.Errorf("one-of value %d out of range, %w", value.Number, ErrInvalidParameter)
		}

		d.OneOf = uint8(value.Number)
	case KeyNumeric:
		if value.Number > NumericMax {
			return RequestNone, fmt.Errorf("numeric value %d out of range, %w", value.Number, ErrInvalidParameter)
		}

		d.Numeric = uint16(value.Number)
	case KeyPassword:
		d.Password = value.String
	case KeyAction:
		return RequestSubmit, c.save(d)
	default:
		return RequestNone, nil
	}

	if err = d.Validate(); err != nil {
		return
	}

	c.data = d

	return RequestNone, nil
}
