// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package hii

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// binary form of FormSetGUID
var testGUID = [16]byte{
	0xc4, 0xf8, 0x86, 0x60, 0x16, 0x3f, 0xa4, 0x47,
	0x92, 0xfe, 0x98, 0x2c, 0x8f, 0x78, 0xfc, 0x92,
}

var testPath = []byte{0x01, 0x04, 0x14, 0x00}

const testName = "00530061006d004f007000740069006f006e0044006100740061"

type testStore struct {
	data  []byte
	saves int
}

func (s *testStore) Load() ([]byte, error) {
	if s.data == nil {
		return nil, fmt.Errorf("variable %s, %w", VariableName, ErrNotFound)
	}

	return s.data, nil
}

func (s *testStore) Save(data []byte) error {
	s.data = append([]byte{}, data...)
	s.saves++
	return nil
}

func testForm(t *testing.T) (*Form, *testStore) {
	store := &testStore{}
	f := NewForm(testGUID, testPath, store)

	if err := f.Load(); err != nil {
		t.Fatal(err)
	}

	return f, store
}

func TestOptionData(t *testing.T) {
	d := OptionData{
		CheckBox: true,
		String:   "abc",
		OneOf:    2,
		Numeric:  0x1234,
		Password: "pw",
	}

	buf, err := d.MarshalBinary()

	if err != nil {
		t.Fatal(err)
	}

	if len(buf) != DataSize {
		t.Fatalf("unexpected size %d", len(buf))
	}

	if buf[CheckBoxOffset] != 1 || buf[StringOffset] != 'a' || buf[StringOffset+2] != 'b' ||
		buf[OneOfOffset] != 2 || buf[NumericOffset] != 0x34 || buf[PasswordOffset] != 'p' {
		t.Fatalf("unexpected layout % x", buf)
	}

	var r OptionData

	if err = r.UnmarshalBinary(buf); err != nil {
		t.Fatal(err)
	}

	if r != d {
		t.Fatalf("got %+v, want %+v", r, d)
	}

	if err = r.UnmarshalBinary(buf[:DataSize-1]); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}

	d.String = strings.Repeat("x", StringSize+1)

	if _, err = d.MarshalBinary(); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	f, store := testForm(t)

	if f.Data() != Defaults() {
		t.Fatalf("unexpected data %+v", f.Data())
	}

	if store.saves != 1 {
		t.Fatal("defaults not saved")
	}
}

func TestConfigHeader(t *testing.T) {
	want := "GUID=c4f88660163fa44792fe982c8f78fc92&NAME=" + testName + "&PATH=01041400"

	if h := ConfigHeader(testGUID, VariableName, testPath); h != want {
		t.Fatalf("got %s\nwant %s", h, want)
	}
}

func TestValue(t *testing.T) {
	if s := EncodeValue([]byte{0x34, 0x12}); s != "1234" {
		t.Fatalf("unexpected value %s", s)
	}

	buf, err := DecodeValue("1", 2)

	if err != nil || !bytes.Equal(buf, []byte{0x01, 0x00}) {
		t.Fatalf("unexpected value % x (%v)", buf, err)
	}

	if _, err = DecodeValue("123456", 2); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}
}

func TestExtractConfig(t *testing.T) {
	f, _ := testForm(t)
	hdr := f.Header()

	request := hdr + "&OFFSET=22&WIDTH=2&OFFSET=21&WIDTH=1"
	progress, results, err := f.ExtractConfig(request)

	if err != nil {
		t.Fatal(err)
	}

	if progress != len(request) {
		t.Fatalf("unexpected progress %d", progress)
	}

	want := hdr + "&OFFSET=22&WIDTH=2&VALUE=0064&OFFSET=21&WIDTH=1&VALUE=01"

	if results != want {
		t.Fatalf("got %s\nwant %s", results, want)
	}

	// whole variable store
	if _, results, err = f.ExtractConfig(hdr); err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(results, hdr+"&OFFSET=0&WIDTH=44&VALUE=") {
		t.Fatalf("unexpected results %s", results)
	}
}

func TestExtractConfigErrors(t *testing.T) {
	f, _ := testForm(t)

	if _, _, err := f.ExtractConfig(""); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}

	other := "GUID=00000000000000000000000000000000&NAME=" + testName + "&OFFSET=0&WIDTH=1"
	progress, _, err := f.ExtractConfig(other)

	if !errors.Is(err, ErrNotFound) || progress != 0 {
		t.Fatalf("expected not found at request start, got %v at %d", err, progress)
	}

	otherName := "GUID=c4f88660163fa44792fe982c8f78fc92&NAME=0041&OFFSET=0&WIDTH=1"

	if _, _, err = f.ExtractConfig(otherName); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	bounds := f.Header() + "&OFFSET=0&WIDTH=1&OFFSET=43&WIDTH=2"
	progress, _, err = f.ExtractConfig(bounds)

	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}

	if progress != strings.LastIndex(bounds, "OFFSET") {
		t.Fatalf("unexpected progress %d", progress)
	}
}

func TestRouteConfig(t *testing.T) {
	f, store := testForm(t)

	config := f.Header() + "&OFFSET=0&WIDTH=1&VALUE=1&OFFSET=22&WIDTH=2&VALUE=03e8"
	progress, err := f.RouteConfig(config)

	if err != nil {
		t.Fatal(err)
	}

	if progress != len(config) {
		t.Fatalf("unexpected progress %d", progress)
	}

	if d := f.Data(); !d.CheckBox || d.Numeric != 1000 {
		t.Fatalf("configuration not applied, %+v", d)
	}

	var saved OptionData

	if err = saved.UnmarshalBinary(store.data); err != nil || saved != f.Data() {
		t.Fatalf("configuration not persisted, %+v (%v)", saved, err)
	}

	// numeric out of range
	if _, err = f.RouteConfig(f.Header() + "&OFFSET=22&WIDTH=2&VALUE=03e9"); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}

	// missing value
	if _, err = f.RouteConfig(f.Header() + "&OFFSET=22&WIDTH=2"); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}

	if _, err = f.RouteConfig(""); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}

	if f.Data().Numeric != 1000 {
		t.Fatal("rejected configuration was applied")
	}
}

func TestRoundTrip(t *testing.T) {
	f, _ := testForm(t)

	if _, err := f.Set("string", "hello"); err != nil {
		t.Fatal(err)
	}

	_, results, err := f.ExtractConfig(f.Header())

	if err != nil {
		t.Fatal(err)
	}

	g, _ := testForm(t)

	if _, err = g.RouteConfig(results); err != nil {
		t.Fatal(err)
	}

	if g.Data() != f.Data() {
		t.Fatalf("got %+v, want %+v", g.Data(), f.Data())
	}
}

func TestCallback(t *testing.T) {
	f, store := testForm(t)

	for _, tc := range []struct {
		name string
		text string
	}{
		{"checkbox", "true"},
		{"0x1101", "sam"},
		{"oneof", "auto"},
		{"numeric", "42"},
		{"password", "secret"},
	} {
		if _, err := f.Set(tc.name, tc.text); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
	}

	want := OptionData{true, "sam", 2, 42, "secret"}

	if f.Data() != want {
		t.Fatalf("got %+v, want %+v", f.Data(), want)
	}

	saves := store.saves

	req, err := f.Set("save", "")

	if err != nil || req != RequestSubmit {
		t.Fatalf("unexpected request %d (%v)", req, err)
	}

	if store.saves != saves+1 {
		t.Fatal("action did not save")
	}

	if _, err = f.Set("oneof", "3"); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}

	if _, err = f.Set("nothing", "1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if req, err = f.Callback(ActionRetrieve, 0xffff, Value{}); err != nil || req != RequestNone {
		t.Fatalf("unexpected callback result %d (%v)", req, err)
	}
}

func TestCounter(t *testing.T) {
	c := &Counter{Name: "test", Max: 2}

	for _, want := range []uint64{1, 2, 0, 1} {
		c.Tick()

		if c.Value() != want {
			t.Fatalf("got %d, want %d", c.Value(), want)
		}
	}

	if c.String() != "1" {
		t.Fatalf("unexpected string %q", c.String())
	}

	m := &Counter{value: MaxCounterValue}
	m.Tick()

	if m.Value() != 0 {
		t.Fatal("counter did not wrap")
	}
}

func TestCounterTimer(t *testing.T) {
	c := &Counter{Interval: time.Millisecond}

	c.Start(context.Background())
	defer c.Stop()

	deadline := time.Now().Add(5 * time.Second)

	for c.Value() < 3 {
		if time.Now().After(deadline) {
			t.Fatal("counter not incremented")
		}

		time.Sleep(time.Millisecond)
	}

	c.Stop()

	if c.Running() {
		t.Fatal("counter still running")
	}

	v := c.Value()
	time.Sleep(10 * time.Millisecond)

	if c.Value() != v {
		t.Fatal("counter incremented after stop")
	}
}

func TestRender(t *testing.T) {
	f, _ := testForm(t)
	f.Counters[0].Tick()

	buf := &bytes.Buffer{}
	f.Render(buf)

	for _, s := range []string{
		"Sam Option (formset " + FormSetGUID,
		"0x1100 Sam CheckBox     [ ]",
		"0x1102 Sam OneOf        <Enabled>",
		"0x1104 Save Settings    (save)",
		"Counter 1s       1",
		"Counter 2s       0",
	} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("missing %q in:\n%s", s, buf.String())
		}
	}
}
