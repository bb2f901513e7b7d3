// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package color

import (
	"bytes"
	"fmt"
	"testing"
)

// testConsole records attribute changes interleaved with output.
type testConsole struct {
	bytes.Buffer
	attr int
}

func (c *testConsole) Attribute() (int, error) {
	return c.attr, nil
}

func (c *testConsole) SetAttribute(attr int) error {
	c.attr = attr
	fmt.Fprintf(&c.Buffer, "<%02x>", attr)
	return nil
}

func TestAttr(t *testing.T) {
	if a := Attr(Yellow, Blue); a != 0x1e {
		t.Fatalf("unexpected attribute %#x", a)
	}

	if a := Attr(White, White); a != 0x7f {
		t.Fatalf("background not masked, got %#x", a)
	}
}

func TestPrint(t *testing.T) {
	c := &testConsole{attr: Attr(LightGray, Black)}

	if err := Print(c, LightRed, Black, "error"); err != nil {
		t.Fatal(err)
	}

	if err := PrintNumber(c, Green, Black, 0xcafe); err != nil {
		t.Fatal(err)
	}

	if err := PrintBoth(c, Yellow, Blue, "id ", 0x10); err != nil {
		t.Fatal(err)
	}

	if want := "<0c>error<07><02>cafe<07><1e>id 10<07>"; c.String() != want {
		t.Fatalf("got %q, want %q", c.String(), want)
	}

	if c.attr != Attr(LightGray, Black) {
		t.Fatalf("attribute not restored, got %#x", c.attr)
	}
}

func TestParse(t *testing.T) {
	for i, name := range Names() {
		c, err := Parse(name)

		if err != nil || c != i {
			t.Fatalf("%s: got %d (%v)", name, c, err)
		}

		if Name(c) != name {
			t.Fatalf("%d: got %s", c, Name(c))
		}
	}

	if _, err := Parse("orange"); err == nil {
		t.Fatal("expected error")
	}
}
