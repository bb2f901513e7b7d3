// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package hello

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

type testFirmware struct {
	stalled time.Duration
	now     time.Time
	err     error
}

func (fw *testFirmware) Stall(d time.Duration) error {
	fw.stalled += d
	return fw.err
}

func (fw *testFirmware) Now() (time.Time, error) {
	return fw.now, nil
}

func TestRun(t *testing.T) {
	fw := &testFirmware{
		now: time.Date(2024, 3, 7, 9, 5, 1, 0, time.UTC),
	}

	for _, tc := range []struct {
		name   string
		prefix string
	}{
		{"uefi", "UefiMain"},
		{"shell", "ShellAppMain"},
		{"stdlib", "Stdlib main"},
	} {
		buf := &bytes.Buffer{}

		v, err := ParseVariant(tc.name)

		if err != nil {
			t.Fatal(err)
		}

		if err = Run(buf, v, fw); err != nil {
			t.Fatal(err)
		}

		want := "DemoLibConstructor() is called!\n" +
			tc.prefix + ": Hello!\n" +
			"LibFunction() is called!\n" +
			tc.prefix + ": Current Time: 2024-3-7 09:05:01\n" +
			tc.prefix + ": Bye!\n" +
			"DemoLibDestructor() is called!\n"

		if buf.String() != want {
			t.Errorf("%s: got\n%s\nwant\n%s", tc.name, buf.String(), want)
		}
	}

	if fw.stalled != 3*StallTime {
		t.Fatalf("unexpected stall time %v", fw.stalled)
	}
}

func TestRunStallError(t *testing.T) {
	buf := &bytes.Buffer{}
	fw := &testFirmware{err: errors.New("device error")}

	if err := Run(buf, UefiMain, fw); err == nil {
		t.Fatal("expected error")
	}

	if !bytes.HasSuffix(buf.Bytes(), []byte("DemoLibDestructor() is called!\n")) {
		t.Fatalf("destructor not called:\n%s", buf.String())
	}
}

func TestRunCapsulation(t *testing.T) {
	buf := &bytes.Buffer{}

	RunCapsulation(buf)

	want := "DemoCapsulationLibConstructor() is called!\n" +
		"DemoCapsulationLibFunction() is called!\n" +
		"DemoCapsulationApp: Hello!\n" +
		"DemoCapsulationLibDestructor() is called!\n"

	if buf.String() != want {
		t.Fatalf("got\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestParseVariant(t *testing.T) {
	if _, err := ParseVariant("efi"); err == nil {
		t.Fatal("expected error")
	}
}
