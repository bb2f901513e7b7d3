// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package delay

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

// testFirmware advances its clock on each stall.
type testFirmware struct {
	now    time.Time
	stalls []time.Duration
	err    error
}

func (fw *testFirmware) Stall(d time.Duration) error {
	if fw.err != nil {
		return fw.err
	}

	fw.stalls = append(fw.stalls, d)
	fw.now = fw.now.Add(d)

	return nil
}

func (fw *testFirmware) Now() (time.Time, error) {
	return fw.now, nil
}

func TestUsage(t *testing.T) {
	for _, args := range [][]string{
		{"DelayTool.efi"},
		{"DelayTool.efi", "1", "2"},
	} {
		buf := &bytes.Buffer{}
		fw := &testFirmware{}

		if err := Run(buf, fw, args); err != nil {
			t.Fatal(err)
		}

		want := "Rule: DelayTool.efi + Seconds\nExample: DelayTool.efi 10\n"

		if buf.String() != want {
			t.Fatalf("got %q, want %q", buf.String(), want)
		}

		if len(fw.stalls) != 0 {
			t.Fatal("unexpected stall")
		}
	}
}

func TestParseSeconds(t *testing.T) {
	for _, tt := range []struct {
		arg  string
		want time.Duration
		err  bool
	}{
		{"10", 16 * time.Second, false},
		{"0x10", 16 * time.Second, false},
		{"0X0a", 10 * time.Second, false},
		{"ff", 255 * time.Second, false},
		{"123456789", 0x123456789 * time.Second, false},
		{"0x", 0, true},
		{"1x", 0, true},
		{"", 0, true},
		{"ffffffffffffffff", 0, true},
		{"10000000000000000", 0, true},
	} {
		d, err := ParseSeconds(tt.arg)

		if tt.err {
			if err == nil {
				t.Errorf("%q: expected error, got %v", tt.arg, d)
			}

			continue
		}

		if err != nil {
			t.Errorf("%q: %v", tt.arg, err)
			continue
		}

		if d != tt.want {
			t.Errorf("%q: got %v, want %v", tt.arg, d, tt.want)
		}
	}

	if _, err := ParseSeconds("ffffffffffff"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected out of range, got %v", err)
	}
}

func TestRun(t *testing.T) {
	buf := &bytes.Buffer{}
	fw := &testFirmware{
		now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	// hexadecimal argument
	if err := Run(buf, fw, []string{"delay", "10"}); err != nil {
		t.Fatal(err)
	}

	if len(fw.stalls) != 16 {
		t.Fatalf("expected 16 one second stalls, got %d", len(fw.stalls))
	}

	out := buf.String()

	if !strings.Contains(out, "] 100%\n") {
		t.Errorf("missing completed progress bar:\n%s", out)
	}

	if !strings.HasSuffix(out, "Total Time: 16s (12:00:00 - 12:00:16)\n") {
		t.Errorf("unexpected elapsed time:\n%s", out)
	}
}

func TestRunZero(t *testing.T) {
	buf := &bytes.Buffer{}
	fw := &testFirmware{}

	if err := Run(buf, fw, []string{"delay", "0"}); err != nil {
		t.Fatal(err)
	}

	if len(fw.stalls) != 0 || strings.Contains(buf.String(), "Progress") {
		t.Fatalf("unexpected stall for zero delay:\n%s", buf.String())
	}
}

func TestRunErrors(t *testing.T) {
	buf := &bytes.Buffer{}

	if err := Run(buf, &testFirmware{}, []string{"delay", "1x"}); err == nil {
		t.Fatal("expected parse error")
	}

	fw := &testFirmware{err: errors.New("device error")}

	if err := Run(buf, fw, []string{"delay", "2"}); err == nil {
		t.Fatal("expected stall error")
	}
}

func TestStallRemainder(t *testing.T) {
	buf := &bytes.Buffer{}
	fw := &testFirmware{}

	if err := Stall(buf, fw, 1500*time.Millisecond); err != nil {
		t.Fatal(err)
	}

	if len(fw.stalls) != 2 || fw.stalls[1] != 500*time.Millisecond {
		t.Fatalf("unexpected stalls %v", fw.stalls)
	}
}
