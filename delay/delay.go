// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package delay implements a command line tool which stalls execution for a
// number of seconds.
package delay

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hako/durafmt"

	"github.com/sammodule/sam-boot/bytefmt"
)

// Firmware represents the services required by the delay tool.
type Firmware interface {
	// Stall busy waits for the argument duration.
	Stall(d time.Duration) error
	// Now returns the firmware clock reading.
	Now() (time.Time, error)
}

// ErrOutOfRange is returned when the delay exceeds the clock range.
var ErrOutOfRange = errors.New("delay out of range")

// Usage writes the tool usage guide.
func Usage(w io.Writer, name string) {
	fmt.Fprintf(w, "Rule: %s + Seconds\n", name)
	fmt.Fprintf(w, "Example: %s 10\n", name)
}

// maxSeconds is the largest delay representable as a time.Duration
const maxSeconds = uint64(math.MaxInt64 / int64(time.Second))

// ParseSeconds converts the delay argument, expressed as a hexadecimal number
// of seconds with an optional 0x prefix, to a duration.
func ParseSeconds(s string) (d time.Duration, err error) {
	hex := s

	if len(hex) > 2 && strings.EqualFold(hex[:2], "0x") {
		hex = hex[2:]
	}

	n, err := strconv.ParseUint(hex, 16, 64)

	if err != nil {
		return 0, fmt.Errorf("invalid delay %q, %v", s, err)
	}

	if n > maxSeconds {
		return 0, fmt.Errorf("invalid delay %q, %w", s, ErrOutOfRange)
	}

	return time.Duration(n) * time.Second, nil
}

// Run executes the delay tool, the first argument is the tool name and the
// second one its hexadecimal delay in seconds. Wrong argument counts only
// print the usage guide.
func Run(w io.Writer, fw Firmware, args []string) (err error) {
	name := "delay"

	if len(args) > 0 {
		name = args[0]
	}

	if len(args) != 2 {
		Usage(w, name)
		return
	}

	d, err := ParseSeconds(args[1])

	if err != nil {
		return
	}

	start, err := fw.Now()

	if err != nil {
		return fmt.Errorf("could not get time, %v", err)
	}

	fmt.Fprintf(w, "delaying %s\n", durafmt.Parse(d))

	if err = Stall(w, fw, d); err != nil {
		return
	}

	end, err := fw.Now()

	if err != nil {
		return fmt.Errorf("could not get time, %v", err)
	}

	bytefmt.ElapsedTime(w, start, end)

	return
}

// Stall busy waits for the argument duration, one second at a time, updating
// a progress bar after each second.
func Stall(w io.Writer, fw Firmware, d time.Duration) (err error) {
	seconds := int64(d / time.Second)

	for i := int64(0); i < seconds; i++ {
		bytefmt.ProgressBar(w, int(i*100/seconds))

		if err = fw.Stall(time.Second); err != nil {
			fmt.Fprintln(w)
			return fmt.Errorf("could not stall, %v", err)
		}
	}

	if rem := d % time.Second; rem > 0 {
		if err = fw.Stall(rem); err != nil {
			return fmt.Errorf("could not stall, %v", err)
		}
	}

	if seconds > 0 {
		bytefmt.ProgressBar(w, 100)
		fmt.Fprintln(w)
	}

	return
}
