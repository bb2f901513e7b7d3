// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package driver

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sammodule/sam-boot/color"
)

// CyclicVersion is the cyclic drawing driver version.
const CyclicVersion = 0x10

// RefreshInterval is the cyclic drawing timer period.
const RefreshInterval = 5 * time.Second

// TextOutput represents a Simple Text Output protocol instance.
type TextOutput interface {
	SetAttribute(attr int) error
}

// Platform represents the firmware services required by the cyclic drawing
// driver.
type Platform interface {
	// ConsoleOut returns the console output device handle.
	ConsoleOut() Handle
	// TextOutput returns the Simple Text Output protocol of a handle.
	TextOutput(h Handle) (TextOutput, error)
	// Display locates the graphics output device.
	Display() (Display, error)
	// Now returns the firmware clock reading.
	Now() (time.Time, error)
}

// Cyclic is a driver which binds to the console output device and
// periodically alternates an orange and a black circle at the center of the
// screen.
type Cyclic struct {
	Names

	// Platform provides the firmware services
	Platform Platform
	// Output receives the driver messages
	Output io.Writer
	// Interval overrides RefreshInterval when set
	Interval time.Duration

	mu         sync.Mutex
	controller Handle
	count      int
	last       int
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewCyclic returns a cyclic drawing driver instance.
func NewCyclic(p Platform, w io.Writer) *Cyclic {
	return &Cyclic{
		Names: Names{
			Driver:     "Cyclic Drawing Driver",
			Controller: "Console Output Device",
		},
		Platform: p,
		Output:   w,
	}
}

func (d *Cyclic) printf(format string, a ...any) {
	fmt.Fprintf(d.Output, "[CyclicDrawingDriver] "+format+"\n", a...)
}

// Supported accepts only the console output device exposing the Simple Text
// Output protocol.
func (d *Cyclic) Supported(controller Handle) error {
	if controller != d.Platform.ConsoleOut() {
		return ErrUnsupported
	}

	if _, err := d.Platform.TextOutput(controller); err != nil {
		return ErrUnsupported
	}

	d.printf("Supported: ControllerHandle = %#x, console output device with Simple Text Output", uint64(controller))

	return nil
}

// Start sets the console text color to yellow and starts the drawing timer.
func (d *Cyclic) Start(controller Handle) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return ErrAlreadyStarted
	}

	out, err := d.Platform.TextOutput(controller)

	if err != nil {
		return fmt.Errorf("could not get text output, %v", err)
	}

	if err = out.SetAttribute(color.Attr(color.Yellow, color.Black)); err != nil {
		return fmt.Errorf("could not set text color, %v", err)
	}

	interval := d.Interval

	if interval <= 0 {
		interval = RefreshInterval
	}

	ctx, cancel := context.WithCancel(context.Background())

	d.controller = controller
	d.cancel = cancel
	d.done = make(chan struct{})
	d.last = -1

	go d.run(ctx, interval, d.done)

	d.printf("driver loaded and text color changed to yellow")

	return
}

func (d *Cyclic) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.Refresh(); err != nil {
				d.printf("%v", err)
			}
		}
	}
}

// Refresh draws the next circle when the clock second changed since the
// last successful drawing, circles alternate between orange and black.
func (d *Cyclic) Refresh() (err error) {
	now, err := d.Platform.Now()

	if err != nil {
		return fmt.Errorf("could not get time, %v", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if now.Second() == d.last {
		return
	}

	c := Orange

	if d.count%2 != 0 {
		c = Black
	}

	d.count++

	display, err := d.Platform.Display()

	if err != nil {
		return fmt.Errorf("graphics output not available, %v", err)
	}

	if err = DrawCircle(display, c); err != nil {
		return fmt.Errorf("could not draw circle, %v", err)
	}

	d.last = now.Second()

	return
}

// Stop restores the console text color and cancels the drawing timer.
func (d *Cyclic) Stop(controller Handle) (err error) {
	d.mu.Lock()
	cancel, done, bound := d.cancel, d.done, d.controller
	d.mu.Unlock()

	d.printf("Stop: ControllerHandle = %#x", uint64(controller))

	if cancel == nil {
		return ErrNotStarted
	}

	if controller != bound {
		return fmt.Errorf("controller %#x, %w", uint64(controller), ErrNotStarted)
	}

	out, err := d.Platform.TextOutput(bound)

	if err != nil {
		return fmt.Errorf("could not get text output, %v", err)
	}

	if err = out.SetAttribute(color.Attr(color.LightGray, color.Black)); err != nil {
		return fmt.Errorf("could not recover text color, %v", err)
	}

	cancel()
	<-done

	d.mu.Lock()
	d.cancel, d.done = nil, nil
	d.mu.Unlock()

	d.printf("driver successfully stopped")

	return
}

// Version returns CyclicVersion.
func (d *Cyclic) Version() uint32 {
	return CyclicVersion
}

// Count returns the number of circle drawing attempts.
func (d *Cyclic) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.count
}
