// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package hii

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
)

// MaxCounterValue is the default counter wrap limit.
const MaxCounterValue = math.MaxUint64

// Counter represents a periodic timer driven counter, its displayed string
// is reformatted on every tick.
type Counter struct {
	// Name is the counter prompt
	Name string
	// Interval is the timer period
	Interval time.Duration
	// Max is the value after which the counter wraps to zero, zero
	// selects MaxCounterValue.
	Max uint64

	mu     sync.Mutex
	value  uint64
	text   string
	cancel context.CancelFunc
	done   chan struct{}
}

// Tick increments the counter, wrapping to zero past its maximum value.
func (c *Counter) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	limit := c.Max

	if limit == 0 {
		limit = MaxCounterValue
	}

	if c.value >= limit {
		c.value = 0
	} else {
		c.value++
	}

	c.text = fmt.Sprintf("%d", c.value)
}

// Value returns the current counter value.
func (c *Counter) Value() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.value
}

// String returns the counter displayed string.
func (c *Counter) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.text == "" {
		return "0"
	}

	return c.text
}

// Start creates the counter periodic timer, the timer runs until Stop is
// called or the argument context is done.
func (c *Counter) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil || c.Interval <= 0 {
		return
	}

	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)

		ticker := time.NewTicker(c.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Tick()
			}
		}
	}(c.done)
}

// Stop cancels the counter timer and waits for it to exit.
func (c *Counter) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

// Running reports whether the counter timer is active.
func (c *Counter) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cancel != nil
}
