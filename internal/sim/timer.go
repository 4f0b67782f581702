// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sim

import (
	"sync"
	"time"

	"github.com/usbarmory/pi-console/bcm2837"
)

// Clock represents a microsecond counter, either virtual or following the
// host wall clock.
type Clock struct {
	sync.Mutex

	// Step is the virtual time added after each read of the counter lower
	// half, it models the polling granularity of a spinning driver.
	Step uint64

	now   uint64
	wall  bool
	start time.Time
}

// NewClock returns a virtual clock starting at now which advances by step on
// each counter read.
func NewClock(now uint64, step uint64) *Clock {
	return &Clock{
		Step: step,
		now:  now,
	}
}

// NewWallClock returns a clock counting microseconds elapsed since its
// creation on the host.
func NewWallClock() *Clock {
	return &Clock{
		wall:  true,
		start: time.Now(),
	}
}

func (c *Clock) value() uint64 {
	if c.wall {
		return c.now + uint64(time.Since(c.start).Microseconds())
	}

	return c.now
}

// Now returns the current counter value.
func (c *Clock) Now() uint64 {
	c.Lock()
	defer c.Unlock()

	return c.value()
}

// Set moves the counter to us.
func (c *Clock) Set(us uint64) {
	c.Lock()
	defer c.Unlock()

	if c.wall {
		c.start = time.Now()
	}

	c.now = us
}

// Advance moves the counter forward by us.
func (c *Clock) Advance(us uint64) {
	c.Lock()
	defer c.Unlock()

	c.now += us
}

// latch returns the counter value and then applies the read step.
func (c *Clock) latch() uint64 {
	c.Lock()
	defer c.Unlock()

	v := c.value()
	c.now += c.Step

	return v
}

// Timer emulates the System Timer register block.
type Timer struct {
	sync.Mutex

	Clock *Clock

	cs      uint32
	compare [bcm2837.TIMER_CHANNELS]uint32
	last    uint32
}

func (t *Timer) match(lo uint32) {
	for n, cmp := range t.compare {
		if t.last < cmp && cmp <= lo {
			t.cs |= 1 << n
		}
	}

	t.last = lo
}

// Read implements reg.Accessor.
func (t *Timer) Read(off uint32) uint32 {
	t.Lock()
	defer t.Unlock()

	switch {
	case off == bcm2837.TIMER_CS:
		return t.cs
	case off == bcm2837.TIMER_CHI:
		return uint32(t.Clock.Now() >> 32)
	case off == bcm2837.TIMER_CLO:
		lo := uint32(t.Clock.latch())
		t.match(lo)
		return lo
	case off >= bcm2837.TIMER_C0 && off < bcm2837.TIMER_C0+bcm2837.TIMER_CHANNELS*4:
		return t.compare[(off-bcm2837.TIMER_C0)/4]
	}

	return 0
}

// Write implements reg.Accessor.
func (t *Timer) Write(off uint32, val uint32) {
	t.Lock()
	defer t.Unlock()

	switch {
	case off == bcm2837.TIMER_CS:
		t.cs &^= val
	case off >= bcm2837.TIMER_C0 && off < bcm2837.TIMER_C0+bcm2837.TIMER_CHANNELS*4:
		t.compare[(off-bcm2837.TIMER_C0)/4] = val
	}
}
