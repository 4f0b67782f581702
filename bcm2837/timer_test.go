// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package bcm2837_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbarmory/pi-console/bcm2837"
	"github.com/usbarmory/pi-console/internal/sim"
)

func TestCurrentTime(t *testing.T) {
	clock := sim.NewClock(0x0000_0012_3456_789a, 0)
	board := sim.NewBoard(clock, nil)

	assert.Equal(t, uint64(0x0000_0012_3456_789a), board.Timer.CurrentTime())

	clock.Advance(0x1_0000_0000)
	assert.Equal(t, uint64(0x0000_0013_3456_789a), board.Timer.CurrentTime())
}

func TestCurrentTimeMonotonic(t *testing.T) {
	board := sim.NewBoard(sim.NewClock(0xffff_fff0, 3), nil)

	prev := board.Timer.CurrentTime()

	for range 32 {
		now := board.Timer.CurrentTime()
		require.Greater(t, now, prev)
		prev = now
	}
}

func TestSpinSleepUS(t *testing.T) {
	for _, us := range []uint64{0, 1, 7, 1000, 123456} {
		clock := sim.NewClock(5000, 7)
		board := sim.NewBoard(clock, nil)

		start := clock.Now()
		board.Timer.SpinSleepUS(us)
		elapsed := clock.Now() - start

		assert.GreaterOrEqual(t, elapsed, us, "sleep %d us", us)
		assert.LessOrEqual(t, elapsed, us+3*clock.Step, "sleep %d us", us)
	}
}

func TestSpinSleepMS(t *testing.T) {
	for _, ms := range []uint64{0, 1, 1000} {
		clock := sim.NewClock(0, 997)
		board := sim.NewBoard(clock, nil)

		start := clock.Now()
		board.Timer.SpinSleepMS(ms)
		elapsed := clock.Now() - start

		assert.GreaterOrEqual(t, elapsed, ms*1000, "sleep %d ms", ms)
		assert.Less(t, elapsed, ms*1000+3*clock.Step, "sleep %d ms", ms)
	}
}

func TestSpinSleepWraparound(t *testing.T) {
	start := uint64(math.MaxUint64 - 50)
	clock := sim.NewClock(start, 4)
	board := sim.NewBoard(clock, nil)

	board.Timer.SpinSleepUS(100)

	now := clock.Now()
	// counter wrapped, 100 us past start modulo 2^64
	assert.Less(t, now, start)
	assert.GreaterOrEqual(t, now-start, uint64(100))
	assert.LessOrEqual(t, now-start, uint64(100+3*4))
}

func TestCompareMatch(t *testing.T) {
	clock := sim.NewClock(0, 10)
	board := sim.NewBoard(clock, nil)
	timer := board.Timer

	timer.SetCompare(1, 95)
	assert.Equal(t, uint32(95), timer.Compare(1))
	assert.False(t, timer.Matched(1))

	timer.SpinSleepUS(100)

	assert.True(t, timer.Matched(1))
	assert.False(t, timer.Matched(3))

	timer.ClearMatch(1)
	assert.False(t, timer.Matched(1))

	assert.Panics(t, func() { timer.Compare(bcm2837.TIMER_CHANNELS) })
}
