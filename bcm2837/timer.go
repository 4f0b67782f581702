// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package bcm2837

import (
	"github.com/usbarmory/pi-console/reg"
)

// System Timer registers
const (
	TIMER_CS  = 0x00
	TIMER_CLO = 0x04
	TIMER_CHI = 0x08
	TIMER_C0  = 0x0c

	// number of compare channels
	TIMER_CHANNELS = 4
)

// Timer represents the free running 64-bit microsecond System Timer.
//
// The driver holds no state besides its register binding, every operation
// reads the counter from hardware.
type Timer struct {
	// Regs is the System Timer register block
	Regs reg.Accessor
}

// CurrentTime returns the number of microseconds elapsed since power-on.
func (t *Timer) CurrentTime() uint64 {
	us := uint64(t.Regs.Read(TIMER_CHI)) << 32
	return us | uint64(t.Regs.Read(TIMER_CLO))
}

// SpinSleepUS spins until us microseconds have passed.
func (t *Timer) SpinSleepUS(us uint64) {
	start := t.CurrentTime()
	end := start + us

	if end < start {
		// wait for the counter to wrap around
		for t.CurrentTime() >= start {
		}
	}

	for t.CurrentTime() < end {
	}
}

// SpinSleepMS spins until ms milliseconds have passed.
func (t *Timer) SpinSleepMS(ms uint64) {
	t.SpinSleepUS(ms * 1000)
}

func checkChannel(n int) {
	if n < 0 || n >= TIMER_CHANNELS {
		panic("internal error, invalid timer channel")
	}
}

// Compare returns the value of compare channel n.
func (t *Timer) Compare(n int) uint32 {
	checkChannel(n)
	return t.Regs.Read(TIMER_C0 + uint32(n)*4)
}

// SetCompare sets compare channel n, the match status is raised when the lower
// 32 bits of the counter equal val.
func (t *Timer) SetCompare(n int, val uint32) {
	checkChannel(n)
	t.Regs.Write(TIMER_C0+uint32(n)*4, val)
}

// Matched returns whether compare channel n matched since its status was last
// cleared.
func (t *Timer) Matched(n int) bool {
	checkChannel(n)
	return reg.IsSet(t.Regs, TIMER_CS, n)
}

// ClearMatch clears the match status of compare channel n.
func (t *Timer) ClearMatch(n int) {
	checkChannel(n)
	// write 1 to clear
	t.Regs.Write(TIMER_CS, 1<<n)
}
