// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package sim emulates the BCM2837 register blocks used by the bcm2837
// drivers, allowing them to run on a hosted Go runtime.
//
// Each peripheral implements reg.Accessor and models the register side
// effects the drivers rely on (free running counter, status bits, FIFOs).
package sim

import (
	"io"

	"github.com/usbarmory/pi-console/bcm2837"
)

// Board represents a simulated BCM2837 with its drivers bound to emulated
// register blocks.
type Board struct {
	Clock *Clock

	TimerRegs *Timer
	GPIORegs  *GPIO
	AuxRegs   *Aux

	Timer *bcm2837.Timer
	GPIO  *bcm2837.GPIO
	UART  *bcm2837.MiniUART
}

// NewBoard returns a simulated board driven by clock, transmitted bytes are
// copied to out when not nil. The UART is not initialized.
func NewBoard(clock *Clock, out io.Writer) *Board {
	b := &Board{
		Clock:     clock,
		TimerRegs: &Timer{Clock: clock},
		GPIORegs:  &GPIO{},
		AuxRegs:   &Aux{Out: out},
	}

	b.Timer = &bcm2837.Timer{Regs: b.TimerRegs}
	b.GPIO = &bcm2837.GPIO{Regs: b.GPIORegs}
	b.UART = &bcm2837.MiniUART{
		Regs:  b.AuxRegs,
		GPIO:  b.GPIO,
		Timer: b.Timer,
	}

	return b
}
