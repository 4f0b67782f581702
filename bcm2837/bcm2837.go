// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package bcm2837 provides polling drivers for a subset of the Broadcom
// BCM2837 System-on-Chip peripherals (Raspberry Pi 3), following the
// reference documentation at:
//
//	https://datasheets.raspberrypi.com/bcm2835/bcm2835-peripherals.pdf
//
// The drivers only access hardware through the reg.Accessor interface, the
// peripheral instances declared in this package map the physical register
// blocks and are meant to be used with `GOOS=tamago` as supported by the
// TamaGo framework for bare metal Go, see https://github.com/usbarmory/tamago.
package bcm2837

import (
	"github.com/usbarmory/pi-console/reg"
)

// Peripheral registers
const (
	// Peripheral base address as seen by the ARM core
	IO_BASE = 0x3f000000

	// System Timer
	TIMER_BASE = IO_BASE + 0x3000
	TIMER_SIZE = 0x1c

	// General Purpose I/O
	GPIO_BASE = IO_BASE + 0x200000
	GPIO_SIZE = 0xb4

	// Auxiliary peripherals (mini UART, SPI1, SPI2)
	AUX_BASE = IO_BASE + 0x215000
	AUX_SIZE = 0x6c
)

// Peripheral instances
var (
	// System Timer
	Timer0 = &Timer{
		Regs: reg.NewWindow(TIMER_BASE, TIMER_SIZE),
	}

	// GPIO controller
	GPIO0 = &GPIO{
		Regs: reg.NewWindow(GPIO_BASE, GPIO_SIZE),
	}

	// Mini UART (UART1)
	UART1 = &MiniUART{
		Regs:  reg.NewWindow(AUX_BASE, AUX_SIZE),
		GPIO:  GPIO0,
		Timer: Timer0,
	}
)

// CurrentTime returns the microseconds elapsed since power-on as counted by
// Timer0.
func CurrentTime() uint64 {
	return Timer0.CurrentTime()
}

// SpinSleepUS spins on Timer0 until us microseconds have passed.
func SpinSleepUS(us uint64) {
	Timer0.SpinSleepUS(us)
}

// SpinSleepMS spins on Timer0 until ms milliseconds have passed.
func SpinSleepMS(ms uint64) {
	Timer0.SpinSleepMS(ms)
}
