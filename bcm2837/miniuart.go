// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package bcm2837

import (
	"fmt"
	"os"
	"time"

	"github.com/usbarmory/pi-console/reg"
)

// Auxiliary peripherals registers
const (
	AUX_ENABLES = 0x04
	AUX_MU      = 0

	AUX_MU_IO_REG  = 0x40
	AUX_MU_IER_REG = 0x44
	AUX_MU_IIR_REG = 0x48

	AUX_MU_LCR_REG     = 0x4c
	LCR_DATA_SIZE_8BIT = 0b11

	AUX_MU_MCR_REG = 0x50

	AUX_MU_LSR_REG = 0x54
	LSR_TX_EMPTY   = 5
	LSR_DATA_READY = 0

	AUX_MU_MSR_REG = 0x58
	AUX_MU_SCRATCH = 0x5c

	AUX_MU_CNTL_REG = 0x60
	CNTL_TX_ENABLE  = 1
	CNTL_RX_ENABLE  = 0

	AUX_MU_STAT_REG = 0x64
	AUX_MU_BAUD_REG = 0x68
)

// Mini UART pins (TXD1/RXD1)
const (
	MU_TXD = 14
	MU_RXD = 15
)

const (
	// DefaultBaudrate is the mini UART default baud rate.
	DefaultBaudrate = 115200
	// SystemClock is the core clock feeding the mini UART baud rate
	// generator.
	SystemClock = 250000000
)

// ErrTimeout is returned when no byte is received within the configured read
// timeout.
var ErrTimeout = fmt.Errorf("timed out waiting for byte, %w", os.ErrDeadlineExceeded)

// MiniUART represents the auxiliary mini UART instance.
type MiniUART struct {
	// Regs is the auxiliary peripherals register block
	Regs reg.Accessor
	// GPIO is the controller for TXD/RXD line configuration
	GPIO *GPIO
	// Timer is the time source for read timeouts
	Timer *Timer

	// Baudrate is the line speed, DefaultBaudrate is used when zero
	Baudrate uint32

	// ForceLine controls whether line feeds (LF) written through Write
	// should be preceded by a carriage return (CR).
	ForceLine bool

	timeout    uint64
	hasTimeout bool
}

// Divisor returns the AUX_MU_BAUD_REG value for the argument baud rate.
func Divisor(baudrate uint32) uint32 {
	return SystemClock/(8*baudrate) - 1
}

// Init initializes and enables the mini UART for 8-bit polled operation.
//
// The peripheral is enabled in the auxiliary block before its pins are routed
// to alternate function 5, the line format and baud rate are then programmed
// and transmitter and receiver are enabled last.
func (hw *MiniUART) Init() {
	if hw.Baudrate == 0 {
		hw.Baudrate = DefaultBaudrate
	}

	reg.Set(hw.Regs, AUX_ENABLES, AUX_MU)

	hw.GPIO.SelectFunction(MU_TXD, Alt5)
	hw.GPIO.SelectFunction(MU_RXD, Alt5)

	hw.Regs.Write(AUX_MU_IER_REG, 0)
	hw.Regs.Write(AUX_MU_LCR_REG, LCR_DATA_SIZE_8BIT)
	hw.Regs.Write(AUX_MU_BAUD_REG, Divisor(hw.Baudrate))

	reg.Or(hw.Regs, AUX_MU_CNTL_REG, 1<<CNTL_TX_ENABLE|1<<CNTL_RX_ENABLE)

	hw.ForceLine = true
}

// Disable disables the mini UART transmitter, receiver and auxiliary enable.
func (hw *MiniUART) Disable() {
	reg.Clear(hw.Regs, AUX_MU_CNTL_REG, CNTL_TX_ENABLE)
	reg.Clear(hw.Regs, AUX_MU_CNTL_REG, CNTL_RX_ENABLE)
	reg.Clear(hw.Regs, AUX_ENABLES, AUX_MU)
}

// SetReadTimeout sets the maximum time WaitForByte and Read wait for a byte,
// the duration is measured in Timer microseconds.
func (hw *MiniUART) SetReadTimeout(d time.Duration) {
	us := d.Microseconds()

	if us < 0 {
		us = 0
	}

	hw.timeout = uint64(us)
	hw.hasTimeout = true
}

// ClearReadTimeout removes the read timeout, reads block indefinitely.
func (hw *MiniUART) ClearReadTimeout() {
	hw.timeout = 0
	hw.hasTimeout = false
}

// ReadTimeout returns the current read timeout and whether one is set.
func (hw *MiniUART) ReadTimeout() (d time.Duration, ok bool) {
	return time.Duration(hw.timeout) * time.Microsecond, hw.hasTimeout
}

// WriteByte transmits a single byte, blocking until the transmit FIFO can
// accept it.
func (hw *MiniUART) WriteByte(c byte) error {
	reg.Wait(hw.Regs, AUX_MU_LSR_REG, LSR_TX_EMPTY, 1, 1)
	hw.Regs.Write(AUX_MU_IO_REG, uint32(c))

	return nil
}

// HasByte returns whether at least one byte is ready to be read, in which
// case a subsequent ReadByte returns immediately.
func (hw *MiniUART) HasByte() bool {
	return reg.IsSet(hw.Regs, AUX_MU_LSR_REG, LSR_DATA_READY)
}

// WaitForByte blocks until a byte is ready to be read. When a read timeout is
// set ErrTimeout is returned if it expires first.
func (hw *MiniUART) WaitForByte() error {
	start := hw.Timer.CurrentTime()

	for !hw.HasByte() {
		if hw.hasTimeout && hw.Timer.CurrentTime() > start+hw.timeout {
			return ErrTimeout
		}
	}

	return nil
}

// ReadByte receives a single byte, blocking indefinitely regardless of the
// read timeout.
func (hw *MiniUART) ReadByte() (byte, error) {
	for !hw.HasByte() {
	}

	return byte(hw.Regs.Read(AUX_MU_IO_REG) & 0xff), nil
}

// Read waits, within the read timeout, for a first byte and then fills p with
// any further byte already available without waiting.
func (hw *MiniUART) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return
	}

	if err = hw.WaitForByte(); err != nil {
		return
	}

	for n < len(p) && hw.HasByte() {
		p[n], _ = hw.ReadByte()
		n++
	}

	return
}

// Write transmits all of p, when ForceLine is set each line feed (LF) is
// preceded by a carriage return (CR).
func (hw *MiniUART) Write(p []byte) (n int, err error) {
	for _, c := range p {
		if c == 0x0a && hw.ForceLine { // LF
			hw.WriteByte(0x0d) // CR
		}

		hw.WriteByte(c)
	}

	return len(p), nil
}
