// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sim

import (
	"bytes"
	"io"
	"sync"

	"github.com/usbarmory/pi-console/bcm2837"
)

// Aux emulates the auxiliary peripherals register block and its mini UART.
//
// Received bytes are queued with Feed, transmitted bytes are recorded and
// copied to Out. Registers without side effects behave as plain storage.
type Aux struct {
	sync.Mutex

	// Out receives transmitted bytes.
	Out io.Writer

	// TxBusy is the number of line status reads which report a full
	// transmit FIFO before each transmission.
	TxBusy int

	// Idle, when set, is invoked on line status reads which find the
	// receive FIFO empty.
	Idle func()

	regs   [bcm2837.AUX_SIZE / 4]uint32
	rx     []byte
	tx     bytes.Buffer
	busy   int
	polled int
}

// Feed queues bytes on the receive line.
func (a *Aux) Feed(p []byte) {
	a.Lock()
	defer a.Unlock()

	a.rx = append(a.rx, p...)
}

// Pending returns the number of received bytes not yet read.
func (a *Aux) Pending() int {
	a.Lock()
	defer a.Unlock()

	return len(a.rx)
}

// Transmitted returns all bytes transmitted so far.
func (a *Aux) Transmitted() []byte {
	a.Lock()
	defer a.Unlock()

	return bytes.Clone(a.tx.Bytes())
}

// Reset discards transmitted bytes.
func (a *Aux) Reset() {
	a.Lock()
	defer a.Unlock()

	a.tx.Reset()
}

// Polls returns the number of line status register reads.
func (a *Aux) Polls() int {
	a.Lock()
	defer a.Unlock()

	return a.polled
}

func (a *Aux) enabled(bit int) bool {
	return a.regs[bcm2837.AUX_MU_CNTL_REG/4]&(1<<bit) != 0
}

func (a *Aux) lsr() (val uint32) {
	a.polled++

	if a.busy > 0 {
		a.busy--
	} else {
		val |= 1 << bcm2837.LSR_TX_EMPTY
	}

	if len(a.rx) > 0 && a.enabled(bcm2837.CNTL_RX_ENABLE) {
		val |= 1 << bcm2837.LSR_DATA_READY
	}

	return
}

// Read implements reg.Accessor.
func (a *Aux) Read(off uint32) uint32 {
	a.Lock()

	switch off {
	case bcm2837.AUX_MU_LSR_REG:
		val := a.lsr()
		idle := a.Idle
		a.Unlock()

		if val&(1<<bcm2837.LSR_DATA_READY) == 0 && idle != nil {
			idle()
		}

		return val
	case bcm2837.AUX_MU_IO_REG:
		defer a.Unlock()

		if len(a.rx) == 0 {
			return 0
		}

		c := a.rx[0]
		a.rx = a.rx[1:]

		return uint32(c)
	}

	defer a.Unlock()

	return a.regs[off/4]
}

// Write implements reg.Accessor.
func (a *Aux) Write(off uint32, val uint32) {
	a.Lock()
	defer a.Unlock()

	switch off {
	case bcm2837.AUX_MU_LSR_REG, bcm2837.AUX_MU_MSR_REG, bcm2837.AUX_MU_STAT_REG:
		// read-only
	case bcm2837.AUX_MU_IO_REG:
		c := byte(val)
		a.tx.WriteByte(c)
		a.busy = a.TxBusy

		if a.Out != nil {
			a.Out.Write([]byte{c})
		}
	default:
		a.regs[off/4] = val
	}
}
