// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sim

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/usbarmory/pi-console/bcm2837"
)

func TestVirtualClockLatch(t *testing.T) {
	c := NewClock(10, 5)
	timer := &Timer{Clock: c}

	assert.Equal(t, uint32(0), timer.Read(bcm2837.TIMER_CHI))
	assert.Equal(t, uint32(10), timer.Read(bcm2837.TIMER_CLO))
	assert.Equal(t, uint32(15), timer.Read(bcm2837.TIMER_CLO))
	assert.Equal(t, uint64(20), c.Now())
}

func TestWallClock(t *testing.T) {
	c := NewWallClock()
	start := c.Now()

	time.Sleep(2 * time.Millisecond)

	assert.GreaterOrEqual(t, c.Now()-start, uint64(2000))

	c.Set(1 << 40)
	assert.GreaterOrEqual(t, c.Now(), uint64(1<<40))
}

func TestAuxReadOnly(t *testing.T) {
	var out bytes.Buffer

	a := &Aux{Out: &out}

	a.Write(bcm2837.AUX_MU_LSR_REG, 0)
	assert.Equal(t, uint32(1<<bcm2837.LSR_TX_EMPTY), a.Read(bcm2837.AUX_MU_LSR_REG))

	a.Write(bcm2837.AUX_MU_SCRATCH, 0xa5)
	assert.Equal(t, uint32(0xa5), a.Read(bcm2837.AUX_MU_SCRATCH))

	a.Write(bcm2837.AUX_MU_IO_REG, 'k')
	assert.Equal(t, "k", out.String())
	assert.Equal(t, []byte("k"), a.Transmitted())
}

func TestAuxReceive(t *testing.T) {
	a := &Aux{}
	a.Feed([]byte("hi"))

	// receiver disabled
	assert.Zero(t, a.Read(bcm2837.AUX_MU_LSR_REG)&(1<<bcm2837.LSR_DATA_READY))

	a.Write(bcm2837.AUX_MU_CNTL_REG, 1<<bcm2837.CNTL_RX_ENABLE)
	assert.NotZero(t, a.Read(bcm2837.AUX_MU_LSR_REG)&(1<<bcm2837.LSR_DATA_READY))

	assert.Equal(t, uint32('h'), a.Read(bcm2837.AUX_MU_IO_REG))
	assert.Equal(t, uint32('i'), a.Read(bcm2837.AUX_MU_IO_REG))
	assert.Equal(t, uint32(0), a.Read(bcm2837.AUX_MU_IO_REG))
	assert.Equal(t, 0, a.Pending())
	assert.Equal(t, 2, a.Polls())
}

func TestGPIOLoopback(t *testing.T) {
	g := &GPIO{}

	g.Write(bcm2837.GPSET0+4, 1<<3)
	assert.Equal(t, uint32(1<<3), g.Read(bcm2837.GPLEV0+4))

	g.Write(bcm2837.GPCLR0+4, 1<<3)
	assert.Zero(t, g.Read(bcm2837.GPLEV0+4))
}
