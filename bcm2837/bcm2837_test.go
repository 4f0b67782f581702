// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package bcm2837_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usbarmory/pi-console/bcm2837"
	"github.com/usbarmory/pi-console/reg"
)

func TestPeripheralInstances(t *testing.T) {
	for _, tc := range []struct {
		regs reg.Accessor
		base uintptr
		size uint32
	}{
		{bcm2837.Timer0.Regs, 0x3f003000, bcm2837.TIMER_SIZE},
		{bcm2837.GPIO0.Regs, 0x3f200000, bcm2837.GPIO_SIZE},
		{bcm2837.UART1.Regs, 0x3f215000, bcm2837.AUX_SIZE},
	} {
		w, ok := tc.regs.(*reg.Window)

		if assert.True(t, ok) {
			assert.Equal(t, tc.base, w.Base())
			assert.Equal(t, tc.size, w.Size())
		}
	}

	assert.Same(t, bcm2837.GPIO0, bcm2837.UART1.GPIO)
	assert.Same(t, bcm2837.Timer0, bcm2837.UART1.Timer)
}

func TestRegisterLayout(t *testing.T) {
	// mini UART registers are contiguous 32-bit words from AUX_MU_IO_REG
	offsets := []uint32{
		bcm2837.AUX_MU_IO_REG,
		bcm2837.AUX_MU_IER_REG,
		bcm2837.AUX_MU_IIR_REG,
		bcm2837.AUX_MU_LCR_REG,
		bcm2837.AUX_MU_MCR_REG,
		bcm2837.AUX_MU_LSR_REG,
		bcm2837.AUX_MU_MSR_REG,
		bcm2837.AUX_MU_SCRATCH,
		bcm2837.AUX_MU_CNTL_REG,
		bcm2837.AUX_MU_STAT_REG,
		bcm2837.AUX_MU_BAUD_REG,
	}

	for i, off := range offsets {
		assert.Equal(t, uint32(0x40+i*4), off)
	}

	assert.Less(t, uint32(bcm2837.AUX_MU_BAUD_REG), uint32(bcm2837.AUX_SIZE))
	assert.Equal(t, uint32(bcm2837.TIMER_C0+3*4+4), uint32(bcm2837.TIMER_SIZE))
}
