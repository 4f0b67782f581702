// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package bcm2837

import (
	"github.com/usbarmory/pi-console/reg"
)

// GPIO registers
const (
	GPFSEL0 = 0x00
	GPSET0  = 0x1c
	GPCLR0  = 0x28
	GPLEV0  = 0x34

	// number of GPIO lines
	GPIO_PINS = 54
)

// Function represents a GPIO function selection.
type Function uint32

// GPIO function encodings (GPFSELn)
const (
	Input  Function = 0b000
	Output Function = 0b001
	Alt0   Function = 0b100
	Alt1   Function = 0b101
	Alt2   Function = 0b110
	Alt3   Function = 0b111
	Alt4   Function = 0b011
	Alt5   Function = 0b010
)

// GPIO represents the GPIO controller.
type GPIO struct {
	// Regs is the GPIO register block
	Regs reg.Accessor
}

func checkPin(pin int) {
	if pin < 0 || pin >= GPIO_PINS {
		panic("internal error, invalid GPIO pin")
	}
}

// bank returns the register offset within a 32-bit wide bank and the pin bit
// position in it.
func bank(base uint32, pin int) (off uint32, pos int) {
	return base + uint32(pin/32)*4, pin % 32
}

// SelectFunction configures a GPIO line function (e.g. input, output or one of
// its alternate functions).
func (hw *GPIO) SelectFunction(pin int, fn Function) {
	checkPin(pin)

	off := GPFSEL0 + uint32(pin/10)*4
	reg.SetN(hw.Regs, off, (pin%10)*3, 0b111, uint32(fn))
}

// GetFunction returns a GPIO line function.
func (hw *GPIO) GetFunction(pin int) Function {
	checkPin(pin)

	off := GPFSEL0 + uint32(pin/10)*4
	return Function(reg.Get(hw.Regs, off, (pin%10)*3, 0b111))
}

// Set drives a GPIO output line high.
func (hw *GPIO) Set(pin int) {
	checkPin(pin)

	off, pos := bank(GPSET0, pin)
	hw.Regs.Write(off, 1<<pos)
}

// Clear drives a GPIO output line low.
func (hw *GPIO) Clear(pin int) {
	checkPin(pin)

	off, pos := bank(GPCLR0, pin)
	hw.Regs.Write(off, 1<<pos)
}

// Level returns a GPIO line level.
func (hw *GPIO) Level(pin int) bool {
	checkPin(pin)

	off, pos := bank(GPLEV0, pin)
	return reg.IsSet(hw.Regs, off, pos)
}
