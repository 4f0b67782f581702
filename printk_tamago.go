// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm && linkprintk

package main

import (
	_ "unsafe"

	"github.com/usbarmory/pi-console/bcm2837"
)

//go:linkname printk runtime.printk
func printk(c byte) {
	if !uartReady {
		return
	}

	// LF moves cursor to the next line
	if c == 0x0a {
		// CR moves cursor to left margin of the current line
		bcm2837.UART1.WriteByte(0x0d)
	}

	bcm2837.UART1.WriteByte(c)
}
