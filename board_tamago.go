// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package main

import (
	// Raspberry Pi 2/3 support: CPU, VFP, MMU and cache initialization,
	// runtime RAM layout and nanotime from the BCM283x system timer.
	_ "github.com/usbarmory/tamago/board/raspberrypi/pi2"

	"github.com/usbarmory/pi-console/bcm2837"
	"github.com/usbarmory/pi-console/cmd"
	"github.com/usbarmory/pi-console/console"
)

// set once the mini UART is usable for printk
var uartReady bool

func init() {
	bcm2837.UART1.Init()
	uartReady = true
}

func hwinit() *cmd.Interface {
	console.Init(bcm2837.UART1)

	return &cmd.Interface{
		Timer: bcm2837.Timer0,
		UART:  bcm2837.UART1,
		GPIO:  bcm2837.GPIO0,
	}
}
