// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/usbarmory/pi-console/bcm2837"
)

func init() {
	Add(Cmd{
		Name:    "timeout",
		Args:    1,
		Pattern: regexp.MustCompile(`^timeout(?: (off|\d+))?$`),
		Syntax:  "(off|<ms>)?",
		Help:    "show/set UART read timeout",
		Fn:      timeoutCmd,
	})

	Add(Cmd{
		Name:    "gpio",
		Args:    2,
		Pattern: regexp.MustCompile(`^gpio (\d+)(?: (high|low|in))?$`),
		Syntax:  "<pin> (high|low|in)?",
		Help:    "read/drive GPIO line",
		Fn:      gpioCmd,
	})

	Add(Cmd{
		Name: "info",
		Help: "device information",
		Fn:   infoCmd,
	})
}

func timeoutCmd(iface *Interface, arg []string) (string, error) {
	switch arg[0] {
	case "":
	case "off":
		iface.UART.ClearReadTimeout()
	default:
		ms, err := strconv.ParseUint(arg[0], 10, 32)

		if err != nil {
			return "", fmt.Errorf("invalid timeout, %v", err)
		}

		iface.UART.SetReadTimeout(time.Duration(ms) * time.Millisecond)
	}

	if d, ok := iface.UART.ReadTimeout(); ok {
		return fmt.Sprintf("read timeout: %v", d), nil
	}

	return "read timeout: off", nil
}

func gpioCmd(iface *Interface, arg []string) (string, error) {
	pin, err := strconv.Atoi(arg[0])

	if err != nil || pin >= bcm2837.GPIO_PINS {
		return "", fmt.Errorf("invalid pin %s", arg[0])
	}

	switch arg[1] {
	case "high":
		iface.GPIO.SelectFunction(pin, bcm2837.Output)
		iface.GPIO.Set(pin)
	case "low":
		iface.GPIO.SelectFunction(pin, bcm2837.Output)
		iface.GPIO.Clear(pin)
	case "in":
		iface.GPIO.SelectFunction(pin, bcm2837.Input)
	}

	level := "low"

	if iface.GPIO.Level(pin) {
		level = "high"
	}

	return fmt.Sprintf("gpio %d: %s (function %03b)", pin, level, iface.GPIO.GetFunction(pin)), nil
}

func infoCmd(iface *Interface, _ []string) (string, error) {
	var res bytes.Buffer

	baudrate := iface.UART.Baudrate

	if baudrate == 0 {
		baudrate = bcm2837.DefaultBaudrate
	}

	fmt.Fprintf(&res, "SoC ..........: BCM2837\n")
	fmt.Fprintf(&res, "Peripherals ..: %#08x\n", bcm2837.IO_BASE)
	fmt.Fprintf(&res, "UART .........: mini UART %d baud (divisor %d)\n",
		baudrate, bcm2837.Divisor(baudrate))
	fmt.Fprintf(&res, "Timer ........: %d us", iface.Timer.CurrentTime())

	return res.String(), nil
}
