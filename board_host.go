// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build !tamago

package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/usbarmory/pi-console/cmd"
	"github.com/usbarmory/pi-console/console"
	"github.com/usbarmory/pi-console/internal/sim"
)

// end of transmission (Ctrl-D)
const eot = 0x04

var timeout = flag.Duration("timeout", 0, "UART read timeout (0 disables it)")

func exit(state *term.State) {
	if state != nil {
		term.Restore(int(os.Stdin.Fd()), state)
	}

	os.Exit(0)
}

// receive forwards standard input to the simulated UART receive line.
func receive(aux *sim.Aux, state *term.State) {
	buf := make([]byte, 64)

	for {
		n, err := os.Stdin.Read(buf)

		for i := 0; i < n; i++ {
			if buf[i] == eot {
				exit(state)
			}
		}

		aux.Feed(buf[:n])

		if err == io.EOF {
			// let the shell drain pending input
			for aux.Pending() > 0 {
				time.Sleep(10 * time.Millisecond)
			}

			time.Sleep(100 * time.Millisecond)
			exit(state)
		}

		if err != nil {
			log.Fatalf("could not read standard input, %v", err)
		}
	}
}

func hwinit() *cmd.Interface {
	var state *term.State

	flag.StringVar(&Prompt, "prompt", Prompt, "shell prompt")
	flag.Parse()

	board := sim.NewBoard(sim.NewWallClock(), os.Stdout)

	// avoid spinning a host core while waiting for input
	board.AuxRegs.Idle = func() {
		time.Sleep(100 * time.Microsecond)
	}

	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		var err error

		if state, err = term.MakeRaw(fd); err != nil {
			log.Fatalf("could not set raw mode, %v", err)
		}
	}

	board.UART.Init()

	if *timeout > 0 {
		board.UART.SetReadTimeout(*timeout)
	}

	console.Init(board.UART)

	go receive(board.AuxRegs, state)

	return &cmd.Interface{
		Timer: board.Timer,
		UART:  board.UART,
		GPIO:  board.GPIO,
	}
}
