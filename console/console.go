// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package console implements the process-wide serial console.
//
// The console wraps a single byte oriented device behind a mutex, all
// standard input and output of the shell goes through it. It is initialized
// once at startup with Init and lives until the system is reset.
package console

import (
	"fmt"
	"io"
	"sync"
)

// Device represents the serial device backing the console, it is satisfied
// by *bcm2837.MiniUART.
type Device interface {
	io.ByteReader
	io.ByteWriter
	io.Writer

	// HasByte returns whether ReadByte would return immediately.
	HasByte() bool
}

var console struct {
	sync.Mutex
	dev Device
}

// Init sets the console device, it must be called exactly once.
func Init(dev Device) {
	console.Lock()
	defer console.Unlock()

	if console.dev != nil {
		panic("internal error, console already initialized")
	}

	console.dev = dev
}

// Do invokes fn with exclusive access to the console device. The console
// lock is released when fn returns, even if it panics.
func Do(fn func(dev Device)) {
	console.Lock()
	defer console.Unlock()

	if console.dev == nil {
		panic("internal error, console not initialized")
	}

	fn(console.dev)
}

// ReadByte returns the next byte received on the console.
//
// The lock is held only while polling and consuming a byte, it is released
// between polls so that writers are never held off by a pending read.
func ReadByte() (c byte) {
	for {
		ok := false

		Do(func(dev Device) {
			if ok = dev.HasByte(); ok {
				c, _ = dev.ReadByte()
			}
		})

		if ok {
			return
		}
	}
}

// WriteByte transmits a single raw byte on the console.
func WriteByte(c byte) {
	Do(func(dev Device) {
		dev.WriteByte(c)
	})
}

// Write transmits p on the console.
func Write(p []byte) (n int, err error) {
	Do(func(dev Device) {
		n, err = dev.Write(p)
	})

	return
}

// Print formats using the default formats for its operands and writes to the
// console.
func Print(a ...any) {
	Do(func(dev Device) {
		fmt.Fprint(dev, a...)
	})
}

// Printf formats according to a format specifier and writes to the console.
func Printf(format string, a ...any) {
	Do(func(dev Device) {
		fmt.Fprintf(dev, format, a...)
	})
}

// Println formats using the default formats for its operands and writes to
// the console, appending a newline.
func Println(a ...any) {
	Do(func(dev Device) {
		fmt.Fprintln(dev, a...)
	})
}

type writer struct{}

func (writer) Write(p []byte) (int, error) {
	return Write(p)
}

// Writer returns an io.Writer which serializes its writes with all other
// console operations, it is suitable as log output.
func Writer() io.Writer {
	return writer{}
}
