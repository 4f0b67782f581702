// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package shell implements a line oriented command shell over the console.
//
// The shell reads lines with echo and minimal editing, tokenizes them and
// hands the resulting commands to a Dispatcher. Input is accumulated and
// tokenized in fixed size buffers, each completed line is copied once.
package shell

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/usbarmory/pi-console/console"
	"github.com/usbarmory/pi-console/stackvec"
)

const (
	// LineSize is the maximum number of bytes in a line.
	LineSize = 512
	// MaxArgs is the maximum number of arguments in a command.
	MaxArgs = 16
)

// ASCII control codes
const (
	bel = 0x07
	bs  = 0x08
	lf  = 0x0a
	cr  = 0x0d
	del = 0x7f
)

// ErrInvalidUTF8 is returned when a line is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 input")

// backspace, space, backspace
var erase = []byte{bs, ' ', bs}

// Dispatcher represents the command handler invoked for each parsed line.
type Dispatcher interface {
	Dispatch(cmd Command) error
}

// DispatchFunc is an adapter to use ordinary functions as a Dispatcher.
type DispatchFunc func(cmd Command) error

// Dispatch calls f(cmd).
func (f DispatchFunc) Dispatch(cmd Command) error {
	return f(cmd)
}

// Interface represents a shell instance running on the console.
type Interface struct {
	// Banner represents the welcome message
	Banner string

	// Prompt is printed before reading each line
	Prompt string

	// Dispatcher handles parsed commands
	Dispatcher Dispatcher

	line [LineSize]byte
	args [MaxArgs]string
}

func bell() {
	console.WriteByte(bel)
}

func backspace() {
	console.Write(erase)
}

// ReadLine reads a line from the console into storage, echoing printable
// input. Backspace and delete erase the last character, input exceeding
// storage or any other control character rings the bell.
//
// The returned string is a copy of the line, storage can be reused
// by the next call.
func ReadLine(storage []byte) (string, error) {
	line := stackvec.New(storage)

	for {
		c := console.ReadByte()

		switch {
		case c >= 32 && c <= 126, c >= 128:
			if err := line.Push(c); err != nil {
				bell()
				continue
			}

			console.WriteByte(c)
		case c == cr, c == lf:
			console.Println()

			b := line.Slice()

			if !utf8.Valid(b) {
				return "", ErrInvalidUTF8
			}

			return string(b), nil
		case c == bs, c == del:
			if _, ok := line.Pop(); ok {
				backspace()
			}
		default:
			bell()
		}
	}
}

func (iface *Interface) dispatch(cmd Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic, %v", r)
		}
	}()

	return iface.Dispatcher.Dispatch(cmd)
}

func (iface *Interface) handleLine(line string) {
	cmd, err := Parse(line, iface.args[:])

	switch {
	case errors.Is(err, ErrEmpty):
		return
	case err != nil:
		console.Printf("error, %v\n", err)
		return
	}

	if iface.Dispatcher == nil {
		return
	}

	if err = iface.dispatch(cmd); err != nil {
		console.Printf("command error, %v\n", err)
	}
}

func (iface *Interface) readLine() {
	console.Print(iface.Prompt)

	line, err := ReadLine(iface.line[:])

	if err != nil {
		console.Printf("error, %v\n", err)
		return
	}

	iface.handleLine(line)
}

// Start prints the banner and then reads, parses and dispatches console
// lines forever.
func (iface *Interface) Start() {
	if len(iface.Banner) > 0 {
		console.Printf("\n%s\n\n", iface.Banner)
	}

	for {
		iface.readLine()
	}
}
