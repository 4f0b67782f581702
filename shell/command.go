// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/usbarmory/pi-console/stackvec"
)

var (
	// ErrEmpty is returned when parsing a line without arguments.
	ErrEmpty = errors.New("empty command")
	// ErrTooManyArgs is returned when a line has more arguments than the
	// available storage.
	ErrTooManyArgs = fmt.Errorf("too many arguments, %w", stackvec.ErrOverflow)
)

// Command represents a parsed command line. It references the parsed line
// and argument storage, both must outlive it.
type Command struct {
	args stackvec.Vec[string]
}

// Parse splits line on spaces, storing each non-empty argument in storage.
func Parse(line string, storage []string) (Command, error) {
	args := stackvec.New(storage)

	for arg := range strings.SplitSeq(line, " ") {
		if len(arg) == 0 {
			continue
		}

		if err := args.Push(arg); err != nil {
			return Command{}, ErrTooManyArgs
		}
	}

	if args.IsEmpty() {
		return Command{}, ErrEmpty
	}

	return Command{args: args}, nil
}

// Path returns the command name, which is its first argument.
func (c Command) Path() string {
	path, _ := c.args.Get(0)
	return path
}

// Args returns the arguments following the command name.
func (c Command) Args() []string {
	return c.All()[1:]
}

// All returns all arguments, including the command name.
func (c Command) All() []string {
	return c.args.Slice()
}

// Len returns the number of arguments, including the command name.
func (c Command) Len() int {
	return c.args.Len()
}

func (c Command) String() string {
	return strings.Join(c.All(), " ")
}
