// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package cmd implements the board diagnostic commands dispatched by the
// shell.
package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"text/tabwriter"

	"github.com/usbarmory/pi-console/bcm2837"
	"github.com/usbarmory/pi-console/console"
	"github.com/usbarmory/pi-console/shell"
)

// CmdFn represents a command handler.
type CmdFn func(iface *Interface, arg []string) (res string, err error)

// Cmd represents a shell command.
type Cmd struct {
	// Name is the command name, it is matched against the first argument
	// when Pattern is not set.
	Name string
	// Args is the number of Pattern submatches passed to Fn.
	Args int
	// Pattern, when set, is matched against the whole command line.
	Pattern *regexp.Regexp
	// Syntax describes the command arguments.
	Syntax string
	// Help describes the command.
	Help string
	// Fn is the command handler.
	Fn CmdFn
}

// Interface represents the peripherals available to commands, it implements
// shell.Dispatcher.
type Interface struct {
	Timer *bcm2837.Timer
	UART  *bcm2837.MiniUART
	GPIO  *bcm2837.GPIO
}

var cmds = make(map[string]*Cmd)

// Add registers a command.
func Add(cmd Cmd) {
	cmds[cmd.Name] = &cmd
}

// Help returns a formatted list of all registered commands.
func Help() string {
	var buf bytes.Buffer
	var names []string

	for name := range cmds {
		names = append(names, name)
	}

	sort.Strings(names)

	w := tabwriter.NewWriter(&buf, 0, 8, 2, ' ', 0)

	for _, name := range names {
		cmd := cmds[name]
		fmt.Fprintf(w, "%s %s\t # %s\n", cmd.Name, cmd.Syntax, cmd.Help)
	}

	w.Flush()

	return buf.String()
}

func find(c shell.Command) (match *Cmd, arg []string) {
	line := c.String()

	for _, cmd := range cmds {
		if cmd.Pattern == nil {
			if cmd.Name == c.Path() && c.Len() == 1 {
				return cmd, nil
			}
		} else if m := cmd.Pattern.FindStringSubmatch(line); len(m) > 0 && (len(m)-1 == cmd.Args) {
			return cmd, m[1:]
		}
	}

	return
}

// Dispatch executes the registered command matching c and prints its result
// on the console.
func (iface *Interface) Dispatch(c shell.Command) (err error) {
	var res string

	match, arg := find(c)

	if match == nil {
		return errors.New("unknown command, type `help`")
	}

	if res, err = match.Fn(iface, arg); err != nil {
		return
	}

	if len(res) > 0 {
		console.Println(res)
	}

	return
}
