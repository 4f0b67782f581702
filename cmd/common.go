// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"fmt"
	"regexp"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/hako/durafmt"
)

func init() {
	Add(Cmd{
		Name: "help",
		Help: "this help",
		Fn:   helpCmd,
	})

	Add(Cmd{
		Name: "build",
		Help: "build information",
		Fn:   buildInfoCmd,
	})

	Add(Cmd{
		Name: "stack",
		Help: "goroutine stack trace (current)",
		Fn:   stackCmd,
	})

	Add(Cmd{
		Name:    "echo",
		Args:    1,
		Pattern: regexp.MustCompile(`^echo(?: (.*))?$`),
		Syntax:  "<text>?",
		Help:    "print arguments",
		Fn:      echoCmd,
	})

	Add(Cmd{
		Name: "uptime",
		Help: "show how long the system has been running",
		Fn:   uptimeCmd,
	})

	Add(Cmd{
		Name:    "sleep",
		Args:    1,
		Pattern: regexp.MustCompile(`^sleep (\d+)$`),
		Syntax:  "<ms>",
		Help:    "spin for the given number of milliseconds",
		Fn:      sleepCmd,
	})
}

func helpCmd(_ *Interface, _ []string) (string, error) {
	return Help(), nil
}

func buildInfoCmd(_ *Interface, _ []string) (string, error) {
	if bi, ok := debug.ReadBuildInfo(); ok {
		return bi.String(), nil
	}

	return "", errors.New("build information unavailable")
}

func stackCmd(_ *Interface, _ []string) (string, error) {
	return string(debug.Stack()), nil
}

func echoCmd(_ *Interface, arg []string) (string, error) {
	return arg[0], nil
}

// Uptime returns the time elapsed since power-on as measured by the system
// timer.
func (iface *Interface) Uptime() time.Duration {
	return time.Duration(iface.Timer.CurrentTime()) * time.Microsecond
}

func uptimeCmd(iface *Interface, _ []string) (string, error) {
	return durafmt.Parse(iface.Uptime()).String(), nil
}

func sleepCmd(iface *Interface, arg []string) (string, error) {
	ms, err := strconv.ParseUint(arg[0], 10, 64)

	if err != nil {
		return "", fmt.Errorf("invalid duration, %v", err)
	}

	iface.Timer.SpinSleepMS(ms)

	return "", nil
}
