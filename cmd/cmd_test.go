// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/hako/durafmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbarmory/pi-console/console"
	"github.com/usbarmory/pi-console/internal/sim"
	"github.com/usbarmory/pi-console/shell"
)

var (
	board *sim.Board
	iface *Interface
)

func TestMain(m *testing.M) {
	board = sim.NewBoard(sim.NewClock(0, 0), nil)
	board.UART.Init()
	console.Init(board.UART)

	iface = &Interface{
		Timer: board.Timer,
		UART:  board.UART,
		GPIO:  board.GPIO,
	}

	os.Exit(m.Run())
}

func run(t *testing.T, line string) (string, error) {
	t.Helper()

	var storage [shell.MaxArgs]string

	c, err := shell.Parse(line, storage[:])
	require.NoError(t, err)

	board.AuxRegs.Reset()
	err = iface.Dispatch(c)

	return string(board.AuxRegs.Transmitted()), err
}

func TestUnknown(t *testing.T) {
	_, err := run(t, "frobnicate")
	assert.ErrorContains(t, err, "unknown command")

	// commands without pattern take no arguments
	_, err = run(t, "uptime now")
	assert.ErrorContains(t, err, "unknown command")
}

func TestHelp(t *testing.T) {
	out, err := run(t, "help")
	require.NoError(t, err)

	for _, name := range []string{"help", "echo", "uptime", "sleep", "timeout", "gpio", "info", "build", "stack"} {
		assert.Contains(t, out, name)
	}

	lines := strings.Split(strings.TrimSpace(out), "\r\n")
	assert.Len(t, lines, len(cmds))
	assert.True(t, strings.HasPrefix(lines[0], "build"))
}

func TestEcho(t *testing.T) {
	out, err := run(t, "echo  hello   world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\r\n", out)

	out, err = run(t, "echo")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestUptime(t *testing.T) {
	d := 25*time.Hour + time.Minute + time.Second
	board.Clock.Set(uint64(d.Microseconds()))

	assert.Equal(t, d, iface.Uptime())

	out, err := run(t, "uptime")
	require.NoError(t, err)
	assert.Equal(t, durafmt.Parse(d).String()+"\r\n", out)
	assert.Contains(t, out, "1 day")
}

func TestSleep(t *testing.T) {
	board.Clock.Set(0)
	board.Clock.Step = 100
	defer func() { board.Clock.Step = 0 }()

	_, err := run(t, "sleep 5")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, board.Clock.Now(), uint64(5000))

	_, err = run(t, "sleep 99999999999999999999")
	assert.ErrorContains(t, err, "invalid duration")
}

func TestTimeout(t *testing.T) {
	out, err := run(t, "timeout")
	require.NoError(t, err)
	assert.Equal(t, "read timeout: off\r\n", out)

	out, err = run(t, "timeout 250")
	require.NoError(t, err)
	assert.Equal(t, "read timeout: 250ms\r\n", out)

	d, ok := board.UART.ReadTimeout()
	assert.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, d)

	out, err = run(t, "timeout off")
	require.NoError(t, err)
	assert.Equal(t, "read timeout: off\r\n", out)
}

func TestGPIO(t *testing.T) {
	out, err := run(t, "gpio 17 high")
	require.NoError(t, err)
	assert.Equal(t, "gpio 17: high (function 001)\r\n", out)
	assert.True(t, board.GPIO.Level(17))

	out, err = run(t, "gpio 17 low")
	require.NoError(t, err)
	assert.Equal(t, "gpio 17: low (function 001)\r\n", out)

	out, err = run(t, "gpio 14")
	require.NoError(t, err)
	assert.Equal(t, "gpio 14: low (function 010)\r\n", out)

	_, err = run(t, "gpio 54 high")
	assert.ErrorContains(t, err, "invalid pin")
}

func TestInfo(t *testing.T) {
	out, err := run(t, "info")
	require.NoError(t, err)

	assert.Contains(t, out, "0x3f000000")
	assert.Contains(t, out, "115200 baud (divisor 270)")
}
