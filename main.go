// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"runtime"

	"github.com/hako/durafmt"

	"github.com/usbarmory/pi-console/console"
	"github.com/usbarmory/pi-console/shell"
)

// set at build time with -ldflags "-X main.Revision=... -X main.Build=..."
var (
	Revision string
	Build    string
)

// Prompt is printed before each shell line.
var Prompt = "> "

func init() {
	log.SetFlags(0)
}

func main() {
	iface := hwinit()

	log.SetOutput(console.Writer())
	log.Printf("console ready after %s", durafmt.Parse(iface.Uptime()).LimitFirstN(2))

	sh := &shell.Interface{
		Banner: fmt.Sprintf("%s/%s (%s) • BCM2837 %s %s",
			runtime.GOOS, runtime.GOARCH, runtime.Version(), Revision, Build),
		Prompt:     Prompt,
		Dispatcher: iface,
	}

	sh.Start()
}
