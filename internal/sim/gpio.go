// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sim

import (
	"sync"

	"github.com/usbarmory/pi-console/bcm2837"
)

// GPIO emulates the GPIO register block, output lines are looped back to
// their level register.
type GPIO struct {
	sync.Mutex

	fsel  [6]uint32
	level [2]uint32
}

// Read implements reg.Accessor.
func (g *GPIO) Read(off uint32) uint32 {
	g.Lock()
	defer g.Unlock()

	switch {
	case off < bcm2837.GPSET0:
		if i := off / 4; int(i) < len(g.fsel) {
			return g.fsel[i]
		}
	case off == bcm2837.GPLEV0, off == bcm2837.GPLEV0+4:
		return g.level[(off-bcm2837.GPLEV0)/4]
	}

	return 0
}

// Write implements reg.Accessor.
func (g *GPIO) Write(off uint32, val uint32) {
	g.Lock()
	defer g.Unlock()

	switch {
	case off < bcm2837.GPSET0:
		if i := off / 4; int(i) < len(g.fsel) {
			g.fsel[i] = val
		}
	case off == bcm2837.GPSET0, off == bcm2837.GPSET0+4:
		g.level[(off-bcm2837.GPSET0)/4] |= val
	case off == bcm2837.GPCLR0, off == bcm2837.GPCLR0+4:
		g.level[(off-bcm2837.GPCLR0)/4] &^= val
	}
}
