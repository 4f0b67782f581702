// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package console

// Reset clears the console device.
func Reset() {
	console.Lock()
	defer console.Unlock()

	console.dev = nil
}
