// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package reg provides primitives for accessing memory mapped peripheral
// registers.
//
// All accesses are performed as 32-bit atomic loads and stores, the compiler
// can therefore neither elide nor reorder them with respect to each other.
// No register value is ever cached: every helper re-reads the hardware.
package reg

import (
	"sync/atomic"
	"unsafe"

	"github.com/usbarmory/tamago/bits"
)

// Accessor represents a set of 32-bit registers addressed by byte offset.
type Accessor interface {
	Read(off uint32) uint32
	Write(off uint32, val uint32)
}

// Window represents a peripheral register block mapped at a fixed physical
// address.
type Window struct {
	base uintptr
	size uint32
}

// NewWindow returns a register window of size bytes at the argument physical
// base address. It is meant to be called once per peripheral instance.
func NewWindow(base uintptr, size uint32) *Window {
	return &Window{
		base: base,
		size: size,
	}
}

// Base returns the window physical base address.
func (w *Window) Base() uintptr {
	return w.base
}

// Size returns the window size in bytes.
func (w *Window) Size() uint32 {
	return w.size
}

// ptr is the only place where a physical address is converted to a pointer,
// go vet reports it as a possible misuse of unsafe.Pointer as the target is
// device memory outside the Go heap.
//
//go:nocheckptr
func (w *Window) ptr(off uint32) *uint32 {
	if off%4 != 0 || uint64(off)+4 > uint64(w.size) {
		panic("internal error, invalid register offset")
	}

	return (*uint32)(unsafe.Pointer(w.base + uintptr(off)))
}

// Read returns the register value at the argument offset.
func (w *Window) Read(off uint32) uint32 {
	return atomic.LoadUint32(w.ptr(off))
}

// Write sets the register value at the argument offset.
func (w *Window) Write(off uint32, val uint32) {
	atomic.StoreUint32(w.ptr(off), val)
}

// Get returns the register field at a specific bit position and with a
// bitmask applied.
func Get(r Accessor, off uint32, pos int, mask int) uint32 {
	val := r.Read(off)
	return bits.Get(&val, pos, mask)
}

// IsSet returns whether a specific register bit is set.
func IsSet(r Accessor, off uint32, pos int) bool {
	val := r.Read(off)
	return bits.IsSet(&val, pos)
}

// Set sets a specific register bit.
func Set(r Accessor, off uint32, pos int) {
	val := r.Read(off)
	bits.Set(&val, pos)
	r.Write(off, val)
}

// Clear clears a specific register bit.
func Clear(r Accessor, off uint32, pos int) {
	val := r.Read(off)
	bits.Clear(&val, pos)
	r.Write(off, val)
}

// SetN modifies a register field at a specific bit position and with a
// bitmask applied.
func SetN(r Accessor, off uint32, pos int, mask int, val uint32) {
	v := r.Read(off)
	bits.SetN(&v, pos, mask, val)
	r.Write(off, v)
}

// Or sets all bits of mask in the register at the argument offset.
func Or(r Accessor, off uint32, mask uint32) {
	r.Write(off, r.Read(off)|mask)
}

// Wait spins until a specific register field matches the argument value.
func Wait(r Accessor, off uint32, pos int, mask int, val uint32) {
	for Get(r, off, pos, mask) != val {
	}
}
