// Copyright (c) The pi-console authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package stackvec implements a fixed capacity vector over caller supplied
// storage.
//
// A Vec never allocates or grows: its capacity is the length of the storage
// it is bound to and its contents are always the first Len() elements of
// that storage.
package stackvec

import (
	"errors"
	"iter"
)

// ErrOverflow is returned when pushing onto a full vector.
var ErrOverflow = errors.New("vector capacity exceeded")

// Vec represents a fixed capacity vector backed by borrowed storage.
type Vec[T any] struct {
	storage []T
	len     int
}

// New returns a vector bound to storage, with zero length and capacity
// len(storage).
func New[T any](storage []T) Vec[T] {
	return Vec[T]{storage: storage}
}

// Len returns the number of elements in the vector.
func (v *Vec[T]) Len() int {
	return v.len
}

// Cap returns the maximum number of elements the vector can hold.
func (v *Vec[T]) Cap() int {
	return len(v.storage)
}

// IsEmpty returns whether the vector has no elements.
func (v *Vec[T]) IsEmpty() bool {
	return v.len == 0
}

// IsFull returns whether the vector reached its capacity.
func (v *Vec[T]) IsFull() bool {
	return v.len == len(v.storage)
}

// Push appends item to the vector, ErrOverflow is returned and the vector is
// left untouched when it is full.
func (v *Vec[T]) Push(item T) error {
	if v.IsFull() {
		return ErrOverflow
	}

	v.storage[v.len] = item
	v.len++

	return nil
}

// Pop removes and returns the last element.
func (v *Vec[T]) Pop() (item T, ok bool) {
	if v.len == 0 {
		return
	}

	v.len--

	return v.storage[v.len], true
}

// Get returns the element at index i.
func (v *Vec[T]) Get(i int) (item T, ok bool) {
	if i < 0 || i >= v.len {
		return
	}

	return v.storage[i], true
}

// Last returns the last element.
func (v *Vec[T]) Last() (item T, ok bool) {
	return v.Get(v.len - 1)
}

// Truncate shortens the vector to n elements, it has no effect when n is not
// lower than the current length.
func (v *Vec[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}

	if n < v.len {
		v.len = n
	}
}

// Clear empties the vector.
func (v *Vec[T]) Clear() {
	v.len = 0
}

// Slice returns the vector contents as a view over its storage.
func (v *Vec[T]) Slice() []T {
	return v.storage[:v.len:v.len]
}

// All returns an iterator over index/element pairs.
func (v *Vec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.len; i++ {
			if !yield(i, v.storage[i]) {
				return
			}
		}
	}
}
