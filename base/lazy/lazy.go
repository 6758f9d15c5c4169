// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lazy implements a single-initializer memoized cell with
// error replay: the first caller computes the value, and every
// subsequent caller observes the same result, including the same
// error. Cells are safe for concurrent use.
package lazy

import "sync"

// Val is a single-initializer memoized cell. The zero value is an
// uninitialized cell.
type Val[T any] struct {
	once sync.Once
	val  T
	err  error
	done bool
}

// Compute returns the memoized result, running f to produce it if
// the cell is still uninitialized. An error returned by f is
// memoized the same way as a value and replayed to later callers.
func (v *Val[T]) Compute(f func() (T, error)) (T, error) {
	v.once.Do(func() {
		v.val, v.err = f()
		v.done = true
	})
	return v.val, v.err
}

// Done reports whether the cell has been initialized. It is only
// advisory under concurrent initialization.
func (v *Val[T]) Done() bool {
	return v.done
}

// Get returns the memoized result and whether the cell has been
// initialized, without computing anything.
func (v *Val[T]) Get() (T, error, bool) {
	return v.val, v.err, v.done
}
