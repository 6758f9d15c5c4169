// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package atomicctr implements a basic atomic int64 counter,
// used for lifetime and revision counters.
package atomicctr

import (
	"sync/atomic"
)

// Counter implements a basic atomic int64 counter.
// The zero value is ready to use.
type Counter int64

// Add adds to the counter and returns the new value.
func (a *Counter) Add(inc int64) int64 {
	return atomic.AddInt64((*int64)(a), inc)
}

// Inc increments by 1 and returns the new value.
func (a *Counter) Inc() int64 {
	return atomic.AddInt64((*int64)(a), 1)
}

// Value returns the current value.
func (a *Counter) Value() int64 {
	return atomic.LoadInt64((*int64)(a))
}

// Set sets the counter to a new value.
func (a *Counter) Set(val int64) {
	atomic.StoreInt64((*int64)(a), val)
}

// Swap swaps the new value in and returns the old value.
func (a *Counter) Swap(val int64) int64 {
	return atomic.SwapInt64((*int64)(a), val)
}

// CompareAndSwap sets the counter to new only if it still holds old,
// reporting whether the swap happened.
func (a *Counter) CompareAndSwap(old, new int64) bool {
	return atomic.CompareAndSwapInt64((*int64)(a), old, new)
}
