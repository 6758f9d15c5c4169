// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lazy

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeOnce(t *testing.T) {
	var v Val[int]
	assert.False(t, v.Done())

	calls := 0
	got, err := v.Compute(func() (int, error) {
		calls++
		return 42, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = v.Compute(func() (int, error) {
		calls++
		return 7, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
	assert.True(t, v.Done())
}

func TestErrorReplay(t *testing.T) {
	var v Val[string]
	boom := errors.New("boom")

	_, err1 := v.Compute(func() (string, error) { return "", boom })
	assert.Same(t, boom, err1)

	// the error is memoized exactly like a value
	_, err2 := v.Compute(func() (string, error) { return "fine", nil })
	assert.Same(t, boom, err2)
}

func TestConcurrentSingleInit(t *testing.T) {
	var v Val[int]
	var calls sync.Map
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, _ := v.Compute(func() (int, error) {
				calls.Store(i, true)
				return i, nil
			})
			first, _, _ := v.Get()
			assert.Equal(t, first, got)
		}(i)
	}
	wg.Wait()
	n := 0
	calls.Range(func(any, any) bool { n++; return true })
	assert.Equal(t, 1, n)
}
