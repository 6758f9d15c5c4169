// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash128Stable(t *testing.T) {
	a := Hash128([]byte("hello"))
	b := Hash128([]byte("hello"))
	assert.Equal(t, a, b)
	c := Hash128([]byte("hello!"))
	assert.NotEqual(t, a, c)
	assert.False(t, a.IsZero())
}

func TestHash128Lengths(t *testing.T) {
	// exercise all tail lengths around the 8-byte word boundary
	data := []byte("0123456789abcdef0")
	seen := map[Fingerprint]bool{}
	for i := 0; i <= len(data); i++ {
		fp := Hash128(data[:i])
		assert.False(t, seen[fp], "length %d collided", i)
		seen[fp] = true
	}
}

func TestSVGID(t *testing.T) {
	assert.Equal(t, "gAAAAAAAAAAA", Fingerprint{}.SVGID("g"))

	fp := FromPair(1, 0)
	id := fp.SVGID("p")
	assert.Equal(t, "pAQAAAAAAAAA", id)

	// high half present: encoded with trailing zeros dropped
	hi := FromPair(1, 1)
	idhi := hi.SVGID("p")
	assert.Equal(t, "pAQAAAAAAAAAAQ", idhi)

	// ids are distinct per fingerprint
	assert.NotEqual(t, id, idhi)
}

func TestBuilderDedup(t *testing.T) {
	var b Builder
	fp1 := b.Resolve(3, []byte("abc"))
	fp2 := b.Resolve(3, []byte("abc"))
	assert.Equal(t, fp1, fp2)
	assert.True(t, b.Has(fp1))

	// different tag, same bytes: distinct fingerprint
	fp3 := b.Resolve(4, []byte("abc"))
	assert.NotEqual(t, fp1, fp3)
}

func TestBuilderCollisionPanics(t *testing.T) {
	var b Builder
	fp := b.Resolve(1, []byte("data"))

	// inject a forged entry mapping the same fingerprint to other
	// bytes, simulating a 128-bit collision
	b.mu.Lock()
	b.seen[fp] = []byte{1, 'o', 't', 'h', 'e', 'r'}
	b.mu.Unlock()

	assert.Panics(t, func() {
		b.Resolve(1, []byte("data"))
	})
}
