// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fingerprint

import (
	"encoding/binary"
	"math/bits"
)

// siphash13 computes the 128-bit SipHash-1-3 of data under key
// (k0, k1): one compression round per message word, three
// finalization rounds. The available Go SipHash packages implement
// only the 2-4 variant, so the 1-3 variant is implemented here.
func siphash13(k0, k1 uint64, data []byte) (lo, hi uint64) {
	v0 := k0 ^ 0x736f6d6570736575
	v1 := k1 ^ 0x646f72616e646f6d
	v2 := k0 ^ 0x6c7967656e657261
	v3 := k1 ^ 0x7465646279746573

	// 128-bit output mode
	v1 ^= 0xee

	n := len(data)
	for len(data) >= 8 {
		m := binary.LittleEndian.Uint64(data)
		v3 ^= m
		v0, v1, v2, v3 = sipround(v0, v1, v2, v3)
		v0 ^= m
		data = data[8:]
	}

	var last uint64
	for i := len(data) - 1; i >= 0; i-- {
		last = last<<8 | uint64(data[i])
	}
	last |= uint64(n) << 56

	v3 ^= last
	v0, v1, v2, v3 = sipround(v0, v1, v2, v3)
	v0 ^= last

	v2 ^= 0xee
	for range 3 {
		v0, v1, v2, v3 = sipround(v0, v1, v2, v3)
	}
	lo = v0 ^ v1 ^ v2 ^ v3

	v1 ^= 0xdd
	for range 3 {
		v0, v1, v2, v3 = sipround(v0, v1, v2, v3)
	}
	hi = v0 ^ v1 ^ v2 ^ v3
	return lo, hi
}

func sipround(v0, v1, v2, v3 uint64) (uint64, uint64, uint64, uint64) {
	v0 += v1
	v1 = bits.RotateLeft64(v1, 13)
	v1 ^= v0
	v0 = bits.RotateLeft64(v0, 32)
	v2 += v3
	v3 = bits.RotateLeft64(v3, 16)
	v3 ^= v2
	v0 += v3
	v3 = bits.RotateLeft64(v3, 21)
	v3 ^= v0
	v2 += v1
	v1 = bits.RotateLeft64(v1, 17)
	v1 ^= v2
	v2 = bits.RotateLeft64(v2, 32)
	return v0, v1, v2, v3
}
