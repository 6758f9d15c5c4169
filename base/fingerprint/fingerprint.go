// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fingerprint implements 128-bit content addresses for vector
// items, with explicit collision detection and a deterministic encoding
// into identifier strings safe for XML and CSS namespaces.
package fingerprint

import (
	"encoding/base64"
	"encoding/binary"
)

// Fingerprint is a 128-bit content hash, split into two 64-bit halves.
// It provides a stable identity for every vector item and glyph.
// Equal fingerprints imply byte-equal canonical encodings; the
// [Builder] enforces this by retaining the hashed bytes.
type Fingerprint struct {
	Lo uint64
	Hi uint64
}

// FromPair returns the fingerprint with the given halves.
func FromPair(lo, hi uint64) Fingerprint {
	return Fingerprint{Lo: lo, Hi: hi}
}

// Hash128 returns the fingerprint of the given bytes,
// using SipHash-1-3 with a zero key.
func Hash128(data []byte) Fingerprint {
	lo, hi := siphash13(0, 0, data)
	return Fingerprint{Lo: lo, Hi: hi}
}

// IsZero reports whether the fingerprint is the zero value,
// which is never produced for a non-empty encoding and serves
// as the absent marker.
func (fp Fingerprint) IsZero() bool {
	return fp.Lo == 0 && fp.Hi == 0
}

// SVGID encodes the fingerprint as an identifier string with the given
// prefix, safe for use as an XML id or CSS selector. The low half is
// base64 encoded without padding; the high half follows with its
// trailing zero bytes dropped, and is omitted entirely when zero.
// Note that the entire document shares one namespace for ids.
func (fp Fingerprint) SVGID(prefix string) string {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], fp.Lo)
	id := prefix + base64.StdEncoding.WithPadding(base64.NoPadding).EncodeToString(buf[:])
	if fp.Hi == 0 {
		return id
	}
	binary.LittleEndian.PutUint64(buf[:], fp.Hi)
	n := 8
	for n > 0 && buf[n-1] == 0 {
		n--
	}
	return id + base64.StdEncoding.WithPadding(base64.NoPadding).EncodeToString(buf[:n])
}
