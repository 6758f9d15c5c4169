// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stream implements the canonical binary serialization of the
// vector IR: the per-item encoding that fingerprints are computed
// over, and the framed FlatModule format exchanged between the
// incremental server and client.
//
// All integers are little-endian; variable-length vectors and strings
// are u32 length-prefixed. The encoding is canonical: two semantically
// equal values produce byte-equal encodings, which fingerprint
// stability across processes requires.
package stream

import (
	"encoding/binary"
	"fmt"
	"math"

	"cogentcore.org/vecdoc/base/fingerprint"
	"cogentcore.org/vecdoc/vector"
)

func floatFromBits(bits uint32) float32 {
	return math.Float32frombits(bits)
}

// Writer accumulates a canonical little-endian encoding.
type Writer struct {
	buf []byte
}

// Bytes returns the encoded bytes.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written.
func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) U8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) U32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) U64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *Writer) Raw(b []byte) {
	w.buf = append(w.buf, b...)
}

// Blob writes a u32 length-prefixed byte string.
func (w *Writer) Blob(b []byte) {
	w.U32(uint32(len(b)))
	w.Raw(b)
}

// Str writes a u32 length-prefixed utf-8 string.
func (w *Writer) Str(s string) {
	w.U32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *Writer) Scalar(s vector.Scalar) {
	w.U32(s.Bits())
}

func (w *Writer) Point(p vector.Point) {
	w.Scalar(p.X)
	w.Scalar(p.Y)
}

func (w *Writer) Size(s vector.Size) {
	w.Scalar(s.X)
	w.Scalar(s.Y)
}

func (w *Writer) Transform(t vector.Transform) {
	w.Scalar(t.SX)
	w.Scalar(t.KY)
	w.Scalar(t.KX)
	w.Scalar(t.SY)
	w.Scalar(t.TX)
	w.Scalar(t.TY)
}

func (w *Writer) Fingerprint(fp fingerprint.Fingerprint) {
	w.U64(fp.Lo)
	w.U64(fp.Hi)
}

// Reader decodes a canonical little-endian encoding. The first decode
// failure latches into Err and subsequent reads return zero values.
type Reader struct {
	data []byte
	pos  int
	err  error
}

// NewReader returns a reader over the given bytes.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Err returns the first decode error, if any.
func (r *Reader) Err() error { return r.err }

// Rest returns the number of unread bytes.
func (r *Reader) Rest() int { return len(r.data) - r.pos }

func (r *Reader) fail(what string) {
	if r.err == nil {
		r.err = fmt.Errorf("stream: truncated input reading %s at offset %d", what, r.pos)
	}
}

func (r *Reader) U8() uint8 {
	if r.err != nil || r.pos+1 > len(r.data) {
		r.fail("u8")
		return 0
	}
	v := r.data[r.pos]
	r.pos++
	return v
}

func (r *Reader) U32() uint32 {
	if r.err != nil || r.pos+4 > len(r.data) {
		r.fail("u32")
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func (r *Reader) U64() uint64 {
	if r.err != nil || r.pos+8 > len(r.data) {
		r.fail("u64")
		return 0
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v
}

func (r *Reader) Raw(n int) []byte {
	if r.err != nil || n < 0 || r.pos+n > len(r.data) {
		r.fail("bytes")
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

// Blob reads a u32 length-prefixed byte string, copying it out of the
// input buffer.
func (r *Reader) Blob() []byte {
	n := int(r.U32())
	b := r.Raw(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Str reads a u32 length-prefixed utf-8 string.
func (r *Reader) Str() string {
	n := int(r.U32())
	return string(r.Raw(n))
}

func (r *Reader) Scalar() vector.Scalar {
	return vector.Scalar(floatFromBits(r.U32()))
}

func (r *Reader) Point() vector.Point {
	x := r.Scalar()
	y := r.Scalar()
	return vector.Point{X: x, Y: y}
}

func (r *Reader) Size() vector.Size {
	x := r.Scalar()
	y := r.Scalar()
	return vector.Size{X: x, Y: y}
}

func (r *Reader) Transform() vector.Transform {
	var t vector.Transform
	t.SX = r.Scalar()
	t.KY = r.Scalar()
	t.KX = r.Scalar()
	t.SY = r.Scalar()
	t.TX = r.Scalar()
	t.TY = r.Scalar()
	return t
}

func (r *Reader) Fingerprint() fingerprint.Fingerprint {
	lo := r.U64()
	hi := r.U64()
	return fingerprint.FromPair(lo, hi)
}
