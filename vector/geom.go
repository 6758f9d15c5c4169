// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vector defines the content-addressed vector intermediate
// representation: geometry scalars, the VecItem sum, fonts and glyph
// payloads, the module store, pages, and the layout tree.
package vector

import (
	"math"

	"github.com/chewxy/math32"
)

// Scalar is the 32-bit float quantity used for all geometry in the
// vector IR. Values compare by bit pattern for hashing purposes, so a
// NaN is equal to itself; use [Scalar.Bits] when feeding a hasher.
type Scalar float32

// Bits returns the IEEE 754 bit pattern of the scalar, under which
// NaN == NaN, the equality used for content addressing.
func (s Scalar) Bits() uint32 {
	return math.Float32bits(float32(s))
}

// Float returns the scalar as a float32.
func (s Scalar) Float() float32 {
	return float32(s)
}

// Point is an x, y coordinate pair.
type Point struct {
	X Scalar
	Y Scalar
}

// Pt returns the point at the given coordinates.
func Pt(x, y float32) Point {
	return Point{Scalar(x), Scalar(y)}
}

// Add returns the point translated by o.
func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y}
}

// Axes is a pair of values in the two layout dimensions.
type Axes[T any] struct {
	X T
	Y T
}

// Size is the width, height pair of a page or bounding box.
type Size = Axes[Scalar]

// Sz returns the size with the given width and height.
func Sz(x, y float32) Size {
	return Size{Scalar(x), Scalar(y)}
}

// Transform is the 2D affine transform matrix
// (sx, ky, kx, sy, tx, ty).
type Transform struct {
	SX Scalar
	KY Scalar
	KX Scalar
	SY Scalar
	TX Scalar
	TY Scalar
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{SX: 1, SY: 1}
}

// Translate returns a pure translation transform.
func Translate(x, y Scalar) Transform {
	return Transform{SX: 1, SY: 1, TX: x, TY: y}
}

// IsIdentity reports whether t is the identity transform.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// Mul returns the transform applying o first and then t.
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		SX: t.SX*o.SX + t.KX*o.KY,
		KY: t.KY*o.SX + t.SY*o.KY,
		KX: t.SX*o.KX + t.KX*o.SY,
		SY: t.KY*o.KX + t.SY*o.SY,
		TX: t.SX*o.TX + t.KX*o.TY + t.TX,
		TY: t.KY*o.TX + t.SY*o.TY + t.TY,
	}
}

// Apply returns the point p transformed by t.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.SX*p.X + t.KX*p.Y + t.TX,
		Y: t.KY*p.X + t.SY*p.Y + t.TY,
	}
}

// Rect is an axis-aligned rectangle given by its low and high corners.
type Rect struct {
	Lo Point
	Hi Point
}

// RectXYWH returns the rectangle at x, y with width w and height h.
func RectXYWH(x, y, w, h float32) Rect {
	return Rect{Lo: Pt(x, y), Hi: Pt(x+w, y+h)}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Hi.X <= r.Lo.X || r.Hi.Y <= r.Lo.Y
}

// Translate returns the rectangle moved by the given point.
func (r Rect) Translate(p Point) Rect {
	return Rect{Lo: r.Lo.Add(p), Hi: r.Hi.Add(p)}
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.Lo.X < o.Hi.X && o.Lo.X < r.Hi.X &&
		r.Lo.Y < o.Hi.Y && o.Lo.Y < r.Hi.Y
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Rect{
		Lo: Point{Scalar(math32.Min(r.Lo.X.Float(), o.Lo.X.Float())), Scalar(math32.Min(r.Lo.Y.Float(), o.Lo.Y.Float()))},
		Hi: Point{Scalar(math32.Max(r.Hi.X.Float(), o.Hi.X.Float())), Scalar(math32.Max(r.Hi.Y.Float(), o.Hi.Y.Float()))},
	}
}

// ClampMinSize clamps widths and heights below one device pixel to
// one, after pixel-per-point scaling.
func ClampMinSize(v Scalar, pxPerPt float32) Scalar {
	px := v.Float() * pxPerPt
	if math32.Abs(px) < 1 {
		return Scalar(1 / pxPerPt)
	}
	return v
}
