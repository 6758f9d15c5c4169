// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalarBits(t *testing.T) {
	nan := Scalar(math.NaN())
	assert.Equal(t, nan.Bits(), nan.Bits())
	assert.NotEqual(t, Scalar(1).Bits(), Scalar(2).Bits())
}

func TestTransform(t *testing.T) {
	id := Identity()
	assert.True(t, id.IsIdentity())
	tr := Translate(3, 4)
	assert.False(t, tr.IsIdentity())

	p := Pt(1, 2)
	assert.Equal(t, Pt(4, 6), tr.Apply(p))
	assert.Equal(t, p, id.Apply(p))

	// composition applies the right operand first
	scale := Transform{SX: 2, SY: 2}
	both := tr.Mul(scale)
	assert.Equal(t, Pt(5, 8), both.Apply(p))
}

func TestRect(t *testing.T) {
	a := RectXYWH(0, 0, 10, 10)
	b := RectXYWH(5, 5, 10, 10)
	c := RectXYWH(20, 20, 1, 1)
	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c))
	assert.False(t, Rect{}.Intersects(a))

	u := a.Union(b)
	assert.Equal(t, Pt(0, 0), u.Lo)
	assert.Equal(t, Pt(15, 15), u.Hi)

	moved := a.Translate(Pt(0, 100))
	assert.False(t, moved.Intersects(a))
}

func TestClampMinSize(t *testing.T) {
	assert.Equal(t, Scalar(1), ClampMinSize(0.25, 1))
	assert.Equal(t, Scalar(5), ClampMinSize(5, 1))
	// at two pixels per point three quarters of a point (1.5px) survives
	assert.Equal(t, Scalar(0.75), ClampMinSize(0.75, 2))
}

func TestBitVec(t *testing.T) {
	var bv BitVec
	assert.False(t, bv.Get(3))
	bv.Set(3)
	bv.Set(64)
	bv.Set(200)
	assert.True(t, bv.Get(3))
	assert.True(t, bv.Get(64))
	assert.True(t, bv.Get(200))
	assert.False(t, bv.Get(4))
	assert.Equal(t, 3, bv.Count())
}
