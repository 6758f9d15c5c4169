// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fontkit wraps font faces for the lowering pass: face
// parsing and metrics over go-text/typesetting, glyph data providers
// (outline, bitmap, svg), and memoized ligature resolution from the
// GSUB table.
package fontkit

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"

	"cogentcore.org/vecdoc/base/fingerprint"
)

// Face is one font face: the raw font data, the parsed typesetting
// face, cached metrics, and the lazily built ligature resolver.
type Face struct {
	// Data is the raw font file bytes.
	Data []byte

	// Index is the face index within a collection.
	Index int

	// Face is the parsed typesetting face.
	Face *font.Face

	family      string
	fingerprint fingerprint.Fingerprint
	upem        float32
	ascender    float32
	descender   float32
	capHeight   float32

	ligOnce sync.Once
	lig     *LigatureResolver
}

// NewFace parses the face at the given index of the font data.
func NewFace(data []byte, index int) (*Face, error) {
	faces, err := font.ParseTTC(bytes.NewReader(data))
	if err != nil {
		// single face files do not always parse as collections
		f, errf := font.ParseTTF(bytes.NewReader(data))
		if errf != nil {
			return nil, fmt.Errorf("fontkit: cannot parse font: %w", err)
		}
		faces = []*font.Face{f}
	}
	if index < 0 || index >= len(faces) {
		return nil, fmt.Errorf("fontkit: face index %d out of range (%d faces)", index, len(faces))
	}
	fc := &Face{Data: data, Index: index, Face: faces[index]}
	fc.init()
	return fc, nil
}

func (fc *Face) init() {
	f := fc.Face
	fc.family = f.Describe().Family
	fc.upem = float32(f.Upem())
	if fc.upem == 0 {
		fc.upem = 1000
	}
	if ext, ok := f.FontHExtents(); ok {
		fc.ascender = ext.Ascender / fc.upem
		fc.descender = ext.Descender / fc.upem
	}
	// cap height from the extents of 'H', with the ascender as
	// fallback
	if gid, ok := f.NominalGlyph('H'); ok {
		if ge, ok := f.GlyphExtents(gid); ok {
			fc.capHeight = ge.YBearing / fc.upem
		}
	}
	if fc.capHeight == 0 {
		fc.capHeight = fc.ascender
	}
	// the face identity is the content of the font file plus the
	// face index
	var idx [1]byte
	idx[0] = byte(fc.Index)
	fc.fingerprint = fingerprint.Hash128(append(idx[:], fc.Data...))
}

// Family returns the font family name.
func (fc *Face) Family() string { return fc.family }

// Fingerprint returns the stable content address of the face.
func (fc *Face) Fingerprint() fingerprint.Fingerprint { return fc.fingerprint }

// UnitsPerEm returns the design units per em.
func (fc *Face) UnitsPerEm() float32 { return fc.upem }

// Ascender returns the em-normalized ascender.
func (fc *Face) Ascender() float32 { return fc.ascender }

// Descender returns the em-normalized descender.
func (fc *Face) Descender() float32 { return fc.descender }

// CapHeight returns the em-normalized cap height.
func (fc *Face) CapHeight() float32 { return fc.capHeight }

// NominalGlyph returns the glyph id for the given rune.
func (fc *Face) NominalGlyph(r rune) (uint32, bool) {
	gid, ok := fc.Face.NominalGlyph(r)
	return uint32(gid), ok
}

// Ligatures returns the face's ligature resolver, building it on
// first use. The resolver never mutates after the first fill and is
// cached for the lifetime of the face.
func (fc *Face) Ligatures() *LigatureResolver {
	fc.ligOnce.Do(func() {
		fc.lig = newLigatureResolver(fc.Face)
	})
	return fc.lig
}
