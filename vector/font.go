// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vector

import "cogentcore.org/vecdoc/base/fingerprint"

// FontInfo is a font descriptor without glyph payloads, used by
// clients to re-associate glyphs with fonts.
type FontInfo struct {
	// Fingerprint is the stable content address of the font.
	Fingerprint fingerprint.Fingerprint

	// Family is the font family name.
	Family string

	CapHeight  Scalar
	Ascender   Scalar
	Descender  Scalar
	UnitsPerEm Scalar
}

// GlyphKind tags a packed glyph payload.
type GlyphKind uint8

const (
	// GlyphNone marks a glyph with no extractable data.
	GlyphNone GlyphKind = iota

	// GlyphImage is a bitmap or SVG glyph payload.
	GlyphImage

	// GlyphOutline is an outline glyph as SVG path commands.
	GlyphOutline
)

// GlyphItem is one packed per-glyph payload of a [FontItem].
// Exactly the fields implied by Kind are meaningful.
type GlyphItem struct {
	GlyphKind GlyphKind

	// Image payload, for GlyphImage.
	Image     Image
	Transform Transform

	// Outline path d commands, for GlyphOutline.
	D string
}

// FontItem is a font descriptor plus a dense vector of per-glyph
// payloads, indexed by glyph id, and a coverage set indicating which
// glyph ids have been packed.
type FontItem struct {
	FontInfo

	// Glyphs holds the packed per-glyph payloads, indexed by glyph id.
	Glyphs []GlyphItem

	// GlyphCov marks the glyph ids that have been packed.
	GlyphCov BitVec
}

// Info returns the descriptor without glyph payloads.
func (f *FontItem) Info() FontInfo {
	return f.FontInfo
}

// SetGlyph installs the payload for the given glyph id, growing the
// glyph vector as needed and marking coverage. Installation is
// idempotent for equal payloads; coverage may be backfilled when a
// new glyph id appears.
func (f *FontItem) SetGlyph(id uint32, g GlyphItem) {
	for uint32(len(f.Glyphs)) <= id {
		f.Glyphs = append(f.Glyphs, GlyphItem{})
	}
	f.Glyphs[id] = g
	f.GlyphCov.Set(int(id))
}

// Covered reports whether the given glyph id has been packed.
func (f *FontItem) Covered(id uint32) bool {
	return f.GlyphCov.Get(int(id))
}

// GlyphRef identifies a glyph as (font index, glyph index) within a
// module. It is valid iff the font index is within the module's glyph
// store and the glyph index is within that font's glyph vector.
type GlyphRef struct {
	Font  uint32
	Glyph uint32
}
