// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fontkit

import (
	"strconv"
	"strings"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
)

// GlyphProvider extracts glyph data from a face. Implementations
// return ok == false when the face has no data of the requested kind
// for the glyph; lowering downgrades such glyphs instead of failing.
type GlyphProvider interface {
	// SVGGlyph returns the raw SVG document for the glyph, if any.
	SVGGlyph(fc *Face, id uint32) ([]byte, bool)

	// BitmapGlyph returns the embedded bitmap for the glyph, if any.
	// Only PNG payloads are returned. The ppem selects the best fit
	// strike; MaxPpem requests the best quality.
	BitmapGlyph(fc *Face, id uint32, ppem uint16) (data []byte, w, h int, ok bool)

	// OutlineGlyph returns the glyph outline as SVG path commands.
	OutlineGlyph(fc *Face, id uint32) (string, bool)

	// LigatureGlyph returns the unicode string of a ligature glyph's
	// components, if the glyph is a ligature.
	LigatureGlyph(fc *Face, id uint32) (string, bool)
}

// MaxPpem requests the best quality bitmap strike.
const MaxPpem = ^uint16(0)

// FontGlyphProvider is the default [GlyphProvider], reading the font
// tables directly.
type FontGlyphProvider struct{}

// SVGGlyph returns the raw SVG document for the glyph.
// The returned data is possibly compressed.
func (FontGlyphProvider) SVGGlyph(fc *Face, id uint32) ([]byte, bool) {
	data, ok := fc.Face.GlyphData(font.GID(id)).(font.GlyphSVG)
	if !ok {
		return nil, false
	}
	return data.Source, true
}

// BitmapGlyph returns the embedded PNG bitmap for the glyph. The ppem
// is not consulted: the bitmap the face reports for the glyph is
// returned whatever size is asked for.
func (FontGlyphProvider) BitmapGlyph(fc *Face, id uint32, ppem uint16) ([]byte, int, int, bool) {
	data, ok := fc.Face.GlyphData(font.GID(id)).(font.GlyphBitmap)
	if !ok {
		return nil, 0, 0, false
	}
	if data.Format != font.PNG {
		return nil, 0, 0, false
	}
	return data.Data, data.Width, data.Height, true
}

// OutlineGlyph returns the glyph outline as SVG path commands in font
// units.
func (FontGlyphProvider) OutlineGlyph(fc *Face, id uint32) (string, bool) {
	data, ok := fc.Face.GlyphData(font.GID(id)).(font.GlyphOutline)
	if !ok || len(data.Segments) == 0 {
		return "", false
	}
	return SegmentsPath(data.Segments), true
}

// LigatureGlyph resolves the ligature string through the face's
// memoized resolver.
func (FontGlyphProvider) LigatureGlyph(fc *Face, id uint32) (string, bool) {
	return fc.Ligatures().Resolve(id)
}

// DummyGlyphProvider performs no extraction and always reports no
// data, disabling glyph embedding.
type DummyGlyphProvider struct{}

func (DummyGlyphProvider) SVGGlyph(fc *Face, id uint32) ([]byte, bool) { return nil, false }

func (DummyGlyphProvider) BitmapGlyph(fc *Face, id uint32, ppem uint16) ([]byte, int, int, bool) {
	return nil, 0, 0, false
}

func (DummyGlyphProvider) OutlineGlyph(fc *Face, id uint32) (string, bool) { return "", false }

func (DummyGlyphProvider) LigatureGlyph(fc *Face, id uint32) (string, bool) { return "", false }

// SegmentsPath converts outline segments into SVG path commands.
func SegmentsPath(segs []opentype.Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			b.WriteString("M ")
			writePoint(&b, seg.Args[0])
		case opentype.SegmentOpLineTo:
			b.WriteString("L ")
			writePoint(&b, seg.Args[0])
		case opentype.SegmentOpQuadTo:
			b.WriteString("Q ")
			writePoint(&b, seg.Args[0])
			writePoint(&b, seg.Args[1])
		case opentype.SegmentOpCubeTo:
			b.WriteString("C ")
			writePoint(&b, seg.Args[0])
			writePoint(&b, seg.Args[1])
			writePoint(&b, seg.Args[2])
		}
	}
	if b.Len() > 0 {
		b.WriteString("Z ")
	}
	return b.String()
}

func writePoint(b *strings.Builder, p opentype.SegmentPoint) {
	b.WriteString(strconv.FormatFloat(float64(p.X), 'g', -1, 32))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(float64(p.Y), 'g', -1, 32))
	b.WriteByte(' ')
}
