// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc2vec

import (
	"strings"
	"sync"

	"cogentcore.org/vecdoc/base/fingerprint"
	"cogentcore.org/vecdoc/document"
	"cogentcore.org/vecdoc/fontkit"
	"cogentcore.org/vecdoc/vector"
	"cogentcore.org/vecdoc/vector/stream"
)

// fontState tracks one registered font across a pass: the growing
// font item with packed glyph payloads and the glyph entries not yet
// drained into a delta.
type fontState struct {
	face *fontkit.Face

	mu        sync.Mutex
	item      vector.FontItem
	newGlyphs []stream.GlyphEntry
}

func newFontState(face *fontkit.Face) *fontState {
	return &fontState{
		face: face,
		item: vector.FontItem{
			FontInfo: vector.FontInfo{
				Fingerprint: face.Fingerprint(),
				Family:      face.Family(),
				CapHeight:   vector.Scalar(face.CapHeight()),
				Ascender:    vector.Scalar(face.Ascender()),
				Descender:   vector.Scalar(face.Descender()),
				UnitsPerEm:  vector.Scalar(face.UnitsPerEm()),
			},
		},
	}
}

// snapshot returns a copy of the font item under the state's lock.
func (fs *fontState) snapshot() *vector.FontItem {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	cp := fs.item
	cp.Glyphs = append([]vector.GlyphItem(nil), fs.item.Glyphs...)
	cp.GlyphCov = append(vector.BitVec(nil), fs.item.GlyphCov...)
	return &cp
}

// RegisterFont registers the face once per pass, returning its index
// into the module's font table.
func (p *Pass) RegisterFont(face *fontkit.Face) uint32 {
	p.fontMu.Lock()
	defer p.fontMu.Unlock()
	if idx, ok := p.fontIndex[face.Fingerprint()]; ok {
		return idx
	}
	idx := uint32(len(p.fonts))
	p.fonts = append(p.fonts, newFontState(face))
	p.fontIndex[face.Fingerprint()] = idx
	return idx
}

// text lowers a shaped text run: the run is decomposed into
// (offset, advance, glyph) triples, the font is registered, and each
// referenced glyph is packed on demand.
func (p *Pass) text(v *document.TextItem) fingerprint.Fingerprint {
	fontRef := p.RegisterFont(v.Face)

	glyphs := make([]vector.GlyphTriple, len(v.Glyphs))
	for i, g := range v.Glyphs {
		glyphs[i] = vector.GlyphTriple{
			Offset:  vector.Scalar(g.XOffset),
			Advance: vector.Scalar(g.XAdvance),
			Glyph:   g.ID,
		}
		p.packGlyph(fontRef, v.Face, g.ID)
	}

	item := vector.TextItem{
		Shape: vector.TextShape{
			Font:   fontRef,
			Dir:    vector.Direction(v.Dir),
			Size:   vector.Scalar(v.Size),
			Styles: []vector.PathStyle{{Kind: vector.StyleFill, Paint: p.paint(v.Fill)}},
		},
		Content: vector.TextContent{
			Text:   p.runText(v),
			Glyphs: glyphs,
		},
	}
	return p.Intern(item)
}

// runText returns the utf-8 content covering the run's full original
// range. When the engine did not carry the text through, it is
// reconstructed from the glyphs: ligature glyphs expand to their
// component string through the font's resolver.
func (p *Pass) runText(v *document.TextItem) string {
	if v.Text != "" {
		return v.Text
	}
	var b strings.Builder
	lig := v.Face.Ligatures()
	for _, g := range v.Glyphs {
		if s, ok := p.Provider.LigatureGlyph(v.Face, g.ID); ok {
			b.WriteString(s)
			continue
		}
		if r, ok := lig.Char(g.ID); ok {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// packGlyph extracts and installs the payload for one glyph of a
// registered font, if not already covered. Extraction order is svg,
// bitmap, outline; a glyph with no extractable data is packed as a
// tombstone so it is not retried.
func (p *Pass) packGlyph(fontRef uint32, face *fontkit.Face, id uint32) {
	// the slice header may be appended to by concurrent registration
	p.fontMu.Lock()
	fs := p.fonts[fontRef]
	p.fontMu.Unlock()
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.item.Covered(id) {
		return
	}
	g := p.lowerGlyph(face, id)
	fs.item.SetGlyph(id, g)
	fs.newGlyphs = append(fs.newGlyphs, stream.GlyphEntry{
		Ref:   vector.GlyphRef{Font: fontRef, Glyph: id},
		Glyph: g,
	})
}

func (p *Pass) lowerGlyph(face *fontkit.Face, id uint32) vector.GlyphItem {
	if data, ok := p.Provider.SVGGlyph(face, id); ok {
		return vector.GlyphItem{
			GlyphKind: vector.GlyphImage,
			Image: vector.Image{
				Data:   data,
				Format: "svg+xml",
				Hash:   fingerprint.Hash128(data),
			},
			Transform: vector.Identity(),
		}
	}
	if data, w, h, ok := p.Provider.BitmapGlyph(face, id, fontkit.MaxPpem); ok {
		return vector.GlyphItem{
			GlyphKind: vector.GlyphImage,
			Image: vector.Image{
				Data:   data,
				Format: "png",
				Size:   vector.Axes[uint32]{X: uint32(w), Y: uint32(h)},
				Hash:   fingerprint.Hash128(data),
			},
			Transform: vector.Identity(),
		}
	}
	if d, ok := p.Provider.OutlineGlyph(face, id); ok {
		return vector.GlyphItem{GlyphKind: vector.GlyphOutline, D: d}
	}
	return vector.GlyphItem{GlyphKind: vector.GlyphNone}
}
