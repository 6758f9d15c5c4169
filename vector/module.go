// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vector

import (
	"fmt"

	"cogentcore.org/vecdoc/base/fingerprint"
)

// Page is a top-level root reference: the fingerprint of the page
// content item and the page size.
type Page struct {
	Content fingerprint.Fingerprint
	Size    Size
}

// Module is the content-addressed store produced by lowering:
// the item arena keyed by fingerprint, the ordered glyph store
// (fonts with packed glyph payloads), and the font descriptor table.
type Module struct {
	// Items maps fingerprints to vector items. Keys are unique;
	// insertion order is irrelevant.
	Items map[fingerprint.Fingerprint]Item

	// Glyphs is the ordered sequence of fonts with glyph payloads;
	// glyphs are referenced as (font index, glyph index).
	Glyphs []*FontItem

	// Fonts is the table of font descriptors without glyph payloads.
	Fonts []FontInfo
}

// NewModule returns an empty module.
func NewModule() *Module {
	return &Module{Items: make(map[fingerprint.Fingerprint]Item)}
}

// Get returns the item with the given fingerprint, if present.
func (m *Module) Get(fp fingerprint.Fingerprint) (Item, bool) {
	it, ok := m.Items[fp]
	return it, ok
}

// Glyph resolves a glyph reference, reporting whether it is valid.
func (m *Module) Glyph(ref GlyphRef) (GlyphItem, bool) {
	if int(ref.Font) >= len(m.Glyphs) {
		return GlyphItem{}, false
	}
	fi := m.Glyphs[ref.Font]
	if int(ref.Glyph) >= len(fi.Glyphs) {
		return GlyphItem{}, false
	}
	return fi.Glyphs[ref.Glyph], true
}

// CheckClosure verifies referential closure: every fingerprint
// referenced by any item in the store resolves to an entry. A
// dangling reference is an invariant violation and is returned as an
// error for the caller to treat as fatal.
func (m *Module) CheckClosure() error {
	var err error
	for fp, it := range m.Items {
		Refs(it, func(ref fingerprint.Fingerprint) {
			if err != nil {
				return
			}
			if _, ok := m.Items[ref]; !ok {
				err = fmt.Errorf("module: dangling reference %s from item %s", ref.SVGID("fp"), fp.SVGID("fp"))
			}
		})
	}
	return err
}
