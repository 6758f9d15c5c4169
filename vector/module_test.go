// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cogentcore.org/vecdoc/base/fingerprint"
)

func TestModuleClosure(t *testing.T) {
	m := NewModule()
	leaf := fingerprint.FromPair(1, 0)
	root := fingerprint.FromPair(2, 0)
	m.Items[leaf] = PathItem{D: "M 0 0 Z "}
	m.Items[root] = GroupItem{Children: []PositionedRef{{Ref: leaf}}}
	assert.NoError(t, m.CheckClosure())

	dangling := fingerprint.FromPair(3, 0)
	m.Items[root] = GroupItem{Children: []PositionedRef{{Ref: dangling}}}
	assert.Error(t, m.CheckClosure())
}

func TestModuleGlyphRef(t *testing.T) {
	m := NewModule()
	fi := &FontItem{FontInfo: FontInfo{Family: "Test"}}
	fi.SetGlyph(2, GlyphItem{GlyphKind: GlyphOutline, D: "M 0 0 Z "})
	m.Glyphs = append(m.Glyphs, fi)

	_, ok := m.Glyph(GlyphRef{Font: 0, Glyph: 2})
	assert.True(t, ok)
	// glyph 1 exists as a tombstone below the packed glyph
	g, ok := m.Glyph(GlyphRef{Font: 0, Glyph: 1})
	assert.True(t, ok)
	assert.Equal(t, GlyphNone, g.GlyphKind)

	_, ok = m.Glyph(GlyphRef{Font: 0, Glyph: 3})
	assert.False(t, ok)
	_, ok = m.Glyph(GlyphRef{Font: 1, Glyph: 0})
	assert.False(t, ok)

	assert.True(t, fi.Covered(2))
	assert.False(t, fi.Covered(1))
}

func TestRefs(t *testing.T) {
	fp := fingerprint.FromPair(7, 7)
	var got []fingerprint.Fingerprint
	collect := func(f fingerprint.Fingerprint) { got = append(got, f) }

	Refs(TransformedRef{Ref: fp}, collect)
	Refs(PatternItem{Frame: fp}, collect)
	Refs(ColorTransformItem{Ref: fp}, collect)
	Refs(TextItem{}, collect)
	assert.Len(t, got, 3)
}
