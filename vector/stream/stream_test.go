// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/vecdoc/base/fingerprint"
	"cogentcore.org/vecdoc/vector"
)

func sampleItems() []vector.Item {
	fp := fingerprint.FromPair(11, 22)
	return []vector.Item{
		vector.NoneItem{},
		vector.TransformedRef{Transform: vector.Translate(1, 2), Ref: fp},
		vector.GroupItem{Children: []vector.PositionedRef{
			{Pos: vector.Pt(0, 0), Ref: fp},
			{Pos: vector.Pt(3, 4), Ref: fingerprint.FromPair(5, 0)},
		}},
		vector.TextItem{
			Shape: vector.TextShape{
				Font: 1, Dir: vector.DirLTR, Size: 12,
				Styles: []vector.PathStyle{{Kind: vector.StyleFill, Paint: "#000000"}},
			},
			Content: vector.TextContent{
				Text:   "ffi",
				Glyphs: []vector.GlyphTriple{{Offset: 0, Advance: 10, Glyph: 42}},
			},
		},
		vector.PathItem{
			D:    "M 0 0 L 1 1 Z ",
			Size: vector.Sz(1, 1),
			Styles: []vector.PathStyle{
				{Kind: vector.StyleStroke, Paint: "#ff0000"},
				{Kind: vector.StyleStrokeWidth, Thickness: 2},
				{Kind: vector.StyleDashArray, Dash: []vector.Scalar{1, 2}},
			},
		},
		vector.ImageItem{
			Image: vector.Image{
				Data:   []byte{1, 2, 3},
				Format: "png",
				Size:   vector.Axes[uint32]{X: 2, Y: 2},
				Hash:   fingerprint.FromPair(9, 9),
				Attrs:  []vector.ImageAttr{{Kind: vector.ImageAttrAlt, Value: "figure"}},
			},
			Size: vector.Sz(20, 20),
		},
		vector.LinkItem{Href: "https://example.org", Size: vector.Sz(10, 10)},
		vector.ContentHintItem{Hint: '\n'},
		vector.Color32Item{Space: vector.SpaceOklch, Channels: [4]vector.Scalar{1, 0.5, 0.25, 1}},
		vector.GradientItem{
			GradKind: vector.GradientLinear,
			Stops: []vector.GradientStop{
				{Color: vector.ColorItem{R: 255, A: 255}, Offset: 0},
				{Color: vector.ColorItem{B: 255, A: 255}, Offset: 1},
			},
		},
		vector.PatternItem{Frame: fp, Size: vector.Sz(4, 4), Repeat: true},
		vector.ColorTransformItem{Transform: vector.Identity(), Ref: fp},
	}
}

func TestItemRoundtrip(t *testing.T) {
	for _, it := range sampleItems() {
		var w Writer
		EncodeItem(&w, it)
		r := NewReader(w.Bytes())
		back := DecodeItem(r)
		require.NoError(t, r.Err())
		assert.Equal(t, 0, r.Rest())
		assert.Equal(t, it, back, "kind %d", it.Kind())
	}
}

func TestCanonicalBytes(t *testing.T) {
	// semantically equal items produce byte-equal encodings
	a := vector.PathItem{D: "M 0 0 Z ", Size: vector.Sz(1, 2)}
	b := vector.PathItem{D: "M 0 0 Z ", Size: vector.Sz(1, 2)}
	assert.Equal(t, ItemBytes(a), ItemBytes(b))

	c := vector.PathItem{D: "M 0 1 Z ", Size: vector.Sz(1, 2)}
	assert.NotEqual(t, ItemBytes(a), ItemBytes(c))

	// the payload excludes the kind tag; tagged encodings differ by
	// exactly that one byte
	var w Writer
	EncodeItem(&w, a)
	assert.Equal(t, append([]byte{byte(vector.KindPath)}, ItemBytes(a)...), w.Bytes())
}

func TestModuleRoundtrip(t *testing.T) {
	fp := fingerprint.FromPair(1, 2)
	var m FlatModule
	m.Push(Metadata{Kind: MetaGC, GC: []fingerprint.Fingerprint{fp}})
	m.Push(Metadata{Kind: MetaItems, Items: []ItemEntry{
		{Fingerprint: fp, Item: vector.PathItem{D: "M 0 0 Z "}},
	}})
	m.Push(Metadata{Kind: MetaFont, Fonts: []vector.FontInfo{
		{Fingerprint: fp, Family: "Test", UnitsPerEm: 1000},
	}})
	m.Push(Metadata{Kind: MetaGlyph, Glyphs: []GlyphEntry{
		{Ref: vector.GlyphRef{Font: 0, Glyph: 3}, Glyph: vector.GlyphItem{GlyphKind: vector.GlyphOutline, D: "M 1 1 Z "}},
	}})
	m.Push(Metadata{Kind: MetaLayout, Layouts: []vector.LayoutRegion{
		vector.SingleLayout(vector.PagesNode([]vector.Page{{Content: fp, Size: vector.Sz(595, 842)}})),
	}})
	m.Push(Metadata{Kind: MetaSourceMapping, SourceMapping: []vector.SourceMappingNode{
		{SourceKind: vector.SourcePage, Span: 77},
		{SourceKind: vector.SourceGroup, Children: []uint64{0, 1}},
	}})
	m.Push(Metadata{Kind: MetaBuildInfo, BuildInfo: BuildInfo{Compiler: "vecdoc", Version: "0.5.0"}})

	data := m.Encode()
	back, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, &m, back)

	// canonical: re-encoding is byte identical
	assert.Equal(t, data, back.Encode())
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte("not a module"))
	assert.Error(t, err)

	var m FlatModule
	m.Push(Metadata{Kind: MetaGC})
	data := m.Encode()
	_, err = Decode(data[:len(data)-2])
	assert.Error(t, err)

	// unknown metadata tag
	bad := append([]byte{}, data...)
	bad[len(Magic)+8] = 0xff
	_, err = Decode(bad)
	assert.Error(t, err)
}
