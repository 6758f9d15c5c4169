// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package incr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/vecdoc/base/fingerprint"
	"cogentcore.org/vecdoc/vector"
	"cogentcore.org/vecdoc/vector/stream"
)

func framed(m *stream.FlatModule) []byte {
	return append([]byte(DeltaPrefix), m.Encode()...)
}

func TestMergeRejectsUnframed(t *testing.T) {
	c := NewDocClient()
	assert.Error(t, c.MergeDelta([]byte("garbage")))
	var m stream.FlatModule
	assert.NoError(t, c.MergeDelta(framed(&m)))
}

func TestGCAppliedBeforeInsert(t *testing.T) {
	fp := fingerprint.FromPair(1, 1)
	c := NewDocClient()

	var m1 stream.FlatModule
	m1.Push(stream.Metadata{Kind: stream.MetaItems, Items: []stream.ItemEntry{
		{Fingerprint: fp, Item: vector.PathItem{D: "M 0 0 Z "}},
	}})
	require.NoError(t, c.MergeDelta(framed(&m1)))
	require.Len(t, c.Module.Items, 1)

	// a fingerprint may be removed and re-added within one delta:
	// the gc entry precedes the insert, so the item survives
	var m2 stream.FlatModule
	m2.Push(stream.Metadata{Kind: stream.MetaGC, GC: []fingerprint.Fingerprint{fp}})
	m2.Push(stream.Metadata{Kind: stream.MetaItems, Items: []stream.ItemEntry{
		{Fingerprint: fp, Item: vector.PathItem{D: "M 0 0 Z "}},
	}})
	require.NoError(t, c.MergeDelta(framed(&m2)))
	assert.Len(t, c.Module.Items, 1)

	// gc of an absent fingerprint is ignored
	var m3 stream.FlatModule
	m3.Push(stream.Metadata{Kind: stream.MetaGC, GC: []fingerprint.Fingerprint{
		fingerprint.FromPair(9, 9),
	}})
	require.NoError(t, c.MergeDelta(framed(&m3)))
	assert.Len(t, c.Module.Items, 1)
}

func TestIndirectLayoutResolution(t *testing.T) {
	c := NewDocClient()
	pages := []vector.Page{{Content: fingerprint.FromPair(1, 0), Size: vector.Sz(10, 10)}}

	var m stream.FlatModule
	m.Push(stream.Metadata{Kind: stream.MetaLayout, Layouts: []vector.LayoutRegion{{
		Kind: "width",
		Layouts: []vector.LayoutEntry{
			{Scalar: 400, Node: vector.PagesNode(pages)},
			{Scalar: 800, Node: vector.LayoutRegionNode{NodeKind: vector.LayoutIndirect, Indirect: 0}},
		},
	}}})
	require.NoError(t, c.MergeDelta(framed(&m)))

	// selecting the indirection lands on the page node it chains to
	c.SetLayout(c.Layouts[0].Layouts[1].Node)
	assert.Equal(t, pages, c.Pages())
}

func TestInvalidGlyphFontIndex(t *testing.T) {
	c := NewDocClient()
	var m stream.FlatModule
	m.Push(stream.Metadata{Kind: stream.MetaGlyph, Glyphs: []stream.GlyphEntry{
		{Ref: vector.GlyphRef{Font: 3, Glyph: 0}},
	}})
	assert.Error(t, c.MergeDelta(framed(&m)))
}
