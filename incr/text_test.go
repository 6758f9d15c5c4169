// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package incr

import (
	"testing"

	lmroman "github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/vecdoc/document"
	"cogentcore.org/vecdoc/fontkit"
	"cogentcore.org/vecdoc/vector"
	vincr "cogentcore.org/vecdoc/vector/incr"
)

func textDoc(t *testing.T, face *fontkit.Face, text string) *document.Document {
	run := &document.TextItem{
		Face: face,
		Size: 12,
		Fill: document.Solid{A: 255},
		Text: text,
	}
	for i, r := range text {
		gid, ok := face.NominalGlyph(r)
		require.True(t, ok, "no glyph for %q", r)
		run.Glyphs = append(run.Glyphs, document.Glyph{
			ID:       gid,
			XAdvance: 6,
			Cluster:  i,
		})
	}
	frame := document.Frame{
		Size:  document.Size{W: 100, H: 40},
		Items: []document.FrameEntry{{Item: run}},
	}
	return &document.Document{Pages: []document.PageFrame{{Frame: frame, Span: 3}}}
}

func TestTextDeltaAddsGlyphCoverage(t *testing.T) {
	face, err := fontkit.NewFace(lmroman.TTF, 0)
	require.NoError(t, err)

	s := NewServer()
	c := vincr.NewDocClient()

	require.NoError(t, c.MergeDelta(s.PackDelta(textDoc(t, face, "Hi"))))
	require.Len(t, c.Module.Fonts, 1)
	assert.Equal(t, face.Family(), c.Module.Fonts[0].Family)
	require.Len(t, c.Module.Glyphs, 1)

	gidH, _ := face.NominalGlyph('H')
	gidI, _ := face.NominalGlyph('i')
	gidS, _ := face.NominalGlyph('s')
	fi := c.Module.Glyphs[0]
	assert.True(t, fi.Covered(gidH))
	assert.True(t, fi.Covered(gidI))
	assert.False(t, fi.Covered(gidS))

	// packed outline glyphs resolve through the glyph reference
	g, ok := c.Module.Glyph(vector.GlyphRef{Font: 0, Glyph: gidH})
	require.True(t, ok)
	assert.Equal(t, vector.GlyphOutline, g.GlyphKind)
	assert.NotEmpty(t, g.D)

	// an appended character arrives as new coverage, without
	// resending the font
	fontsBefore := len(c.Module.Fonts)
	require.NoError(t, c.MergeDelta(s.PackDelta(textDoc(t, face, "His"))))
	assert.Equal(t, fontsBefore, len(c.Module.Fonts))
	assert.True(t, c.Module.Glyphs[0].Covered(gidS))

	// the text item carries the full utf-8 range and one triple per
	// glyph
	var text *vector.TextItem
	for _, it := range c.Module.Items {
		if ti, ok := it.(vector.TextItem); ok && ti.Content.Text == "His" {
			text = &ti
		}
	}
	require.NotNil(t, text)
	assert.Len(t, text.Content.Glyphs, 3)
	assert.Equal(t, vector.Scalar(18), text.Width())
}
