// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stream

import (
	"fmt"

	"cogentcore.org/vecdoc/vector"
)

// ItemBytes returns the canonical payload encoding of the item,
// excluding its kind tag. Fingerprints are computed over the kind tag
// followed by exactly these bytes.
func ItemBytes(it vector.Item) []byte {
	var w Writer
	writeItemPayload(&w, it)
	return w.Bytes()
}

// EncodeItem writes the item's kind tag followed by its canonical
// payload.
func EncodeItem(w *Writer, it vector.Item) {
	w.U8(uint8(it.Kind()))
	writeItemPayload(w, it)
}

func writeItemPayload(w *Writer, it vector.Item) {
	switch v := it.(type) {
	case vector.NoneItem:
	case vector.TransformedRef:
		w.Transform(v.Transform)
		w.Fingerprint(v.Ref)
	case vector.GroupItem:
		w.U32(uint32(len(v.Children)))
		for _, c := range v.Children {
			w.Point(c.Pos)
			w.Fingerprint(c.Ref)
		}
	case vector.TextItem:
		writeTextShape(w, v.Shape)
		w.Str(v.Content.Text)
		w.U32(uint32(len(v.Content.Glyphs)))
		for _, g := range v.Content.Glyphs {
			w.Scalar(g.Offset)
			w.Scalar(g.Advance)
			w.U32(g.Glyph)
		}
	case vector.PathItem:
		w.Str(v.D)
		w.Size(v.Size)
		writeStyles(w, v.Styles)
	case vector.ImageItem:
		writeImage(w, v.Image)
		w.Size(v.Size)
	case vector.LinkItem:
		w.Str(v.Href)
		w.Size(v.Size)
	case vector.ContentHintItem:
		w.U32(uint32(v.Hint))
	case vector.Color32Item:
		w.U8(uint8(v.Space))
		for _, c := range v.Channels {
			w.Scalar(c)
		}
	case vector.GradientItem:
		w.U8(uint8(v.GradKind))
		w.U32(uint32(len(v.Stops)))
		for _, s := range v.Stops {
			writeColor(w, s.Color)
			w.Scalar(s.Offset)
		}
		w.Scalar(v.Angle)
		w.Scalar(v.Radius)
	case vector.PatternItem:
		w.Fingerprint(v.Frame)
		w.Size(v.Size)
		if v.Repeat {
			w.U8(1)
		} else {
			w.U8(0)
		}
	case vector.ColorTransformItem:
		w.Transform(v.Transform)
		w.Fingerprint(v.Ref)
	default:
		panic(fmt.Sprintf("stream: unknown item kind %d", it.Kind()))
	}
}

// DecodeItem reads one tagged item.
func DecodeItem(r *Reader) vector.Item {
	kind := vector.ItemKind(r.U8())
	switch kind {
	case vector.KindNone:
		return vector.NoneItem{}
	case vector.KindItem:
		var v vector.TransformedRef
		v.Transform = r.Transform()
		v.Ref = r.Fingerprint()
		return v
	case vector.KindGroup:
		n := int(r.U32())
		v := vector.GroupItem{}
		for range n {
			var c vector.PositionedRef
			c.Pos = r.Point()
			c.Ref = r.Fingerprint()
			v.Children = append(v.Children, c)
			if r.Err() != nil {
				return nil
			}
		}
		return v
	case vector.KindText:
		var v vector.TextItem
		v.Shape = readTextShape(r)
		v.Content.Text = r.Str()
		n := int(r.U32())
		for range n {
			var g vector.GlyphTriple
			g.Offset = r.Scalar()
			g.Advance = r.Scalar()
			g.Glyph = r.U32()
			v.Content.Glyphs = append(v.Content.Glyphs, g)
			if r.Err() != nil {
				return nil
			}
		}
		return v
	case vector.KindPath:
		var v vector.PathItem
		v.D = r.Str()
		v.Size = r.Size()
		v.Styles = readStyles(r)
		return v
	case vector.KindImage:
		var v vector.ImageItem
		v.Image = readImage(r)
		v.Size = r.Size()
		return v
	case vector.KindLink:
		var v vector.LinkItem
		v.Href = r.Str()
		v.Size = r.Size()
		return v
	case vector.KindContentHint:
		return vector.ContentHintItem{Hint: rune(r.U32())}
	case vector.KindColor32:
		var v vector.Color32Item
		v.Space = vector.ColorSpace(r.U8())
		for i := range v.Channels {
			v.Channels[i] = r.Scalar()
		}
		return v
	case vector.KindGradient:
		var v vector.GradientItem
		v.GradKind = vector.GradientKind(r.U8())
		n := int(r.U32())
		for range n {
			var s vector.GradientStop
			s.Color = readColor(r)
			s.Offset = r.Scalar()
			v.Stops = append(v.Stops, s)
			if r.Err() != nil {
				return nil
			}
		}
		v.Angle = r.Scalar()
		v.Radius = r.Scalar()
		return v
	case vector.KindPattern:
		var v vector.PatternItem
		v.Frame = r.Fingerprint()
		v.Size = r.Size()
		v.Repeat = r.U8() != 0
		return v
	case vector.KindColorTransform:
		var v vector.ColorTransformItem
		v.Transform = r.Transform()
		v.Ref = r.Fingerprint()
		return v
	default:
		if r.err == nil {
			r.err = fmt.Errorf("stream: unknown item tag %d at offset %d", kind, r.pos)
		}
		return nil
	}
}

func writeTextShape(w *Writer, s vector.TextShape) {
	w.U32(s.Font)
	w.U8(uint8(s.Dir))
	w.Scalar(s.Size)
	writeStyles(w, s.Styles)
}

func readTextShape(r *Reader) vector.TextShape {
	var s vector.TextShape
	s.Font = r.U32()
	s.Dir = vector.Direction(r.U8())
	s.Size = r.Scalar()
	s.Styles = readStyles(r)
	return s
}

func writeStyles(w *Writer, styles []vector.PathStyle) {
	w.U32(uint32(len(styles)))
	for _, s := range styles {
		w.U8(uint8(s.Kind))
		w.Str(s.Paint)
		w.Scalar(s.Thickness)
		w.U32(uint32(len(s.Dash)))
		for _, d := range s.Dash {
			w.Scalar(d)
		}
	}
}

func readStyles(r *Reader) []vector.PathStyle {
	n := int(r.U32())
	var styles []vector.PathStyle
	for range n {
		var s vector.PathStyle
		s.Kind = vector.PathStyleKind(r.U8())
		s.Paint = r.Str()
		s.Thickness = r.Scalar()
		dn := int(r.U32())
		for range dn {
			s.Dash = append(s.Dash, r.Scalar())
		}
		styles = append(styles, s)
		if r.Err() != nil {
			return nil
		}
	}
	return styles
}

func writeImage(w *Writer, im vector.Image) {
	w.Blob(im.Data)
	w.Str(im.Format)
	w.U32(im.Size.X)
	w.U32(im.Size.Y)
	w.Fingerprint(im.Hash)
	w.U32(uint32(len(im.Attrs)))
	for _, a := range im.Attrs {
		w.U8(uint8(a.Kind))
		w.Str(a.Value)
	}
}

func readImage(r *Reader) vector.Image {
	var im vector.Image
	im.Data = r.Blob()
	im.Format = r.Str()
	im.Size.X = r.U32()
	im.Size.Y = r.U32()
	im.Hash = r.Fingerprint()
	n := int(r.U32())
	for range n {
		var a vector.ImageAttr
		a.Kind = vector.ImageAttrKind(r.U8())
		a.Value = r.Str()
		im.Attrs = append(im.Attrs, a)
		if r.Err() != nil {
			return vector.Image{}
		}
	}
	return im
}

func writeColor(w *Writer, c vector.ColorItem) {
	w.U8(c.R)
	w.U8(c.G)
	w.U8(c.B)
	w.U8(c.A)
}

func readColor(r *Reader) vector.ColorItem {
	var c vector.ColorItem
	c.R = r.U8()
	c.G = r.U8()
	c.B = r.U8()
	c.A = r.U8()
	return c
}

func writeGlyph(w *Writer, g vector.GlyphItem) {
	w.U8(uint8(g.GlyphKind))
	switch g.GlyphKind {
	case vector.GlyphImage:
		writeImage(w, g.Image)
		w.Transform(g.Transform)
	case vector.GlyphOutline:
		w.Str(g.D)
	}
}

func readGlyph(r *Reader) vector.GlyphItem {
	var g vector.GlyphItem
	g.GlyphKind = vector.GlyphKind(r.U8())
	switch g.GlyphKind {
	case vector.GlyphImage:
		g.Image = readImage(r)
		g.Transform = r.Transform()
	case vector.GlyphOutline:
		g.D = r.Str()
	}
	return g
}

func writeFontInfo(w *Writer, f vector.FontInfo) {
	w.Fingerprint(f.Fingerprint)
	w.Str(f.Family)
	w.Scalar(f.CapHeight)
	w.Scalar(f.Ascender)
	w.Scalar(f.Descender)
	w.Scalar(f.UnitsPerEm)
}

func readFontInfo(r *Reader) vector.FontInfo {
	var f vector.FontInfo
	f.Fingerprint = r.Fingerprint()
	f.Family = r.Str()
	f.CapHeight = r.Scalar()
	f.Ascender = r.Scalar()
	f.Descender = r.Scalar()
	f.UnitsPerEm = r.Scalar()
	return f
}
