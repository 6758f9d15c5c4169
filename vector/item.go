// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vector

import "cogentcore.org/vecdoc/base/fingerprint"

// ItemKind tags the node kinds produced by lowering. The tag values
// are part of the canonical encoding and must not be reordered.
type ItemKind uint8

const (
	// KindNone is a placeholder or gc tombstone.
	KindNone ItemKind = iota

	// KindItem is a transformed reference to another item.
	KindItem

	// KindGroup is an ordered list of positioned child references.
	KindGroup

	// KindText is a shaped text run.
	KindText

	// KindPath is an SVG path with styles.
	KindPath

	// KindImage is an encoded image payload.
	KindImage

	// KindLink is a hyperlink region.
	KindLink

	// KindContentHint is a semantic hint for text flow.
	KindContentHint

	// KindColor32 is a 32-bit-per-channel color resource.
	KindColor32

	// KindGradient is a gradient paint resource.
	KindGradient

	// KindPattern is a pattern paint resource.
	KindPattern

	// KindColorTransform applies a color transform to another item.
	KindColorTransform
)

// Item is a node in the content-addressed vector IR. All concrete
// item types are value types; references between items are
// fingerprints, never pointers, so the item graph has no ownership
// cycles.
type Item interface {
	// Kind returns the type tag of the item.
	Kind() ItemKind
}

// NoneItem is a placeholder or gc tombstone.
type NoneItem struct{}

func (NoneItem) Kind() ItemKind { return KindNone }

// TransformedRef is a transformed reference to another item.
type TransformedRef struct {
	Transform Transform
	Ref       fingerprint.Fingerprint
}

func (TransformedRef) Kind() ItemKind { return KindItem }

// PositionedRef is a child reference at a position within a group.
type PositionedRef struct {
	Pos Point
	Ref fingerprint.Fingerprint
}

// GroupItem is an ordered list of positioned child references.
// Children preserve source order.
type GroupItem struct {
	Children []PositionedRef
}

func (GroupItem) Kind() ItemKind { return KindGroup }

// Direction is a text run direction.
type Direction uint8

const (
	DirLTR Direction = iota
	DirRTL
	DirTTB
	DirBTT
)

// TextShape is the shared shape of a text run: font reference,
// direction, font size, and path styles applied to the glyphs.
type TextShape struct {
	// Font indexes the module's font table.
	Font uint32

	Dir  Direction
	Size Scalar

	Styles []PathStyle
}

// GlyphTriple places one glyph of a text run:
// x offset, x advance, and the glyph index in the run's font.
type GlyphTriple struct {
	Offset  Scalar
	Advance Scalar
	Glyph   uint32
}

// TextContent is the text run payload: the plain utf-8 string covering
// the full original range (ligature components collapsed), and the
// glyph triples.
type TextContent struct {
	Text   string
	Glyphs []GlyphTriple
}

// TextItem is a shaped text run.
type TextItem struct {
	Shape   TextShape
	Content TextContent
}

func (TextItem) Kind() ItemKind { return KindText }

// Width returns the total advance width of the run.
func (t *TextItem) Width() Scalar {
	var w Scalar
	for _, g := range t.Content.Glyphs {
		w += g.Advance
	}
	return w
}

// PathStyleKind tags a path style entry.
type PathStyleKind uint8

const (
	StyleFill PathStyleKind = iota
	StyleStroke
	StyleStrokeWidth
	StyleDashArray
	StyleDashOffset
	StyleLineCap
	StyleLineJoin
	StyleMiterLimit
)

// PathStyle is one style entry of a path or text item. Paint carries
// fill/stroke/cap/join values; Thickness carries scalar values; Dash
// carries dash arrays.
type PathStyle struct {
	Kind      PathStyleKind
	Paint     string
	Thickness Scalar
	Dash      []Scalar
}

// PathItem is an SVG path `d` string plus a list of path styles.
type PathItem struct {
	D      string
	Size   Size
	Styles []PathStyle
}

func (PathItem) Kind() ItemKind { return KindPath }

// ImageAttrKind tags an optional image attribute.
type ImageAttrKind uint8

const (
	ImageAttrAlt ImageAttrKind = iota
	ImageAttrRendering
)

// ImageAttr is an optional attribute of an image.
type ImageAttr struct {
	Kind  ImageAttrKind
	Value string
}

// Image is an encoded image payload: bytes, format tag, pixel size,
// precomputed content fingerprint, and optional attributes.
type Image struct {
	Data   []byte
	Format string
	Size   Axes[uint32]
	Hash   fingerprint.Fingerprint
	Attrs  []ImageAttr
}

// ImageItem places an image payload at a display size.
type ImageItem struct {
	Image Image
	Size  Size
}

func (ImageItem) Kind() ItemKind { return KindImage }

// LinkItem is a hyperlink with its bounding size.
type LinkItem struct {
	Href string
	Size Size
}

func (LinkItem) Kind() ItemKind { return KindLink }

// ContentHintItem is a semantic hint for text flow, e.g. a line break.
type ContentHintItem struct {
	Hint rune
}

func (ContentHintItem) Kind() ItemKind { return KindContentHint }

// ColorSpace names the color space of a [Color32Item].
type ColorSpace uint8

const (
	SpaceSRGB ColorSpace = iota
	SpaceLinearRGB
	SpaceOklab
	SpaceOklch
	SpaceHSL
	SpaceHSV
	SpaceCMYK
	SpaceD65Gray
)

// ColorItem is an 8-bit rgba color.
type ColorItem struct {
	R, G, B, A uint8
}

// Color32Item is a 32-bit-per-channel color in a named color space.
type Color32Item struct {
	Space    ColorSpace
	Channels [4]Scalar
}

func (Color32Item) Kind() ItemKind { return KindColor32 }

// GradientKind tags the gradient geometry.
type GradientKind uint8

const (
	GradientLinear GradientKind = iota
	GradientRadial
	GradientConic
)

// GradientStop is one color stop of a gradient.
type GradientStop struct {
	Color  ColorItem
	Offset Scalar
}

// GradientItem is a gradient paint resource.
type GradientItem struct {
	GradKind GradientKind
	Stops    []GradientStop
	// Angle applies to linear and conic gradients; radius to radial.
	Angle  Scalar
	Radius Scalar
}

func (GradientItem) Kind() ItemKind { return KindGradient }

// PatternItem is a pattern paint resource referencing a lowered frame.
type PatternItem struct {
	Frame  fingerprint.Fingerprint
	Size   Size
	Repeat bool
}

func (PatternItem) Kind() ItemKind { return KindPattern }

// ColorTransformItem applies a color transform to another item.
type ColorTransformItem struct {
	Transform Transform
	Ref       fingerprint.Fingerprint
}

func (ColorTransformItem) Kind() ItemKind { return KindColorTransform }

// Refs calls f for every fingerprint the item references. Every
// referenced fingerprint must resolve within the owning module
// (dangling references are a fatal bug).
func Refs(it Item, f func(fingerprint.Fingerprint)) {
	switch v := it.(type) {
	case TransformedRef:
		f(v.Ref)
	case GroupItem:
		for _, c := range v.Children {
			f(c.Ref)
		}
	case PatternItem:
		f(v.Frame)
	case ColorTransformItem:
		f(v.Ref)
	}
}
