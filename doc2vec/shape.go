// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc2vec

import (
	"fmt"
	"strconv"
	"strings"

	"cogentcore.org/vecdoc/base/fingerprint"
	"cogentcore.org/vecdoc/document"
	"cogentcore.org/vecdoc/vector"
)

// shape lowers a filled and/or stroked shape to a path item.
func (p *Pass) shape(v *document.ShapeItem) fingerprint.Fingerprint {
	var styles []vector.PathStyle
	if v.Fill != nil {
		styles = append(styles, vector.PathStyle{Kind: vector.StyleFill, Paint: p.paint(v.Fill)})
	}
	if st := v.Stroke; st != nil {
		styles = append(styles,
			vector.PathStyle{Kind: vector.StyleStroke, Paint: p.paint(st.Paint)},
			vector.PathStyle{Kind: vector.StyleStrokeWidth, Thickness: vector.Scalar(st.Thickness)},
		)
		if st.LineCap != "" {
			styles = append(styles, vector.PathStyle{Kind: vector.StyleLineCap, Paint: st.LineCap})
		}
		if st.LineJoin != "" {
			styles = append(styles, vector.PathStyle{Kind: vector.StyleLineJoin, Paint: st.LineJoin})
		}
		if st.MiterLimit != 0 {
			styles = append(styles, vector.PathStyle{Kind: vector.StyleMiterLimit, Thickness: vector.Scalar(st.MiterLimit)})
		}
		if len(st.DashArray) > 0 {
			dash := make([]vector.Scalar, len(st.DashArray))
			for i, d := range st.DashArray {
				dash[i] = vector.Scalar(d)
			}
			styles = append(styles,
				vector.PathStyle{Kind: vector.StyleDashArray, Dash: dash},
				vector.PathStyle{Kind: vector.StyleDashOffset, Thickness: vector.Scalar(st.DashOffset)},
			)
		}
	}
	return p.Intern(vector.PathItem{
		D: PathData(v.Path),
		Size: vector.Size{
			X: vector.ClampMinSize(vector.Scalar(v.Size.W), 1),
			Y: vector.ClampMinSize(vector.Scalar(v.Size.H), 1),
		},
		Styles: styles,
	})
}

// PathData converts a path into SVG path commands, with coordinates
// cast to 32-bit floats.
func PathData(path document.Path) string {
	var b strings.Builder
	for _, el := range path {
		switch el.Verb {
		case document.MoveTo:
			b.WriteString("M ")
			writeCoord(&b, el.Pts[0])
		case document.LineTo:
			b.WriteString("L ")
			writeCoord(&b, el.Pts[0])
		case document.QuadTo:
			b.WriteString("Q ")
			writeCoord(&b, el.Pts[0])
			writeCoord(&b, el.Pts[1])
		case document.CubeTo:
			b.WriteString("C ")
			writeCoord(&b, el.Pts[0])
			writeCoord(&b, el.Pts[1])
			writeCoord(&b, el.Pts[2])
		case document.ClosePath:
			b.WriteString("Z ")
		}
	}
	return b.String()
}

func writeCoord(b *strings.Builder, pt document.Point) {
	b.WriteString(strconv.FormatFloat(float64(float32(pt.X)), 'g', -1, 32))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(float64(float32(pt.Y)), 'g', -1, 32))
	b.WriteByte(' ')
}

// paint lowers a paint to its style string: solid colors inline as
// hex, other paints intern as content-addressed resources referenced
// by their svg id.
func (p *Pass) paint(pt document.Paint) string {
	switch v := pt.(type) {
	case document.Solid:
		if v.A == 255 {
			return fmt.Sprintf("#%02x%02x%02x", v.R, v.G, v.B)
		}
		return fmt.Sprintf("#%02x%02x%02x%02x", v.R, v.G, v.B, v.A)
	case document.Color32:
		var ch [4]vector.Scalar
		for i, c := range v.Channels {
			ch[i] = vector.Scalar(c)
		}
		fp := p.Intern(vector.Color32Item{Space: vector.ColorSpace(v.Space), Channels: ch})
		return "@" + fp.SVGID("g")
	case document.Gradient:
		stops := make([]vector.GradientStop, len(v.Stops))
		for i, s := range v.Stops {
			stops[i] = vector.GradientStop{
				Color:  vector.ColorItem{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: s.Color.A},
				Offset: vector.Scalar(s.Offset),
			}
		}
		fp := p.Intern(vector.GradientItem{
			GradKind: vector.GradientKind(v.Kind),
			Stops:    stops,
			Angle:    vector.Scalar(v.Angle),
			Radius:   vector.Scalar(v.Radius),
		})
		return "@" + fp.SVGID("g")
	case document.Pattern:
		frame := p.frame(v.Frame, nil)
		fp := p.Intern(vector.PatternItem{
			Frame:  frame,
			Size:   vector.Sz(float32(v.Size.W), float32(v.Size.H)),
			Repeat: v.Repeat,
		})
		return "@" + fp.SVGID("g")
	}
	return ""
}
