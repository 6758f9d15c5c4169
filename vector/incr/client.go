// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package incr implements the incremental document client: it merges
// framed deltas into an accumulating module, maintains a layout
// selection, and answers window queries. The client is free of any
// document engine detail.
package incr

import (
	"bytes"
	"fmt"

	"cogentcore.org/vecdoc/vector"
	"cogentcore.org/vecdoc/vector/stream"
)

// DeltaPrefix frames an incremental delta.
const DeltaPrefix = "diff-v1,"

// SnapshotPrefix frames a full snapshot.
const SnapshotPrefix = "new,"

// DocClient accumulates module deltas for one document. It is
// single-threaded with respect to that document; different documents
// do not share client state.
type DocClient struct {
	// Module is the accumulated content-addressed store.
	Module *vector.Module

	// Layouts is the list of received layout regions, in receipt
	// order.
	Layouts []vector.LayoutRegion

	// BuildInfo is the producing compiler, from the last snapshot
	// carrying one.
	BuildInfo stream.BuildInfo

	layout    *vector.LayoutRegionNode
	sourceMap []vector.SourceMappingNode
}

// NewDocClient returns a client with an empty module.
func NewDocClient() *DocClient {
	return &DocClient{Module: vector.NewModule()}
}

// MergeDelta parses a framed module and merges it in order: garbage
// collection entries are applied before item installation, so a
// fingerprint may be removed and re-added within one delta.
func (c *DocClient) MergeDelta(data []byte) error {
	switch {
	case bytes.HasPrefix(data, []byte(DeltaPrefix)):
		data = data[len(DeltaPrefix):]
	case bytes.HasPrefix(data, []byte(SnapshotPrefix)):
		data = data[len(SnapshotPrefix):]
	default:
		return fmt.Errorf("incr: delta frame carries no recognized tag")
	}
	m, err := stream.Decode(data)
	if err != nil {
		return err
	}
	for _, md := range m.Metadata {
		if err := c.apply(md); err != nil {
			return err
		}
	}
	return nil
}

func (c *DocClient) apply(md stream.Metadata) error {
	switch md.Kind {
	case stream.MetaGC:
		for _, fp := range md.GC {
			delete(c.Module.Items, fp)
		}
	case stream.MetaItems:
		for _, e := range md.Items {
			c.Module.Items[e.Fingerprint] = e.Item
		}
	case stream.MetaFont:
		for _, f := range md.Fonts {
			if c.hasFont(f) {
				continue
			}
			c.Module.Fonts = append(c.Module.Fonts, f)
			c.Module.Glyphs = append(c.Module.Glyphs, &vector.FontItem{FontInfo: f})
		}
	case stream.MetaGlyph:
		for _, g := range md.Glyphs {
			if int(g.Ref.Font) >= len(c.Module.Glyphs) {
				return fmt.Errorf("incr: glyph entry references font %d of %d", g.Ref.Font, len(c.Module.Glyphs))
			}
			c.Module.Glyphs[g.Ref.Font].SetGlyph(g.Ref.Glyph, g.Glyph)
		}
	case stream.MetaLayout:
		c.Layouts = append(c.Layouts, md.Layouts...)
	case stream.MetaSourceMapping:
		c.sourceMap = md.SourceMapping
	case stream.MetaBuildInfo:
		c.BuildInfo = md.BuildInfo
	}
	return nil
}

func (c *DocClient) hasFont(f vector.FontInfo) bool {
	for _, have := range c.Module.Fonts {
		if have.Fingerprint == f.Fingerprint {
			return true
		}
	}
	return false
}

// SourceMapping returns the last received source mapping.
func (c *DocClient) SourceMapping() []vector.SourceMappingNode {
	return c.sourceMap
}

// SetLayout selects the layout node to render from, resolving
// indirections through the most recent layout region.
func (c *DocClient) SetLayout(node vector.LayoutRegionNode) {
	node = c.resolve(node, 0)
	c.layout = &node
}

// SelectLast selects the most recently received layout's first node.
// It reports whether a layout was available.
func (c *DocClient) SelectLast() bool {
	if len(c.Layouts) == 0 {
		return false
	}
	last := c.Layouts[len(c.Layouts)-1]
	if last.IsEmpty() {
		return false
	}
	c.SetLayout(last.Unwrap())
	return true
}

func (c *DocClient) resolve(node vector.LayoutRegionNode, depth int) vector.LayoutRegionNode {
	if node.NodeKind != vector.LayoutIndirect || len(c.Layouts) == 0 || depth > len(c.Layouts) {
		return node
	}
	region := c.Layouts[len(c.Layouts)-1]
	if node.Indirect < 0 || node.Indirect >= len(region.Layouts) {
		return node
	}
	return c.resolve(region.Layouts[node.Indirect].Node, depth+1)
}

// Pages returns the page list of the current layout selection.
func (c *DocClient) Pages() []vector.Page {
	if c.layout == nil || c.layout.NodeKind != vector.LayoutPages {
		return nil
	}
	return c.layout.Pages
}

// RenderInWindow calls render for each page of the current selection
// whose translated bounding box intersects the window, with the page
// index and the page's vertical offset. Pages outside the window are
// skipped without allocation.
func (c *DocClient) RenderInWindow(window vector.Rect, render func(idx int, page vector.Page, offset vector.Point)) {
	var y vector.Scalar
	for i, pg := range c.Pages() {
		bbox := vector.Rect{
			Lo: vector.Point{X: 0, Y: y},
			Hi: vector.Point{X: pg.Size.X, Y: y + pg.Size.Y},
		}
		if bbox.Intersects(window) {
			render(i, pg, vector.Point{X: 0, Y: y})
		}
		y += pg.Size.Y
	}
}
