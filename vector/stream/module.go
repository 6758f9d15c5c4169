// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stream

import (
	"bytes"
	"fmt"

	"cogentcore.org/vecdoc/base/fingerprint"
	"cogentcore.org/vecdoc/vector"
)

// Magic is the leading byte string of every serialized FlatModule.
const Magic = "vector-v1"

// Version is the format version written after the magic.
const Version uint32 = 1

// MetaKind tags a [Metadata] entry of a FlatModule.
type MetaKind uint8

const (
	// MetaItems carries fingerprint → item pairs.
	MetaItems MetaKind = iota

	// MetaFont carries font descriptors without glyph payloads.
	MetaFont

	// MetaGlyph carries (font index, glyph index, payload) triples.
	MetaGlyph

	// MetaGC lists fingerprints to remove before installing items.
	MetaGC

	// MetaLayout carries layout regions.
	MetaLayout

	// MetaSourceMapping carries source mapping nodes.
	MetaSourceMapping

	// MetaBuildInfo carries compiler name and version.
	MetaBuildInfo
)

// ItemEntry is one fingerprint → item pair.
type ItemEntry struct {
	Fingerprint fingerprint.Fingerprint
	Item        vector.Item
}

// GlyphEntry is one packed glyph payload addressed by
// (font index, glyph index).
type GlyphEntry struct {
	Ref   vector.GlyphRef
	Glyph vector.GlyphItem
}

// BuildInfo identifies the producing compiler.
type BuildInfo struct {
	Compiler string
	Version  string
}

// Metadata is one tagged entry of a [FlatModule]; exactly the fields
// implied by Kind are meaningful.
type Metadata struct {
	Kind MetaKind

	Items         []ItemEntry
	Fonts         []vector.FontInfo
	Glyphs        []GlyphEntry
	GC            []fingerprint.Fingerprint
	Layouts       []vector.LayoutRegion
	SourceMapping []vector.SourceMappingNode
	BuildInfo     BuildInfo
}

// FlatModule is the serialized unit exchanged between the incremental
// server and client: a sequence of metadata entries applied in order.
type FlatModule struct {
	Metadata []Metadata
}

// Push appends a metadata entry.
func (m *FlatModule) Push(md Metadata) {
	m.Metadata = append(m.Metadata, md)
}

// Encode returns the canonical serialization of the module.
func (m *FlatModule) Encode() []byte {
	var w Writer
	w.Raw([]byte(Magic))
	w.U32(Version)
	w.U32(uint32(len(m.Metadata)))
	for _, md := range m.Metadata {
		encodeMetadata(&w, md)
	}
	return w.Bytes()
}

// Decode parses a serialized FlatModule.
func Decode(data []byte) (*FlatModule, error) {
	if len(data) < len(Magic) || !bytes.Equal(data[:len(Magic)], []byte(Magic)) {
		return nil, fmt.Errorf("stream: bad magic in module frame")
	}
	r := NewReader(data[len(Magic):])
	ver := r.U32()
	if ver != Version {
		return nil, fmt.Errorf("stream: unsupported module version %d", ver)
	}
	n := int(r.U32())
	m := &FlatModule{}
	for range n {
		md, err := decodeMetadata(r)
		if err != nil {
			return nil, err
		}
		m.Metadata = append(m.Metadata, md)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func encodeMetadata(w *Writer, md Metadata) {
	w.U8(uint8(md.Kind))
	switch md.Kind {
	case MetaItems:
		w.U32(uint32(len(md.Items)))
		for _, e := range md.Items {
			w.Fingerprint(e.Fingerprint)
			EncodeItem(w, e.Item)
		}
	case MetaFont:
		w.U32(uint32(len(md.Fonts)))
		for _, f := range md.Fonts {
			writeFontInfo(w, f)
		}
	case MetaGlyph:
		w.U32(uint32(len(md.Glyphs)))
		for _, g := range md.Glyphs {
			w.U32(g.Ref.Font)
			w.U32(g.Ref.Glyph)
			writeGlyph(w, g.Glyph)
		}
	case MetaGC:
		w.U32(uint32(len(md.GC)))
		for _, fp := range md.GC {
			w.Fingerprint(fp)
		}
	case MetaLayout:
		w.U32(uint32(len(md.Layouts)))
		for _, lr := range md.Layouts {
			writeLayoutRegion(w, lr)
		}
	case MetaSourceMapping:
		writeSourceMapping(w, md.SourceMapping)
	case MetaBuildInfo:
		w.Str(md.BuildInfo.Compiler)
		w.Str(md.BuildInfo.Version)
	default:
		panic(fmt.Sprintf("stream: unknown metadata kind %d", md.Kind))
	}
}

func decodeMetadata(r *Reader) (Metadata, error) {
	var md Metadata
	md.Kind = MetaKind(r.U8())
	switch md.Kind {
	case MetaItems:
		n := int(r.U32())
		for range n {
			var e ItemEntry
			e.Fingerprint = r.Fingerprint()
			e.Item = DecodeItem(r)
			if r.Err() != nil {
				return md, r.Err()
			}
			md.Items = append(md.Items, e)
		}
	case MetaFont:
		n := int(r.U32())
		for range n {
			md.Fonts = append(md.Fonts, readFontInfo(r))
			if r.Err() != nil {
				return md, r.Err()
			}
		}
	case MetaGlyph:
		n := int(r.U32())
		for range n {
			var g GlyphEntry
			g.Ref.Font = r.U32()
			g.Ref.Glyph = r.U32()
			g.Glyph = readGlyph(r)
			if r.Err() != nil {
				return md, r.Err()
			}
			md.Glyphs = append(md.Glyphs, g)
		}
	case MetaGC:
		n := int(r.U32())
		for range n {
			md.GC = append(md.GC, r.Fingerprint())
			if r.Err() != nil {
				return md, r.Err()
			}
		}
	case MetaLayout:
		n := int(r.U32())
		for range n {
			lr, err := readLayoutRegion(r)
			if err != nil {
				return md, err
			}
			md.Layouts = append(md.Layouts, lr)
		}
	case MetaSourceMapping:
		sm, err := readSourceMapping(r)
		if err != nil {
			return md, err
		}
		md.SourceMapping = sm
	case MetaBuildInfo:
		md.BuildInfo.Compiler = r.Str()
		md.BuildInfo.Version = r.Str()
	default:
		return md, fmt.Errorf("stream: unknown metadata tag %d", md.Kind)
	}
	return md, r.Err()
}

func writeLayoutRegion(w *Writer, lr vector.LayoutRegion) {
	w.Str(lr.Kind)
	if lr.ByStr {
		w.U8(1)
	} else {
		w.U8(0)
	}
	w.U32(uint32(len(lr.Layouts)))
	for _, e := range lr.Layouts {
		if lr.ByStr {
			w.Str(e.Str)
		} else {
			w.Scalar(e.Scalar)
		}
		writeLayoutNode(w, e.Node)
	}
}

func readLayoutRegion(r *Reader) (vector.LayoutRegion, error) {
	var lr vector.LayoutRegion
	lr.Kind = r.Str()
	lr.ByStr = r.U8() != 0
	n := int(r.U32())
	for range n {
		var e vector.LayoutEntry
		if lr.ByStr {
			e.Str = r.Str()
		} else {
			e.Scalar = r.Scalar()
		}
		node, err := readLayoutNode(r)
		if err != nil {
			return lr, err
		}
		e.Node = node
		lr.Layouts = append(lr.Layouts, e)
	}
	return lr, r.Err()
}

func writeLayoutNode(w *Writer, n vector.LayoutRegionNode) {
	w.U8(uint8(n.NodeKind))
	switch n.NodeKind {
	case vector.LayoutPages:
		w.U32(uint32(len(n.Pages)))
		for _, p := range n.Pages {
			w.Fingerprint(p.Content)
			w.Size(p.Size)
		}
	case vector.LayoutSourceMapping:
		writeSourceMapping(w, n.SourceMapping)
	case vector.LayoutIndirect:
		w.U32(uint32(n.Indirect))
	}
}

func readLayoutNode(r *Reader) (vector.LayoutRegionNode, error) {
	var n vector.LayoutRegionNode
	n.NodeKind = vector.LayoutNodeKind(r.U8())
	switch n.NodeKind {
	case vector.LayoutPages:
		cnt := int(r.U32())
		for range cnt {
			var p vector.Page
			p.Content = r.Fingerprint()
			p.Size = r.Size()
			n.Pages = append(n.Pages, p)
			if r.Err() != nil {
				return n, r.Err()
			}
		}
	case vector.LayoutSourceMapping:
		sm, err := readSourceMapping(r)
		if err != nil {
			return n, err
		}
		n.SourceMapping = sm
	case vector.LayoutIndirect:
		n.Indirect = int(r.U32())
	default:
		return n, fmt.Errorf("stream: unknown layout node tag %d", n.NodeKind)
	}
	return n, r.Err()
}

func writeSourceMapping(w *Writer, nodes []vector.SourceMappingNode) {
	w.U32(uint32(len(nodes)))
	for _, sn := range nodes {
		w.U8(uint8(sn.SourceKind))
		w.U64(sn.Span)
		w.U32(uint32(len(sn.Children)))
		for _, c := range sn.Children {
			w.U64(c)
		}
	}
}

func readSourceMapping(r *Reader) ([]vector.SourceMappingNode, error) {
	n := int(r.U32())
	var nodes []vector.SourceMappingNode
	for range n {
		var sn vector.SourceMappingNode
		sn.SourceKind = vector.SourceKind(r.U8())
		sn.Span = r.U64()
		cn := int(r.U32())
		for range cn {
			sn.Children = append(sn.Children, r.U64())
		}
		if r.Err() != nil {
			return nil, r.Err()
		}
		nodes = append(nodes, sn)
	}
	return nodes, nil
}
