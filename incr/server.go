// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package incr implements the incremental document server: it lowers
// each revision through an owned incremental pass, computes the delta
// since the previous revision, and emits framed binary modules for
// clients to merge.
package incr

import (
	"cogentcore.org/vecdoc/doc2vec"
	"cogentcore.org/vecdoc/document"
	"cogentcore.org/vecdoc/vector"
	vincr "cogentcore.org/vecdoc/vector/incr"
	"cogentcore.org/vecdoc/vector/stream"
)

// Retention is the default number of lifetime generations an
// untouched item survives before garbage collection.
const Retention = 10

// CompilerName identifies this toolchain in snapshot build info.
const CompilerName = "vecdoc"

// CompilerVersion is the toolchain version stamped into snapshots.
const CompilerVersion = "0.5.0"

// Server maintains the incremental lowering state across revisions.
// It is driven from a single goroutine, between lowerings.
type Server struct {
	// Retention overrides the gc retention threshold.
	Retention int64

	// Publish receives each packed delta together with its revision
	// id when the server runs as a compilation sink.
	Publish func(revision int64, delta []byte)

	pass *doc2vec.IncrPass

	// pages is the most recently emitted page list; nil before the
	// first completed compilation.
	pages []vector.Page
}

// NewServer returns a server with a fresh incremental pass.
func NewServer() *Server {
	return &Server{Retention: Retention, pass: doc2vec.NewIncrPass()}
}

// Pass exposes the owned incremental pass.
func (s *Server) Pass() *doc2vec.IncrPass {
	return s.pass
}

// SetShouldAttachDebugInfo controls whether source spans are attached
// and a source mapping entry is emitted per delta.
func (s *Server) SetShouldAttachDebugInfo(attach bool) {
	s.pass.Spans.SetShouldAttachDebugInfo(attach)
}

// PackDelta lowers the document and packs the delta since the last
// revision: the gc list, items and glyphs added by this revision, the
// source mapping when enabled, and the new page layout. The frame is
// prefixed with "diff-v1,".
func (s *Server) PackDelta(doc *document.Document) []byte {
	s.pass.Spans.Reset()

	// increment the lifetime of all items to touch
	s.pass.IncrementLifetime()

	// gc must run before building pages
	gcItems := s.pass.GC(s.Retention)

	prev := s.pages
	pages := s.pass.Paged(doc)
	s.pages = pages

	delta := s.pass.FinalizeDelta()

	var m stream.FlatModule
	m.Push(stream.Metadata{Kind: stream.MetaGC, GC: gcItems})
	m.Push(stream.Metadata{Kind: stream.MetaItems, Items: delta.Items})

	// an edit that changed nothing needs no font, glyph, or layout
	// resend; the client keeps its current layout
	if len(gcItems) == 0 && len(delta.Items) == 0 && len(delta.Fonts) == 0 &&
		len(delta.Glyphs) == 0 && pagesEqual(prev, pages) {
		return append([]byte(vincr.DeltaPrefix), m.Encode()...)
	}
	m.Push(stream.Metadata{Kind: stream.MetaFont, Fonts: delta.Fonts})
	m.Push(stream.Metadata{Kind: stream.MetaGlyph, Glyphs: delta.Glyphs})
	if s.pass.Spans.ShouldAttach() {
		m.Push(stream.Metadata{Kind: stream.MetaSourceMapping, SourceMapping: sourceMapping(doc)})
	}
	m.Push(stream.Metadata{Kind: stream.MetaLayout, Layouts: []vector.LayoutRegion{
		vector.SingleLayout(vector.PagesNode(pages)),
	}})

	return append([]byte(vincr.DeltaPrefix), m.Encode()...)
}

// PackCurrent packs the entire current state for clients that join
// late, prefixed with "new,". It returns nil before the first
// completed compilation.
func (s *Server) PackCurrent() []byte {
	if s.pages == nil {
		return nil
	}
	full := s.pass.FinalizeRef()

	var m stream.FlatModule
	m.Push(stream.Metadata{Kind: stream.MetaBuildInfo, BuildInfo: stream.BuildInfo{
		Compiler: CompilerName,
		Version:  CompilerVersion,
	}})
	m.Push(stream.Metadata{Kind: stream.MetaItems, Items: full.Items})
	m.Push(stream.Metadata{Kind: stream.MetaFont, Fonts: full.Fonts})
	m.Push(stream.Metadata{Kind: stream.MetaGlyph, Glyphs: full.Glyphs})
	m.Push(stream.Metadata{Kind: stream.MetaLayout, Layouts: []vector.LayoutRegion{
		vector.SingleLayout(vector.PagesNode(s.pages)),
	}})

	return append([]byte(vincr.SnapshotPrefix), m.Encode()...)
}

// ResolveElementPathsBySpan returns the element paths recorded for
// the given span offset in the last pass.
func (s *Server) ResolveElementPathsBySpan(span uint64) [][]doc2vec.ElementPoint {
	return s.pass.Spans.QueryElementPaths(span)
}

// ResolveSpanByElementPath returns the span range of the given
// element path, if the last pass recorded one.
func (s *Server) ResolveSpanByElementPath(path []doc2vec.ElementPoint) (start, end uint64, ok bool) {
	return s.pass.Spans.QuerySpan(path)
}

func pagesEqual(a, b []vector.Page) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sourceMapping(doc *document.Document) []vector.SourceMappingNode {
	nodes := make([]vector.SourceMappingNode, len(doc.Pages))
	for i, pg := range doc.Pages {
		nodes[i] = vector.SourceMappingNode{SourceKind: vector.SourcePage, Span: pg.Span}
	}
	return nodes
}
