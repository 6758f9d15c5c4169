// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package doc2vec implements the lowering pass from a laid-out
// document to the content-addressed vector module: fingerprint
// deduplicated items, ligature-aware glyph packing, parallel frame
// conversion, and an incremental variant with lifetime-based garbage
// collection.
package doc2vec

import (
	"fmt"
	"sync"

	"cogentcore.org/vecdoc/base/atomicctr"
	"cogentcore.org/vecdoc/base/fingerprint"
	"cogentcore.org/vecdoc/document"
	"cogentcore.org/vecdoc/fontkit"
	"cogentcore.org/vecdoc/vector"
	"cogentcore.org/vecdoc/vector/stream"
)

// itemCell is one entry of the concurrent item store: the item and
// its lifetime tag, bumped on every touch.
type itemCell struct {
	life atomicctr.Counter
	item vector.Item
}

// Pass lowers documents into a content-addressed module. The item
// store is an append-only concurrent map keyed by fingerprint: inserts
// race freely and the loser is discarded after the conflict checker
// has validated that its bytes match the winner's. A Pass may be
// reused across documents to share the store.
type Pass struct {
	// Provider extracts glyph data; it defaults to the font tables.
	Provider fontkit.GlyphProvider

	// Spans is the per-pass source mapping table.
	Spans *SpanTable

	fps fingerprint.Builder

	// lifetime is the tag stamped on touched items; the incremental
	// variant advances it between runs.
	lifetime atomicctr.Counter

	items sync.Map // fingerprint.Fingerprint -> *itemCell

	newMu    sync.Mutex
	newItems []stream.ItemEntry

	fontMu          sync.Mutex
	fonts           []*fontState
	fontIndex       map[fingerprint.Fingerprint]uint32
	firstUnsentFont int
}

// NewPass returns a pass with the default glyph provider.
func NewPass() *Pass {
	return &Pass{
		Provider:  fontkit.FontGlyphProvider{},
		Spans:     NewSpanTable(),
		fontIndex: make(map[fingerprint.Fingerprint]uint32),
	}
}

// Paged lowers a paged document, returning the page list. Lowering
// never fails: missing glyph data downgrades, unknown frame items are
// skipped.
func (p *Pass) Paged(doc *document.Document) []vector.Page {
	pages := make([]vector.Page, len(doc.Pages))
	for i, pg := range doc.Pages {
		path := []ElementPoint{{Kind: uint32(vector.KindGroup), Index: uint32(i)}}
		fp := p.frame(&pg.Frame, path)
		p.Spans.Attach(pg.Span, path)
		pages[i] = vector.Page{
			Content: fp,
			Size:    vector.Sz(float32(pg.Frame.Size.W), float32(pg.Frame.Size.H)),
		}
	}
	return pages
}

// Frame lowers a single frame, returning the fingerprint of its
// group item.
func (p *Pass) Frame(f *document.Frame) fingerprint.Fingerprint {
	return p.frame(f, nil)
}

// frame lowers a frame to a group item. Positioned children are
// lowered in parallel; the child sequence is filled by source-order
// index, so the result is deterministic.
func (p *Pass) frame(f *document.Frame, path []ElementPoint) fingerprint.Fingerprint {
	children := make([]vector.PositionedRef, len(f.Items))
	var wg sync.WaitGroup
	for i, entry := range f.Items {
		wg.Add(1)
		go func(i int, entry document.FrameEntry) {
			defer wg.Done()
			sub := appendPoint(path, ElementPoint{Kind: pointKind(entry.Item), Index: uint32(i)})
			children[i] = vector.PositionedRef{
				Pos: vector.Pt(float32(entry.Pos.X), float32(entry.Pos.Y)),
				Ref: p.item(entry.Item, sub),
			}
		}(i, entry)
	}
	wg.Wait()

	// unknown items lower to the zero fingerprint and are skipped
	kept := children[:0]
	for _, c := range children {
		if !c.Ref.IsZero() {
			kept = append(kept, c)
		}
	}
	return p.Intern(vector.GroupItem{Children: kept})
}

// item lowers one frame item, returning the zero fingerprint for
// unknown kinds.
func (p *Pass) item(it document.FrameItem, path []ElementPoint) fingerprint.Fingerprint {
	switch v := it.(type) {
	case *document.GroupItem:
		inner := p.frame(v.Frame, path)
		p.Spans.Attach(v.Span, path)
		if v.Transform == document.IdentityTransform() {
			return inner
		}
		return p.Intern(vector.TransformedRef{
			Transform: lowerTransform(v.Transform),
			Ref:       inner,
		})
	case *document.TextItem:
		fp := p.text(v)
		p.Spans.Attach(v.Span, path)
		return fp
	case *document.ShapeItem:
		fp := p.shape(v)
		p.Spans.Attach(v.Span, path)
		return fp
	case *document.ImageItem:
		fp := p.image(v)
		p.Spans.Attach(v.Span, path)
		return fp
	case *document.LinkItem:
		return p.Intern(vector.LinkItem{
			Href: v.Href,
			Size: vector.Sz(float32(v.Size.W), float32(v.Size.H)),
		})
	case *document.ContentHintItem:
		return p.Intern(vector.ContentHintItem{Hint: v.Hint})
	}
	return fingerprint.Fingerprint{}
}

// Intern inserts the item into the store, deduplicating by
// fingerprint, and bumps the item's lifetime. Two distinct items
// hashing to the same fingerprint are a fatal programmer error,
// caught by the conflict checker before the store is touched.
func (p *Pass) Intern(it vector.Item) fingerprint.Fingerprint {
	fp := p.fps.Resolve(uint8(it.Kind()), stream.ItemBytes(it))
	life := p.lifetime.Value()

	if cell, ok := p.items.Load(fp); ok {
		cell.(*itemCell).life.Set(life)
		return fp
	}
	cell := &itemCell{item: it}
	cell.life.Set(life)
	if prev, loaded := p.items.LoadOrStore(fp, cell); loaded {
		// insert race: the bytes were already validated equal, so the
		// loser's cell is discarded
		prev.(*itemCell).life.Set(life)
		return fp
	}
	p.newMu.Lock()
	p.newItems = append(p.newItems, stream.ItemEntry{Fingerprint: fp, Item: it})
	p.newMu.Unlock()
	return fp
}

// Get returns the stored item with the given fingerprint.
func (p *Pass) Get(fp fingerprint.Fingerprint) (vector.Item, bool) {
	cell, ok := p.items.Load(fp)
	if !ok {
		return nil, false
	}
	return cell.(*itemCell).item, true
}

func lowerTransform(t document.Transform) vector.Transform {
	return vector.Transform{
		SX: vector.Scalar(t.SX), KY: vector.Scalar(t.KY),
		KX: vector.Scalar(t.KX), SY: vector.Scalar(t.SY),
		TX: vector.Scalar(t.TX), TY: vector.Scalar(t.TY),
	}
}

func pointKind(it document.FrameItem) uint32 {
	switch it.(type) {
	case *document.GroupItem:
		return uint32(vector.KindGroup)
	case *document.TextItem:
		return uint32(vector.KindText)
	case *document.ShapeItem:
		return uint32(vector.KindPath)
	case *document.ImageItem:
		return uint32(vector.KindImage)
	case *document.LinkItem:
		return uint32(vector.KindLink)
	}
	return uint32(vector.KindNone)
}

// Module materializes the current store as a module, for debugging
// and full-snapshot equality checks.
func (p *Pass) Module() *vector.Module {
	m := vector.NewModule()
	p.items.Range(func(k, v any) bool {
		m.Items[k.(fingerprint.Fingerprint)] = v.(*itemCell).item
		return true
	})
	p.fontMu.Lock()
	defer p.fontMu.Unlock()
	for _, fs := range p.fonts {
		fi := fs.snapshot()
		m.Glyphs = append(m.Glyphs, fi)
		m.Fonts = append(m.Fonts, fi.FontInfo)
	}
	return m
}

func appendPoint(path []ElementPoint, pt ElementPoint) []ElementPoint {
	out := make([]ElementPoint, len(path), len(path)+1)
	copy(out, path)
	return append(out, pt)
}

func (p *Pass) String() string {
	n := 0
	p.items.Range(func(any, any) bool { n++; return true })
	return fmt.Sprintf("doc2vec.Pass(%d items, %d fonts)", n, len(p.fonts))
}
