// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc2vec

import (
	"slices"
	"sync"
)

// ElementPoint is one step of an element path: the item kind and the
// child index within its parent.
type ElementPoint struct {
	Kind  uint32
	Index uint32
}

// SpanTable is the per-pass source mapping: an append-only table of
// (span, element path) pairs, keyed by monotonically allocated entry
// ids and reset between passes. Attachment is disabled by default.
type SpanTable struct {
	mu     sync.Mutex
	attach bool
	spans  []uint64
	paths  [][]ElementPoint
}

// NewSpanTable returns an empty table.
func NewSpanTable() *SpanTable {
	return &SpanTable{}
}

// SetShouldAttachDebugInfo enables recording of span attachments.
func (st *SpanTable) SetShouldAttachDebugInfo(attach bool) {
	st.mu.Lock()
	st.attach = attach
	st.mu.Unlock()
}

// ShouldAttach reports whether attachments are recorded.
func (st *SpanTable) ShouldAttach() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.attach
}

// Reset drops all recorded attachments, keeping the attach flag.
func (st *SpanTable) Reset() {
	st.mu.Lock()
	st.spans = nil
	st.paths = nil
	st.mu.Unlock()
}

// Attach records the element path for a source span. Zero spans and
// disabled tables record nothing.
func (st *SpanTable) Attach(span uint64, path []ElementPoint) {
	if span == 0 {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.attach {
		return
	}
	st.spans = append(st.spans, span)
	st.paths = append(st.paths, slices.Clone(path))
}

// QueryElementPaths returns the element paths recorded for the given
// span.
func (st *SpanTable) QueryElementPaths(span uint64) [][]ElementPoint {
	st.mu.Lock()
	defer st.mu.Unlock()
	var out [][]ElementPoint
	for i, s := range st.spans {
		if s == span {
			out = append(out, slices.Clone(st.paths[i]))
		}
	}
	return out
}

// QuerySpan returns the span range recorded for the given element
// path, if any.
func (st *SpanTable) QuerySpan(path []ElementPoint) (start, end uint64, ok bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for i, p := range st.paths {
		if slices.Equal(p, path) {
			return st.spans[i], st.spans[i], true
		}
	}
	return 0, 0, false
}
