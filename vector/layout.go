// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vector

// LayoutNodeKind tags a [LayoutRegionNode].
type LayoutNodeKind uint8

const (
	// LayoutPages is a flat page list.
	LayoutPages LayoutNodeKind = iota

	// LayoutSourceMapping is a source mapping node list per page.
	LayoutSourceMapping

	// LayoutIndirect is the index of the next indirection.
	LayoutIndirect
)

// LayoutRegionNode is one node of the layout tree: a page list, a
// source mapping list, or an indirection to another node.
type LayoutRegionNode struct {
	NodeKind LayoutNodeKind

	Pages         []Page
	SourceMapping []SourceMappingNode
	Indirect      int
}

// PagesNode returns a node holding the given page list.
func PagesNode(pages []Page) LayoutRegionNode {
	return LayoutRegionNode{NodeKind: LayoutPages, Pages: pages}
}

// SourceMappingLayout returns a node holding the given source mapping.
func SourceMappingLayout(nodes []SourceMappingNode) LayoutRegionNode {
	return LayoutRegionNode{NodeKind: LayoutSourceMapping, SourceMapping: nodes}
}

// LayoutEntry is one keyed layout within a region: the key is a
// scalar for width-indexed layouts, a string otherwise.
type LayoutEntry struct {
	Scalar Scalar
	Str    string
	Node   LayoutRegionNode
}

// LayoutRegion groups layout nodes by a key.
type LayoutRegion struct {
	// Kind names what the keys select on, e.g. "width".
	Kind string

	// ByStr selects string keys instead of scalar keys.
	ByStr bool

	Layouts []LayoutEntry
}

// SingleLayout returns a region holding one unkeyed layout node.
func SingleLayout(node LayoutRegionNode) LayoutRegion {
	return LayoutRegion{Kind: "_", Layouts: []LayoutEntry{{Node: node}}}
}

// IsEmpty reports whether the region holds no layouts.
func (lr *LayoutRegion) IsEmpty() bool {
	return len(lr.Layouts) == 0
}

// Unwrap returns the first layout node of the region. The region must
// not be empty.
func (lr *LayoutRegion) Unwrap() LayoutRegionNode {
	return lr.Layouts[0].Node
}

// SourceKind tags a [SourceMappingNode].
type SourceKind uint8

const (
	SourcePage SourceKind = iota
	SourceText
	SourceImage
	SourceShape
	SourceGroup
)

// SourceMappingNode relates a lowered element back to its source
// span: leaf kinds carry a span id, groups carry child indexes.
type SourceMappingNode struct {
	SourceKind SourceKind
	Span       uint64
	Children   []uint64
}
