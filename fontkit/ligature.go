// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fontkit

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype/tables"
)

// LigatureResolver maps ligature glyph ids of one face back to the
// utf-8 string of their component characters. The reverse cmap and
// the ligature coverage set are built once; per-glyph resolutions are
// memoized.
type LigatureResolver struct {
	// revCmap maps glyph ids to the character producing them,
	// built from all unicode cmap subtables.
	revCmap map[uint32]rune

	// components maps each GSUB ligature glyph to its component
	// glyph ids.
	components map[uint32][]uint32

	mu    sync.RWMutex
	cache map[uint32]string
}

func newLigatureResolver(face *font.Face) *LigatureResolver {
	lr := &LigatureResolver{
		revCmap:    make(map[uint32]rune),
		components: make(map[uint32][]uint32),
		cache:      make(map[uint32]string),
	}
	if face.Cmap != nil {
		iter := face.Cmap.Iter()
		for iter.Next() {
			r, gid := iter.Char()
			if _, ok := lr.revCmap[uint32(gid)]; !ok {
				lr.revCmap[uint32(gid)] = r
			}
		}
	}
	// some fonts do not carry a well-formed gdef table, so ligature
	// coverage comes straight from the gsub ligature subtables
	for _, lookup := range face.GSUB.Lookups {
		for _, sub := range lookup.Subtables {
			liga, ok := sub.(tables.LigatureSubs)
			if !ok {
				continue
			}
			for _, set := range liga.LigatureSets {
				for _, lig := range set.Ligatures {
					comps := make([]uint32, 0, len(lig.ComponentGlyphIDs))
					for _, c := range lig.ComponentGlyphIDs {
						comps = append(comps, uint32(c))
					}
					if _, ok := lr.components[uint32(lig.LigatureGlyph)]; !ok {
						lr.components[uint32(lig.LigatureGlyph)] = comps
					}
				}
			}
		}
	}
	return lr
}

// Char returns the character producing the glyph per the reverse
// cmap, if any.
func (lr *LigatureResolver) Char(id uint32) (rune, bool) {
	r, ok := lr.revCmap[id]
	return r, ok
}

// Covered reports whether the glyph id is produced by a GSUB ligature
// substitution.
func (lr *LigatureResolver) Covered(id uint32) bool {
	_, ok := lr.components[id]
	return ok
}

// Resolve returns the unicode string of the ligature glyph's
// components, or "" and false if the glyph is not a ligature.
// Components missing from the reverse cmap fall back to a space.
func (lr *LigatureResolver) Resolve(id uint32) (string, bool) {
	lr.mu.RLock()
	s, ok := lr.cache[id]
	lr.mu.RUnlock()
	if ok {
		return s, s != ""
	}

	comps, isLig := lr.components[id]
	var res string
	if isLig {
		var b strings.Builder
		for _, g := range comps {
			c, ok := lr.revCmap[g]
			if !ok {
				slog.Debug("fontkit: ligature component not in cmap", "glyph", g, "ligature", id)
				c = ' '
			}
			b.WriteRune(c)
		}
		res = b.String()
	}

	lr.mu.Lock()
	lr.cache[id] = res
	lr.mu.Unlock()
	return res, isLig
}
