// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc2vec

import (
	"log/slog"
	"slices"

	"cogentcore.org/vecdoc/base/fingerprint"
	"cogentcore.org/vecdoc/fontkit"
	"cogentcore.org/vecdoc/vector"
	"cogentcore.org/vecdoc/vector/stream"
)

// IncrPass is the incremental lowering pass: a [Pass] plus the
// lifetime counter driving garbage collection. Between runs the
// owner increments the lifetime so that newly touched items inherit
// the new value, and collects items that have not been touched for a
// threshold of generations.
type IncrPass struct {
	Pass
}

// NewIncrPass returns an incremental pass with the default glyph
// provider.
func NewIncrPass() *IncrPass {
	ip := &IncrPass{}
	ip.Provider = fontkit.FontGlyphProvider{}
	ip.Spans = NewSpanTable()
	ip.fontIndex = make(map[fingerprint.Fingerprint]uint32)
	return ip
}

// IncrementLifetime advances the lifetime counter; all items touched
// afterwards inherit the new value.
func (ip *IncrPass) IncrementLifetime() {
	ip.lifetime.Inc()
}

// Lifetime returns the current lifetime value.
func (ip *IncrPass) Lifetime() int64 {
	return ip.lifetime.Value()
}

// GC removes items whose lifetime is older than the current lifetime
// minus the threshold and returns the removed fingerprints. Items
// reachable from the current page list are touched on every pass, so
// they are never older than one generation and cannot be collected.
func (ip *IncrPass) GC(threshold int64) []fingerprint.Fingerprint {
	current := ip.lifetime.Value()
	var removed []fingerprint.Fingerprint
	minLife, maxLife := int64(-1), int64(-1)
	ip.items.Range(func(k, v any) bool {
		life := v.(*itemCell).life.Value()
		if minLife < 0 || life < minLife {
			minLife = life
		}
		if life > maxLife {
			maxLife = life
		}
		if life+threshold < current {
			ip.items.Delete(k)
			removed = append(removed, k.(fingerprint.Fingerprint))
		}
		return true
	})
	slices.SortFunc(removed, compareFingerprints)
	slog.Debug("doc2vec: gc", "lifetime", current, "min", minLife, "max", maxLife, "removed", len(removed))
	return removed
}

// Delta is the lowering output drained since the previous
// finalization: new items, newly registered fonts, and new glyph
// payloads.
type Delta struct {
	Items  []stream.ItemEntry
	Fonts  []vector.FontInfo
	Glyphs []stream.GlyphEntry
}

// FinalizeDelta drains and returns everything added since the last
// call, in canonical order.
func (ip *IncrPass) FinalizeDelta() Delta {
	var d Delta

	ip.newMu.Lock()
	d.Items = ip.newItems
	ip.newItems = nil
	ip.newMu.Unlock()
	sortItems(d.Items)

	ip.fontMu.Lock()
	for _, fs := range ip.fonts[ip.firstUnsentFont:] {
		d.Fonts = append(d.Fonts, fs.item.FontInfo)
	}
	ip.firstUnsentFont = len(ip.fonts)
	for _, fs := range ip.fonts {
		fs.mu.Lock()
		d.Glyphs = append(d.Glyphs, fs.newGlyphs...)
		fs.newGlyphs = nil
		fs.mu.Unlock()
	}
	ip.fontMu.Unlock()
	sortGlyphs(d.Glyphs)
	return d
}

// FinalizeRef returns the full current state in canonical order,
// without disturbing delta tracking.
func (ip *IncrPass) FinalizeRef() Delta {
	var d Delta
	ip.items.Range(func(k, v any) bool {
		d.Items = append(d.Items, stream.ItemEntry{
			Fingerprint: k.(fingerprint.Fingerprint),
			Item:        v.(*itemCell).item,
		})
		return true
	})
	sortItems(d.Items)

	ip.fontMu.Lock()
	for fi, fs := range ip.fonts {
		snap := fs.snapshot()
		d.Fonts = append(d.Fonts, snap.FontInfo)
		for gi, g := range snap.Glyphs {
			if !snap.Covered(uint32(gi)) {
				continue
			}
			d.Glyphs = append(d.Glyphs, stream.GlyphEntry{
				Ref:   vector.GlyphRef{Font: uint32(fi), Glyph: uint32(gi)},
				Glyph: g,
			})
		}
	}
	ip.fontMu.Unlock()
	sortGlyphs(d.Glyphs)
	return d
}

func compareFingerprints(a, b fingerprint.Fingerprint) int {
	switch {
	case a.Lo != b.Lo:
		if a.Lo < b.Lo {
			return -1
		}
		return 1
	case a.Hi != b.Hi:
		if a.Hi < b.Hi {
			return -1
		}
		return 1
	}
	return 0
}

func sortItems(items []stream.ItemEntry) {
	slices.SortFunc(items, func(a, b stream.ItemEntry) int {
		return compareFingerprints(a.Fingerprint, b.Fingerprint)
	})
}

func sortGlyphs(glyphs []stream.GlyphEntry) {
	slices.SortFunc(glyphs, func(a, b stream.GlyphEntry) int {
		switch {
		case a.Ref.Font != b.Ref.Font:
			if a.Ref.Font < b.Ref.Font {
				return -1
			}
			return 1
		case a.Ref.Glyph != b.Ref.Glyph:
			if a.Ref.Glyph < b.Ref.Glyph {
				return -1
			}
			return 1
		}
		return 0
	})
}
