// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfs

import (
	"bytes"
	"path/filepath"
	"sync"
	"time"
)

type overlayMeta struct {
	mtime   time.Time
	content []byte
}

// OverlayAccessModel stores in-memory file shadows that take
// precedence over the inner model; lookups fall through on miss.
type OverlayAccessModel struct {
	mu    sync.RWMutex
	files map[string]overlayMeta

	// Inner is the underlying access model.
	Inner AccessModel
}

// NewOverlayAccessModel returns an overlay over the given model.
func NewOverlayAccessModel(inner AccessModel) *OverlayAccessModel {
	return &OverlayAccessModel{files: make(map[string]overlayMeta), Inner: inner}
}

// AddFile installs or replaces a shadow for the path. The shadow's
// mtime is the current time; when the same path is rewritten with the
// same mtime but different bytes, the stored mtime is decremented by
// one millisecond so that downstream caches must re-parse.
func (o *OverlayAccessModel) AddFile(path string, content []byte) {
	path = filepath.Clean(path)
	mt := time.Now()
	o.mu.Lock()
	defer o.mu.Unlock()
	if prev, ok := o.files[path]; ok && prev.mtime.Equal(mt) && !bytes.Equal(prev.content, content) {
		mt = mt.Add(-time.Millisecond)
	}
	o.files[path] = overlayMeta{mtime: mt, content: content}
}

// RemoveFile drops the shadow for the path, if any.
func (o *OverlayAccessModel) RemoveFile(path string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.files, filepath.Clean(path))
}

// ClearShadow drops all shadows.
func (o *OverlayAccessModel) ClearShadow() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.files = make(map[string]overlayMeta)
}

// Paths returns the shadowed paths.
func (o *OverlayAccessModel) Paths() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	ps := make([]string, 0, len(o.files))
	for p := range o.files {
		ps = append(ps, p)
	}
	return ps
}

func (o *OverlayAccessModel) lookup(path string) (overlayMeta, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	m, ok := o.files[filepath.Clean(path)]
	return m, ok
}

// Mtime returns the shadow mtime, or the inner model's.
func (o *OverlayAccessModel) Mtime(path string) (time.Time, error) {
	if m, ok := o.lookup(path); ok {
		return m.mtime, nil
	}
	return o.Inner.Mtime(path)
}

// IsFile reports true for shadowed paths, else asks the inner model.
func (o *OverlayAccessModel) IsFile(path string) (bool, error) {
	if _, ok := o.lookup(path); ok {
		return true, nil
	}
	return o.Inner.IsFile(path)
}

// RealPath returns the cleaned path itself for shadowed paths: a
// shadow is its own entity.
func (o *OverlayAccessModel) RealPath(path string) (string, error) {
	if _, ok := o.lookup(path); ok {
		return filepath.Clean(path), nil
	}
	return o.Inner.RealPath(path)
}

// Content returns the shadow bytes, or the inner model's content.
func (o *OverlayAccessModel) Content(path string) ([]byte, error) {
	if m, ok := o.lookup(path); ok {
		return m.content, nil
	}
	return o.Inner.Content(path)
}

// Clear forwards to the inner model; shadows are kept.
func (o *OverlayAccessModel) Clear() {
	o.Inner.Clear()
}
