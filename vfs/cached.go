// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfs

import (
	"path/filepath"
	"sync"
	"time"

	"cogentcore.org/vecdoc/base/lazy"
)

// cacheRetention is how many clear generations an untouched entry
// survives before it is dropped.
const cacheRetention = 30

// cacheEntry holds the cached data of a single file.
type cacheEntry struct {
	// lastAccessLifetime is the lifetime count when the entry was
	// last validated.
	lastAccessLifetime int64

	// mtime is the cached modification time.
	mtime time.Time

	isFile  lazy.Val[bool]
	readAll lazy.Val[[]byte]
}

// CachedAccessModel keeps per-path entries validated by a lifetime
// counter: within one lifetime an entry is served as-is; across
// lifetimes it is re-stat'ed and kept only if the mtime is unchanged.
// [CachedAccessModel.Clear] bumps the lifetime and drops entries that
// have not been touched for [cacheRetention] generations.
type CachedAccessModel struct {
	// Inner is the underlying access model.
	Inner AccessModel

	mu       sync.Mutex
	lifetime int64
	entries  map[string]*cacheEntry
}

// NewCachedAccessModel returns a cache over the given model.
func NewCachedAccessModel(inner AccessModel) *CachedAccessModel {
	return &CachedAccessModel{
		Inner:    inner,
		lifetime: 1,
		entries:  make(map[string]*cacheEntry),
	}
}

// entry returns the validated cache entry for the path, re-statting
// and evicting as needed.
func (c *CachedAccessModel) entry(path string) (*cacheEntry, error) {
	path = filepath.Clean(path)
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[path]; ok {
		if e.lastAccessLifetime == c.lifetime {
			return e, nil
		}
		mt, err := c.Inner.Mtime(path)
		if err != nil {
			delete(c.entries, path)
			return nil, err
		}
		if mt.Equal(e.mtime) {
			e.lastAccessLifetime = c.lifetime
			return e, nil
		}
		// stale: fall through to a fresh entry
	}

	mt, err := c.Inner.Mtime(path)
	if err != nil {
		return nil, err
	}
	e := &cacheEntry{lastAccessLifetime: c.lifetime, mtime: mt}
	c.entries[path] = e
	return e, nil
}

// Mtime returns the cached modification time.
func (c *CachedAccessModel) Mtime(path string) (time.Time, error) {
	e, err := c.entry(path)
	if err != nil {
		return time.Time{}, err
	}
	return e.mtime, nil
}

// IsFile reports whether the path names a regular file, computed once
// per entry.
func (c *CachedAccessModel) IsFile(path string) (bool, error) {
	e, err := c.entry(path)
	if err != nil {
		return false, err
	}
	return e.isFile.Compute(func() (bool, error) {
		return c.Inner.IsFile(path)
	})
}

// RealPath is forwarded uncached: canonicalization depends on state
// outside the entry's mtime.
func (c *CachedAccessModel) RealPath(path string) (string, error) {
	return c.Inner.RealPath(path)
}

// Content returns the file's bytes, read once per entry.
func (c *CachedAccessModel) Content(path string) ([]byte, error) {
	e, err := c.entry(path)
	if err != nil {
		return nil, err
	}
	return e.readAll.Compute(func() ([]byte, error) {
		return c.Inner.Content(path)
	})
}

// Clear bumps the lifetime counter, invalidating all entries, and
// drops entries whose age exceeds the retention threshold.
func (c *CachedAccessModel) Clear() {
	c.mu.Lock()
	c.lifetime++
	for p, e := range c.entries {
		if c.lifetime-e.lastAccessLifetime > cacheRetention {
			delete(c.entries, p)
		}
	}
	c.mu.Unlock()
	c.Inner.Clear()
}
