// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfs

import (
	"path/filepath"
	"sync"
	"unsafe"

	"cogentcore.org/vecdoc/base/keylist"
	"cogentcore.org/vecdoc/base/lazy"
	"cogentcore.org/vecdoc/document"
)

// FileId is a stable handle to a file. Ids are assigned by interning
// real paths: distinct paths aliasing the same entity share one id,
// and an id once assigned never changes until [Vfs.Reset].
type FileId uint32

// PathSlot holds the canonical data for all paths pointing to the
// same entity: a sampled originating path and the lazily computed
// parsed source and raw bytes. Both accessors memoize their first
// result, errors included; only [Vfs.Reset] clears them.
type PathSlot struct {
	idx FileId

	sampleOnce sync.Once
	sampled    string

	source lazy.Val[*document.Source]
	buffer lazy.Val[[]byte]
}

func newPathSlot(idx FileId) *PathSlot {
	return &PathSlot{idx: idx}
}

func (s *PathSlot) samplePath(p string) {
	s.sampleOnce.Do(func() { s.sampled = p })
}

// Vfs maps paths to stable [FileId]s over an access model and owns
// the per-file slots. The interner is guarded by a mutex; the
// path-to-slot map uses a read-write lock with an upgrade-on-insert
// discipline.
type Vfs struct {
	access AccessModel

	internerMu sync.Mutex
	interner   keylist.List[string, FileId]

	slotsMu   sync.RWMutex
	path2slot map[string]FileId
	slots     []*PathSlot
}

// New returns a VFS over the given access model.
func New(access AccessModel) *Vfs {
	return &Vfs{
		access:    access,
		path2slot: make(map[string]FileId),
	}
}

// AccessModel returns the underlying access model.
func (v *Vfs) AccessModel() AccessModel {
	return v.access
}

// Reset drops all slot caches and clears the access model's caches.
// The real-path interner is retained, so a path re-resolved after the
// reset keeps its [FileId].
func (v *Vfs) Reset() {
	v.slotsMu.Lock()
	v.path2slot = make(map[string]FileId)
	v.slots = nil
	v.slotsMu.Unlock()

	v.access.Clear()
}

// MemoryUsage returns the approximate memory held by the slots, in
// bytes.
func (v *Vfs) MemoryUsage() int {
	v.slotsMu.RLock()
	defer v.slotsMu.RUnlock()
	n := len(v.slots) * int(unsafe.Sizeof(PathSlot{}))
	for _, s := range v.slots {
		if buf, _, ok := s.buffer.Get(); ok {
			n += len(buf)
		}
	}
	return n
}

// Dependant reports whether the path has been accessed by the current
// compilation state, i.e. whether a change to it can affect output.
func (v *Vfs) Dependant(path string) bool {
	path = filepath.Clean(path)
	v.slotsMu.RLock()
	defer v.slotsMu.RUnlock()
	_, ok := v.path2slot[path]
	return ok
}

// FileId returns the stable id for the path, interning its real path
// on first sight. Paths resolving to the same real path share an id;
// the normalized path is inserted alongside the syntactic one.
func (v *Vfs) FileId(path string) (FileId, error) {
	slot, err := v.slot(path)
	if err != nil {
		return 0, err
	}
	return slot.idx, nil
}

// FilePath returns the sampled originating path for the given id.
// It returns "" if the id has no slot.
func (v *Vfs) FilePath(id FileId) string {
	v.slotsMu.RLock()
	defer v.slotsMu.RUnlock()
	if int(id) >= len(v.slots) {
		return ""
	}
	return v.slots[id].sampled
}

// slot returns the slot for the path, creating it as needed.
func (v *Vfs) slot(path string) (*PathSlot, error) {
	// fast path for already inserted paths
	v.slotsMu.RLock()
	if id, ok := v.path2slot[path]; ok {
		s := v.slots[id]
		v.slotsMu.RUnlock()
		return s, nil
	}
	v.slotsMu.RUnlock()

	// resolve the real entity outside the slot lock: access model
	// calls may block on I/O
	real, err := v.access.RealPath(path)
	if err != nil {
		return nil, err
	}

	v.internerMu.Lock()
	idx := FileId(v.interner.Add(real, FileId(v.interner.Len())))
	v.internerMu.Unlock()

	v.slotsMu.Lock()
	defer v.slotsMu.Unlock()
	// racing inserters may have interned the same path meanwhile
	if id, ok := v.path2slot[path]; ok {
		return v.slots[id], nil
	}
	for len(v.slots) <= int(idx) {
		v.slots = append(v.slots, newPathSlot(FileId(len(v.slots))))
	}
	s := v.slots[idx]
	s.samplePath(path)
	v.path2slot[path] = idx
	if norm := filepath.Clean(path); norm != path {
		if _, ok := v.path2slot[norm]; !ok {
			v.path2slot[norm] = idx
		}
	}
	return s, nil
}

// read fetches a file's bytes through the access model, mapping
// directories to is-directory errors.
func (v *Vfs) read(path string) ([]byte, error) {
	isf, err := v.access.IsFile(path)
	if err != nil {
		return nil, err
	}
	if !isf {
		return nil, Errorf(KindIsDirectory, path, nil)
	}
	return v.access.Content(path)
}

// File returns the raw bytes of the path, memoized in its slot.
func (v *Vfs) File(path string) ([]byte, error) {
	slot, err := v.slot(path)
	if err != nil {
		return nil, err
	}
	return slot.buffer.Compute(func() ([]byte, error) {
		return v.read(path)
	})
}

// Source returns the parsed source of the path, memoized in its slot:
// the first caller reads and decodes the bytes, and subsequent
// callers observe the same result, including the same error.
func (v *Vfs) Source(path string) (*document.Source, error) {
	slot, err := v.slot(path)
	if err != nil {
		return nil, err
	}
	return slot.source.Compute(func() (*document.Source, error) {
		data, err := slot.buffer.Compute(func() ([]byte, error) {
			return v.read(path)
		})
		if err != nil {
			return nil, err
		}
		text, err := DecodeUTF8(path, data)
		if err != nil {
			return nil, err
		}
		return document.NewSource(path, text), nil
	})
}

// SourceById returns the memoized source for the given id. The source
// must have been resolved through [Vfs.Source] first.
func (v *Vfs) SourceById(id FileId) (*document.Source, bool) {
	v.slotsMu.RLock()
	defer v.slotsMu.RUnlock()
	if int(id) >= len(v.slots) {
		return nil, false
	}
	src, err, ok := v.slots[id].source.Get()
	if !ok || err != nil {
		return nil, false
	}
	return src, true
}
