// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfs

import (
	"path/filepath"
	"sync"
	"time"
)

// FileSnapshot is the state of one file as reported by a filesystem
// watcher: either content and mtime, or the error the watcher hit.
type FileSnapshot struct {
	Path    string
	Mtime   time.Time
	Content []byte
	Err     error
}

// FileChangeSet lists the files inserted or removed by one filesystem
// event.
type FileChangeSet struct {
	Insert []FileSnapshot
	Remove []string
}

// IsEmpty reports whether the change set carries no changes.
func (cs *FileChangeSet) IsEmpty() bool {
	return len(cs.Insert) == 0 && len(cs.Remove) == 0
}

// FilesystemEventKind tags a [FilesystemEvent].
type FilesystemEventKind uint8

const (
	// EventChanged carries a change set.
	EventChanged FilesystemEventKind = iota

	// EventCancelChanged marks pending changes as withdrawn;
	// [NotifyAccessModel.Notify] ignores it.
	EventCancelChanged
)

// FilesystemEvent is one message from a filesystem watcher.
type FilesystemEvent struct {
	Kind    FilesystemEventKind
	Changes FileChangeSet
}

// Changed returns a change event for the given set.
func Changed(cs FileChangeSet) FilesystemEvent {
	return FilesystemEvent{Kind: EventChanged, Changes: cs}
}

// NotifyAccessModel holds the file states pushed by a filesystem
// watcher; they take precedence over the inner model.
type NotifyAccessModel struct {
	mu    sync.RWMutex
	files map[string]FileSnapshot

	// Inner is the underlying access model.
	Inner AccessModel
}

// NewNotifyAccessModel returns a notify layer over the given model.
func NewNotifyAccessModel(inner AccessModel) *NotifyAccessModel {
	return &NotifyAccessModel{files: make(map[string]FileSnapshot), Inner: inner}
}

// Notify merges a change event into the model; events of any other
// kind leave it unchanged.
func (n *NotifyAccessModel) Notify(ev FilesystemEvent) {
	if ev.Kind != EventChanged {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, p := range ev.Changes.Remove {
		delete(n.files, filepath.Clean(p))
	}
	for _, snap := range ev.Changes.Insert {
		n.files[filepath.Clean(snap.Path)] = snap
	}
}

func (n *NotifyAccessModel) lookup(path string) (FileSnapshot, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	s, ok := n.files[filepath.Clean(path)]
	return s, ok
}

// Mtime returns the notified mtime, or the inner model's.
func (n *NotifyAccessModel) Mtime(path string) (time.Time, error) {
	if s, ok := n.lookup(path); ok {
		if s.Err != nil {
			return time.Time{}, s.Err
		}
		return s.Mtime, nil
	}
	return n.Inner.Mtime(path)
}

// IsFile reports true for notified paths, else asks the inner model.
func (n *NotifyAccessModel) IsFile(path string) (bool, error) {
	if s, ok := n.lookup(path); ok {
		if s.Err != nil {
			return false, s.Err
		}
		return true, nil
	}
	return n.Inner.IsFile(path)
}

// RealPath returns the cleaned path itself for notified paths.
func (n *NotifyAccessModel) RealPath(path string) (string, error) {
	if _, ok := n.lookup(path); ok {
		return filepath.Clean(path), nil
	}
	return n.Inner.RealPath(path)
}

// Content returns the notified bytes, or the inner model's content.
func (n *NotifyAccessModel) Content(path string) ([]byte, error) {
	if s, ok := n.lookup(path); ok {
		if s.Err != nil {
			return nil, s.Err
		}
		return s.Content, nil
	}
	return n.Inner.Content(path)
}

// Clear forwards to the inner model; notified state is kept.
func (n *NotifyAccessModel) Clear() {
	n.Inner.Clear()
}
