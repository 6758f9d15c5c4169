// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package watch

import (
	"context"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"cogentcore.org/vecdoc/vfs"
)

// debounceWindow is how long the watcher gathers bursts of events
// before emitting one coalesced change set.
const debounceWindow = 50 * time.Millisecond

// Watcher bridges fsnotify to the actor: OS events are debounced,
// read into file snapshots, and delivered as filesystem interrupts.
type Watcher struct {
	fsw   *fsnotify.Watcher
	actor *CompileActor
}

// NewWatcher returns a watcher feeding the given actor.
func NewWatcher(actor *CompileActor) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{fsw: fsw, actor: actor}, nil
}

// Watch adds paths (files or directories) to the watch set.
func (w *Watcher) Watch(paths ...string) error {
	for _, p := range paths {
		if err := w.fsw.Add(p); err != nil {
			return err
		}
	}
	return nil
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run forwards events until the context is canceled. Bursts within
// the debounce window collapse into one change set.
func (w *Watcher) Run(ctx context.Context) {
	pending := map[string]fsnotify.Op{}
	var timer *time.Timer
	var fire <-chan time.Time

	flush := func() {
		if len(pending) == 0 {
			return
		}
		cs := w.changeSet(pending)
		pending = map[string]fsnotify.Op{}
		if !cs.IsEmpty() {
			w.actor.Interrupt(Interrupt{Kind: Fs, Fs: vfs.Changed(cs)})
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				flush()
				return
			}
			pending[ev.Name] |= ev.Op
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				timer.Reset(debounceWindow)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				flush()
				return
			}
			_ = err // transient watch errors surface on the next read
		case <-fire:
			fire = nil
			flush()
		}
	}
}

// changeSet reads the current state of each pending path.
func (w *Watcher) changeSet(pending map[string]fsnotify.Op) vfs.FileChangeSet {
	var cs vfs.FileChangeSet
	for path, op := range pending {
		if op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			if _, err := os.Stat(path); err != nil {
				cs.Remove = append(cs.Remove, path)
				continue
			}
		}
		snap := vfs.FileSnapshot{Path: path}
		st, err := os.Stat(path)
		if err != nil {
			snap.Err = vfs.WrapIO(path, err)
		} else {
			snap.Mtime = st.ModTime()
			snap.Content, err = os.ReadFile(path)
			if err != nil {
				snap.Err = vfs.WrapIO(path, err)
			}
		}
		cs.Insert = append(cs.Insert, snap)
	}
	return cs
}
