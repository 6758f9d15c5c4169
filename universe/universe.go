// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package universe

import (
	"maps"
	"sync"

	"cogentcore.org/vecdoc/document"
	"cogentcore.org/vecdoc/fontkit"
	"cogentcore.org/vecdoc/vfs"
)

// TaskInputs overrides entry and inputs for one compilation task.
// Nil fields keep the universe's current values.
type TaskInputs struct {
	Entry  *EntryState
	Inputs map[string]string
}

// Universe owns the mutable compilation inputs: entry state, input
// dictionary, font book, and the VFS. Snapshots derived from it are
// immutable; the universe may be mutated freely in between.
type Universe struct {
	mu     sync.Mutex
	entry  EntryState
	inputs map[string]string

	fs   *vfs.Vfs
	book *fontkit.Book
}

// New returns a universe over the given options and access model.
func New(opts *Options, access vfs.AccessModel) (*Universe, error) {
	if err := opts.Entry.Validate(); err != nil {
		return nil, err
	}
	return &Universe{
		entry:  opts.Entry,
		inputs: maps.Clone(opts.Inputs),
		fs:     vfs.New(access),
		book:   fontkit.NewBook(opts.FontOptions()),
	}, nil
}

// Vfs returns the owned virtual file system.
func (u *Universe) Vfs() *vfs.Vfs {
	return u.fs
}

// Book returns the font resolver.
func (u *Universe) Book() *fontkit.Book {
	return u.book
}

// Entry returns the current entry state.
func (u *Universe) Entry() EntryState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.entry
}

// MutateEntry validates and installs a new entry state, returning the
// previous one.
func (u *Universe) MutateEntry(next EntryState) (EntryState, error) {
	if err := next.Validate(); err != nil {
		return EntryState{}, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	prev := u.entry
	u.entry = next
	return prev, nil
}

// SetInputs replaces the input dictionary.
func (u *Universe) SetInputs(inputs map[string]string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.inputs = maps.Clone(inputs)
}

// Snapshot takes an immutable world for one compilation task,
// applying the task's overrides without mutating the universe.
func (u *Universe) Snapshot(task *TaskInputs) (*World, error) {
	u.mu.Lock()
	entry := u.entry
	inputs := maps.Clone(u.inputs)
	u.mu.Unlock()

	if task != nil {
		if task.Entry != nil {
			entry = *task.Entry
		}
		if task.Inputs != nil {
			inputs = maps.Clone(task.Inputs)
		}
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return &World{entry: entry, inputs: inputs, fs: u.fs, book: u.book}, nil
}

// World is an immutable view of the universe used for a single
// compilation. It carries the capability set the upstream compiler
// consumes.
type World struct {
	entry  EntryState
	inputs map[string]string
	fs     *vfs.Vfs
	book   *fontkit.Book
}

// Root returns the workspace root, empty when detached.
func (w *World) Root() string {
	return w.entry.Root
}

// Entry returns the snapshot's entry state.
func (w *World) Entry() EntryState {
	return w.entry
}

// Inputs returns the input dictionary passed to the engine as
// sys.inputs.
func (w *World) Inputs() map[string]string {
	return w.inputs
}

// Main resolves the id of the main file. Detached worlds have no
// main.
func (w *World) Main() (vfs.FileId, error) {
	if w.entry.IsDetached() || w.entry.Main == "" {
		return 0, vfs.Errorf(vfs.KindNotFound, "<detached>", nil)
	}
	return w.fs.FileId(w.entry.Main)
}

// Resolve returns the stable id of the given path.
func (w *World) Resolve(path string) (vfs.FileId, error) {
	return w.fs.FileId(path)
}

// Source returns the parsed source of the given path, memoized with
// error replay.
func (w *World) Source(path string) (*document.Source, error) {
	return w.fs.Source(path)
}

// File returns the raw bytes of the given path.
func (w *World) File(path string) ([]byte, error) {
	return w.fs.File(path)
}

// Book returns the font resolver.
func (w *World) Book() *fontkit.Book {
	return w.book
}

// Font returns the face at the given index of the font table.
func (w *World) Font(index int) *fontkit.Face {
	return w.book.Font(index)
}

// Compiler is the upstream document engine boundary: a pure function
// from a world to a laid-out document, reporting diagnostics instead
// of failing.
type Compiler interface {
	Compile(w *World) (*document.Document, []*document.Diagnostic)
}
