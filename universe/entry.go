// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package universe holds the mutable container of compilation inputs
// and derives immutable snapshot worlds from it for individual
// compilations.
package universe

import (
	"fmt"
	"path/filepath"
	"strings"
)

// EntryKind tags an [EntryState].
type EntryKind uint8

const (
	// Workspace roots compilation in a directory, with an optional
	// pre-selected main file.
	Workspace EntryKind = iota

	// PreparedEntry compiles one prepared file, with an optional
	// root.
	PreparedEntry

	// Detached has no root and cannot resolve files.
	Detached
)

// EntryState chooses the compilation root and main file. When both a
// root and a main file are present, the main file must be inside the
// root.
type EntryState struct {
	Kind EntryKind

	// Root is the workspace root directory.
	Root string

	// Main is the main file path; empty when not selected.
	Main string
}

// WorkspaceEntry returns a workspace entry with an optional main.
func WorkspaceEntry(root, main string) EntryState {
	return EntryState{Kind: Workspace, Root: filepath.Clean(root), Main: main}
}

// PreparedEntryState returns a prepared entry with an optional root.
func PreparedEntryState(entry, root string) EntryState {
	return EntryState{Kind: PreparedEntry, Root: root, Main: entry}
}

// DetachedEntry returns the detached state.
func DetachedEntry() EntryState {
	return EntryState{Kind: Detached}
}

// NotInWorkspaceError reports an entry path escaping the workspace
// root.
type NotInWorkspaceError struct {
	Root string
	Path string
}

func (e *NotInWorkspaceError) Error() string {
	return fmt.Sprintf("not-in-workspace: %s is outside %s", e.Path, e.Root)
}

// Validate checks the entry's invariants.
func (e EntryState) Validate() error {
	if e.Kind == Detached {
		return nil
	}
	if e.Root == "" || e.Main == "" {
		return nil
	}
	rel, err := filepath.Rel(e.Root, e.Main)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return &NotInWorkspaceError{Root: e.Root, Path: e.Main}
	}
	return nil
}

// SelectInWorkspace returns the state with the given main file
// selected, failing when the path escapes the workspace root.
func (e EntryState) SelectInWorkspace(path string) (EntryState, error) {
	next := e
	next.Main = path
	if err := next.Validate(); err != nil {
		return e, err
	}
	return next, nil
}

// IsDetached reports whether the state can resolve no files.
func (e EntryState) IsDetached() bool {
	return e.Kind == Detached
}
