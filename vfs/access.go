// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfs

import (
	"os"
	"path/filepath"
	"time"
)

// AccessModel is the capability set the VFS consumes from its
// environment. All operations are synchronous and fallible; errors
// carry the originating path and a coarse [ErrorKind].
//
// Models compose struct-in-struct: overlay over notify over cached
// over system, each taking precedence over its inner model.
type AccessModel interface {
	// Mtime returns the last-modified time of the file at the path.
	Mtime(path string) (time.Time, error)

	// IsFile reports whether the path names a regular file.
	IsFile(path string) (bool, error)

	// RealPath returns the canonical identifier for the path. Two
	// paths aliasing the same entity return equal identifiers.
	RealPath(path string) (string, error)

	// Content returns the file's bytes.
	Content(path string) ([]byte, error)

	// Clear drops cached state, if any.
	Clear()
}

// SystemAccessModel delegates to the operating system.
type SystemAccessModel struct{}

// Mtime returns the file's last-modified time.
func (SystemAccessModel) Mtime(path string) (time.Time, error) {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}, WrapIO(path, err)
	}
	return st.ModTime(), nil
}

// IsFile reports whether the path names a regular file.
func (SystemAccessModel) IsFile(path string) (bool, error) {
	st, err := os.Stat(path)
	if err != nil {
		return false, WrapIO(path, err)
	}
	return st.Mode().IsRegular(), nil
}

// RealPath resolves symlinks and returns the absolute canonical path.
func (SystemAccessModel) RealPath(path string) (string, error) {
	rp, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", WrapIO(path, err)
	}
	abs, err := filepath.Abs(rp)
	if err != nil {
		return "", WrapIO(path, err)
	}
	return abs, nil
}

// Content returns the file's bytes, failing with is-directory for
// directories.
func (s SystemAccessModel) Content(path string) ([]byte, error) {
	isf, err := s.IsFile(path)
	if err != nil {
		return nil, err
	}
	if !isf {
		return nil, Errorf(KindIsDirectory, path, nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapIO(path, err)
	}
	return data, nil
}

// Clear is a no-op: the system model holds no cache.
func (SystemAccessModel) Clear() {}
