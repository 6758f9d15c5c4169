// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfs

import (
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"

	"cogentcore.org/vecdoc/base/errors"
)

// MemAccessModel is an access model over an in-memory filesystem,
// used by detached universes and tests.
type MemAccessModel struct {
	fs *mem.FS
}

// NewMemAccessModel returns an empty in-memory access model.
func NewMemAccessModel() *MemAccessModel {
	return &MemAccessModel{fs: errors.Must1(mem.NewFS())}
}

// fsPath maps an absolute slash path onto the io/fs path space of the
// underlying filesystem.
func fsPath(p string) string {
	p = strings.TrimPrefix(filepath.ToSlash(filepath.Clean(p)), "/")
	if p == "" {
		return "."
	}
	return p
}

// WriteFile installs file content, creating parent directories.
func (m *MemAccessModel) WriteFile(p string, data []byte) error {
	fp := fsPath(p)
	if dir := path.Dir(fp); dir != "." {
		if err := hackpadfs.MkdirAll(m.fs, dir, 0755); err != nil {
			return WrapIO(p, err)
		}
	}
	return WrapIO(p, hackpadfs.WriteFullFile(m.fs, fp, data, 0644))
}

// Remove deletes the file at the path.
func (m *MemAccessModel) Remove(p string) error {
	return WrapIO(p, hackpadfs.Remove(m.fs, fsPath(p)))
}

// Mtime returns the file's last-modified time.
func (m *MemAccessModel) Mtime(p string) (time.Time, error) {
	st, err := hackpadfs.Stat(m.fs, fsPath(p))
	if err != nil {
		return time.Time{}, WrapIO(p, err)
	}
	return st.ModTime(), nil
}

// IsFile reports whether the path names a regular file.
func (m *MemAccessModel) IsFile(p string) (bool, error) {
	st, err := hackpadfs.Stat(m.fs, fsPath(p))
	if err != nil {
		return false, WrapIO(p, err)
	}
	return st.Mode().IsRegular(), nil
}

// RealPath returns the cleaned absolute path: the memory filesystem
// has no aliasing.
func (m *MemAccessModel) RealPath(p string) (string, error) {
	return "/" + fsPath(p), nil
}

// Content returns the file's bytes.
func (m *MemAccessModel) Content(p string) ([]byte, error) {
	isf, err := m.IsFile(p)
	if err != nil {
		return nil, err
	}
	if !isf {
		return nil, Errorf(KindIsDirectory, p, nil)
	}
	data, err := hackpadfs.ReadFile(m.fs, fsPath(p))
	if err != nil {
		return nil, WrapIO(p, err)
	}
	return data, nil
}

// Clear is a no-op: content is authoritative, not cached.
func (m *MemAccessModel) Clear() {}
