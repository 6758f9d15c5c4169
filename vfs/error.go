// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vfs implements the virtual file system feeding compilation:
// composable file access models (system, memory, overlay, cached,
// notify), stable file identities via a real-path interner, and
// lazily initialized per-file slots holding parsed sources and raw
// bytes.
package vfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrorKind is the coarse classification of a file access error.
type ErrorKind int32

const (
	// KindOther is any error not covered by the other kinds.
	KindOther ErrorKind = iota

	// KindNotFound indicates the path could not be located.
	KindNotFound

	// KindAccessDenied indicates an OS-level permission failure.
	KindAccessDenied

	// KindIsDirectory indicates a file operation on a directory.
	KindIsDirectory

	// KindInvalidUTF8 indicates a source file that is not valid utf-8.
	KindInvalidUTF8
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindAccessDenied:
		return "access-denied"
	case KindIsDirectory:
		return "is-directory"
	case KindInvalidUTF8:
		return "invalid-utf8"
	}
	return "other"
}

// FileError is a file access error carrying the originating path and
// a coarse kind. It wraps the underlying error, if any.
type FileError struct {
	Path string
	Kind ErrorKind
	Err  error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

func (e *FileError) Unwrap() error { return e.Err }

// Errorf returns a FileError of the given kind for the given path.
func Errorf(kind ErrorKind, path string, err error) *FileError {
	return &FileError{Path: path, Kind: kind, Err: err}
}

// WrapIO classifies an I/O error from the operating system or an
// [fs.FS] into a FileError for the given path. A nil error maps to
// nil.
func WrapIO(path string, err error) error {
	if err == nil {
		return nil
	}
	var fe *FileError
	if errors.As(err, &fe) {
		return err
	}
	kind := KindOther
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, os.ErrNotExist):
		kind = KindNotFound
	case errors.Is(err, fs.ErrPermission), errors.Is(err, os.ErrPermission):
		kind = KindAccessDenied
	}
	return Errorf(kind, path, err)
}

// KindOf returns the kind of a file error, with KindOther for any
// other error.
func KindOf(err error) ErrorKind {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindOther
}
