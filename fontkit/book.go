// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fontkit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	lmmono "github.com/go-fonts/latin-modern/lmmono10regular"
	lmroman "github.com/go-fonts/latin-modern/lmroman10regular"

	"cogentcore.org/vecdoc/base/errors"
	"cogentcore.org/vecdoc/base/fsx"
)

// Book is a font resolver: the ordered list of available faces, with
// family lookup. Faces are parsed lazily on first use.
type Book struct {
	mu      sync.Mutex
	sources []faceSource
	faces   []*Face
}

type faceSource struct {
	path string
	data []byte
}

// SystemFontDirs is the hook for OS font enumeration. Font discovery
// is external; hosts that want system fonts install a non-nil hook.
var SystemFontDirs func() []string

// FontOptions configures which fonts a [Book] loads.
type FontOptions struct {
	// FontPaths lists additional directories searched for fonts.
	FontPaths []string

	// WithEmbeddedFonts includes the in-memory font blobs that are
	// always available.
	WithEmbeddedFonts bool

	// NoSystemFonts skips OS font discovery.
	NoSystemFonts bool
}

// NewBook returns a book over the given options, in order: embedded
// fonts, font path directories, then system fonts unless disabled.
func NewBook(opts FontOptions) *Book {
	b := &Book{}
	if opts.WithEmbeddedFonts {
		b.AddData(lmroman.TTF)
		b.AddData(lmmono.TTF)
	}
	dirs := append([]string{}, opts.FontPaths...)
	if !opts.NoSystemFonts && SystemFontDirs != nil {
		dirs = append(dirs, SystemFontDirs()...)
	}
	for _, dir := range dirs {
		for _, name := range fsx.Filenames(dir, ".ttf", ".otf", ".ttc", ".otc") {
			b.AddPath(filepath.Join(dir, name))
		}
	}
	return b
}

// AddData registers an in-memory font blob.
func (b *Book) AddData(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sources = append(b.sources, faceSource{data: data})
	b.faces = append(b.faces, nil)
}

// AddPath registers a font file.
func (b *Book) AddPath(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sources = append(b.sources, faceSource{path: path})
	b.faces = append(b.faces, nil)
}

// Len returns the number of registered faces.
func (b *Book) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sources)
}

// Font returns the face at the given index, parsing it on first use.
// It returns nil if the index is out of range or the face fails to
// parse; failures are logged and not cached, so a later call for the
// same index reads, parses and logs again.
func (b *Book) Font(i int) *Face {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(b.sources) {
		return nil
	}
	if b.faces[i] != nil {
		return b.faces[i]
	}
	src := b.sources[i]
	data := src.data
	if data == nil {
		var err error
		data, err = os.ReadFile(src.path)
		if err != nil {
			errors.Log(err)
			return nil
		}
	}
	fc, err := NewFace(data, 0)
	if err != nil {
		errors.Log(err)
		return nil
	}
	b.faces[i] = fc
	return fc
}

// Select returns the first face whose family matches the given name,
// case-insensitively, or nil.
func (b *Book) Select(family string) *Face {
	n := b.Len()
	for i := range n {
		if fc := b.Font(i); fc != nil && strings.EqualFold(fc.Family(), family) {
			return fc
		}
	}
	return nil
}
