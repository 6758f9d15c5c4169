// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package document

import (
	"sort"
	"strings"
)

// Source is a parsed source file: its originating path, text, and a
// lazily built line index for span resolution.
type Source struct {
	// Path is the originating path of the source.
	Path string

	text string

	// lineStarts holds the byte offset of each line start, built on
	// first use.
	lineStarts []int
}

// NewSource returns a source over the given text. The text must
// already be valid utf-8 with any byte order mark removed.
func NewSource(path, text string) *Source {
	return &Source{Path: path, text: text}
}

// Text returns the source text.
func (s *Source) Text() string {
	return s.text
}

// Len returns the length of the source text in bytes.
func (s *Source) Len() int {
	return len(s.text)
}

func (s *Source) lines() []int {
	if s.lineStarts == nil {
		starts := []int{0}
		for i := 0; i < len(s.text); i++ {
			if s.text[i] == '\n' {
				starts = append(starts, i+1)
			}
		}
		s.lineStarts = starts
	}
	return s.lineStarts
}

// LineColumn resolves a byte offset to a 1-based line and column.
// Offsets past the end resolve to the last position.
func (s *Source) LineColumn(offset int) (line, col int) {
	if offset > len(s.text) {
		offset = len(s.text)
	}
	starts := s.lines()
	ln := sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
	return ln + 1, offset - starts[ln] + 1
}

// LineText returns the text of the given 1-based line, without the
// trailing newline.
func (s *Source) LineText(line int) string {
	starts := s.lines()
	if line < 1 || line > len(starts) {
		return ""
	}
	start := starts[line-1]
	end := len(s.text)
	if line < len(starts) {
		end = starts[line] - 1
	}
	return strings.TrimSuffix(s.text[start:end], "\r")
}
