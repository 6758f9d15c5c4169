// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfs

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileIdStableAndAliased(t *testing.T) {
	mem := NewMemAccessModel()
	require.NoError(t, mem.WriteFile("/a/b.typ", []byte("hi")))
	fs := New(mem)

	id1, err := fs.FileId("/a/b.typ")
	require.NoError(t, err)
	id2, err := fs.FileId("/a/./b.typ")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	// stable across any number of calls
	for range 5 {
		id, err := fs.FileId("/a/b.typ")
		require.NoError(t, err)
		assert.Equal(t, id1, id)
	}

	// a single parsed source is shared between the aliases
	s1, err := fs.Source("/a/b.typ")
	require.NoError(t, err)
	s2, err := fs.Source("/a/./b.typ")
	require.NoError(t, err)
	assert.Same(t, s1, s2)
}

func TestFileIdSurvivesReset(t *testing.T) {
	mem := NewMemAccessModel()
	require.NoError(t, mem.WriteFile("/main.typ", []byte("A")))
	fs := New(mem)

	id1, err := fs.FileId("/main.typ")
	require.NoError(t, err)
	fs.Reset()
	id2, err := fs.FileId("/main.typ")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestSourceErrorReplay(t *testing.T) {
	mem := NewMemAccessModel()
	fs := New(mem)

	_, err1 := fs.Source("/missing.typ")
	require.Error(t, err1)
	assert.Equal(t, KindNotFound, KindOf(err1))

	// retries replay the identical cached error without re-reading
	_, err2 := fs.Source("/missing.typ")
	assert.Equal(t, err1, err2)

	// creating the file does not help until reset clears the slot
	require.NoError(t, mem.WriteFile("/missing.typ", []byte("ok")))
	_, err3 := fs.Source("/missing.typ")
	require.Error(t, err3)

	fs.Reset()
	src, err := fs.Source("/missing.typ")
	require.NoError(t, err)
	assert.Equal(t, "ok", src.Text())
}

func TestSourceCachedErrorUntilReset(t *testing.T) {
	mem := NewMemAccessModel()
	require.NoError(t, mem.WriteFile("/bad.typ", []byte{0xff, 0xfe, 0x00, 0x41}))
	fs := New(mem)

	_, err := fs.Source("/bad.typ")
	require.Error(t, err)
	assert.Equal(t, KindInvalidUTF8, KindOf(err))

	// fixing the bytes does not help until reset: the error is
	// cached in the slot
	require.NoError(t, mem.WriteFile("/bad.typ", []byte("fine")))
	_, err = fs.Source("/bad.typ")
	assert.Error(t, err)

	fs.Reset()
	src, err := fs.Source("/bad.typ")
	require.NoError(t, err)
	assert.Equal(t, "fine", src.Text())
}

func TestDependant(t *testing.T) {
	mem := NewMemAccessModel()
	require.NoError(t, mem.WriteFile("/dep.typ", []byte("x")))
	require.NoError(t, mem.WriteFile("/other.typ", []byte("y")))
	fs := New(mem)

	_, err := fs.Source("/dep.typ")
	require.NoError(t, err)
	assert.True(t, fs.Dependant("/dep.typ"))
	assert.False(t, fs.Dependant("/other.typ"))
}

func TestBOMTolerance(t *testing.T) {
	mem := NewMemAccessModel()
	require.NoError(t, mem.WriteFile("/bom.typ", []byte("\xef\xbb\xbfHello")))
	fs := New(mem)

	src, err := fs.Source("/bom.typ")
	require.NoError(t, err)
	assert.Equal(t, "Hello", src.Text())
}

func TestIsDirectory(t *testing.T) {
	mem := NewMemAccessModel()
	require.NoError(t, mem.WriteFile("/dir/file.typ", []byte("x")))
	fs := New(mem)

	_, err := fs.File("/dir")
	require.Error(t, err)
	assert.Equal(t, KindIsDirectory, KindOf(err))
}

func TestOverlayShadowsInner(t *testing.T) {
	mem := NewMemAccessModel()
	require.NoError(t, mem.WriteFile("/main.typ", []byte("A")))
	ov := NewOverlayAccessModel(mem)
	fs := New(ov)

	src, err := fs.Source("/main.typ")
	require.NoError(t, err)
	assert.Equal(t, "A", src.Text())

	ov.AddFile("/main.typ", []byte("B"))
	fs.Reset()
	src, err = fs.Source("/main.typ")
	require.NoError(t, err)
	assert.Equal(t, "B", src.Text())

	// unmapping leaves the vfs indistinguishable from its initial
	// state
	ov.RemoveFile("/main.typ")
	fs.Reset()
	src, err = fs.Source("/main.typ")
	require.NoError(t, err)
	assert.Equal(t, "A", src.Text())
	assert.Empty(t, ov.Paths())
}

func TestOverlayRewriteForcesNewMtime(t *testing.T) {
	mem := NewMemAccessModel()
	ov := NewOverlayAccessModel(mem)

	ov.AddFile("/x.typ", []byte("1"))
	mt1, err := ov.Mtime("/x.typ")
	require.NoError(t, err)
	ov.AddFile("/x.typ", []byte("2"))
	mt2, err := ov.Mtime("/x.typ")
	require.NoError(t, err)
	// rewriting with different bytes never leaves the mtime
	// observationally unchanged
	c, err := ov.Content("/x.typ")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), c)
	if mt2.Equal(mt1) {
		t.Fatalf("rewrite with different bytes kept mtime %v", mt2)
	}
}

func TestCachedCoherence(t *testing.T) {
	mem := NewMemAccessModel()
	require.NoError(t, mem.WriteFile("/c.typ", []byte("one")))
	cached := NewCachedAccessModel(mem)

	mt1, err := cached.Mtime("/c.typ")
	require.NoError(t, err)
	c1, err := cached.Content("/c.typ")
	require.NoError(t, err)

	// rewrite the backing file, then clear; if the mtime is
	// unchanged the cached content must be returned unchanged too
	require.NoError(t, mem.WriteFile("/c.typ", []byte("two")))
	cached.Clear()
	mt2, err := cached.Mtime("/c.typ")
	require.NoError(t, err)
	c2, err := cached.Content("/c.typ")
	require.NoError(t, err)
	if mt2.Equal(mt1) {
		assert.Equal(t, c1, c2)
	}
}

func TestCachedEvictsOnMtimeChange(t *testing.T) {
	mem := NewMemAccessModel()
	require.NoError(t, mem.WriteFile("/c.typ", []byte("one")))
	cached := NewCachedAccessModel(mem)

	_, err := cached.Content("/c.typ")
	require.NoError(t, err)

	// ensure a different mtime on rewrite
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, mem.WriteFile("/c.typ", []byte("two")))
	cached.Clear()

	c, err := cached.Content("/c.typ")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), c)
}

func TestNotifyPrecedence(t *testing.T) {
	mem := NewMemAccessModel()
	require.NoError(t, mem.WriteFile("/n.typ", []byte("disk")))
	nm := NewNotifyAccessModel(mem)

	nm.Notify(Changed(FileChangeSet{Insert: []FileSnapshot{{
		Path: "/n.typ", Mtime: time.Now(), Content: []byte("notified"),
	}}}))
	c, err := nm.Content("/n.typ")
	require.NoError(t, err)
	assert.Equal(t, []byte("notified"), c)

	nm.Notify(Changed(FileChangeSet{Remove: []string{"/n.typ"}}))
	c, err = nm.Content("/n.typ")
	require.NoError(t, err)
	assert.Equal(t, []byte("disk"), c)

	notFound := Errorf(KindNotFound, "/gone.typ", nil)
	nm.Notify(Changed(FileChangeSet{Insert: []FileSnapshot{{Path: "/gone.typ", Err: notFound}}}))
	_, err = nm.Content("/gone.typ")
	assert.True(t, errors.Is(err, notFound) || KindOf(err) == KindNotFound)
}
