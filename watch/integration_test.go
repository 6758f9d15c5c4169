// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package watch_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/vecdoc/document"
	"cogentcore.org/vecdoc/incr"
	"cogentcore.org/vecdoc/universe"
	"cogentcore.org/vecdoc/vector"
	vincr "cogentcore.org/vecdoc/vector/incr"
	"cogentcore.org/vecdoc/vfs"
	"cogentcore.org/vecdoc/watch"
)

// linkCompiler produces one page with one link carrying the main
// source text, standing in for the upstream engine.
type linkCompiler struct{}

func (linkCompiler) Compile(w *universe.World) (*document.Document, []*document.Diagnostic) {
	src, err := w.Source(w.Entry().Main)
	if err != nil {
		return nil, []*document.Diagnostic{{
			Severity: document.SeverityError,
			Path:     w.Entry().Main,
			Message:  err.Error(),
		}}
	}
	frame := document.Frame{
		Size: document.Size{W: 100, H: 100},
		Items: []document.FrameEntry{{
			Item: &document.LinkItem{Href: src.Text(), Size: document.Size{W: 10, H: 10}},
		}},
	}
	return &document.Document{Pages: []document.PageFrame{{Frame: frame, Span: 1}}}, nil
}

func TestWatchToClientPipeline(t *testing.T) {
	mem := vfs.NewMemAccessModel()
	require.NoError(t, mem.WriteFile("/ws/main.typ", []byte("Hello")))
	stack := watch.NewStack(mem)
	uni, err := universe.New(&universe.Options{
		Entry:         universe.WorkspaceEntry("/ws", "/ws/main.typ"),
		NoSystemFonts: true,
	}, stack.Top())
	require.NoError(t, err)

	client := vincr.NewDocClient()
	var mu sync.Mutex
	var merged int

	server := incr.NewServer()
	server.Publish = func(rev int64, delta []byte) {
		mu.Lock()
		defer mu.Unlock()
		require.NoError(t, client.MergeDelta(delta))
		merged++
	}

	actor := watch.NewCompileActor(uni, linkCompiler{}, stack)
	actor.AddSink(server)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go actor.Run(ctx)

	actor.Interrupt(watch.Interrupt{Kind: watch.ChangeTask})
	actor.Settle()

	mu.Lock()
	assert.Equal(t, 1, merged)
	require.True(t, client.SelectLast())
	pages := client.Pages()
	require.Len(t, pages, 1)
	root, ok := client.Module.Get(pages[0].Content)
	mu.Unlock()
	require.True(t, ok)

	// the lowered page contains the link with the source text
	link := findLink(t, client, root)
	assert.Equal(t, "Hello", link.Href)

	// edit through the memory overlay and observe the delta
	actor.Interrupt(watch.Interrupt{Kind: watch.Memory, Memory: watch.MemoryEvent{
		Action: watch.MapShadow, Path: "/ws/main.typ", Content: []byte("World"),
	}})
	actor.Settle()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, merged)
	require.True(t, client.SelectLast())
	root, ok = client.Module.Get(client.Pages()[0].Content)
	require.True(t, ok)
	link = findLink(t, client, root)
	assert.Equal(t, "World", link.Href)
	require.NoError(t, client.Module.CheckClosure())
}

func findLink(t *testing.T, c *vincr.DocClient, root vector.Item) vector.LinkItem {
	group, ok := root.(vector.GroupItem)
	require.True(t, ok)
	require.NotEmpty(t, group.Children)
	it, ok := c.Module.Get(group.Children[0].Ref)
	require.True(t, ok)
	link, ok := it.(vector.LinkItem)
	require.True(t, ok)
	return link
}
