// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package watch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/vecdoc/document"
	"cogentcore.org/vecdoc/universe"
	"cogentcore.org/vecdoc/vfs"
)

// textCompiler is a stand-in engine: it reads the main source and
// produces one page whose single link item carries the source text.
type textCompiler struct {
	mu       sync.Mutex
	compiles int
}

func (c *textCompiler) Compile(w *universe.World) (*document.Document, []*document.Diagnostic) {
	c.mu.Lock()
	c.compiles++
	c.mu.Unlock()

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

func (c *textCompiler) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compiles
}

// recordSink keeps the revisions it receives.
type recordSink struct {
	mu   sync.Mutex
	revs []*Revision
}

func (s *recordSink) OnCompiled(rev *Revision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revs = append(s.revs, rev)
}

func (s *recordSink) last() *Revision {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.revs) == 0 {
		return nil
	}
	return s.revs[len(s.revs)-1]
}

func (s *recordSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.revs)
}

func lastHref(t *testing.T, rev *Revision) string {
	require.NotNil(t, rev)
	require.Len(t, rev.Doc.Pages, 1)
	items := rev.Doc.Pages[0].Frame.Items
	require.Len(t, items, 1)
	return items[0].Item.(*document.LinkItem).Href
}

func startActor(t *testing.T) (*CompileActor, *textCompiler, *recordSink, *vfs.MemAccessModel, context.CancelFunc) {
	mem := vfs.NewMemAccessModel()
	require.NoError(t, mem.WriteFile("/ws/main.typ", []byte("A")))
	stack := NewStack(mem)
	uni, err := universe.New(&universe.Options{
		Entry:         universe.WorkspaceEntry("/ws", "/ws/main.typ"),
		NoSystemFonts: true,
	}, stack.Top())
	require.NoError(t, err)

	compiler := &textCompiler{}
	actor := NewCompileActor(uni, compiler, stack)
	sink := &recordSink{}
	actor.AddSink(sink)

	ctx, cancel := context.WithCancel(context.Background())
	go actor.Run(ctx)
	return actor, compiler, sink, mem, cancel
}

func TestActorCompilesOnTaskChange(t *testing.T) {
	actor, compiler, sink, _, cancel := startActor(t)
	defer cancel()

	actor.Interrupt(Interrupt{Kind: ChangeTask})
	actor.Settle()

	assert.Equal(t, 1, compiler.count())
	rev := sink.last()
	assert.Equal(t, "A", lastHref(t, rev))
	assert.Equal(t, int64(1), rev.ID)
	assert.GreaterOrEqual(t, rev.Duration, time.Duration(0))
}

func TestActorIgnoresNonDependantFs(t *testing.T) {
	actor, compiler, _, _, cancel := startActor(t)
	defer cancel()

	actor.Interrupt(Interrupt{Kind: ChangeTask})
	actor.Settle()
	before := compiler.count()

	// an event touching only non-dependant paths never triggers a
	// compile
	actor.Interrupt(Interrupt{Kind: Fs, Fs: vfs.Changed(vfs.FileChangeSet{
		Insert: []vfs.FileSnapshot{{Path: "/ws/unrelated.txt", Mtime: time.Now(), Content: []byte("x")}},
	})})
	actor.Settle()
	assert.Equal(t, before, compiler.count())
}

func TestActorRecompilesOnDependantFs(t *testing.T) {
	actor, compiler, sink, _, cancel := startActor(t)
	defer cancel()

	actor.Interrupt(Interrupt{Kind: ChangeTask})
	actor.Settle()
	before := compiler.count()

	actor.Interrupt(Interrupt{Kind: Fs, Fs: vfs.Changed(vfs.FileChangeSet{
		Insert: []vfs.FileSnapshot{{Path: "/ws/main.typ", Mtime: time.Now(), Content: []byte("A2")}},
	})})
	actor.Settle()

	assert.Equal(t, before+1, compiler.count())
	assert.Equal(t, "A2", lastHref(t, sink.last()))
}

func TestActorMemoryOverlay(t *testing.T) {
	actor, _, sink, _, cancel := startActor(t)
	defer cancel()

	actor.Interrupt(Interrupt{Kind: ChangeTask})
	actor.Settle()

	// overlay shadows disk
	actor.Interrupt(Interrupt{Kind: Memory, Memory: MemoryEvent{
		Action: MapShadow, Path: "/ws/main.typ", Content: []byte("B"),
	}})
	actor.Settle()
	assert.Equal(t, "B", lastHref(t, sink.last()))

	// unmapping restores the disk content
	actor.Interrupt(Interrupt{Kind: Memory, Memory: MemoryEvent{
		Action: UnmapShadow, Path: "/ws/main.typ",
	}})
	actor.Settle()
	assert.Equal(t, "A", lastHref(t, sink.last()))
}

func TestActorCoalesces(t *testing.T) {
	actor, compiler, sink, _, cancel := startActor(t)
	defer cancel()

	// several interrupts in one tick collapse into one compile
	for i := range 5 {
		content := []byte{byte('a' + i)}
		actor.Interrupt(Interrupt{Kind: Memory, Memory: MemoryEvent{
			Action: MapShadow, Path: "/ws/main.typ", Content: content,
		}})
	}
	actor.Settle()

	assert.LessOrEqual(t, compiler.count(), 5)
	assert.Equal(t, "e", lastHref(t, sink.last()))
}

func TestActorTaskChangeSwapsEntry(t *testing.T) {
	actor, _, sink, mem, cancel := startActor(t)
	defer cancel()
	require.NoError(t, mem.WriteFile("/ws/other.typ", []byte("OTHER")))

	entry := universe.WorkspaceEntry("/ws", "/ws/other.typ")
	actor.Interrupt(Interrupt{Kind: ChangeTask, Task: &universe.TaskInputs{Entry: &entry}})
	actor.Settle()

	assert.Equal(t, "OTHER", lastHref(t, sink.last()))
}

func TestActorSkipsSinksOnDiagnostics(t *testing.T) {
	mem := vfs.NewMemAccessModel()
	require.NoError(t, mem.WriteFile("/ws/main.typ", []byte("A")))
	stack := NewStack(mem)
	uni, err := universe.New(&universe.Options{
		Entry:         universe.WorkspaceEntry("/ws", "/ws/main.typ"),
		NoSystemFonts: true,
	}, stack.Top())
	require.NoError(t, err)

	actor := NewCompileActor(uni, &textCompiler{}, stack)
	sink := &recordSink{}
	actor.AddSink(sink)

	var reported []*document.Diagnostic
	var mu sync.Mutex
	actor.ReportDiagnostics = func(diags []*document.Diagnostic) {
		mu.Lock()
		reported = append(reported, diags...)
		mu.Unlock()
	}
	ctx, cancel := context.WithCancel(context.Background())
	go actor.Run(ctx)
	defer cancel()

	// point the entry at a missing file: the compiler reports a
	// diagnostic and downstream sinks are skipped
	entry := universe.WorkspaceEntry("/ws", "/ws/missing.typ")
	actor.Interrupt(Interrupt{Kind: ChangeTask, Task: &universe.TaskInputs{Entry: &entry}})
	actor.Settle()

	assert.Equal(t, 0, sink.len())
	mu.Lock()
	assert.NotEmpty(t, reported)
	mu.Unlock()
}
