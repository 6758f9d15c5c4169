// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package watch implements the long-running compile loop: a
// single-threaded cooperative actor owning a universe, a bounded
// interrupt queue, and registered compilation sinks, plus the
// fsnotify-backed dependency watcher feeding it.
package watch

import (
	"context"
	"log/slog"
	"time"

	"cogentcore.org/vecdoc/base/atomicctr"
	"cogentcore.org/vecdoc/document"
	"cogentcore.org/vecdoc/universe"
	"cogentcore.org/vecdoc/vfs"
)

// InterruptKind tags an [Interrupt].
type InterruptKind uint8

const (
	// Fs merges a filesystem event into the VFS.
	Fs InterruptKind = iota

	// Memory maps or unmaps in-memory overlays.
	Memory

	// Settle acknowledges once the queue has drained.
	Settle

	// ChangeTask swaps entry and inputs for the next compile.
	ChangeTask
)

// MemoryAction tags a [MemoryEvent].
type MemoryAction uint8

const (
	// MapShadow installs an overlay file.
	MapShadow MemoryAction = iota

	// UnmapShadow removes an overlay file.
	UnmapShadow

	// ResetShadows drops all overlay files.
	ResetShadows
)

// MemoryEvent is one overlay mutation.
type MemoryEvent struct {
	Action  MemoryAction
	Path    string
	Content []byte
}

// Interrupt is one message to the actor; exactly the fields implied
// by Kind are meaningful.
type Interrupt struct {
	Kind InterruptKind

	Fs     vfs.FilesystemEvent
	Memory MemoryEvent
	Task   *universe.TaskInputs

	// Done is closed once a settle interrupt has been acknowledged.
	Done chan struct{}
}

// Revision is the outcome of one compile step, delivered to each
// registered sink.
type Revision struct {
	ID          int64
	Doc         *document.Document
	Diagnostics []*document.Diagnostic
	Duration    time.Duration
}

// Sink consumes successfully compiled revisions; the incremental
// server is one, a diagnostic reporter another.
type Sink interface {
	OnCompiled(rev *Revision)
}

// Stack is the composed access model chain of a watched universe:
// overlay shadows over watcher notifications over a stat cache over
// the base model.
type Stack struct {
	Base    vfs.AccessModel
	Cached  *vfs.CachedAccessModel
	Notify  *vfs.NotifyAccessModel
	Overlay *vfs.OverlayAccessModel
}

// NewStack composes the standard access model chain over a base.
func NewStack(base vfs.AccessModel) *Stack {
	cached := vfs.NewCachedAccessModel(base)
	notify := vfs.NewNotifyAccessModel(cached)
	overlay := vfs.NewOverlayAccessModel(notify)
	return &Stack{Base: base, Cached: cached, Notify: notify, Overlay: overlay}
}

// Top returns the outermost model, for the VFS.
func (s *Stack) Top() vfs.AccessModel {
	return s.Overlay
}

// CompileActor drives snapshot, compile, and sink notification in
// response to filesystem events and client interrupts. All universe
// mutation happens on the actor goroutine.
type CompileActor struct {
	uni      *universe.Universe
	compiler universe.Compiler
	stack    *Stack

	// ReportDiagnostics formats engine diagnostics; it defaults to
	// slog.
	ReportDiagnostics func(diags []*document.Diagnostic)

	interrupts chan Interrupt
	sinks      []Sink
	revision   atomicctr.Counter
	task       *universe.TaskInputs
}

// queueBound is the interrupt queue capacity; senders block when the
// actor falls behind.
const queueBound = 32

// NewCompileActor returns an actor over the given universe, compiler,
// and access model stack. The universe must have been built over
// [Stack.Top].
func NewCompileActor(uni *universe.Universe, compiler universe.Compiler, stack *Stack) *CompileActor {
	return &CompileActor{
		uni:      uni,
		compiler: compiler,
		stack:    stack,
		ReportDiagnostics: func(diags []*document.Diagnostic) {
			for _, d := range diags {
				slog.Error("compile", "diag", d.Format(nil))
			}
		},
		interrupts: make(chan Interrupt, queueBound),
	}
}

// AddSink registers a compilation sink. Sinks must be registered
// before [CompileActor.Run].
func (a *CompileActor) AddSink(s Sink) {
	a.sinks = append(a.sinks, s)
}

// Interrupt enqueues an interrupt, blocking when the bounded queue is
// full.
func (a *CompileActor) Interrupt(i Interrupt) {
	a.interrupts <- i
}

// Settle blocks until the actor has drained all interrupts enqueued
// before it.
func (a *CompileActor) Settle() {
	done := make(chan struct{})
	a.Interrupt(Interrupt{Kind: Settle, Done: done})
	<-done
}

// Run processes interrupts until the context is canceled. Interrupts
// arriving in the same tick are coalesced into one compile; an
// interrupt arriving mid-compile is deferred until the compile
// returns.
func (a *CompileActor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case first := <-a.interrupts:
			batch := []Interrupt{first}
			// coalesce everything already queued
		drain:
			for {
				select {
				case next := <-a.interrupts:
					batch = append(batch, next)
				default:
					break drain
				}
			}
			needCompile := false
			var settles []chan struct{}
			for _, i := range batch {
				compile, done := a.apply(i)
				needCompile = needCompile || compile
				if done != nil {
					settles = append(settles, done)
				}
			}
			if needCompile {
				a.compile()
			}
			for _, done := range settles {
				close(done)
			}
		}
	}
}

// apply handles one interrupt, reporting whether it marks a compile.
func (a *CompileActor) apply(i Interrupt) (needCompile bool, settle chan struct{}) {
	switch i.Kind {
	case Fs:
		dependant := false
		for _, snap := range i.Fs.Changes.Insert {
			dependant = dependant || a.uni.Vfs().Dependant(snap.Path)
		}
		for _, p := range i.Fs.Changes.Remove {
			dependant = dependant || a.uni.Vfs().Dependant(p)
		}
		a.stack.Notify.Notify(i.Fs)
		if dependant {
			a.uni.Vfs().Reset()
		}
		return dependant, nil
	case Memory:
		switch i.Memory.Action {
		case MapShadow:
			a.stack.Overlay.AddFile(i.Memory.Path, i.Memory.Content)
		case UnmapShadow:
			a.stack.Overlay.RemoveFile(i.Memory.Path)
		case ResetShadows:
			a.stack.Overlay.ClearShadow()
		}
		a.uni.Vfs().Reset()
		return true, nil
	case ChangeTask:
		a.task = i.Task
		if i.Task != nil && i.Task.Entry != nil {
			if _, err := a.uni.MutateEntry(*i.Task.Entry); err != nil {
				slog.Error("watch: change task rejected", "err", err)
				return false, nil
			}
		}
		if i.Task != nil && i.Task.Inputs != nil {
			a.uni.SetInputs(i.Task.Inputs)
		}
		return true, nil
	case Settle:
		return false, i.Done
	}
	return false, nil
}

// compile takes a snapshot, runs the upstream engine, and fans the
// revision out to the sinks. Engine diagnostics are reported and
// never stop the actor; downstream sinks are skipped when the
// compile fails.
func (a *CompileActor) compile() {
	w, err := a.uni.Snapshot(a.task)
	if err != nil {
		slog.Error("watch: snapshot failed", "err", err)
		return
	}
	start := time.Now()
	doc, diags := a.compiler.Compile(w)
	rev := &Revision{
		ID:          a.revision.Inc(),
		Doc:         doc,
		Diagnostics: diags,
		Duration:    time.Since(start),
	}
	if doc == nil || document.HasErrors(diags) {
		a.ReportDiagnostics(diags)
		return
	}
	for _, s := range a.sinks {
		s.OnCompiled(rev)
	}
}
