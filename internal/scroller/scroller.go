// Package scroller implements a windowed ("virtualized") scrolling engine for
// long collections of uniform-height tiles.
//
// Given a scroll position the engine resolves which indices should be
// materialized (the visible rows plus a buffer on each side), diffs that
// against what is materialized already, and applies the minimal set of
// attach/detach operations while keeping the window in ascending order.
// The engine knows nothing about the UI toolkit: geometry comes from a
// ViewportProbe and tiles from a Renderer.
//
// A Scroller is not safe for concurrent use. Drive it from one goroutine,
// typically the UI event loop.
package scroller

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
	"time"
)

// Config holds the engine's construction options.
type Config[T any] struct {
	// TileHeight is the uniform row height. Required.
	TileHeight int
	// NumCols is the number of items per row. Zero means 1.
	NumCols int
	// BufferSize is the number of extra indices materialized on each side of
	// the visible block.
	BufferSize int
	// EmptyTileClass tags placeholder tiles.
	EmptyTileClass string
	// HiddenOffset is the border and padding above the scroll container's
	// content box.
	HiddenOffset int

	// Hooks default to NopHooks.
	Hooks    Hooks[T]
	Observer Observer
	Logger   *slog.Logger
}

// Scroller is the windowing engine over a collection of T.
type Scroller[T any] struct {
	cfg      Config[T]
	probe    ViewportProbe
	renderer Renderer[T]
	hooks    Hooks[T]
	logger   *slog.Logger

	items  []T
	geom   Geometry
	window Window

	windowOffset int

	// failed holds the indices whose render failed. They stay out of the
	// target until ResetData.
	failed map[int]struct{}
}

// New builds a Scroller. The window starts empty; call Reload once the probe
// reports a real viewport height.
func New[T any](probe ViewportProbe, data []T, renderer Renderer[T], cfg Config[T]) (*Scroller[T], error) {
	if probe == nil {
		return nil, &ConfigurationError{Field: "probe", Reason: "is nil"}
	}
	if renderer == nil {
		return nil, &ConfigurationError{Field: "renderer", Reason: "is nil"}
	}
	if cfg.TileHeight <= 0 {
		return nil, &ConfigurationError{Field: "tileHeight", Reason: "must be greater than zero"}
	}
	if cfg.NumCols < 0 {
		return nil, &ConfigurationError{Field: "numCols", Reason: "must be at least one"}
	}
	if cfg.NumCols == 0 {
		cfg.NumCols = 1
	}
	if cfg.BufferSize < 0 {
		return nil, &ConfigurationError{Field: "bufferSize", Reason: "must not be negative"}
	}

	if cfg.Hooks == nil {
		cfg.Hooks = NopHooks[T]{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Scroller[T]{
		cfg:      cfg,
		probe:    probe,
		renderer: renderer,
		hooks:    cfg.Hooks,
		logger:   logger.With(slog.String("component", "scroller")),
		items:    data,
	}
	s.geom = Measure(probe, cfg.TileHeight, cfg.NumCols, cfg.HiddenOffset)
	s.windowOffset = s.geom.WindowOffset(Read(probe), cfg.BufferSize)
	return s, nil
}

// Config returns the effective configuration.
func (s *Scroller[T]) Config() Config[T] { return s.cfg }

// Geometry returns the current geometry.
func (s *Scroller[T]) Geometry() Geometry { return s.geom }

// GetData returns the backing collection.
func (s *Scroller[T]) GetData() []T { return s.items }

// Len is the number of real items.
func (s *Scroller[T]) Len() int { return len(s.items) }

// ContentHeight is the full height of the spacer.
func (s *Scroller[T]) ContentHeight() int { return s.geom.ContentHeight(len(s.items)) }

// WindowOffset is the content-space top of the window, as of the last
// OnScroll.
func (s *Scroller[T]) WindowOffset() int { return s.windowOffset }

// Window returns a copy of the materialized entries.
func (s *Scroller[T]) Window() []Entry { return s.window.Entries() }

// Indices returns the materialized indices.
func (s *Scroller[T]) Indices() []int { return s.window.Indices() }

// Tile returns the materialized tile for index.
func (s *Scroller[T]) Tile(index int) (Tile, bool) { return s.window.Get(index) }

// SetHooks replaces both hooks. Tiles already materialized are not touched.
func (s *Scroller[T]) SetHooks(h Hooks[T]) {
	if h == nil {
		h = NopHooks[T]{}
	}
	s.hooks = h
}

// SetBeforeLoad replaces the pre-render hook, keeping the current
// post-render hook.
func (s *Scroller[T]) SetBeforeLoad(fn func(item *T, index int)) {
	s.hooks = HookFuncs[T]{Before: fn, After: s.hooks.AfterLoad}
}

// SetAfterLoad replaces the post-render hook, keeping the current pre-render
// hook.
func (s *Scroller[T]) SetAfterLoad(fn func(item *T, tile *Tile, index int)) {
	s.hooks = HookFuncs[T]{Before: s.hooks.BeforeLoad, After: fn}
}

// OnScroll is the scroll callback: it repositions the window and reconciles.
func (s *Scroller[T]) OnScroll() (Plan, error) {
	snap := Read(s.probe)
	s.windowOffset = s.geom.WindowOffset(snap, s.cfg.BufferSize)
	return s.reconcile(snap)
}

// Reload re-resolves and reconciles at the current scroll position. It does
// not reposition the window; hosts that moved the viewport call OnScroll.
func (s *Scroller[T]) Reload() (Plan, error) {
	return s.reconcile(Read(s.probe))
}

// Target returns the indices the next pass would materialize, without
// touching the window.
func (s *Scroller[T]) Target() []int {
	return s.resolve(Read(s.probe))
}

// Failed returns the indices whose render failed since the last ResetData,
// ascending.
func (s *Scroller[T]) Failed() []int {
	return slices.Sorted(maps.Keys(s.failed))
}

// ResetData replaces the collection, clears the window and scrolls the probe
// back to the origin when it can.
func (s *Scroller[T]) ResetData(data []T) {
	s.items = data
	clear(s.failed)
	if sc, ok := s.probe.(Scrollable); ok {
		sc.SetScrollOffset(0)
	}
	s.window.Clear()
	s.Remeasure()
	s.logger.Debug("data reset",
		slog.Int("items", len(data)),
		slog.Int("content_height", s.ContentHeight()))
}

// Remeasure captures the base ceiling and content offset again. Call it when
// the viewport is resized or moved for good.
func (s *Scroller[T]) Remeasure() {
	s.geom = Measure(s.probe, s.cfg.TileHeight, s.cfg.NumCols, s.cfg.HiddenOffset)
	s.windowOffset = s.geom.WindowOffset(Read(s.probe), s.cfg.BufferSize)
}

func (s *Scroller[T]) reconcile(snap Snapshot) (Plan, error) {
	start := time.Now()

	target := s.resolve(snap)
	p := Diff(s.window.Indices(), target)
	if p.Empty() {
		return p, nil
	}

	errs := s.apply(p)

	elapsed := time.Since(start)
	if s.cfg.Observer != nil {
		s.cfg.Observer.ObserveReconcile(p, s.window.Len(), elapsed)
	}
	s.logger.Debug("reconciled",
		slog.Int("scroll", snap.Scroll),
		slog.Int("removed", len(p.Remove)),
		slog.Int("added", len(p.Append)+len(p.Prepend)),
		slog.Int("window", s.window.Len()),
		slog.Duration("elapsed", elapsed))

	return p, errors.Join(errs...)
}

// resolve is the geometry target minus the indices that failed to render.
func (s *Scroller[T]) resolve(snap Snapshot) []int {
	target := s.geom.Resolve(snap, len(s.items), s.cfg.BufferSize)
	if len(s.failed) == 0 {
		return target
	}
	return slices.DeleteFunc(target, func(idx int) bool {
		_, bad := s.failed[idx]
		return bad
	})
}
