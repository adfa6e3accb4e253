package scroller

import "log/slog"

// Renderer produces tiles. It is the only part of the engine that knows what
// an item looks like.
type Renderer[T any] interface {
	Render(item *T, index int) (Tile, error)
	Placeholder(index int, class string) Tile
}

// materialize builds the tile for index. Placeholders skip the hooks.
func (s *Scroller[T]) materialize(index int) (Tile, error) {
	if index < 0 || index >= len(s.items) {
		t := s.renderer.Placeholder(index, s.cfg.EmptyTileClass)
		t.Index = index
		t.Placeholder = true
		if t.Class == "" {
			t.Class = s.cfg.EmptyTileClass
		}
		return t, nil
	}

	hooks := s.hooks
	item := &s.items[index]
	hooks.BeforeLoad(item, index)
	t, err := s.renderer.Render(item, index)
	if err != nil {
		return Tile{}, &RenderError{Index: index, Err: err}
	}
	t.Index = index
	t.Placeholder = false
	hooks.AfterLoad(item, &t, index)
	return t, nil
}

// apply executes p against the window and returns the render failures. A
// failed index is recorded so later passes leave it out.
func (s *Scroller[T]) apply(p Plan) []error {
	for _, idx := range p.Remove {
		s.window.Remove(idx)
	}

	var errs []error
	attach := func(idx int, put func(Entry)) {
		t, err := s.materialize(idx)
		if err != nil {
			s.logger.Warn("tile render failed",
				slog.Int("index", idx),
				slog.String("error", err.Error()))
			if s.cfg.Observer != nil {
				s.cfg.Observer.ObserveRenderError(idx, err)
			}
			if s.failed == nil {
				s.failed = make(map[int]struct{})
			}
			s.failed[idx] = struct{}{}
			errs = append(errs, err)
			return
		}
		put(Entry{Index: idx, Tile: t})
	}

	for _, idx := range p.Append {
		attach(idx, s.window.Append)
	}
	for _, idx := range p.Prepend {
		attach(idx, s.window.Prepend)
	}
	return errs
}
