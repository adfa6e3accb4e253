package scroller

// Hooks are called around every real (non-placeholder) materialization.
type Hooks[T any] interface {
	// BeforeLoad runs before the tile is rendered and may change the item.
	BeforeLoad(item *T, index int)
	// AfterLoad runs once the tile exists and may decorate it.
	AfterLoad(item *T, tile *Tile, index int)
}

// NopHooks does nothing.
type NopHooks[T any] struct{}

func (NopHooks[T]) BeforeLoad(*T, int)       {}
func (NopHooks[T]) AfterLoad(*T, *Tile, int) {}

// HookFuncs adapts plain functions to Hooks. Nil fields are skipped.
type HookFuncs[T any] struct {
	Before func(item *T, index int)
	After  func(item *T, tile *Tile, index int)
}

func (h HookFuncs[T]) BeforeLoad(item *T, index int) {
	if h.Before != nil {
		h.Before(item, index)
	}
}

func (h HookFuncs[T]) AfterLoad(item *T, tile *Tile, index int) {
	if h.After != nil {
		h.After(item, tile, index)
	}
}
