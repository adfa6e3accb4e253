package scroller

import "fmt"

// ConfigurationError is returned by New when the engine cannot be built from
// the supplied configuration. All geometry depends on these values, so the
// engine refuses to start rather than render drifting tiles.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("scroller: invalid %s: %s", e.Field, e.Reason)
}

// RenderError reports a tile the Renderer failed to produce. The index is
// left out of the window; the next pass will try it again.
type RenderError struct {
	Index int
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("scroller: render index %d: %v", e.Index, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
