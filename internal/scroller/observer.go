package scroller

import "time"

// Observer receives engine events. Implementations must be cheap: they run
// on the scroll path.
type Observer interface {
	ObserveReconcile(p Plan, windowLen int, elapsed time.Duration)
	ObserveRenderError(index int, err error)
}
