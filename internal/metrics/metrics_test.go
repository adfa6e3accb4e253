package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/Akashdeep-Patra/lazyscroll/internal/scroller"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()

	c.ObserveReconcile(scroller.Plan{Append: []int{1, 2}, Prepend: []int{0}}, 3, time.Millisecond)
	c.ObserveReconcile(scroller.Plan{Remove: []int{0}, Append: []int{3}}, 3, time.Millisecond)
	c.ObserveRenderError(7, errors.New("boom"))

	assert.Equal(t, float64(2), testutil.ToFloat64(c.passes))
	assert.Equal(t, float64(4), testutil.ToFloat64(c.tilesAdded))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.tilesRemoved))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.renderErrors))
	assert.Equal(t, float64(3), testutil.ToFloat64(c.windowSize))
}

func TestCollectorRegistry(t *testing.T) {
	c := NewCollector()
	c.ObserveReconcile(scroller.Plan{Append: []int{1}}, 1, time.Microsecond)

	n, err := testutil.GatherAndCount(c.Registry(), "lzs_tiles_added_total", "lzs_reconcile_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
