package scroller

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScenario(t *testing.T, n int) (*Scroller[item], *fakeProbe, *fakeRenderer) {
	t.Helper()
	probe := &fakeProbe{height: 150}
	r := &fakeRenderer{}
	s, err := New(probe, makeItems(n), r, Config[item]{
		TileHeight:     50,
		NumCols:        1,
		BufferSize:     2,
		EmptyTileClass: "empty",
	})
	require.NoError(t, err)
	return s, probe, r
}

func TestNewValidatesConfig(t *testing.T) {
	probe := &fakeProbe{height: 100}
	r := &fakeRenderer{}

	tests := []struct {
		name      string
		probe     ViewportProbe
		renderer  Renderer[item]
		cfg       Config[item]
		wantField string
	}{
		{"missing tile height", probe, r, Config[item]{}, "tileHeight"},
		{"negative tile height", probe, r, Config[item]{TileHeight: -5}, "tileHeight"},
		{"negative columns", probe, r, Config[item]{TileHeight: 5, NumCols: -1}, "numCols"},
		{"negative buffer", probe, r, Config[item]{TileHeight: 5, BufferSize: -1}, "bufferSize"},
		{"nil probe", nil, r, Config[item]{TileHeight: 5}, "probe"},
		{"nil renderer", probe, nil, Config[item]{TileHeight: 5}, "renderer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.probe, makeItems(3), tt.renderer, tt.cfg)
			require.Error(t, err)
			assert.Nil(t, s)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestNewDefaultsColumns(t *testing.T) {
	s, err := New(&fakeProbe{}, makeItems(3), &fakeRenderer{}, Config[item]{TileHeight: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Config().NumCols)
	assert.Empty(t, s.Indices(), "window starts empty")
}

func TestFirstReconcile(t *testing.T) {
	s, _, r := newScenario(t, 100)

	p, err := s.Reload()
	require.NoError(t, err)

	assert.Equal(t, []int{-2, -1, 0, 1, 2, 3, 4}, p.Added())
	assert.Equal(t, []int{-2, -1, 0, 1, 2, 3, 4}, s.Indices())
	assert.Equal(t, []int{-2, -1}, r.placeholders)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, r.rendered)

	for _, e := range s.Window() {
		assert.Equal(t, e.Index, e.Tile.Index)
		if e.Index < 0 {
			assert.True(t, e.Tile.Placeholder)
			assert.Equal(t, "empty", e.Tile.Class)
		} else {
			assert.False(t, e.Tile.Placeholder)
			assert.Equal(t, fmt.Sprintf("item-%d", e.Index), e.Tile.Body)
		}
	}
	assert.Equal(t, 5000, s.ContentHeight())
}

func TestScrollOneRow(t *testing.T) {
	s, probe, _ := newScenario(t, 100)
	_, err := s.OnScroll()
	require.NoError(t, err)
	assert.Equal(t, -100, s.WindowOffset())

	probe.scroll = 50
	p, err := s.OnScroll()
	require.NoError(t, err)

	assert.Equal(t, []int{-2}, p.Remove)
	assert.Equal(t, []int{5}, p.Added())
	assert.Equal(t, []int{-1, 0, 1, 2, 3, 4, 5}, s.Indices())
	assert.Equal(t, -50, s.WindowOffset())
}

func TestReconcileIsIdempotent(t *testing.T) {
	s, probe, r := newScenario(t, 100)
	probe.scroll = 1234

	_, err := s.OnScroll()
	require.NoError(t, err)
	renders := len(r.rendered)

	p, err := s.OnScroll()
	require.NoError(t, err)
	assert.True(t, p.Empty())
	assert.Len(t, r.rendered, renders, "nothing re-rendered")
}

func TestResetDataToEmpty(t *testing.T) {
	s, probe, _ := newScenario(t, 100)
	probe.scroll = 400
	_, err := s.OnScroll()
	require.NoError(t, err)
	require.NotEmpty(t, s.Indices())

	s.ResetData([]item{})

	assert.Equal(t, 0, s.ContentHeight())
	assert.Empty(t, s.Indices())
	assert.Equal(t, 0, probe.scroll, "scroll reset to origin")
	assert.Empty(t, s.GetData())

	p, err := s.Reload()
	require.NoError(t, err)
	assert.Empty(t, p.Added())
	assert.Empty(t, s.Indices())
}

func TestResetDataRepopulates(t *testing.T) {
	s, probe, _ := newScenario(t, 10)
	probe.scroll = 200
	_, err := s.OnScroll()
	require.NoError(t, err)

	s.ResetData(makeItems(3))
	p, err := s.Reload()
	require.NoError(t, err)

	assert.Equal(t, []int{-2, -1, 0, 1, 2, 3, 4}, p.Added())
	assert.Equal(t, 150, s.ContentHeight())
	assert.Len(t, s.GetData(), 3)
}

func TestWindowStaysAscendingAcrossScrolls(t *testing.T) {
	probe := &fakeProbe{height: 97}
	s, err := New(probe, makeItems(1000), &fakeRenderer{}, Config[item]{
		TileHeight: 13,
		NumCols:    3,
		BufferSize: 5,
	})
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(42, 99))
	maxScroll := s.ContentHeight() + 200
	for step := 0; step < 3000; step++ {
		switch rng.IntN(4) {
		case 0:
			probe.scroll = rng.IntN(maxScroll) - 100
		default:
			probe.scroll += rng.IntN(61) - 30
		}

		p, err := s.OnScroll()
		require.NoError(t, err)

		got := s.Indices()
		require.True(t, isStrictlyAscending(got), "step %d: %v", step, got)
		assert.Equal(t, s.Target(), nilIfEmpty(got), "step %d", step)
		assertDisjoint(t, p.Remove, p.Added())
	}
}

func nilIfEmpty(xs []int) []int {
	if len(xs) == 0 {
		return nil
	}
	return xs
}

func TestHooksRunAroundRender(t *testing.T) {
	var events []string
	hooks := HookFuncs[item]{
		Before: func(it *item, index int) {
			it.Loaded++
			events = append(events, fmt.Sprintf("before %d", index))
		},
		After: func(it *item, tile *Tile, index int) {
			assert.Equal(t, it.Name, tile.Body, "tile exists when AfterLoad runs")
			assert.Equal(t, index, tile.Index)
			tile.Class = "decorated"
			events = append(events, fmt.Sprintf("after %d", index))
		},
	}
	probe := &fakeProbe{height: 100}
	s, err := New(probe, makeItems(10), &fakeRenderer{}, Config[item]{
		TileHeight: 50,
		BufferSize: 1,
		Hooks:      hooks,
	})
	require.NoError(t, err)

	_, err = s.Reload()
	require.NoError(t, err)

	assert.Equal(t, []string{"before 0", "after 0", "before 1", "after 1", "before 2", "after 2"}, events,
		"placeholder -1 fires no hooks")
	assert.Equal(t, 1, s.GetData()[0].Loaded)
	assert.Equal(t, 0, s.GetData()[5].Loaded)

	tile, ok := s.Tile(1)
	require.True(t, ok)
	assert.Equal(t, "decorated", tile.Class)
}

func TestSetAfterLoadIsNotRetroactive(t *testing.T) {
	s, probe, _ := newScenario(t, 100)
	_, err := s.Reload()
	require.NoError(t, err)

	var before []int
	s.SetBeforeLoad(func(_ *item, index int) { before = append(before, index) })
	s.SetAfterLoad(func(_ *item, tile *Tile, _ int) { tile.Class = "late" })

	probe.scroll = 50
	_, err = s.OnScroll()
	require.NoError(t, err)

	assert.Equal(t, []int{5}, before, "replaced BeforeLoad kept after SetAfterLoad")
	fresh, _ := s.Tile(5)
	old, _ := s.Tile(4)
	assert.Equal(t, "late", fresh.Class)
	assert.Empty(t, old.Class)

	s.SetHooks(nil)
	probe.scroll = 100
	_, err = s.OnScroll()
	require.NoError(t, err)
	newest, _ := s.Tile(6)
	assert.Empty(t, newest.Class)
}

func TestRenderFailureLeavesIndexOut(t *testing.T) {
	probe := &fakeProbe{height: 150}
	r := &fakeRenderer{failOn: map[int]bool{3: true}}
	obs := &recordingObserver{}
	s, err := New(probe, makeItems(100), r, Config[item]{
		TileHeight: 50,
		BufferSize: 2,
		Observer:   obs,
	})
	require.NoError(t, err)

	_, err = s.Reload()
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, 3, renderErr.Index)

	assert.Equal(t, []int{-2, -1, 0, 1, 2, 4}, s.Indices())
	assert.Equal(t, []int{3}, obs.failed)

	assert.Equal(t, []int{3}, s.Failed())
	assert.NotContains(t, s.Target(), 3)
}

func TestFailedIndexIsNotRetried(t *testing.T) {
	probe := &fakeProbe{height: 150}
	r := &fakeRenderer{failOn: map[int]bool{3: true}}
	obs := &recordingObserver{}
	s, err := New(probe, makeItems(100), r, Config[item]{
		TileHeight: 50,
		BufferSize: 2,
		Observer:   obs,
	})
	require.NoError(t, err)

	_, err = s.Reload()
	require.Error(t, err)

	p, err := s.Reload()
	require.NoError(t, err)
	assert.True(t, p.Empty())
	assert.Equal(t, 1, obs.passes)

	// Scrolling away and back does not render the failed index again.
	probe.scroll = 500
	_, err = s.OnScroll()
	require.NoError(t, err)
	probe.scroll = 0
	_, err = s.OnScroll()
	require.NoError(t, err)
	assert.Equal(t, []int{-2, -1, 0, 1, 2, 4}, s.Indices())
	assert.Equal(t, []int{3}, obs.failed)

	// New data forgets the failure.
	r.failOn = nil
	s.ResetData(makeItems(100))
	assert.Empty(t, s.Failed())
	p, err = s.Reload()
	require.NoError(t, err)
	assert.Contains(t, p.Added(), 3)
	assert.Equal(t, []int{-2, -1, 0, 1, 2, 3, 4}, s.Indices())
}

func TestContainerMovementKeepsWindow(t *testing.T) {
	s, probe, _ := newScenario(t, 100)
	probe.top = 30
	s.Remeasure()
	_, err := s.Reload()
	require.NoError(t, err)
	want := s.Indices()

	// The page reflows and pushes the scroll container down.
	probe.top = 80
	p, err := s.Reload()
	require.NoError(t, err)
	assert.True(t, p.Empty())
	assert.Equal(t, want, s.Indices())
}

func TestContentOffsetShiftsVisibleRows(t *testing.T) {
	probe := &fakeProbe{height: 100, content: 100}
	s, err := New(probe, makeItems(20), &fakeRenderer{}, Config[item]{TileHeight: 50})
	require.NoError(t, err)

	_, err = s.Reload()
	require.NoError(t, err)
	assert.Empty(t, s.Indices(), "header fills the viewport")

	probe.scroll = 100
	_, err = s.OnScroll()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, s.Indices())
}

type recordingObserver struct {
	passes     int
	lastWindow int
	failed     []int
}

func (o *recordingObserver) ObserveReconcile(_ Plan, windowLen int, _ time.Duration) {
	o.passes++
	o.lastWindow = windowLen
}

func (o *recordingObserver) ObserveRenderError(index int, _ error) {
	o.failed = append(o.failed, index)
}
