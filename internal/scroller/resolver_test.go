package scroller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanVisible is the linear scan: walk indices in order, collect the ones
// whose row intersects [ceiling, floor), stop at the first row that starts
// at or below the floor.
func scanVisible(g Geometry, s Snapshot, n int) []int {
	ceiling, floor := g.Bounds(s)
	var out []int
	for i := 0; i < n; i++ {
		top, bottom := g.Span(s, i)
		if floor > top {
			if ceiling < bottom {
				out = append(out, i)
			}
		} else {
			break
		}
	}
	return out
}

func rangeIndices(r Range) []int {
	if r.Empty() {
		return nil
	}
	out := make([]int, 0, r.Len())
	for i := r.First; i <= r.Last; i++ {
		out = append(out, i)
	}
	return out
}

func TestVisibleMatchesLinearScan(t *testing.T) {
	for _, cols := range []int{1, 2, 3, 7} {
		for _, tile := range []int{1, 3, 50} {
			for _, n := range []int{0, 1, 5, 23, 100} {
				for _, height := range []int{0, 1, tile, 3*tile + 1} {
					for _, content := range []int{0, 9} {
						g := Geometry{TileHeight: tile, NumCols: cols, HiddenOffset: 2, BaseCeiling: 12, ContentOffset: content}
						maxScroll := g.ContentHeight(n) + 2*tile
						for scroll := -tile; scroll <= maxScroll; scroll++ {
							s := Snapshot{Scroll: scroll, Height: height, ContainerTop: 10}
							want := scanVisible(g, s, n)
							got := rangeIndices(g.Visible(s, n))
							require.Equal(t, want, got,
								"cols=%d tile=%d n=%d height=%d content=%d scroll=%d",
								cols, tile, n, height, content, scroll)
						}
					}
				}
			}
		}
	}
}

func TestExpand(t *testing.T) {
	assert.Nil(t, Expand(emptyRange, 3))
	assert.Equal(t, []int{4, 5, 6}, Expand(Range{First: 4, Last: 6}, 0))
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8}, Expand(Range{First: 4, Last: 6}, 2))
	assert.Equal(t, []int{-2, -1, 0, 1, 2}, Expand(Range{First: 0, Last: 0}, 2))
	assert.Equal(t, []int{4, 5, 6}, Expand(Range{First: 4, Last: 6}, -1))
}

func TestResolveBufferSymmetry(t *testing.T) {
	g := Geometry{TileHeight: 20, NumCols: 3}
	n := 300
	for _, buffer := range []int{0, 1, 4, 9} {
		for scroll := 0; scroll < g.ContentHeight(n); scroll += 7 {
			s := Snapshot{Scroll: scroll, Height: 95}
			visible := g.Visible(s, n)
			target := g.Resolve(s, n, buffer)
			require.False(t, visible.Empty())
			assert.Len(t, target, visible.Len()+2*buffer)
			assert.Equal(t, visible.First-buffer, target[0])
			assert.Equal(t, visible.Last+buffer, target[len(target)-1])
			assert.True(t, isStrictlyAscending(target))
		}
	}
}

func TestResolvePlaceholderBoundary(t *testing.T) {
	g := Geometry{TileHeight: 50, NumCols: 1}
	target := g.Resolve(Snapshot{Scroll: 0, Height: 150}, 100, 3)

	assert.Equal(t, []int{-3, -2, -1, 0, 1, 2, 3, 4, 5}, target)
}

func TestResolvePlaceholdersPastEnd(t *testing.T) {
	g := Geometry{TileHeight: 50, NumCols: 1}
	// Last row of 10 items sits at 450..500; scroll so only it is visible.
	target := g.Resolve(Snapshot{Scroll: 450, Height: 50}, 10, 2)

	assert.Equal(t, []int{7, 8, 9, 10, 11}, target)
}

func TestResolveEmpty(t *testing.T) {
	g := Geometry{TileHeight: 50, NumCols: 1}

	assert.Empty(t, g.Resolve(Snapshot{Scroll: 0, Height: 150}, 0, 2), "no items")
	assert.Empty(t, g.Resolve(Snapshot{Scroll: 5000, Height: 150}, 10, 2), "scrolled past content")
	assert.Empty(t, g.Resolve(Snapshot{Scroll: 0, Height: 0}, 10, 2), "zero height viewport")
}

func isStrictlyAscending(xs []int) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return false
		}
	}
	return true
}
