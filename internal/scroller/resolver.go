package scroller

// Range is an inclusive run of real item indices. The zero value is not
// empty; use Empty.
type Range struct {
	First int
	Last  int
}

// Empty reports whether r holds no indices.
func (r Range) Empty() bool { return r.Last < r.First }

// Len is the number of indices in r.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.Last - r.First + 1
}

var emptyRange = Range{First: 0, Last: -1}

// Visible returns the real indices in [0, n) whose row span intersects the
// viewport [ceiling, floor). Rows are uniform, so the first and last rows
// fall out of division instead of a scan over the collection.
func (g Geometry) Visible(s Snapshot, n int) Range {
	if n <= 0 {
		return emptyRange
	}
	ceiling, floor := g.Bounds(s)
	// top of row 0 relative to the ceiling
	top0 := g.ContentOffset - s.Scroll

	// Row r intersects when top0+r*h < height and top0+(r+1)*h > 0.
	firstRow := floorDiv(-top0, g.TileHeight)
	lastRow := ceilDiv(floor-ceiling-top0, g.TileHeight) - 1

	if firstRow < 0 {
		firstRow = 0
	}
	if maxRow := g.Rows(n) - 1; lastRow > maxRow {
		lastRow = maxRow
	}
	if firstRow > lastRow {
		return emptyRange
	}

	last := (lastRow+1)*g.NumCols - 1
	if last > n-1 {
		last = n - 1
	}
	return Range{First: firstRow * g.NumCols, Last: last}
}

// Expand grows r by buffer indices on each side. Indices outside [0, n) are
// kept: they become placeholders so the slack is the same at either end of
// the collection. An empty range stays empty.
func Expand(r Range, buffer int) []int {
	if r.Empty() {
		return nil
	}
	if buffer < 0 {
		buffer = 0
	}
	out := make([]int, 0, r.Len()+2*buffer)
	for i := r.First - buffer; i <= r.Last+buffer; i++ {
		out = append(out, i)
	}
	return out
}

// Resolve returns the ascending target indices for s: the visible range
// expanded by buffer.
func (g Geometry) Resolve(s Snapshot, n, buffer int) []int {
	return Expand(g.Visible(s, n), buffer)
}
