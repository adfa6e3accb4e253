package scroller

// ViewportProbe reads the live geometry of the scroll container. The engine
// depends only on this interface, never on a concrete UI toolkit.
type ViewportProbe interface {
	// ScrollOffset is how far the viewport has scrolled from the top of the
	// content, in the same unit as the tile height.
	ScrollOffset() int
	// ViewportHeight is the visible height of the scroll container.
	ViewportHeight() int
	// ContainerTopOffset is the scroll container's top edge in page space.
	ContainerTopOffset() int
}

// Scrollable is implemented by probes that can move the viewport. ResetData
// uses it to return to the origin.
type Scrollable interface {
	SetScrollOffset(offset int)
}

// ContentOffsetter is implemented by probes whose content container does not
// start flush with the viewport ceiling (a header above the list, say).
type ContentOffsetter interface {
	ContentTopOffset() int
}

// Snapshot is one reading of a ViewportProbe. Taking it once per pass keeps
// every span in that pass consistent.
type Snapshot struct {
	Scroll       int
	Height       int
	ContainerTop int
}

// Read takes a snapshot of p.
func Read(p ViewportProbe) Snapshot {
	return Snapshot{
		Scroll:       p.ScrollOffset(),
		Height:       p.ViewportHeight(),
		ContainerTop: p.ContainerTopOffset(),
	}
}

// Geometry maps item indices to viewport positions. Everything is integer
// arithmetic over uniform tiles.
type Geometry struct {
	TileHeight int
	NumCols    int

	// HiddenOffset is the border and padding above the scroll container's
	// content box.
	HiddenOffset int

	// BaseCeiling is the ceiling captured at measure time. The difference
	// between it and the live ceiling is container movement.
	BaseCeiling int

	// ContentOffset is the content container's distance below BaseCeiling,
	// captured once at measure time.
	ContentOffset int
}

// Measure builds a Geometry, capturing the base offsets from p.
func Measure(p ViewportProbe, tileHeight, numCols, hiddenOffset int) Geometry {
	g := Geometry{
		TileHeight:   tileHeight,
		NumCols:      numCols,
		HiddenOffset: hiddenOffset,
	}
	g.BaseCeiling = p.ContainerTopOffset() + hiddenOffset
	if co, ok := p.(ContentOffsetter); ok {
		g.ContentOffset = co.ContentTopOffset()
	}
	return g
}

// Row returns the row holding index. Placeholder indices below zero land on
// negative rows.
func (g Geometry) Row(index int) int {
	return floorDiv(index, g.NumCols)
}

// Col returns the column of index within its row.
func (g Geometry) Col(index int) int {
	return index - g.Row(index)*g.NumCols
}

// Bounds returns the viewport ceiling and floor for s.
func (g Geometry) Bounds(s Snapshot) (ceiling, floor int) {
	ceiling = s.ContainerTop + g.HiddenOffset
	return ceiling, ceiling + s.Height
}

// Movement is how far the ceiling has moved since measure time, e.g. after
// the page above the scroll container reflowed.
func (g Geometry) Movement(s Snapshot) int {
	ceiling, _ := g.Bounds(s)
	return ceiling - g.BaseCeiling
}

// Span returns the top and bottom of the row containing index, in the same
// space as Bounds.
func (g Geometry) Span(s Snapshot, index int) (top, bottom int) {
	top = g.BaseCeiling + g.ContentOffset - s.Scroll + g.Row(index)*g.TileHeight + g.Movement(s)
	return top, top + g.TileHeight
}

// ContentHeight is the height of the spacer for n items.
func (g Geometry) ContentHeight(n int) int {
	if n <= 0 {
		return 0
	}
	return ceilDiv(n, g.NumCols) * g.TileHeight
}

// Rows is the number of rows n items occupy.
func (g Geometry) Rows(n int) int {
	if n <= 0 {
		return 0
	}
	return ceilDiv(n, g.NumCols)
}

// BufferRows is the number of whole rows the buffer of size buffer spans.
func (g Geometry) BufferRows(buffer int) int {
	if buffer <= 0 {
		return 0
	}
	return ceilDiv(buffer, g.NumCols)
}

// WindowOffset is the content-space top of the window container: the top of
// the first visible row, snapped to the tile grid, raised by the buffer rows.
func (g Geometry) WindowOffset(s Snapshot, buffer int) int {
	snapped := s.Scroll - mod(s.Scroll, g.TileHeight)
	return g.ContentOffset + snapped - g.BufferRows(buffer)*g.TileHeight
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

func mod(a, b int) int {
	return a - floorDiv(a, b)*b
}
