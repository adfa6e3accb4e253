// Package views holds the Bubbletea views. The grid view is a windowed list:
// only the tiles the scroller engine materialized are ever painted.
package views

import (
	"strings"

	"github.com/Akashdeep-Patra/lazyscroll/internal/common"
	"github.com/Akashdeep-Patra/lazyscroll/internal/scroller"
	"github.com/Akashdeep-Patra/lazyscroll/internal/source"
	"github.com/Akashdeep-Patra/lazyscroll/internal/ui"
	"github.com/Akashdeep-Patra/lazyscroll/internal/ui/components"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// wheelStep is the number of lines one wheel notch scrolls.
const wheelStep = 3

// termProbe is the terminal-side viewport. The grid owns the scroll offset;
// the engine only reads it.
type termProbe struct {
	scroll int
	height int
	top    int
}

func (p *termProbe) ScrollOffset() int          { return p.scroll }
func (p *termProbe) ViewportHeight() int        { return p.height }
func (p *termProbe) ContainerTopOffset() int    { return p.top }
func (p *termProbe) SetScrollOffset(offset int) { p.scroll = offset }

// GridKeyMap holds the scrolling bindings of the grid.
type GridKeyMap struct {
	LineUp   key.Binding
	LineDown key.Binding
	TileUp   key.Binding
	TileDown key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

// DefaultGridKeyMap returns the default scrolling bindings.
func DefaultGridKeyMap() GridKeyMap {
	return GridKeyMap{
		LineUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "up")),
		LineDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "down")),
		TileUp:   key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "tile up")),
		TileDown: key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "tile down")),
		HalfUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "half page up")),
		HalfDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "half page down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	}
}

// GridView paints the engine's window as rows of tiles.
type GridView struct {
	styles ui.Styles
	keys   GridKeyMap
	probe  *termProbe
	engine *scroller.Scroller[source.Item]
	label  string
	width  int
	height int
}

// NewGridView builds the view and its engine. The renderer is supplied here;
// everything else comes from cfg.
func NewGridView(styles ui.Styles, label string, cfg scroller.Config[source.Item]) (*GridView, error) {
	probe := &termProbe{}
	engine, err := scroller.New[source.Item](probe, nil, tileRenderer{height: cfg.TileHeight}, cfg)
	if err != nil {
		return nil, err
	}
	return &GridView{
		styles: styles,
		keys:   DefaultGridKeyMap(),
		probe:  probe,
		engine: engine,
		label:  label,
	}, nil
}

// Engine exposes the underlying scroller.
func (v *GridView) Engine() *scroller.Scroller[source.Item] { return v.engine }

// ScrollOffset is the current scroll position in lines.
func (v *GridView) ScrollOffset() int { return v.probe.scroll }

// gridWidth is the width left for tiles once the scrollbar column is taken.
func (v *GridView) gridWidth() int {
	return max(v.width-1, 1)
}

// maxScroll is the furthest the viewport can scroll.
func (v *GridView) maxScroll() int {
	return max(v.engine.ContentHeight()-v.height, 0)
}

// SetSize resizes the viewport and reconciles. The first call is what fills
// the window: before it the terminal height is unknown.
func (v *GridView) SetSize(w, h int) tea.Cmd {
	v.width = w
	v.height = max(h, 0)
	v.probe.height = v.height
	v.probe.scroll = min(v.probe.scroll, v.maxScroll())
	v.engine.Remeasure()
	_, err := v.engine.Reload()
	return common.CmdErr(err)
}

// SetItems swaps in a new collection. The scroll position survives when the
// new collection is long enough to hold it.
func (v *GridView) SetItems(items []source.Item) tea.Cmd {
	keep := v.probe.scroll
	v.engine.ResetData(items)
	v.probe.scroll = min(keep, v.maxScroll())
	_, err := v.engine.OnScroll()
	return common.CmdErr(err)
}

// ScrollTo moves the viewport to offset, clamped to the content.
func (v *GridView) ScrollTo(offset int) tea.Cmd {
	offset = min(max(offset, 0), v.maxScroll())
	if offset == v.probe.scroll {
		return nil
	}
	v.probe.scroll = offset
	_, err := v.engine.OnScroll()
	return common.CmdErr(err)
}

// ScrollBy moves the viewport by delta lines.
func (v *GridView) ScrollBy(delta int) tea.Cmd {
	return v.ScrollTo(v.probe.scroll + delta)
}

// Update handles scrolling input.
func (v *GridView) Update(msg tea.Msg) (*GridView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return v, v.ScrollBy(-wheelStep)
		case tea.MouseButtonWheelDown:
			return v, v.ScrollBy(wheelStep)
		}

	case tea.KeyMsg:
		tileH := v.engine.Geometry().TileHeight
		half := max(v.height/2, 1)
		switch {
		case key.Matches(msg, v.keys.LineUp):
			return v, v.ScrollBy(-1)
		case key.Matches(msg, v.keys.LineDown):
			return v, v.ScrollBy(1)
		case key.Matches(msg, v.keys.TileUp):
			return v, v.ScrollBy(-tileH)
		case key.Matches(msg, v.keys.TileDown):
			return v, v.ScrollBy(tileH)
		case key.Matches(msg, v.keys.HalfUp):
			return v, v.ScrollBy(-half)
		case key.Matches(msg, v.keys.HalfDown):
			return v, v.ScrollBy(half)
		case key.Matches(msg, v.keys.Top):
			return v, v.ScrollTo(0)
		case key.Matches(msg, v.keys.Bottom):
			return v, v.ScrollTo(v.maxScroll())
		}
	}
	return v, nil
}

// StatusData fills in the grid's share of the status bar.
func (v *GridView) StatusData() components.StatusBarData {
	data := components.StatusBarData{
		Source: v.label,
		Items:  v.engine.Len(),
		First:  -1,
		Window: len(v.engine.Indices()),
	}
	r := v.engine.Geometry().Visible(scroller.Read(v.probe), v.engine.Len())
	if !r.Empty() {
		data.First = max(r.First, 0)
		data.Last = min(r.Last, v.engine.Len()-1)
	}
	if m := v.maxScroll(); m > 0 {
		data.Percent = v.probe.scroll * 100 / m
	} else {
		data.Percent = 100
	}
	return data
}

// View paints the visible slice of the window plus the scrollbar.
func (v *GridView) View() string {
	if v.width == 0 || v.height == 0 {
		return ""
	}
	if v.engine.Len() == 0 {
		return v.emptyView()
	}

	body := lipgloss.NewStyle().Width(v.gridWidth()).
		Render(strings.Join(v.paint(), "\n"))
	bar := components.RenderScrollbar(v.styles, v.height, v.engine.ContentHeight(), v.height, v.probe.scroll)
	if bar == "" {
		return body
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, body, bar)
}

// paint lays the window out as a block starting at the window offset, then
// cuts the viewport's lines out of it.
func (v *GridView) paint() []string {
	out := make([]string, v.height)
	entries := v.engine.Window()
	if len(entries) == 0 {
		return out
	}

	g := v.engine.Geometry()
	origin := v.engine.WindowOffset()
	tiles := make(map[int]scroller.Tile, len(entries))
	for _, e := range entries {
		tiles[e.Index] = e.Tile
	}

	firstRow := g.Row(entries[0].Index)
	lastRow := g.Row(entries[len(entries)-1].Index)
	cw := max(v.gridWidth()/g.NumCols, 1)

	var block []string
	for y := origin; y < g.ContentOffset+firstRow*g.TileHeight; y++ {
		block = append(block, "")
	}
	for row := firstRow; row <= lastRow; row++ {
		top := g.ContentOffset + row*g.TileHeight
		for k, line := range strings.Split(v.renderRow(row, tiles, g, cw), "\n") {
			if top+k < origin {
				continue
			}
			block = append(block, line)
		}
	}

	start := v.probe.scroll - origin
	for i := range out {
		if pos := start + i; pos >= 0 && pos < len(block) {
			out[i] = block[pos]
		}
	}
	return out
}

func (v *GridView) renderRow(row int, tiles map[int]scroller.Tile, g scroller.Geometry, cw int) string {
	cells := make([]string, g.NumCols)
	for c := range cells {
		t, ok := tiles[row*g.NumCols+c]
		cells[c] = v.renderCell(t, ok, row, cw, g.TileHeight)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (v *GridView) renderCell(t scroller.Tile, ok bool, row, cw, h int) string {
	blank := lipgloss.NewStyle().Width(cw).Height(h).MaxHeight(h)
	if !ok {
		return blank.Render("")
	}
	if t.Placeholder {
		return blank.Inherit(v.styles.TileEmpty).Render("·")
	}

	inner := max(cw-2, 1)
	lines := strings.Split(t.Body, "\n")
	for i, l := range lines {
		l = ui.Truncate(l, inner)
		switch i {
		case 0:
			if num, title, ok := strings.Cut(l, " "); ok {
				lines[i] = v.styles.TileIndex.Render(num) + " " + v.styles.TileTitle.Render(title)
			} else {
				lines[i] = v.styles.TileTitle.Render(l)
			}
		case 1:
			lines[i] = v.styles.TileSub.Render(l)
		default:
			lines[i] = v.styles.TileTag.Render(l)
		}
	}

	style := v.styles.Tile.Width(max(cw-1, 1)).Height(h).MaxHeight(h)
	if accents := v.styles.Theme.TileAccents; len(accents) > 0 {
		style = style.BorderForeground(accents[row%len(accents)])
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (v *GridView) emptyView() string {
	msg := v.styles.Muted.Render("No items in " + v.label)
	return ui.PlaceCentre(v.width, v.height, msg)
}
