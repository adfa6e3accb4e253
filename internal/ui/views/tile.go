package views

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Akashdeep-Patra/lazyscroll/internal/scroller"
	"github.com/Akashdeep-Patra/lazyscroll/internal/source"
)

// errBlankItem is returned for items with nothing to show.
var errBlankItem = errors.New("item has neither a title nor an id")

// tileRenderer turns items into plain-text tiles of exactly height lines.
// Styling happens at paint time so tiles survive a resize.
type tileRenderer struct {
	height int
}

var _ scroller.Renderer[source.Item] = tileRenderer{}

func (r tileRenderer) Render(item *source.Item, index int) (scroller.Tile, error) {
	title := item.Title
	if title == "" {
		title = item.ID
	}
	if title == "" {
		return scroller.Tile{}, errBlankItem
	}

	lines := []string{strconv.Itoa(index+1) + " " + title}
	if item.Subtitle != "" {
		lines = append(lines, item.Subtitle)
	}
	if len(item.Tags) > 0 {
		lines = append(lines, strings.Join(item.Tags, " "))
	}
	return scroller.Tile{Index: index, Body: fitBody(lines, r.height)}, nil
}

func (r tileRenderer) Placeholder(index int, class string) scroller.Tile {
	return scroller.Tile{Index: index, Class: class, Body: fitBody(nil, r.height)}
}

func fitBody(lines []string, height int) string {
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// NewTileRenderer returns the renderer the grid uses, for hosts that drive a
// scroller without a terminal.
func NewTileRenderer(height int) scroller.Renderer[source.Item] {
	return tileRenderer{height: height}
}
