package scroller

import (
	"errors"
	"fmt"
)

type item struct {
	Name   string
	Loaded int
}

func makeItems(n int) []item {
	items := make([]item, n)
	for i := range items {
		items[i] = item{Name: fmt.Sprintf("item-%d", i)}
	}
	return items
}

// fakeProbe is a synthetic viewport.
type fakeProbe struct {
	scroll  int
	height  int
	top     int
	content int
}

func (p *fakeProbe) ScrollOffset() int          { return p.scroll }
func (p *fakeProbe) ViewportHeight() int        { return p.height }
func (p *fakeProbe) ContainerTopOffset() int    { return p.top }
func (p *fakeProbe) ContentTopOffset() int      { return p.content }
func (p *fakeProbe) SetScrollOffset(offset int) { p.scroll = offset }

// fakeRenderer records calls and can fail on chosen indices.
type fakeRenderer struct {
	rendered     []int
	placeholders []int
	failOn       map[int]bool
}

var errBoom = errors.New("boom")

func (r *fakeRenderer) Render(it *item, index int) (Tile, error) {
	if r.failOn[index] {
		return Tile{}, errBoom
	}
	r.rendered = append(r.rendered, index)
	return Tile{Body: it.Name}, nil
}

func (r *fakeRenderer) Placeholder(index int, class string) Tile {
	r.placeholders = append(r.placeholders, index)
	return Tile{Class: class}
}
