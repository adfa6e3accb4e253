package scroller

import "slices"

// Tile is a rendered representation of one index.
type Tile struct {
	Index       int
	Class       string
	Body        string
	Placeholder bool
}

// Entry pairs a materialized index with its tile.
type Entry struct {
	Index int
	Tile  Tile
}

// Window is the ordered record of materialized entries. Indices are strictly
// ascending with no duplicates. Only the Scroller mutates it.
type Window struct {
	entries []Entry
}

// Len is the number of materialized entries.
func (w *Window) Len() int { return len(w.entries) }

// Entries returns a copy of the materialized entries in order.
func (w *Window) Entries() []Entry {
	return slices.Clone(w.entries)
}

// Indices returns the materialized indices in order.
func (w *Window) Indices() []int {
	out := make([]int, len(w.entries))
	for i, e := range w.entries {
		out[i] = e.Index
	}
	return out
}

// Contains reports whether index is materialized.
func (w *Window) Contains(index int) bool {
	_, ok := w.find(index)
	return ok
}

// Get returns the tile for index.
func (w *Window) Get(index int) (Tile, bool) {
	pos, ok := w.find(index)
	if !ok {
		return Tile{}, false
	}
	return w.entries[pos].Tile, true
}

// Append attaches e at the end. If e would not sort last it is inserted in
// place instead, so the window stays ascending whatever the caller does.
func (w *Window) Append(e Entry) {
	n := len(w.entries)
	if n == 0 || w.entries[n-1].Index < e.Index {
		w.entries = append(w.entries, e)
		return
	}
	w.insert(e)
}

// Prepend attaches e at the front, with the same in-place fallback as Append.
func (w *Window) Prepend(e Entry) {
	if len(w.entries) == 0 || e.Index < w.entries[0].Index {
		w.entries = slices.Insert(w.entries, 0, e)
		return
	}
	w.insert(e)
}

// Remove detaches the entry tagged with index and returns it.
func (w *Window) Remove(index int) (Entry, bool) {
	pos, ok := w.find(index)
	if !ok {
		return Entry{}, false
	}
	e := w.entries[pos]
	w.entries = slices.Delete(w.entries, pos, pos+1)
	return e, true
}

// Clear detaches everything.
func (w *Window) Clear() {
	w.entries = w.entries[:0]
}

func (w *Window) insert(e Entry) {
	pos, found := w.find(e.Index)
	if found {
		w.entries[pos] = e
		return
	}
	w.entries = slices.Insert(w.entries, pos, e)
}

func (w *Window) find(index int) (int, bool) {
	return slices.BinarySearchFunc(w.entries, index, func(e Entry, target int) int {
		return e.Index - target
	})
}
