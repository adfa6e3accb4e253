package scroller

import "slices"

// Plan is the outcome of diffing the materialized indices against a new
// target set.
//
// Remove may be applied in any order. Append is ascending and goes to the
// end of the window; Prepend is descending and goes to the front, so that
// after repeated front insertion the window reads ascending again.
type Plan struct {
	Remove  []int
	Append  []int
	Prepend []int
}

// Empty reports whether applying p would change nothing.
func (p Plan) Empty() bool {
	return len(p.Remove) == 0 && len(p.Append) == 0 && len(p.Prepend) == 0
}

// Added returns every index p adds, ascending.
func (p Plan) Added() []int {
	out := make([]int, 0, len(p.Append)+len(p.Prepend))
	for i := len(p.Prepend) - 1; i >= 0; i-- {
		out = append(out, p.Prepend[i])
	}
	return append(out, p.Append...)
}

// Diff computes the plan that turns current into target. Both slices must be
// ascending without duplicates.
//
// Additions are split on the anchor, the smallest index materialized before
// the pass. The target is one contiguous block around the visible rows, so
// everything above the anchor belongs after the surviving entries and
// everything at or below it belongs before them. With nothing materialized
// there is no anchor and every addition is appended.
func Diff(current, target []int) Plan {
	var p Plan

	// Both inputs are sorted, so a merge walk yields both set differences.
	var added []int
	i, j := 0, 0
	for i < len(current) && j < len(target) {
		switch {
		case current[i] == target[j]:
			i++
			j++
		case current[i] < target[j]:
			p.Remove = append(p.Remove, current[i])
			i++
		default:
			added = append(added, target[j])
			j++
		}
	}
	p.Remove = append(p.Remove, current[i:]...)
	added = append(added, target[j:]...)

	if len(current) == 0 {
		p.Append = added
		return p
	}

	anchor := current[0]
	split, _ := slices.BinarySearch(added, anchor+1)
	p.Append = added[split:]
	if split > 0 {
		p.Prepend = make([]int, split)
		for k := 0; k < split; k++ {
			p.Prepend[k] = added[split-1-k]
		}
	}
	if len(p.Append) == 0 {
		p.Append = nil
	}
	return p
}
