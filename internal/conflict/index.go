package conflict

import (
	"math"
	"sort"
)

// Entry pairs an interval with its payload.
type Entry[T any] struct {
	Interval Interval
	Value    T
}

// Index answers overlap queries over a static set of entries.
//
// Entries are kept sorted by (start, end) and read as an implicit balanced
// binary tree: the root of [lo, hi) is its midpoint. maxEnd[mid] holds the
// largest end in that subtree, which lets a query skip subtrees that finish
// before the query starts. Queries cost O(log n + k).
type Index[T any] struct {
	entries []Entry[T]
	maxEnd  []int64
}

// NewIndex builds an index over entries.
func NewIndex[T any](entries []Entry[T]) *Index[T] {
	idx := &Index[T]{}
	idx.InsertAll(entries)
	return idx
}

// InsertAll adds entries and rebuilds the tree.
func (x *Index[T]) InsertAll(entries []Entry[T]) {
	if len(entries) == 0 {
		return
	}
	x.entries = append(x.entries, entries...)
	sort.SliceStable(x.entries, func(i, j int) bool {
		return less(x.entries[i].Interval, x.entries[j].Interval)
	})
	x.maxEnd = make([]int64, len(x.entries))
	x.build(0, len(x.entries))
}

// Len returns the number of stored entries.
func (x *Index[T]) Len() int {
	return len(x.entries)
}

// Overlapping returns the payload of every entry overlapping q, in
// (start, end) order.
func (x *Index[T]) Overlapping(q Interval) []T {
	var out []T
	x.collect(0, len(x.entries), q, &out)
	return out
}

// Exact returns the payloads stored under exactly q.
func (x *Index[T]) Exact(q Interval) []T {
	i := sort.Search(len(x.entries), func(i int) bool {
		return !less(x.entries[i].Interval, q)
	})
	var out []T
	for ; i < len(x.entries) && x.entries[i].Interval == q; i++ {
		out = append(out, x.entries[i].Value)
	}
	return out
}

func (x *Index[T]) build(lo, hi int) int64 {
	if lo >= hi {
		return math.MinInt64
	}
	mid := int(uint(lo+hi) >> 1)
	top := x.entries[mid].Interval.end
	if left := x.build(lo, mid); left > top {
		top = left
	}
	if right := x.build(mid+1, hi); right > top {
		top = right
	}
	x.maxEnd[mid] = top
	return top
}

func (x *Index[T]) collect(lo, hi int, q Interval, out *[]T) {
	if lo >= hi {
		return
	}
	mid := int(uint(lo+hi) >> 1)
	if x.maxEnd[mid] <= q.start {
		return
	}
	x.collect(lo, mid, q, out)
	e := x.entries[mid]
	// everything from mid rightwards starts at or after e.start
	if e.Interval.start >= q.end {
		return
	}
	if q.start < e.Interval.end {
		*out = append(*out, e.Value)
	}
	x.collect(mid+1, hi, q, out)
}

func less(a, b Interval) bool {
	if a.start != b.start {
		return a.start < b.start
	}
	return a.end < b.end
}
