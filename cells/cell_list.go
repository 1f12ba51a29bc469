// SPDX-License-Identifier: MIT

package cells

import (
	"fmt"
	"sort"

	"github.com/google/btree"

	"github.com/katalvlaran/mrmesh/interval"
)

// btreeDegree is the minimum degree of the row index; rows are few and wide.
const btreeDegree = 16

// listRow is a mutable row of a LevelCellList.
type listRow struct {
	outer Outer
	ivs   []interval.Interval
}

func lessRow(a, b *listRow) bool {
	return CompareOuter(a.outer, b.outer) < 0
}

// LevelCellList accumulates coordinate ranges of one level.
// Every insertion coalesces with the overlapping or adjacent ranges of its
// row, so rows stay sorted and disjoint at all times.
// A LevelCellList is not safe for concurrent use.
type LevelCellList struct {
	level int
	dim   int
	rows  *btree.BTreeG[*listRow]
}

// NewLevelCellList returns an empty builder for the given level.
func NewLevelCellList(level, dim int) (*LevelCellList, error) {
	if err := ValidateDim(dim); err != nil {
		return nil, err
	}
	if level < 0 || level > MaxRefinementLevel {
		return nil, fmt.Errorf("level=%d: %w", level, ErrLevelOutOfRange)
	}

	return &LevelCellList{
		level: level,
		dim:   dim,
		rows:  btree.NewG[*listRow](btreeDegree, lessRow),
	}, nil
}

// Level returns the level being built.
func (l *LevelCellList) Level() int { return l.level }

// Dim returns the spatial dimension.
func (l *LevelCellList) Dim() int { return l.dim }

// Add inserts [start, end) into the row keyed by outer.
// Returns interval.ErrInvalidInterval when start >= end.
// Complexity: O(log R + I).
func (l *LevelCellList) Add(outer Outer, start, end int) error {
	iv, err := interval.New(start, end)
	if err != nil {
		return err
	}
	l.insert(outer, iv)

	return nil
}

// AddInterval inserts iv (its stride and index are ignored).
func (l *LevelCellList) AddInterval(outer Outer, iv interval.Interval) error {
	return l.Add(outer, iv.Start, iv.End)
}

// AddCell inserts a single cell.
func (l *LevelCellList) AddCell(c Coord) {
	l.insert(c.Outer(), interval.Interval{Start: c[0], End: c[0] + 1, Step: 1})
}

func (l *LevelCellList) insert(outer Outer, iv interval.Interval) {
	key := &listRow{outer: normalize(outer, l.dim)}
	r, ok := l.rows.Get(key)
	if !ok {
		key.ivs = []interval.Interval{iv}
		l.rows.ReplaceOrInsert(key)

		return
	}
	r.ivs = insertMerged(r.ivs, iv)
}

// insertMerged inserts iv into the sorted disjoint ivs, coalescing every
// range that overlaps or touches it.
func insertMerged(ivs []interval.Interval, iv interval.Interval) []interval.Interval {
	// first range that can touch iv
	lo := sort.Search(len(ivs), func(k int) bool { return ivs[k].End >= iv.Start })
	// first range strictly after iv
	hi := sort.Search(len(ivs), func(k int) bool { return ivs[k].Start > iv.End })
	if lo < hi {
		iv.Start = min(iv.Start, ivs[lo].Start)
		iv.End = max(iv.End, ivs[hi-1].End)
	}
	out := make([]interval.Interval, 0, len(ivs)-(hi-lo)+1)
	out = append(out, ivs[:lo]...)
	out = append(out, interval.Interval{Start: iv.Start, End: iv.End, Step: 1})

	return append(out, ivs[hi:]...)
}

// Empty reports whether nothing was inserted.
func (l *LevelCellList) Empty() bool { return l.rows.Len() == 0 }

// Build freezes the list into a LevelCellArray whose offsets start at base.
// The list may be reused afterwards; the array does not alias it.
// Complexity: O(R + I).
func (l *LevelCellList) Build(base int) *LevelCellArray {
	rows := make([]row, 0, l.rows.Len())
	l.rows.Ascend(func(r *listRow) bool {
		rows = append(rows, row{outer: r.outer, ivs: append([]interval.Interval(nil), r.ivs...)})
		return true
	})

	return newLevelCellArray(l.level, l.dim, rows, base)
}

// CellList collects cells for every level 0..maxLevel.
type CellList struct {
	dim    int
	levels []*LevelCellList
}

// NewCellList returns an empty builder for a CellArray.
func NewCellList(dim, maxLevel int) (*CellList, error) {
	if err := ValidateDim(dim); err != nil {
		return nil, err
	}
	if maxLevel < 0 || maxLevel > MaxRefinementLevel {
		return nil, fmt.Errorf("maxLevel=%d: %w", maxLevel, ErrLevelOutOfRange)
	}
	cl := &CellList{dim: dim, levels: make([]*LevelCellList, maxLevel+1)}
	for lvl := range cl.levels {
		cl.levels[lvl], _ = NewLevelCellList(lvl, dim)
	}

	return cl, nil
}

// Dim returns the spatial dimension.
func (cl *CellList) Dim() int { return cl.dim }

// MaxLevel returns the highest level the list can hold.
func (cl *CellList) MaxLevel() int { return len(cl.levels) - 1 }

// Level returns the builder of one level.
func (cl *CellList) Level(level int) (*LevelCellList, error) {
	if level < 0 || level >= len(cl.levels) {
		return nil, fmt.Errorf("CellList.Level(%d): %w", level, ErrLevelOutOfRange)
	}

	return cl.levels[level], nil
}

// Add inserts [start, end) in row outer at level.
func (cl *CellList) Add(level int, outer Outer, start, end int) error {
	l, err := cl.Level(level)
	if err != nil {
		return err
	}

	return l.Add(outer, start, end)
}

// AddCell inserts one cell at level.
func (cl *CellList) AddCell(level int, c Coord) error {
	l, err := cl.Level(level)
	if err != nil {
		return err
	}
	l.AddCell(c)

	return nil
}

// Build freezes every level into a CellArray with contiguous offsets.
func (cl *CellList) Build() *CellArray {
	ca := &CellArray{dim: cl.dim, levels: make([]*LevelCellArray, len(cl.levels))}
	base := 0
	for lvl, l := range cl.levels {
		ca.levels[lvl] = l.Build(base)
		base += ca.levels[lvl].NbCells()
	}

	return ca
}
