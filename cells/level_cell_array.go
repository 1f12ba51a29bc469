// SPDX-License-Identifier: MIT

package cells

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/mrmesh/interval"
)

// row is one outer-coordinate line of a LevelCellArray.
type row struct {
	outer Outer
	ivs   []interval.Interval // sorted, disjoint, non-adjacent
}

// LevelCellArray is the immutable set of cells present at one level.
// The zero value is not usable; build one with a LevelCellList or Empty.
type LevelCellArray struct {
	level   int
	dim     int
	rows    []row // row-major order
	nbCells int
}

// Empty returns a LevelCellArray with no cells.
func Empty(level, dim int) *LevelCellArray {
	return &LevelCellArray{level: level, dim: dim}
}

// newLevelCellArray freezes rows and assigns contiguous storage offsets from base.
// rows must already be sorted and coalesced.
func newLevelCellArray(level, dim int, rows []row, base int) *LevelCellArray {
	lca := &LevelCellArray{level: level, dim: dim, rows: rows}
	lca.assign(base)

	return lca
}

// assign (re)numbers interval offsets starting at base.
func (lca *LevelCellArray) assign(base int) {
	next := base
	for r := range lca.rows {
		ivs := lca.rows[r].ivs
		for k := range ivs {
			ivs[k].Index = next
			ivs[k].Step = 1
			next += ivs[k].Size()
		}
	}
	lca.nbCells = next - base
}

// rebase returns a deep copy whose offsets start at base.
func (lca *LevelCellArray) rebase(base int) *LevelCellArray {
	rows := make([]row, len(lca.rows))
	for r, src := range lca.rows {
		rows[r] = row{outer: src.outer, ivs: append([]interval.Interval(nil), src.ivs...)}
	}

	return newLevelCellArray(lca.level, lca.dim, rows, base)
}

// Level returns the refinement level of the array.
func (lca *LevelCellArray) Level() int { return lca.level }

// Dim returns the spatial dimension.
func (lca *LevelCellArray) Dim() int { return lca.dim }

// Empty reports whether the array holds no cell.
func (lca *LevelCellArray) Empty() bool { return len(lca.rows) == 0 }

// NbCells returns the number of cells (sum of interval sizes).
// Complexity: O(1).
func (lca *LevelCellArray) NbCells() int { return lca.nbCells }

// NbRows returns the number of non-empty rows.
func (lca *LevelCellArray) NbRows() int { return len(lca.rows) }

// BaseIndex returns the storage offset of the first cell, or 0 when empty.
func (lca *LevelCellArray) BaseIndex() int {
	if lca.Empty() {
		return 0
	}

	return lca.rows[0].ivs[0].Index
}

// Outers returns the row keys in row-major order.
// Complexity: O(R).
func (lca *LevelCellArray) Outers() []Outer {
	out := make([]Outer, len(lca.rows))
	for r := range lca.rows {
		out[r] = lca.rows[r].outer
	}

	return out
}

// RowIndex returns the position of the row keyed by outer in traversal order.
// Complexity: O(log R).
func (lca *LevelCellArray) RowIndex(outer Outer) (int, bool) {
	outer = normalize(outer, lca.dim)
	r := sort.Search(len(lca.rows), func(k int) bool {
		return CompareOuter(lca.rows[k].outer, outer) >= 0
	})
	if r < len(lca.rows) && lca.rows[r].outer == outer {
		return r, true
	}

	return 0, false
}

// Row returns the intervals of the row keyed by outer, or nil.
// The returned slice is shared and must not be modified.
// Complexity: O(log R).
func (lca *LevelCellArray) Row(outer Outer) []interval.Interval {
	r, ok := lca.RowIndex(outer)
	if !ok {
		return nil
	}

	return lca.rows[r].ivs
}

// ForEachRow calls fn for every non-empty row in row-major order.
func (lca *LevelCellArray) ForEachRow(fn func(outer Outer, ivs []interval.Interval)) {
	for _, r := range lca.rows {
		fn(r.outer, r.ivs)
	}
}

// ForEachInterval calls fn for every interval in traversal order.
func (lca *LevelCellArray) ForEachInterval(fn func(outer Outer, iv interval.Interval)) {
	for _, r := range lca.rows {
		for _, iv := range r.ivs {
			fn(r.outer, iv)
		}
	}
}

// ForEachCell calls fn for every cell: row-major, then ascending coordinate.
// Complexity: O(NbCells).
func (lca *LevelCellArray) ForEachCell(fn func(Cell)) {
	for _, r := range lca.rows {
		for _, iv := range r.ivs {
			for x := iv.Start; x < iv.End; x++ {
				fn(Cell{
					Level: lca.level,
					Dim:   lca.dim,
					Coord: At(x, r.outer),
					Index: iv.Index + x - iv.Start,
				})
			}
		}
	}
}

// locate returns the interval of ivs containing x.
func locate(ivs []interval.Interval, x int) (interval.Interval, bool) {
	k := sort.Search(len(ivs), func(k int) bool { return ivs[k].End > x })
	if k < len(ivs) && ivs[k].Start <= x {
		return ivs[k], true
	}

	return interval.Interval{}, false
}

// Contains reports whether the cell (x, outer) is present.
// Complexity: O(log R + log I).
func (lca *LevelCellArray) Contains(outer Outer, x int) bool {
	_, ok := locate(lca.Row(outer), x)

	return ok
}

// IndexOf returns the storage offset of the cell (x, outer).
// Complexity: O(log R + log I).
func (lca *LevelCellArray) IndexOf(outer Outer, x int) (int, bool) {
	iv, ok := locate(lca.Row(outer), x)
	if !ok {
		return 0, false
	}

	return iv.Index + x - iv.Start, true
}

// Exists returns, for every coordinate visited by iv, whether the cell is
// present in the row keyed by outer.
// Complexity: O(log R + Len(iv) + I).
func (lca *LevelCellArray) Exists(outer Outer, iv interval.Interval) []bool {
	mask := make([]bool, iv.Len())
	ivs := lca.Row(outer)
	if len(ivs) == 0 {
		return mask
	}
	// cursor walks the row once since visited coordinates ascend
	c := sort.Search(len(ivs), func(k int) bool { return ivs[k].End > iv.Start })
	for k, x := range iv.Coords() {
		for c < len(ivs) && ivs[c].End <= x {
			c++
		}
		if c == len(ivs) {
			break
		}
		mask[k] = ivs[c].Start <= x
	}

	return mask
}

// Equal reports whether both arrays hold the same coordinate set at the same
// level. Storage offsets are ignored.
func (lca *LevelCellArray) Equal(o *LevelCellArray) bool {
	if lca.level != o.level || lca.dim != o.dim || len(lca.rows) != len(o.rows) {
		return false
	}
	for r := range lca.rows {
		a, b := lca.rows[r], o.rows[r]
		if a.outer != b.outer || len(a.ivs) != len(b.ivs) {
			return false
		}
		for k := range a.ivs {
			if !a.ivs[k].Equal(b.ivs[k]) {
				return false
			}
		}
	}

	return true
}

// String implements fmt.Stringer, one line per row.
func (lca *LevelCellArray) String() string {
	var sb strings.Builder
	for _, r := range lca.rows {
		if lca.dim > 1 {
			fmt.Fprintf(&sb, "%v: ", r.outer[:lca.dim-1])
		}
		for k, iv := range r.ivs {
			if k > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(iv.String())
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
