// SPDX-License-Identifier: MIT

package mesh

import (
	"math"

	"github.com/RoaringBitmap/roaring/roaring64"

	"github.com/katalvlaran/mrmesh/cells"
	"github.com/katalvlaran/mrmesh/interval"
)

// coordBias maps int32 coordinates onto uint32 keys while keeping order, so
// a run of coordinates stays a contiguous key range.
const coordBias = 1 << 31

// existence indexes the cells of a CellArray, one bitmap per level.
// Keys pack the row number (high 32 bits) and the biased coordinate.
type existence struct {
	levels []*cells.LevelCellArray
	bits   []*roaring64.Bitmap
}

// inRange reports whether x can be keyed.
func inRange(x int) bool {
	return x >= math.MinInt32 && x <= math.MaxInt32
}

func key(row, x int) uint64 {
	return uint64(row)<<32 | uint64(uint32(x+coordBias))
}

// newExistence indexes every interval of ca.
// Complexity: O(intervals) insertions of whole ranges.
func newExistence(ca *cells.CellArray) *existence {
	e := &existence{
		levels: make([]*cells.LevelCellArray, ca.MaxRefinementLevel()+1),
		bits:   make([]*roaring64.Bitmap, ca.MaxRefinementLevel()+1),
	}
	for lvl := range e.levels {
		lca := ca.Level(lvl)
		bm := roaring64.New()
		row := 0
		lca.ForEachRow(func(_ cells.Outer, ivs []interval.Interval) {
			for _, iv := range ivs {
				bm.AddRange(key(row, iv.Start), key(row, iv.End-1)+1)
			}
			row++
		})
		bm.RunOptimize()
		e.levels[lvl], e.bits[lvl] = lca, bm
	}

	return e
}

// contains reports membership of a single cell.
func (e *existence) contains(level int, outer cells.Outer, x int) bool {
	row, ok := e.levels[level].RowIndex(outer)

	return ok && inRange(x) && e.bits[level].Contains(key(row, x))
}

// mask reports membership of every coordinate visited by iv.
func (e *existence) mask(level int, outer cells.Outer, iv interval.Interval) []bool {
	out := make([]bool, iv.Len())
	row, ok := e.levels[level].RowIndex(outer)
	if !ok {
		return out
	}
	bm := e.bits[level]
	k := 0
	for x := iv.Start; x < iv.End; x += max(iv.Step, 1) {
		out[k] = inRange(x) && bm.Contains(key(row, x))
		k++
	}

	return out
}
