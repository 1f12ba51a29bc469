// SPDX-License-Identifier: MIT

package cells

import (
	"fmt"
	"strings"
)

// CellArray is the adaptive mesh: one LevelCellArray per level 0..maxLevel.
// It is immutable; storage offsets are contiguous across levels.
type CellArray struct {
	dim    int
	levels []*LevelCellArray
}

// NewCellArray assembles per-level arrays into a CellArray.
// levels[k] must be at level k with the given dimension; nil entries become
// empty levels. Offsets are renumbered contiguously, level 0 first.
// Returns ErrBadDim, ErrLevelOutOfRange or ErrLevelMismatch.
// Complexity: O(total intervals).
func NewCellArray(dim, maxLevel int, levels ...*LevelCellArray) (*CellArray, error) {
	if err := ValidateDim(dim); err != nil {
		return nil, err
	}
	if maxLevel < 0 || maxLevel > MaxRefinementLevel || len(levels) > maxLevel+1 {
		return nil, fmt.Errorf("maxLevel=%d (got %d levels): %w", maxLevel, len(levels), ErrLevelOutOfRange)
	}
	ca := &CellArray{dim: dim, levels: make([]*LevelCellArray, maxLevel+1)}
	base := 0
	for lvl := range ca.levels {
		var src *LevelCellArray
		if lvl < len(levels) {
			src = levels[lvl]
		}
		if src == nil {
			ca.levels[lvl] = Empty(lvl, dim)
			continue
		}
		if src.level != lvl || src.dim != dim {
			return nil, fmt.Errorf("slot %d holds level %d dim %d: %w", lvl, src.level, src.dim, ErrLevelMismatch)
		}
		ca.levels[lvl] = src.rebase(base)
		base += src.NbCells()
	}

	return ca, nil
}

// Dim returns the spatial dimension.
func (ca *CellArray) Dim() int { return ca.dim }

// MaxRefinementLevel returns the highest level slot, occupied or not.
func (ca *CellArray) MaxRefinementLevel() int { return len(ca.levels) - 1 }

// Level returns the cells of one level. It panics when level is outside
// 0..MaxRefinementLevel(), like a slice index; use Get for a checked access.
func (ca *CellArray) Level(level int) *LevelCellArray {
	return ca.levels[level]
}

// Get returns the cells of one level or ErrLevelOutOfRange.
func (ca *CellArray) Get(level int) (*LevelCellArray, error) {
	if level < 0 || level >= len(ca.levels) {
		return nil, fmt.Errorf("CellArray.Get(%d): %w", level, ErrLevelOutOfRange)
	}

	return ca.levels[level], nil
}

// NbCells sums NbCells over all levels.
// Complexity: O(levels).
func (ca *CellArray) NbCells() int {
	n := 0
	for _, l := range ca.levels {
		n += l.NbCells()
	}

	return n
}

// Empty reports whether no level holds a cell.
func (ca *CellArray) Empty() bool {
	for _, l := range ca.levels {
		if !l.Empty() {
			return false
		}
	}

	return true
}

// MaxLevel returns the highest non-empty level. The scan runs downward with a
// signed counter and stops at level 0; an entirely empty array reports 0, so
// callers that must distinguish use Empty.
// Complexity: O(levels).
func (ca *CellArray) MaxLevel() int {
	for lvl := len(ca.levels) - 1; lvl >= 0; lvl-- {
		if !ca.levels[lvl].Empty() {
			return lvl
		}
	}

	return 0
}

// MinLevel returns the lowest non-empty level, or 0 for an empty array.
func (ca *CellArray) MinLevel() int {
	for lvl, l := range ca.levels {
		if !l.Empty() {
			return lvl
		}
	}

	return 0
}

// ForEachCell visits every cell, level 0 first.
// Complexity: O(NbCells).
func (ca *CellArray) ForEachCell(fn func(Cell)) {
	for _, l := range ca.levels {
		l.ForEachCell(fn)
	}
}

// ForEachCellOnLevel visits the cells of one level.
// Returns ErrLevelOutOfRange for a level outside the array.
func (ca *CellArray) ForEachCellOnLevel(level int, fn func(Cell)) error {
	l, err := ca.Get(level)
	if err != nil {
		return err
	}
	l.ForEachCell(fn)

	return nil
}

// String implements fmt.Stringer, listing non-empty levels.
func (ca *CellArray) String() string {
	var sb strings.Builder
	for lvl, l := range ca.levels {
		if l.Empty() {
			continue
		}
		fmt.Fprintf(&sb, "level %d\n%s", lvl, l.String())
	}

	return sb.String()
}
