// SPDX-License-Identifier: MIT

// Package cells holds the sparse, level-structured cell sets of an adaptive
// Cartesian mesh.
//
// What:
//
//   - LevelCellArray: the cells of one refinement level, stored as rows of
//     sorted, disjoint intervals along the fastest axis, keyed by the
//     remaining ("outer") axes. Empty rows are omitted.
//   - CellArray: one LevelCellArray per level 0..maxLevel, with whole-mesh
//     queries (NbCells, MaxLevel, ForEachCell).
//   - CellList / LevelCellList: mutable builders that coalesce inserted
//     ranges and freeze into the arrays above.
//
// Both arrays are immutable once built; an adaptation step produces a new
// CellArray instead of mutating the old one.
//
// Ordering:
//
//	Rows are visited in row-major order: the highest axis is the most
//	significant key. Inside a row intervals ascend by Start. ForEachCell
//	is therefore deterministic and repeatable.
//
// Storage:
//
//	Every interval carries the storage offset of its first cell. Offsets are
//	contiguous inside a CellArray, across levels, so a single value buffer of
//	NbCells() entries addresses the whole array.
//
// Complexity:
//
//   - Row lookup: O(log R) (R = number of rows).
//   - Coordinate lookup inside a row: O(log I) (I = intervals in the row).
//   - ForEachCell: O(number of cells).
//
// Errors:
//
//   - ErrBadDim: dimension outside 1..MaxDim.
//   - ErrLevelOutOfRange: level outside 0..maxLevel or above MaxRefinementLevel.
package cells
