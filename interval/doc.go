// SPDX-License-Identifier: MIT

// Package interval defines the atomic entity of the adaptive mesh: a
// half-open run of integer cell coordinates along the fastest axis,
// decorated with the storage offset of its first cell.
//
// What:
//
//   - Interval{Start, End, Step, Index} covers Start, Start+Step, ... < End.
//   - Index locates the value of Start inside a contiguous buffer.
//   - Refine / Coarsen re-express an interval one or more levels up or down,
//     following the doubling relation: x at level L is [2x, 2x+1] at L+1
//     and x>>1 at L-1.
//   - Merge coalesces a list of intervals into the sorted, non-overlapping
//     form used by every row of a LevelCellArray.
//
// Complexity:
//
//   - All Interval methods: O(1), except Coords: O(Len).
//   - Merge: O(n log n) time, O(n) memory.
//
// Errors:
//
//   - ErrInvalidInterval: Start >= End where a non-empty interval is required.
package interval
