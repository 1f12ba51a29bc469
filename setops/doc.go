// SPDX-License-Identifier: MIT

// Package setops evaluates lazy boolean expressions over level-indexed cell
// sets: intersection, union and difference of LevelCellArrays (or of other
// expressions), optionally re-expressed at another level with On.
//
// What:
//
//   - Operand: anything exposing rows of sorted intervals at a level.
//     *cells.LevelCellArray, *Expr and Translate results qualify.
//   - Expr.Run(fn) pushes one callback per emitted interval, with a Span per
//     operand telling whether and where that operand covers it. Nothing is
//     materialized beyond one aligned row per operand at a time.
//   - Expr.Collect freezes the result into a new LevelCellArray.
//
// Level alignment:
//
//	An operand at level L evaluated at L' > L has every boundary multiplied
//	by 2^(L'-L) and every row duplicated into its 2^(L'-L) children rows.
//	At L' < L boundaries are shifted right (start floored, end ceiled) and
//	the resulting runs merged. Boundaries that are not multiples of
//	2^(L-L') lose precision; no correction is attempted.
//
// Algorithms:
//
//   - Intersection: k-cursor sweep. At each step the overlap of the current
//     runs is emitted and every cursor whose run ends first advances.
//   - Union, Difference: boundary sweep over all run ends, emitting maximal
//     segments with a constant per-operand presence pattern.
//
// Complexity (per row, k operands, n runs in total): O(n log n) for the
// boundary sweep, O(n) for the intersection sweep.
//
// Errors:
//
//   - ErrNoOperands, ErrDimMismatch, ErrBadLevel, returned by Run/Collect.
//
// Concurrency: evaluation only reads the operands; it is reentrant but the
// operands must not change while an expression runs.
package setops
