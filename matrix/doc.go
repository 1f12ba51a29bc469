// SPDX-License-Identifier: MIT

// Package matrix provides the row-major Dense matrix used as value storage.
//
// What:
//
//   - Dense stores r×c float64 values in one flat slice, row after row.
//   - Fields keep one row per cell and one column per component, so a run of
//     consecutive cells is a run of consecutive rows.
//   - Element-wise Add/Sub/Scale and column range reads/writes serve the
//     multiresolution operators.
//
// Errors:
//
//   - ErrInvalidDimensions: non-positive shape at construction.
//   - ErrIndexOutOfBounds: row or column outside the matrix.
//   - ErrDimensionMismatch: operands or slices of the wrong shape.
//
// Complexity: O(1) indexed access; O(r*c) for whole-matrix operations.
package matrix
