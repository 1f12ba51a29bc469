// SPDX-License-Identifier: MIT

// Package mesh builds immutable multiresolution mesh snapshots from a leaf
// partition and a rectangular domain.
//
// What:
//
//   - Cells: the leaves, one LevelCellArray per level; every point of the
//     domain belongs to exactly one leaf.
//   - Ancestors: every coarser cell whose region holds leaves, down to level
//     0. Projection fills them from their children.
//   - Ghosts: in-domain cells around leaves and ancestors (halo of width
//     GhostWidth), plus the coarse cells the one-dimensional prediction
//     stencil needs to fill them, recursively.
//   - Boundary: halo cells outside the domain, filled by boundary conditions.
//   - AllCells: the union of the four sets above ("cells and ghosts"). It is
//     the storage layout of fields and the set ExistsAt answers for.
//
// A Mesh never changes after New returns; an adaptation step builds a new
// one from a new leaf CellArray.
//
// Existence:
//
//	ExistsAt answers per-coordinate membership in AllCells through one
//	roaring64 bitmap per level, keyed by (row number, coordinate).
//
// Errors:
//
//   - ErrEmptyBox, ErrBadGhostWidth, ErrDimMismatch: invalid arguments.
//   - ErrOutsideBox, ErrOverlap, ErrNotCovering: the leaves are not a
//     partition of the domain.
//   - ErrCoordinateRange: coordinates do not fit the 32-bit existence keys.
package mesh
