// SPDX-License-Identifier: MIT

// Package field stores multi-component cell data on a mesh snapshot and
// applies boundary conditions to its halo.
//
// A Field holds one matrix.Dense row per cell of mesh.AllCells, in storage
// order, and one column per component. Leaves, ancestors, ghosts and
// boundary cells all have a slot; which of them hold meaningful values
// depends on the caller (projection fills ancestors, prediction fills
// ghosts, a BoundaryCondition fills boundary cells).
//
// Interval access:
//
//	Values(comp, level, iv, outer...) reads the cells visited by iv, which
//	may carry a stride. Every visited cell must exist, otherwise
//	ErrCellNotFound is returned.
//
// Errors:
//
//   - ErrComponentRange: component index outside 0..Components()-1.
//   - ErrCellNotFound: a requested cell is not stored at that level.
//   - ErrLengthMismatch: a value slice or block of the wrong length.
package field
