// SPDX-License-Identifier: MIT

// Package mrmesh is an adaptive multiresolution cell mesh: sparse interval
// storage of cells on nested dyadic levels, a set algebra over those
// levels, and the prediction/projection operators that move cell averages
// between them.
//
// What is in the box?
//
//	interval/   half-open integer ranges with stride and storage index
//	cells/      per-level interval rows (LevelCellArray), level arrays
//	            (CellArray) and their sorted builders (CellList)
//	setops/     lazy intersection, union, difference and translation of
//	            cell sets, evaluated at any level
//	mesh/       leaves, ancestors, ghosts and boundary cells over a box,
//	            with a bitmap existence index
//	matrix/     row-major dense storage (rows = cells, cols = components)
//	field/      named multi-component values on a mesh, boundary conditions
//	mr/         memoized deep prediction, projection, ghost synchronization
//	stencil/    predictions as explicit linear combinations of coarse cells
//	timer/      named wall-clock timings
//	config/     settings of the mrdemo command
//
// Quick example: level-3 values over [0,16) on a mesh whose left half stops
// at level 2. Stored cells are read as they are, the rest is interpolated
// from level 2 and cached:
//
//	p := mr.NewPredictor(f)
//	vals, err := p.Predict(0, 2, 1, interval.Must(0, 16))
//
// The demo driver lives in cmd/mrdemo.
package mrmesh
