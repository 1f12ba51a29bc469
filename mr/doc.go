// SPDX-License-Identifier: MIT

// Package mr implements the multiresolution operators: memoized prediction
// (coarse to fine interpolation) and projection (fine to coarse averaging).
//
// What:
//
//   - Predictor.Predict(comp, levelG, level, iv) estimates one component at
//     absolute level levelG+level on the cells visited by iv. Stored cells
//     are returned as is; missing cells are interpolated from level-1 with
//     the three-point stencil
//
//     child = parent - sign/8 · (right - left), sign = +1 even, -1 odd,
//
//     recursing toward levelG until data exists.
//   - Predictor.PredictAll does the same for every component at once and
//     returns a matrix.Dense, one row per coordinate, one column per
//     component.
//   - Average and Project coarse-grain fine data: a coarse cell is the mean
//     of its 2^dim children.
//   - FillGhosts and Synchronize bring ancestors, ghosts and boundary cells
//     of a field up to date before a solver step reads them.
//
// Memoization:
//
//	Results are cached per (component, levelG, level, start, end, step). An
//	entry is never overwritten, and an entry whose shape does not match the
//	request is ignored. The cache belongs to one Predictor, which must be
//	Reset (or replaced) whenever the source data or mesh changes.
//
// Concurrency: a Predictor is not safe for concurrent use.
//
// Complexity: with memoization every (level, interval) pair is computed
// once, so a reconstruction of depth j over n cells costs O(n·j) instead of
// O(n·3^j).
package mr
