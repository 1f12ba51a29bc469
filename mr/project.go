// SPDX-License-Identifier: MIT

package mr

import (
	"fmt"

	"github.com/katalvlaran/mrmesh/cells"
	"github.com/katalvlaran/mrmesh/field"
	"github.com/katalvlaran/mrmesh/interval"
	"github.com/katalvlaran/mrmesh/mesh"
)

// Average returns the coarse values of consecutive child pairs:
// out[k] = (fine[2k] + fine[2k+1]) / 2.
// Returns ErrOddLength when len(fine) is odd.
// Complexity: O(len(fine)).
func Average(fine []float64) ([]float64, error) {
	if len(fine)%2 != 0 {
		return nil, fmt.Errorf("Average: %d values: %w", len(fine), ErrOddLength)
	}
	out := make([]float64, len(fine)/2)
	for k := range out {
		out[k] = 0.5 * (fine[2*k] + fine[2*k+1])
	}

	return out, nil
}

// childOuters lists the row keys of the children of row outer, one level
// finer, for a dim-dimensional mesh.
func childOuters(outer cells.Outer, dim int) [][]int {
	n := dim - 1
	out := make([][]int, 0, 1<<n)
	for bits := 0; bits < 1<<n; bits++ {
		o := make([]int, n)
		for k := 0; k < n; k++ {
			o[k] = 2*outer[k] + (bits>>k)&1
		}
		out = append(out, o)
	}

	return out
}

// Project sets every ancestor of f to the mean of its 2^dim children,
// finest level first, so each level reads already projected data.
//
// Returns field errors when a child is not stored, which means the mesh
// is inconsistent with f.
// Complexity: O(ancestors · 2^dim · Components).
func Project(f *field.Field) error {
	m := f.Mesh()
	anc := m.Get(mesh.Ancestors)
	dim := m.Dim()
	norm := 1.0 / float64(int(1)<<(dim-1))
	for lvl := m.MaxLevel() - 1; lvl >= 0; lvl-- {
		var err error
		anc.Level(lvl).ForEachInterval(func(outer cells.Outer, iv interval.Interval) {
			if err != nil {
				return
			}
			err = projectInterval(f, lvl, outer, iv, norm)
		})
		if err != nil {
			return fmt.Errorf("Project level %d: %w", lvl, err)
		}
	}

	return nil
}

func projectInterval(f *field.Field, lvl int, outer cells.Outer, iv interval.Interval, norm float64) error {
	dim := f.Dim()
	fine := interval.Interval{Start: 2 * iv.Start, End: 2 * iv.End, Step: 1}
	acc := make([]float64, iv.Size())
	for comp := 0; comp < f.Components(); comp++ {
		clear(acc)
		for _, co := range childOuters(outer, dim) {
			vals, err := f.Values(comp, lvl+1, fine, co...)
			if err != nil {
				return err
			}
			avg, err := Average(vals)
			if err != nil {
				return err
			}
			for k, v := range avg {
				acc[k] += v
			}
		}
		for k := range acc {
			acc[k] *= norm
		}
		if err := f.SetValues(comp, lvl, iv.WithStep(1), acc, outer[:dim-1]...); err != nil {
			return err
		}
	}

	return nil
}

// FillGhosts brings ghost and boundary cells of f up to date, coarsest level
// first: in-domain ghosts of level L are predicted from level L-1 with the
// three-point stencil along axis 0 (parent row on the other axes), then bc
// fills the boundary cells of level L. A nil bc means field.Neumann().
//
// Returns ErrNoCoarseData if level 0 holds ghosts, or field errors when a
// stencil cell is missing.
// Complexity: O(ghost and boundary cells · Components).
func FillGhosts(f *field.Field, bc field.BoundaryCondition) error {
	m := f.Mesh()
	ghosts := m.Get(mesh.Ghosts)
	if !ghosts.Level(0).Empty() {
		return fmt.Errorf("FillGhosts: %d ghosts at level 0: %w", ghosts.Level(0).NbCells(), ErrNoCoarseData)
	}
	for lvl := 0; lvl <= m.MaxLevel(); lvl++ {
		if lvl > 0 {
			var err error
			ghosts.Level(lvl).ForEachInterval(func(outer cells.Outer, iv interval.Interval) {
				if err != nil {
					return
				}
				err = predictGhosts(f, lvl, outer, iv)
			})
			if err != nil {
				return fmt.Errorf("FillGhosts level %d: %w", lvl, err)
			}
		}
		if err := f.ApplyBoundary(lvl, bc); err != nil {
			return fmt.Errorf("FillGhosts boundary %d: %w", lvl, err)
		}
	}

	return nil
}

// predictGhosts fills one ghost run of level lvl from level lvl-1.
func predictGhosts(f *field.Field, lvl int, outer cells.Outer, iv interval.Interval) error {
	dim := f.Dim()
	po := make([]int, dim-1)
	for k := range po {
		po[k] = outer[k] >> 1
	}
	pStart := iv.Start >> 1
	wide := interval.Interval{Start: pStart - 1, End: ((iv.End - 1) >> 1) + 2, Step: 1}
	vals := make([]float64, iv.Size())
	for comp := 0; comp < f.Components(); comp++ {
		coarse, err := f.Values(comp, lvl-1, wide, po...)
		if err != nil {
			return err
		}
		for k := range vals {
			x := iv.Start + k
			p := (x >> 1) - pStart + 1
			sign := 1.0
			if x&1 == 1 {
				sign = -1.0
			}
			vals[k] = coarse[p] - sign/8*(coarse[p+1]-coarse[p-1])
		}
		if err := f.SetValues(comp, lvl, iv.WithStep(1), vals, outer[:dim-1]...); err != nil {
			return err
		}
	}

	return nil
}

// Synchronize runs Project then FillGhosts, leaving every stored cell of f
// consistent with its leaves.
func Synchronize(f *field.Field, bc field.BoundaryCondition) error {
	if err := Project(f); err != nil {
		return err
	}

	return FillGhosts(f, bc)
}
