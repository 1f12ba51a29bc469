// SPDX-License-Identifier: MIT

package field

import (
	"fmt"

	"github.com/katalvlaran/mrmesh/cells"
	"github.com/katalvlaran/mrmesh/mesh"
)

// BoundaryCondition fills the boundary cells of one level.
type BoundaryCondition interface {
	Apply(f *Field, level int) error
}

type dirichlet struct{ values []float64 }

// Dirichlet returns a condition that sets boundary cells to fixed values,
// one per component. A single value applies to every component.
func Dirichlet(values ...float64) BoundaryCondition {
	return dirichlet{values: append([]float64(nil), values...)}
}

// Apply implements BoundaryCondition.
func (d dirichlet) Apply(f *Field, level int) error {
	row := d.values
	if len(row) == 1 && f.comps > 1 {
		row = make([]float64, f.comps)
		for i := range row {
			row[i] = d.values[0]
		}
	}
	if len(row) != f.comps {
		return fmt.Errorf("dirichlet: %d values for %d components: %w", len(d.values), f.comps, ErrLengthMismatch)
	}

	return f.forEachBoundary(level, func(c cells.Cell, idx int) error {
		return f.data.SetRow(idx, row)
	})
}

type neumann struct{}

// Neumann returns a zero-gradient condition: every boundary cell copies the
// nearest domain cell of the same level.
func Neumann() BoundaryCondition { return neumann{} }

// Apply implements BoundaryCondition.
func (neumann) Apply(f *Field, level int) error {
	box := f.mesh.Box()

	return f.forEachBoundary(level, func(c cells.Cell, idx int) error {
		in := c
		for k := 0; k < box.Dim; k++ {
			lo, hi := box.Min[k]<<level, box.Max[k]<<level-1
			in.Coord[k] = min(max(c.Coord[k], lo), hi)
		}
		src, err := f.index(in)
		if err != nil {
			return err
		}
		row, _ := f.data.Row(src)

		return f.data.SetRow(idx, row)
	})
}

// forEachBoundary visits the boundary cells of level with their storage row.
func (f *Field) forEachBoundary(level int, fn func(c cells.Cell, idx int) error) error {
	var err error
	visit := func(c cells.Cell) {
		if err != nil {
			return
		}
		var idx int
		if idx, err = f.index(c); err == nil {
			err = fn(c, idx)
		}
	}
	if ferr := f.mesh.Get(mesh.Boundary).ForEachCellOnLevel(level, visit); ferr != nil {
		return fmt.Errorf("field %q: %w", f.name, ferr)
	}

	return err
}

// ApplyBoundary fills the boundary cells of level with bc; nil means Neumann.
func (f *Field) ApplyBoundary(level int, bc BoundaryCondition) error {
	if bc == nil {
		bc = Neumann()
	}

	return bc.Apply(f, level)
}
