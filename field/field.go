// SPDX-License-Identifier: MIT

package field

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mrmesh/cells"
	"github.com/katalvlaran/mrmesh/interval"
	"github.com/katalvlaran/mrmesh/matrix"
	"github.com/katalvlaran/mrmesh/mesh"
)

// Sentinel errors for field access.
var (
	// ErrComponentRange indicates a component index outside the field.
	ErrComponentRange = errors.New("field: component out of range")

	// ErrCellNotFound indicates a cell absent from the storage layout.
	ErrCellNotFound = errors.New("field: cell not stored")

	// ErrLengthMismatch indicates values of the wrong length.
	ErrLengthMismatch = errors.New("field: length mismatch")
)

// Field is cell data laid out on mesh.AllCells.
type Field struct {
	name  string
	mesh  *mesh.Mesh
	comps int
	data  *matrix.Dense
}

// New allocates a zero field with the given number of components.
// Returns matrix.ErrInvalidDimensions when components < 1.
func New(name string, m *mesh.Mesh, components int) (*Field, error) {
	data, err := matrix.NewDense(m.All().NbCells(), components)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", name, err)
	}

	return &Field{name: name, mesh: m, comps: components, data: data}, nil
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Mesh returns the snapshot the field is laid out on.
func (f *Field) Mesh() *mesh.Mesh { return f.mesh }

// Dim returns the spatial dimension.
func (f *Field) Dim() int { return f.mesh.Dim() }

// Components returns the number of components.
func (f *Field) Components() int { return f.comps }

// MaxRefinementLevel returns the highest level of the underlying mesh.
func (f *Field) MaxRefinementLevel() int { return f.mesh.MaxRefinementLevel() }

// Data returns the backing storage, one row per cell of mesh.AllCells.
func (f *Field) Data() *matrix.Dense { return f.data }

// ExistsAt reports which cells visited by iv have storage at level.
func (f *Field) ExistsAt(level int, iv interval.Interval, outer ...int) ([]bool, error) {
	return f.mesh.ExistsAt(level, iv, outer...)
}

func (f *Field) checkComp(comp int) error {
	if comp < 0 || comp >= f.comps {
		return fmt.Errorf("field %q comp=%d of %d: %w", f.name, comp, f.comps, ErrComponentRange)
	}

	return nil
}

// rows resolves the storage rows of the cells visited by iv.
// A unit-stride interval inside one stored run is resolved with a single
// lookup.
func (f *Field) rows(level int, iv interval.Interval, outer []int) (first int, all []int, err error) {
	if level < 0 || level > f.mesh.MaxRefinementLevel() {
		return 0, nil, fmt.Errorf("field %q level=%d: %w", f.name, level, cells.ErrLevelOutOfRange)
	}
	var o cells.Outer
	copy(o[:], outer)
	lca := f.mesh.All().Level(level)
	if iv.Step <= 1 {
		lo, okLo := lca.IndexOf(o, iv.Start)
		hi, okHi := lca.IndexOf(o, iv.End-1)
		if okLo && okHi && hi-lo == iv.End-1-iv.Start {
			return lo, nil, nil
		}
	}
	coords := iv.Coords()
	all = make([]int, len(coords))
	for k, x := range coords {
		idx, ok := lca.IndexOf(o, x)
		if !ok {
			return 0, nil, fmt.Errorf("field %q level=%d x=%d outer=%v: %w", f.name, level, x, outer, ErrCellNotFound)
		}
		all[k] = idx
	}

	return 0, all, nil
}

// Values returns component comp on the cells visited by iv at level.
// Complexity: O(Len(iv)) plus one lookup per cell when the cells are not
// stored contiguously.
func (f *Field) Values(comp, level int, iv interval.Interval, outer ...int) ([]float64, error) {
	if err := f.checkComp(comp); err != nil {
		return nil, err
	}
	first, all, err := f.rows(level, iv, outer)
	if err != nil {
		return nil, err
	}
	if all == nil {
		return f.data.ColRange(comp, first, first+iv.Len())
	}
	out := make([]float64, len(all))
	for k, r := range all {
		out[k], _ = f.data.At(r, comp)
	}

	return out, nil
}

// SetValues writes component comp on the cells visited by iv at level.
func (f *Field) SetValues(comp, level int, iv interval.Interval, vals []float64, outer ...int) error {
	if err := f.checkComp(comp); err != nil {
		return err
	}
	if len(vals) != iv.Len() {
		return fmt.Errorf("field %q: %d values for %v: %w", f.name, len(vals), iv, ErrLengthMismatch)
	}
	first, all, err := f.rows(level, iv, outer)
	if err != nil {
		return err
	}
	if all == nil {
		return f.data.SetColRange(comp, first, vals)
	}
	for k, r := range all {
		_ = f.data.Set(r, comp, vals[k])
	}

	return nil
}

// Block returns every component on the cells visited by iv: one row per
// cell, one column per component.
func (f *Field) Block(level int, iv interval.Interval, outer ...int) (*matrix.Dense, error) {
	out, err := matrix.NewDense(iv.Len(), f.comps)
	if err != nil {
		return nil, fmt.Errorf("field %q block %v: %w", f.name, iv, err)
	}
	for comp := 0; comp < f.comps; comp++ {
		vals, err := f.Values(comp, level, iv, outer...)
		if err != nil {
			return nil, err
		}
		_ = out.SetColRange(comp, 0, vals)
	}

	return out, nil
}

// SetBlock writes a Block-shaped matrix back to the cells visited by iv.
func (f *Field) SetBlock(level int, iv interval.Interval, block *matrix.Dense, outer ...int) error {
	if block.Rows() != iv.Len() || block.Cols() != f.comps {
		return fmt.Errorf("field %q: %dx%d block for %v: %w", f.name, block.Rows(), block.Cols(), iv, ErrLengthMismatch)
	}
	for comp := 0; comp < f.comps; comp++ {
		col, _ := block.Col(comp)
		if err := f.SetValues(comp, level, iv, col, outer...); err != nil {
			return err
		}
	}

	return nil
}

// index resolves a cell by level and coordinate, ignoring c.Index, which may
// refer to another CellArray.
func (f *Field) index(c cells.Cell) (int, error) {
	idx, ok := f.mesh.IndexOf(c.Level, c.Coord)
	if !ok {
		return 0, fmt.Errorf("field %q %v: %w", f.name, c, ErrCellNotFound)
	}

	return idx, nil
}

// At returns component comp of one cell.
func (f *Field) At(comp int, c cells.Cell) (float64, error) {
	if err := f.checkComp(comp); err != nil {
		return 0, err
	}
	idx, err := f.index(c)
	if err != nil {
		return 0, err
	}

	return f.data.At(idx, comp)
}

// Set assigns component comp of one cell.
func (f *Field) Set(comp int, c cells.Cell, v float64) error {
	if err := f.checkComp(comp); err != nil {
		return err
	}
	idx, err := f.index(c)
	if err != nil {
		return err
	}

	return f.data.Set(idx, comp, v)
}

// Fill sets component comp to v on every stored cell.
func (f *Field) Fill(comp int, v float64) error {
	if err := f.checkComp(comp); err != nil {
		return err
	}
	vals := make([]float64, f.data.Rows())
	for i := range vals {
		vals[i] = v
	}

	return f.data.SetColRange(comp, 0, vals)
}

// Assign sets every component of each cell of set t from fn, which must
// return Components() values.
// Complexity: O(cells of t · (lookup + Components)).
func (f *Field) Assign(t mesh.MeshType, fn func(c cells.Cell) []float64) error {
	set := f.mesh.Get(t)
	if set == nil {
		return fmt.Errorf("field %q: mesh type %v: %w", f.name, t, ErrCellNotFound)
	}
	var err error
	set.ForEachCell(func(c cells.Cell) {
		if err != nil {
			return
		}
		vals := fn(c)
		if len(vals) != f.comps {
			err = fmt.Errorf("field %q %v: %d values: %w", f.name, c, len(vals), ErrLengthMismatch)
			return
		}
		var idx int
		if idx, err = f.index(c); err == nil {
			err = f.data.SetRow(idx, vals)
		}
	})

	return err
}

// ForEachCell calls fn for every leaf with a copy of its components.
func (f *Field) ForEachCell(fn func(c cells.Cell, vals []float64)) {
	f.mesh.ForEachCell(func(c cells.Cell) {
		idx, ok := f.mesh.IndexOf(c.Level, c.Coord)
		if !ok {
			return
		}
		c.Index = idx
		row, _ := f.data.Row(idx)
		fn(c, row)
	})
}

// Clone returns an independent copy on the same mesh.
func (f *Field) Clone() *Field {
	return &Field{name: f.name, mesh: f.mesh, comps: f.comps, data: f.data.Clone()}
}

// String implements fmt.Stringer.
func (f *Field) String() string {
	return fmt.Sprintf("field(%s, comps=%d, cells=%d)", f.name, f.comps, f.data.Rows())
}
