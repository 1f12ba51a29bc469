// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/mrmesh/cells"
	"github.com/katalvlaran/mrmesh/interval"
	"github.com/katalvlaran/mrmesh/setops"
)

// Mesh is an immutable multiresolution snapshot. See the package doc for the
// meaning of each cell set.
type Mesh struct {
	box        Box
	ghostWidth int
	sets       [nbMeshTypes]*cells.CellArray
	domain     []*cells.LevelCellArray
	exist      *existence
	logger     *slog.Logger
}

// NewUniform builds a mesh whose leaves all sit at level, inside a CellArray
// with room for maxLevel.
func NewUniform(box Box, level, maxLevel int, opts ...Option) (*Mesh, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	if level < 0 || level > maxLevel {
		return nil, fmt.Errorf("NewUniform level=%d maxLevel=%d: %w", level, maxLevel, cells.ErrLevelOutOfRange)
	}
	levels := make([]*cells.LevelCellArray, level+1)
	levels[level] = box.Cells(level)
	leaves, err := cells.NewCellArray(box.Dim, maxLevel, levels...)
	if err != nil {
		return nil, err
	}

	return New(leaves, box, opts...)
}

// New builds a mesh snapshot from a leaf partition of box.
//
// Stage 1 (Validate): options, dimensions, coordinate range.
// Stage 2 (Ancestors): parents of leaves and ancestors, finest level first.
// Stage 3 (Partition): leaves inside the box, disjoint across levels, covering it.
// Stage 4 (Ghosts): halo of every level split by the box, then the stencil
// closure toward coarser levels.
// Stage 5 (Finalize): AllCells storage layout and existence index.
func New(leaves *cells.CellArray, box Box, opts ...Option) (*Mesh, error) {
	o := gatherOptions(opts)
	if o.ghostWidth < 1 {
		return nil, fmt.Errorf("ghost width %d: %w", o.ghostWidth, ErrBadGhostWidth)
	}
	if err := box.Validate(); err != nil {
		return nil, err
	}
	if leaves.Dim() != box.Dim {
		return nil, fmt.Errorf("leaves dim %d, box dim %d: %w", leaves.Dim(), box.Dim, ErrDimMismatch)
	}
	top := leaves.MaxRefinementLevel()
	margin := int64(o.ghostWidth + 2)
	for k := 0; k < box.Dim; k++ {
		lo, hi := int64(box.Min[k])<<top-margin, int64(box.Max[k])<<top+margin
		if lo < math.MinInt32 || hi > math.MaxInt32 {
			return nil, fmt.Errorf("box axis %d at level %d: %w", k, top, ErrCoordinateRange)
		}
	}

	m := &Mesh{box: box, ghostWidth: o.ghostWidth, logger: o.logger}
	// levels above the finest leaf hold no cell of any set
	maxLeaf := leaves.MaxLevel()
	m.domain = make([]*cells.LevelCellArray, maxLeaf+1)
	for lvl := range m.domain {
		m.domain[lvl] = box.Cells(lvl)
	}

	anc := make([]*cells.LevelCellArray, top+1)
	anc[top] = cells.Empty(top, box.Dim)
	for lvl := top - 1; lvl >= 0; lvl-- {
		var err error
		anc[lvl], err = setops.Union(leaves.Level(lvl+1), anc[lvl+1]).On(lvl).Collect()
		if err != nil {
			return nil, err
		}
	}

	if err := m.checkPartition(leaves, anc); err != nil {
		return nil, err
	}

	core := make([]*cells.LevelCellArray, top+1)
	ghosts := make([]*cells.LevelCellArray, top+1)
	boundary := make([]*cells.LevelCellArray, top+1)
	for lvl := 0; lvl <= top; lvl++ {
		if lvl > maxLeaf {
			core[lvl], ghosts[lvl], boundary[lvl] = anc[lvl], anc[lvl], anc[lvl]
			continue
		}
		var err error
		if core[lvl], err = setops.Union(leaves.Level(lvl), anc[lvl]).Collect(); err != nil {
			return nil, err
		}
		halo, err := m.halo(core[lvl])
		if err != nil {
			return nil, err
		}
		if ghosts[lvl], err = setops.Intersection(halo, m.domain[lvl]).Collect(); err != nil {
			return nil, err
		}
		if boundary[lvl], err = setops.Difference(halo, m.domain[lvl]).Collect(); err != nil {
			return nil, err
		}
	}
	if err := m.closeStencil(core, ghosts, boundary); err != nil {
		return nil, err
	}

	all := make([]*cells.LevelCellArray, top+1)
	for lvl := 0; lvl <= top; lvl++ {
		var err error
		if all[lvl], err = setops.Union(core[lvl], ghosts[lvl], boundary[lvl]).Collect(); err != nil {
			return nil, err
		}
	}

	var err error
	for t, levels := range map[MeshType][]*cells.LevelCellArray{
		Ancestors: anc, Ghosts: ghosts, Boundary: boundary, AllCells: all,
	} {
		if m.sets[t], err = cells.NewCellArray(box.Dim, top, levels...); err != nil {
			return nil, err
		}
	}
	m.sets[Cells] = leaves
	m.exist = newExistence(m.sets[AllCells])

	m.logger.Debug("mesh built",
		"dim", box.Dim,
		"levels", fmt.Sprintf("%d..%d", leaves.MinLevel(), leaves.MaxLevel()),
		"leaves", leaves.NbCells(),
		"ancestors", m.sets[Ancestors].NbCells(),
		"ghosts", m.sets[Ghosts].NbCells(),
		"boundary", m.sets[Boundary].NbCells(),
		"all_cells", m.sets[AllCells].NbCells(),
	)

	return m, nil
}

// checkPartition verifies that leaves tile the domain exactly once.
func (m *Mesh) checkPartition(leaves *cells.CellArray, anc []*cells.LevelCellArray) error {
	for lvl := range m.domain {
		if !setops.Difference(leaves.Level(lvl), m.domain[lvl]).Empty() {
			return fmt.Errorf("level %d: %w", lvl, ErrOutsideBox)
		}
		// a leaf that also has finer leaves below it is covered twice
		if !setops.Intersection(leaves.Level(lvl), anc[lvl]).Empty() {
			return fmt.Errorf("level %d: %w", lvl, ErrOverlap)
		}
	}
	// disjoint leaves inside the box cover it iff their volumes add up
	top := len(m.domain) - 1
	volume := 0
	for lvl := 0; lvl <= top; lvl++ {
		volume += leaves.Level(lvl).NbCells() << (m.box.Dim * (top - lvl))
	}
	if volume != m.domain[top].NbCells() {
		return fmt.Errorf("%d of %d cells at level %d: %w", volume, m.domain[top].NbCells(), top, ErrNotCovering)
	}

	return nil
}

// halo returns the cells within ghostWidth of set along each axis, minus set.
func (m *Mesh) halo(set *cells.LevelCellArray) (*cells.LevelCellArray, error) {
	ops := make([]setops.Operand, 0, 2*m.ghostWidth*m.box.Dim)
	for axis := 0; axis < m.box.Dim; axis++ {
		for w := 1; w <= m.ghostWidth; w++ {
			var minus, plus cells.Coord
			minus[axis], plus[axis] = -w, w
			ops = append(ops, setops.Translate(set, minus), setops.Translate(set, plus))
		}
	}

	return setops.Difference(setops.Union(ops...), set).Collect()
}

// closeStencil adds, for every in-domain ghost at level L, the parents
// p-1, p, p+1 (along axis 0) it is predicted from at level L-1, unless they
// are leaves or ancestors there. New coarse ghosts are closed in turn.
func (m *Mesh) closeStencil(core, ghosts, boundary []*cells.LevelCellArray) error {
	for lvl := len(core) - 1; lvl >= 1; lvl-- {
		if ghosts[lvl].Empty() {
			continue
		}
		parents, err := setops.Union(ghosts[lvl]).On(lvl - 1).Collect()
		if err != nil {
			return err
		}
		stencil := setops.Union(
			setops.Translate(parents, cells.Coord{-1}),
			parents,
			setops.Translate(parents, cells.Coord{1}),
		)
		need, err := setops.Difference(stencil, core[lvl-1]).Collect()
		if err != nil {
			return err
		}
		inside := setops.Intersection(need, m.domain[lvl-1])
		if ghosts[lvl-1], err = setops.Union(ghosts[lvl-1], inside).Collect(); err != nil {
			return err
		}
		outside := setops.Difference(need, m.domain[lvl-1])
		if boundary[lvl-1], err = setops.Union(boundary[lvl-1], outside).Collect(); err != nil {
			return err
		}
	}

	return nil
}

// Dim returns the spatial dimension.
func (m *Mesh) Dim() int { return m.box.Dim }

// Box returns the domain.
func (m *Mesh) Box() Box { return m.box }

// GhostWidth returns the halo width.
func (m *Mesh) GhostWidth() int { return m.ghostWidth }

// MaxRefinementLevel returns the highest level slot of the snapshot.
func (m *Mesh) MaxRefinementLevel() int { return m.sets[Cells].MaxRefinementLevel() }

// MaxLevel returns the finest level holding leaves.
func (m *Mesh) MaxLevel() int { return m.sets[Cells].MaxLevel() }

// MinLevel returns the coarsest level holding leaves.
func (m *Mesh) MinLevel() int { return m.sets[Cells].MinLevel() }

// NbCells returns the number of leaves.
func (m *Mesh) NbCells() int { return m.sets[Cells].NbCells() }

// Get returns one of the cell sets.
func (m *Mesh) Get(t MeshType) *cells.CellArray {
	if t < 0 || t >= nbMeshTypes {
		return nil
	}

	return m.sets[t]
}

// Leaves returns the leaf partition.
func (m *Mesh) Leaves() *cells.CellArray { return m.sets[Cells] }

// All returns the cells and ghosts, the storage layout of fields.
func (m *Mesh) All() *cells.CellArray { return m.sets[AllCells] }

// Domain returns the box cells at level, or nil outside the level range.
func (m *Mesh) Domain(level int) *cells.LevelCellArray {
	switch {
	case level < 0 || level > m.MaxRefinementLevel():
		return nil
	case level < len(m.domain):
		return m.domain[level]
	default:
		return m.box.Cells(level)
	}
}

// ForEachCell visits every leaf.
func (m *Mesh) ForEachCell(fn func(cells.Cell)) { m.sets[Cells].ForEachCell(fn) }

// outerOf builds a row key from trailing coordinates.
func outerOf(outer []int) cells.Outer {
	var o cells.Outer
	copy(o[:], outer)

	return o
}

// ExistsAt reports, for every coordinate visited by iv at level, whether the
// cell belongs to AllCells. outer holds the coordinates of axes 1..dim-1 and
// may be omitted in one dimension.
// Returns cells.ErrLevelOutOfRange for a level outside the snapshot.
// Complexity: O(log R + Len(iv)).
func (m *Mesh) ExistsAt(level int, iv interval.Interval, outer ...int) ([]bool, error) {
	if level < 0 || level > m.MaxRefinementLevel() {
		return nil, fmt.Errorf("ExistsAt(%d, %v): %w", level, iv, cells.ErrLevelOutOfRange)
	}

	return m.exist.mask(level, outerOf(outer), iv), nil
}

// Exists reports whether the cell at coord belongs to AllCells at level.
func (m *Mesh) Exists(level int, coord cells.Coord) bool {
	if level < 0 || level > m.MaxRefinementLevel() {
		return false
	}

	return m.exist.contains(level, coord.Outer(), coord[0])
}

// IndexOf returns the storage offset of a cell of AllCells.
func (m *Mesh) IndexOf(level int, coord cells.Coord) (int, bool) {
	if level < 0 || level > m.MaxRefinementLevel() {
		return 0, false
	}

	return m.sets[AllCells].Level(level).IndexOf(coord.Outer(), coord[0])
}

// CellWidth returns the cell width at level in box units.
func (m *Mesh) CellWidth(level int) float64 {
	return math.Ldexp(1, -level)
}

// Center returns the center of a cell in box units; unused axes are zero.
func (m *Mesh) Center(c cells.Cell) [cells.MaxDim]float64 {
	var out [cells.MaxDim]float64
	w := m.CellWidth(c.Level)
	for k := 0; k < m.box.Dim; k++ {
		out[k] = (float64(c.Coord[k]) + 0.5) * w
	}

	return out
}

// String summarizes the snapshot.
func (m *Mesh) String() string {
	return fmt.Sprintf("mesh(dim=%d, levels=%d..%d, leaves=%d, all=%d)",
		m.box.Dim, m.MinLevel(), m.MaxLevel(), m.NbCells(), m.sets[AllCells].NbCells())
}
