// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/mrmesh/cells"
	"github.com/katalvlaran/mrmesh/config"
	"github.com/katalvlaran/mrmesh/field"
	"github.com/katalvlaran/mrmesh/interval"
	"github.com/katalvlaran/mrmesh/mesh"
	"github.com/katalvlaran/mrmesh/mr"
)

// exact is the hat solution of inviscid Burgers at time t < 1: the left
// ramp widens, the right one steepens towards the shock.
func exact(x, t float64) float64 {
	switch {
	case x >= -1 && x < t:
		return (1 + x) / (1 + t)
	case x >= t && x < 1:
		return (1 - x) / (1 - t)
	default:
		return 0
	}
}

// equilibrium splits u into the two D1Q2 populations (unit lattice speed,
// flux u²/2); they sum back to u.
func equilibrium(u float64) []float64 {
	v := u * u / 2
	return []float64{(u + v) / 2, (u - v) / 2}
}

// nearRegion reports whether cell x of level lies within two of its own
// widths of [lo, hi). The two-cell pad keeps neighbouring leaves within one
// level of each other.
func nearRegion(level, x int, lo, hi float64) bool {
	w := math.Ldexp(1, -level)
	a, b := float64(x)*w, float64(x+1)*w
	pad := 2 * w

	return b+pad > lo && a-pad < hi
}

// buildMesh returns the graded 1D mesh of mc: min_level leaves everywhere,
// split down to max_level around the refined region.
func buildMesh(mc config.MeshConfig, logger *slog.Logger) (*mesh.Mesh, error) {
	box, err := mesh.NewBox([]int{mc.BoxMin}, []int{mc.BoxMax})
	if err != nil {
		return nil, err
	}
	cl, err := cells.NewCellList(1, mc.MaxLevel)
	if err != nil {
		return nil, err
	}

	var visit func(level, x int) error
	visit = func(level, x int) error {
		if level < mc.MaxLevel && nearRegion(level, x, mc.RefineMin, mc.RefineMax) {
			if err := visit(level+1, 2*x); err != nil {
				return err
			}
			return visit(level+1, 2*x+1)
		}
		return cl.AddCell(level, cells.Coord{x})
	}
	for x := mc.BoxMin << mc.MinLevel; x < mc.BoxMax<<mc.MinLevel; x++ {
		if err := visit(mc.MinLevel, x); err != nil {
			return nil, fmt.Errorf("buildMesh: %w", err)
		}
	}

	return mesh.New(cl.Build(), box, mesh.WithGhostWidth(mc.GhostWidth), mesh.WithLogger(logger))
}

// initField samples the equilibrium of exact(·, t) at every leaf center.
func initField(m *mesh.Mesh, t float64) (*field.Field, error) {
	f, err := field.New("f", m, 2)
	if err != nil {
		return nil, err
	}
	err = f.Assign(mesh.Cells, func(c cells.Cell) []float64 {
		return equilibrium(exact(m.Center(c)[0], t))
	})
	if err != nil {
		return nil, err
	}

	return f, nil
}

// levelError is the reconstruction error contributed by the leaves of one
// level.
type levelError struct {
	Level  int
	Leaves int
	L1     float64
}

// reconstructError predicts every leaf down to the finest level and sums
// |f0+f1 - u| · dx against the exact solution sampled at fine centers.
func reconstructError(f *field.Field, p *mr.Predictor, t float64) ([]levelError, float64, error) {
	m := f.Mesh()
	maxLevel := m.MaxRefinementLevel()
	dx := m.CellWidth(maxLevel)

	var (
		out   []levelError
		total float64
		err   error
	)
	for lvl := m.MinLevel(); lvl <= m.MaxLevel(); lvl++ {
		leaves := m.Leaves().Level(lvl)
		if leaves.Empty() {
			continue
		}
		row := levelError{Level: lvl, Leaves: leaves.NbCells()}
		j := maxLevel - lvl
		leaves.ForEachInterval(func(_ cells.Outer, iv interval.Interval) {
			if err != nil {
				return
			}
			fine := interval.Must(iv.Start<<j, iv.End<<j)
			block, perr := p.PredictAll(lvl, j, fine)
			if perr != nil {
				err = fmt.Errorf("level %d %v: %w", lvl, iv, perr)
				return
			}
			for k := 0; k < block.Rows(); k++ {
				vals, _ := block.Row(k)
				x := (float64(fine.Start+k) + 0.5) * dx
				row.L1 += math.Abs(vals[0]+vals[1]-exact(x, t)) * dx
			}
		})
		if err != nil {
			return nil, 0, err
		}
		total += row.L1
		out = append(out, row)
	}

	return out, total, nil
}
