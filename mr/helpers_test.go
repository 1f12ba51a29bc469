package mr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mrmesh/cells"
	"github.com/katalvlaran/mrmesh/field"
	"github.com/katalvlaran/mrmesh/interval"
	"github.com/katalvlaran/mrmesh/mesh"
	"github.com/katalvlaran/mrmesh/mr"
)

// tol is the floating-point tolerance of exact-stencil checks.
const tol = 1e-12

// build1D returns a mesh over box [lo, hi) from (level, start, end) leaf runs.
func build1D(t testing.TB, lo, hi, maxLevel, ghostWidth int, runs ...[3]int) *mesh.Mesh {
	t.Helper()
	cl, err := cells.NewCellList(1, maxLevel)
	require.NoError(t, err)
	for _, r := range runs {
		require.NoError(t, cl.Add(r[0], cells.Outer{}, r[1], r[2]))
	}
	box, err := mesh.NewBox([]int{lo}, []int{hi})
	require.NoError(t, err)
	m, err := mesh.New(cl.Build(), box, mesh.WithGhostWidth(ghostWidth))
	require.NoError(t, err)

	return m
}

// center returns the center of cell x at level in box units.
func center(level, x int) float64 {
	return (float64(x) + 0.5) / float64(int(1)<<level)
}

// linear is u(x) = x: its cell average is the cell center.
func linear(c cells.Cell) []float64 {
	return []float64{center(c.Level, c.Coord[0])}
}

// quadAverage is the average of x² over cell x at level.
func quadAverage(level, x int) float64 {
	h := 1 / float64(int(1)<<level)
	a, b := float64(x)*h, float64(x+1)*h

	return (b*b*b - a*a*a) / (3 * h)
}

// linearField returns a one-component field holding u(x) = x on every
// stored cell, boundary included.
func linearField(t testing.TB, m *mesh.Mesh) *field.Field {
	t.Helper()
	f, err := field.New("u", m, 1)
	require.NoError(t, err)
	require.NoError(t, f.Assign(mesh.AllCells, linear))

	return f
}

// requireClose asserts element-wise closeness within tol.
func requireClose(t *testing.T, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for k := range want {
		require.InDelta(t, want[k], got[k], tol, "k=%d", k)
	}
}

// centers returns the centers of the cells visited by iv at level.
func centers(level int, iv interval.Interval) []float64 {
	var out []float64
	for _, x := range iv.Coords() {
		out = append(out, center(level, x))
	}

	return out
}

// countingSource counts data accesses of the wrapped Source.
type countingSource struct {
	mr.Source
	exists int
	values int
}

func (c *countingSource) ExistsAt(level int, iv interval.Interval, outer ...int) ([]bool, error) {
	c.exists++

	return c.Source.ExistsAt(level, iv, outer...)
}

func (c *countingSource) Values(comp, level int, iv interval.Interval, outer ...int) ([]float64, error) {
	c.values++

	return c.Source.Values(comp, level, iv, outer...)
}

// hideLevel reports every cell of one level as missing.
type hideLevel struct {
	mr.Source
	level int
}

func (h hideLevel) ExistsAt(level int, iv interval.Interval, outer ...int) ([]bool, error) {
	if level == h.level {
		return make([]bool, iv.Len()), nil
	}

	return h.Source.ExistsAt(level, iv, outer...)
}

// exactBC fills boundary cells with the exact averages of u(x) = x.
type exactBC struct{}

func (exactBC) Apply(f *field.Field, level int) error {
	var err error
	ferr := f.Mesh().Get(mesh.Boundary).ForEachCellOnLevel(level, func(c cells.Cell) {
		if err == nil {
			err = f.Set(0, c, linear(c)[0])
		}
	})
	if ferr != nil {
		return ferr
	}

	return err
}

// maxError returns the largest |stored - u| over every stored cell.
func maxError(t *testing.T, f *field.Field, u func(cells.Cell) float64) float64 {
	t.Helper()
	worst := 0.0
	f.Mesh().All().ForEachCell(func(c cells.Cell) {
		v, err := f.At(0, c)
		require.NoError(t, err)
		worst = math.Max(worst, math.Abs(v-u(c)))
	})

	return worst
}
