package mr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mrmesh/cells"
	"github.com/katalvlaran/mrmesh/field"
	"github.com/katalvlaran/mrmesh/interval"
	"github.com/katalvlaran/mrmesh/mesh"
	"github.com/katalvlaran/mrmesh/mr"
)

// TestAverage_Pairs pairs children.
func TestAverage_Pairs(t *testing.T) {
	got, err := mr.Average([]float64{1, 3, 5, 9})
	require.NoError(t, err)
	require.Equal(t, []float64{2, 7}, got)

	_, err = mr.Average([]float64{1, 2, 3})
	require.ErrorIs(t, err, mr.ErrOddLength)
}

// TestProject_ConstantRoundTrip recovers a constant exactly.
func TestProject_ConstantRoundTrip(t *testing.T) {
	m := build1D(t, 0, 2, 3, 1, [3]int{3, 0, 16})
	f, err := field.New("u", m, 1)
	require.NoError(t, err)
	require.NoError(t, f.Assign(mesh.Cells, func(cells.Cell) []float64 { return []float64{1.5} }))
	require.NoError(t, mr.Synchronize(f, field.Neumann()))

	coarse, err := f.Values(0, 2, interval.Must(-1, 9))
	require.NoError(t, err)
	for _, v := range coarse {
		require.Equal(t, 1.5, v)
	}

	p := mr.NewPredictor(hideLevel{Source: f, level: 3})
	got, err := p.Predict(0, 2, 1, interval.Must(0, 16))
	require.NoError(t, err)
	for _, v := range got {
		require.Equal(t, 1.5, v)
	}
}

// TestProject_QuadraticRoundTrip recovers quadratic cell averages, which
// the three-point stencil reproduces exactly.
func TestProject_QuadraticRoundTrip(t *testing.T) {
	m := build1D(t, 0, 2, 3, 1, [3]int{3, 0, 16})
	f, err := field.New("u", m, 1)
	require.NoError(t, err)
	quad := func(c cells.Cell) []float64 { return []float64{quadAverage(c.Level, c.Coord[0])} }
	require.NoError(t, f.Assign(mesh.Cells, quad))
	require.NoError(t, mr.Project(f))
	require.NoError(t, f.Assign(mesh.Boundary, quad))

	for lvl := 0; lvl < 3; lvl++ {
		err := m.Get(mesh.Ancestors).ForEachCellOnLevel(lvl, func(c cells.Cell) {
			v, err := f.At(0, c)
			require.NoError(t, err)
			require.InDelta(t, quad(c)[0], v, tol)
		})
		require.NoError(t, err)
	}

	p := mr.NewPredictor(hideLevel{Source: f, level: 3})
	iv := interval.Must(0, 16)
	got, err := p.Predict(0, 2, 1, iv)
	require.NoError(t, err)
	want := make([]float64, 0, 16)
	for _, x := range iv.Coords() {
		want = append(want, quadAverage(3, x))
	}
	requireClose(t, want, got)
}

// TestSynchronize_NonGraded fills a two-level jump: ghosts come out exact
// for a linear field with exact boundary values.
func TestSynchronize_NonGraded(t *testing.T) {
	m := build1D(t, 0, 1, 3, 1, [3]int{3, 0, 4}, [3]int{1, 1, 2})
	f, err := field.New("u", m, 1)
	require.NoError(t, err)
	require.NoError(t, f.Assign(mesh.Cells, linear))
	require.NoError(t, mr.Synchronize(f, exactBC{}))

	worst := maxError(t, f, func(c cells.Cell) float64 { return linear(c)[0] })
	require.Less(t, worst, tol)

	// cell 5 of level 3 is predicted from the level-2 ghosts
	p := mr.NewPredictor(f)
	iv := interval.Must(4, 6)
	got, err := p.Predict(0, 1, 2, iv)
	require.NoError(t, err)
	requireClose(t, centers(3, iv), got)
}

// TestSynchronize_NeumannFlat keeps a constant field constant everywhere.
func TestSynchronize_NeumannFlat(t *testing.T) {
	m := build1D(t, 0, 1, 3, 1, [3]int{3, 0, 4}, [3]int{1, 1, 2})
	f, err := field.New("u", m, 1)
	require.NoError(t, err)
	require.NoError(t, f.Assign(mesh.Cells, func(cells.Cell) []float64 { return []float64{-0.25} }))
	require.NoError(t, mr.Synchronize(f, nil))
	require.Zero(t, maxError(t, f, func(cells.Cell) float64 { return -0.25 }))
}

// TestProject_TwoDimensional averages four children per ancestor.
func TestProject_TwoDimensional(t *testing.T) {
	box, err := mesh.NewBox([]int{0, 0}, []int{1, 1})
	require.NoError(t, err)
	m, err := mesh.NewUniform(box, 2, 2)
	require.NoError(t, err)
	f, err := field.New("u", m, 1)
	require.NoError(t, err)
	plane := func(c cells.Cell) []float64 {
		ctr := m.Center(c)
		return []float64{ctr[0] + 2*ctr[1]}
	}
	require.NoError(t, f.Assign(mesh.Cells, plane))
	require.NoError(t, mr.Synchronize(f, field.Dirichlet(0)))

	v, err := f.At(0, cells.Cell{Level: 0, Dim: 2})
	require.NoError(t, err)
	require.InDelta(t, 1.5, v, tol)
	err = m.Get(mesh.Ancestors).ForEachCellOnLevel(1, func(c cells.Cell) {
		got, err := f.At(0, c)
		require.NoError(t, err)
		require.InDelta(t, plane(c)[0], got, tol)
	})
	require.NoError(t, err)

	edge, err := f.At(0, cells.Cell{Level: 2, Dim: 2, Coord: cells.Coord{-1, 2}})
	require.NoError(t, err)
	require.Zero(t, edge)
}
