// Package field_test contains unit tests for field storage and boundary conditions.
package field_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mrmesh/cells"
	"github.com/katalvlaran/mrmesh/field"
	"github.com/katalvlaran/mrmesh/interval"
	"github.com/katalvlaran/mrmesh/matrix"
	"github.com/katalvlaran/mrmesh/mesh"
)

// coarsenedMesh has level-3 leaves [0,8) and level-2 leaves [4,8) on box [0,2).
func coarsenedMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	cl, err := cells.NewCellList(1, 3)
	require.NoError(t, err)
	require.NoError(t, cl.Add(3, cells.Outer{}, 0, 8))
	require.NoError(t, cl.Add(2, cells.Outer{}, 4, 8))
	box, err := mesh.NewBox([]int{0}, []int{2})
	require.NoError(t, err)
	m, err := mesh.New(cl.Build(), box)
	require.NoError(t, err)

	return m
}

// TestField_ValuesRoundTrip writes and reads contiguous and strided runs.
func TestField_ValuesRoundTrip(t *testing.T) {
	f, err := field.New("u", coarsenedMesh(t), 2)
	require.NoError(t, err)
	require.Equal(t, 2, f.Components())
	require.Equal(t, f.Mesh().All().NbCells(), f.Data().Rows())

	iv := interval.Must(0, 8)
	require.NoError(t, f.SetValues(1, 3, iv, []float64{0, 1, 2, 3, 4, 5, 6, 7}))
	got, err := f.Values(1, 3, iv)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2, 3, 4, 5, 6, 7}, got)

	got, err = f.Values(1, 3, interval.Must(1, 8).WithStep(3))
	require.NoError(t, err)
	require.Equal(t, []float64{1, 4, 7}, got)

	zero, err := f.Values(0, 3, iv)
	require.NoError(t, err)
	require.Equal(t, make([]float64, 8), zero)

	// level 1 stores [-1,5) as one run, halo included
	require.NoError(t, f.SetValues(0, 1, interval.Must(-1, 5), []float64{9, 8, 7, 6, 5, 4}))
	got, err = f.Values(0, 1, interval.Must(-1, 5).WithStep(2))
	require.NoError(t, err)
	require.Equal(t, []float64{9, 7, 5}, got)
}

// TestField_AccessErrors covers invalid components, missing cells and bad lengths.
func TestField_AccessErrors(t *testing.T) {
	_, err := field.New("bad", coarsenedMesh(t), 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	f, err := field.New("u", coarsenedMesh(t), 1)
	require.NoError(t, err)

	_, err = f.Values(1, 3, interval.Must(0, 2))
	require.ErrorIs(t, err, field.ErrComponentRange)
	_, err = f.Values(0, 3, interval.Must(8, 10))
	require.ErrorIs(t, err, field.ErrCellNotFound)
	_, err = f.Values(0, 4, interval.Must(0, 1))
	require.ErrorIs(t, err, cells.ErrLevelOutOfRange)
	require.ErrorIs(t, f.SetValues(0, 3, interval.Must(0, 2), []float64{1}), field.ErrLengthMismatch)

	_, err = f.At(0, cells.Cell{Level: 0, Dim: 1, Coord: cells.Coord{7}})
	require.ErrorIs(t, err, field.ErrCellNotFound)
	require.ErrorIs(t, field.Dirichlet(1, 2).Apply(f, 3), field.ErrLengthMismatch)
}

// TestField_BlockAndCells covers Block, SetBlock, Assign and ForEachCell.
func TestField_BlockAndCells(t *testing.T) {
	m := coarsenedMesh(t)
	f, err := field.New("rho", m, 2)
	require.NoError(t, err)

	require.NoError(t, f.Assign(mesh.Cells, func(c cells.Cell) []float64 {
		return []float64{float64(c.Level), float64(c.Coord[0])}
	}))
	n := 0
	f.ForEachCell(func(c cells.Cell, vals []float64) {
		require.Len(t, vals, 2)
		require.Equal(t, float64(c.Level), vals[0])
		n++
	})
	require.Equal(t, m.NbCells(), n)

	blk, err := f.Block(2, interval.Must(4, 6))
	require.NoError(t, err)
	require.Equal(t, "[2, 4]\n[2, 5]\n", blk.String())

	require.NoError(t, f.SetBlock(3, interval.Must(0, 2), blk.Scale(10)))
	v, err := f.At(1, cells.Cell{Level: 3, Dim: 1, Coord: cells.Coord{1}})
	require.NoError(t, err)
	require.Equal(t, 50.0, v)

	wrong, err := matrix.NewDense(3, 2)
	require.NoError(t, err)
	require.ErrorIs(t, f.SetBlock(3, interval.Must(0, 2), wrong), field.ErrLengthMismatch)
}

// TestApplyBoundary_Conditions checks Neumann copies and Dirichlet values.
func TestApplyBoundary_Conditions(t *testing.T) {
	f, err := field.New("u", coarsenedMesh(t), 1)
	require.NoError(t, err)
	require.NoError(t, f.SetValues(0, 3, interval.Must(0, 8), []float64{1, 2, 3, 4, 5, 6, 7, 8}))
	require.NoError(t, f.SetValues(0, 2, interval.Must(0, 8), []float64{1, 2, 3, 4, 5, 6, 7, 8}))

	require.NoError(t, f.ApplyBoundary(3, nil))
	got, err := f.Values(0, 3, interval.Must(-1, 0))
	require.NoError(t, err)
	require.Equal(t, []float64{1}, got)

	require.NoError(t, f.ApplyBoundary(2, field.Neumann()))
	got, err = f.Values(0, 2, interval.Must(-1, 9))
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 2, 3, 4, 5, 6, 7, 8, 8}, got)

	require.NoError(t, f.ApplyBoundary(1, field.Dirichlet(-2)))
	got, err = f.Values(0, 1, interval.Must(-1, 5).WithStep(5))
	require.NoError(t, err)
	require.Equal(t, []float64{-2, -2}, got)

	require.NoError(t, f.Fill(0, 3))
	c := f.Clone()
	require.NoError(t, f.Fill(0, 0))
	v, err := c.At(0, cells.Cell{Level: 0, Dim: 1, Coord: cells.Coord{1}})
	require.NoError(t, err)
	require.Equal(t, 3.0, v)
}
