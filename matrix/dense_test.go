// Package matrix_test contains unit tests for the Dense matrix.
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mrmesh/matrix"
)

// TestNewDense_InvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDense_InvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestDense_AtSetOutOfBounds ensures At() and Set() return ErrIndexOutOfBounds on invalid access.
func TestDense_AtSetOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
	require.ErrorIs(t, m.Set(2, 0, 1.23), matrix.ErrIndexOutOfBounds)
	require.ErrorIs(t, m.Set(0, -1, 4.56), matrix.ErrIndexOutOfBounds)
}

// TestDense_RowsAndColumns validates row and column copies and range writes.
func TestDense_RowsAndColumns(t *testing.T) {
	m, err := matrix.NewDense(3, 2)
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 2, m.Cols())

	require.NoError(t, m.SetRow(1, []float64{1, 2}))
	require.ErrorIs(t, m.SetRow(1, []float64{1}), matrix.ErrDimensionMismatch)
	require.NoError(t, m.SetColRange(1, 1, []float64{5, 6}))

	row, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 5}, row)
	row[0] = 99 // copy, not a view
	v, err := m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	col, err := m.Col(1)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 5, 6}, col)
	part, err := m.ColRange(1, 1, 3)
	require.NoError(t, err)
	require.Equal(t, []float64{5, 6}, part)

	_, err = m.ColRange(2, 0, 1)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
	require.ErrorIs(t, m.SetColRange(0, 2, []float64{1, 2}), matrix.ErrIndexOutOfBounds)
}

// TestDense_Elementwise covers Add, Sub, Scale, Fill and Clone.
func TestDense_Elementwise(t *testing.T) {
	a, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	a.Fill(2)
	b := a.Scale(-1.5)
	require.Equal(t, 3.0, b.MaxAbs())

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, "[-1, -1]\n[-1, -1]\n", sum.String())

	diff, err := a.Sub(a.Clone())
	require.NoError(t, err)
	require.Zero(t, diff.MaxAbs())

	c, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = a.Add(c)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
