// SPDX-License-Identifier: MIT

package cells

import (
	"errors"
	"fmt"
)

// Sentinel errors for cell containers.
var (
	// ErrBadDim indicates a dimension outside 1..MaxDim.
	ErrBadDim = errors.New("cells: dimension must be in 1..3")

	// ErrLevelOutOfRange indicates a level outside the array bounds.
	ErrLevelOutOfRange = errors.New("cells: level out of range")

	// ErrLevelMismatch indicates a LevelCellArray placed at the wrong level
	// or with the wrong dimension.
	ErrLevelMismatch = errors.New("cells: level or dimension mismatch")
)

const (
	// MaxDim is the largest supported spatial dimension.
	MaxDim = 3

	// MaxRefinementLevel bounds every CellArray. Coordinates at this level
	// still fit comfortably in 32 bits for boxes of moderate size.
	MaxRefinementLevel = 30
)

// Coord is a cell position; axis 0 is the fastest (interval) axis.
// Components at or above the dimension are zero.
type Coord [MaxDim]int

// Outer is the row key: the coordinates of axes 1..dim-1.
type Outer [MaxDim - 1]int

// Outer drops the fastest axis.
func (c Coord) Outer() Outer {
	return Outer{c[1], c[2]}
}

// At rebuilds a full coordinate from a row key and a position on axis 0.
func At(x int, o Outer) Coord {
	return Coord{x, o[0], o[1]}
}

// CompareOuter orders row keys in row-major order, highest axis first.
func CompareOuter(a, b Outer) int {
	for k := len(a) - 1; k >= 0; k-- {
		switch {
		case a[k] < b[k]:
			return -1
		case a[k] > b[k]:
			return 1
		}
	}

	return 0
}

// Cell is a single cell handle produced by traversals.
type Cell struct {
	Level int   // refinement level
	Dim   int   // spatial dimension
	Coord Coord // integer position at Level
	Index int   // storage offset
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	return fmt.Sprintf("L%d%v@%d", c.Level, c.Coord[:c.Dim], c.Index)
}

// ValidateDim returns ErrBadDim unless 1 <= dim <= MaxDim.
func ValidateDim(dim int) error {
	if dim < 1 || dim > MaxDim {
		return fmt.Errorf("dim=%d: %w", dim, ErrBadDim)
	}

	return nil
}

// normalize zeroes the row-key components that lie beyond dim-1.
func normalize(o Outer, dim int) Outer {
	for k := dim - 1; k < len(o); k++ {
		o[k] = 0
	}

	return o
}
