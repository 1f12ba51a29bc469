// SPDX-License-Identifier: MIT

package mesh

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/mrmesh/cells"
)

// Sentinel errors for mesh construction and queries.
var (
	// ErrEmptyBox indicates a box with Min >= Max on a used axis.
	ErrEmptyBox = errors.New("mesh: box must have min < max on every axis")

	// ErrDimMismatch indicates leaves and box of different dimensions.
	ErrDimMismatch = errors.New("mesh: dimension mismatch")

	// ErrBadGhostWidth indicates a ghost width below 1.
	ErrBadGhostWidth = errors.New("mesh: ghost width must be >= 1")

	// ErrOutsideBox indicates a leaf outside the domain.
	ErrOutsideBox = errors.New("mesh: leaf outside the domain box")

	// ErrOverlap indicates a region covered by leaves of two levels.
	ErrOverlap = errors.New("mesh: leaves overlap across levels")

	// ErrNotCovering indicates a domain region covered by no leaf.
	ErrNotCovering = errors.New("mesh: leaves do not cover the domain")

	// ErrCoordinateRange indicates coordinates beyond 32-bit existence keys.
	ErrCoordinateRange = errors.New("mesh: coordinates exceed 32-bit range")
)

// MeshType selects one of the cell sets of a Mesh.
type MeshType int

const (
	// Cells are the leaves.
	Cells MeshType = iota
	// Ancestors are the projection cells above the leaves.
	Ancestors
	// Ghosts are in-domain halo and stencil cells.
	Ghosts
	// Boundary are halo cells outside the domain.
	Boundary
	// AllCells is the union of the other sets.
	AllCells

	nbMeshTypes
)

// String implements fmt.Stringer.
func (t MeshType) String() string {
	switch t {
	case Cells:
		return "cells"
	case Ancestors:
		return "ancestors"
	case Ghosts:
		return "ghosts"
	case Boundary:
		return "boundary"
	case AllCells:
		return "all_cells"
	default:
		return fmt.Sprintf("MeshType(%d)", int(t))
	}
}

// Box is the rectangular domain [Min, Max) in level-0 cell units.
type Box struct {
	Dim int
	Min cells.Coord
	Max cells.Coord
}

// NewBox returns the box [min, max); both slices give one bound per axis.
func NewBox(min, max []int) (Box, error) {
	if len(min) != len(max) {
		return Box{}, fmt.Errorf("NewBox: %d vs %d bounds: %w", len(min), len(max), ErrDimMismatch)
	}
	b := Box{Dim: len(min)}
	if err := cells.ValidateDim(b.Dim); err != nil {
		return Box{}, err
	}
	copy(b.Min[:], min)
	copy(b.Max[:], max)

	return b, b.Validate()
}

// Validate returns ErrEmptyBox unless Min < Max on every used axis.
func (b Box) Validate() error {
	if err := cells.ValidateDim(b.Dim); err != nil {
		return err
	}
	for k := 0; k < b.Dim; k++ {
		if b.Min[k] >= b.Max[k] {
			return fmt.Errorf("axis %d [%d,%d): %w", k, b.Min[k], b.Max[k], ErrEmptyBox)
		}
	}

	return nil
}

// Cells returns the domain cells at level: [Min<<level, Max<<level) per axis.
// Complexity: O(number of rows).
func (b Box) Cells(level int) *cells.LevelCellArray {
	l, err := cells.NewLevelCellList(level, b.Dim)
	if err != nil {
		return cells.Empty(level, b.Dim)
	}
	lo := [cells.MaxDim]int{}
	hi := [cells.MaxDim]int{}
	for k := 0; k < cells.MaxDim; k++ {
		lo[k], hi[k] = b.Min[k]<<level, b.Max[k]<<level
		if k >= b.Dim {
			lo[k], hi[k] = 0, 1
		}
	}
	for z := lo[2]; z < hi[2]; z++ {
		for y := lo[1]; y < hi[1]; y++ {
			_ = l.Add(cells.Outer{y, z}, lo[0], hi[0])
		}
	}

	return l.Build(0)
}

// options holds the functional configuration of New.
type options struct {
	ghostWidth int
	logger     *slog.Logger
}

// Option configures mesh construction.
type Option func(*options)

// DefaultGhostWidth is the halo width around leaves and ancestors.
const DefaultGhostWidth = 1

// WithGhostWidth sets the halo width (>= 1).
func WithGhostWidth(w int) Option {
	return func(o *options) { o.ghostWidth = w }
}

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(opts []Option) options {
	o := options{
		ghostWidth: DefaultGhostWidth,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
