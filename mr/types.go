// SPDX-License-Identifier: MIT

package mr

import (
	"errors"
	"io"
	"log/slog"

	"github.com/katalvlaran/mrmesh/interval"
)

// Sentinel errors for the multiresolution operators.
var (
	// ErrInvalidInterval indicates an interval with Start >= End.
	ErrInvalidInterval = errors.New("mr: invalid interval")

	// ErrLevelOutOfRange indicates a level outside 0..MaxRefinementLevel.
	// It signals a bug in the caller's recursion bounds.
	ErrLevelOutOfRange = errors.New("mr: level out of range")

	// ErrNoCoarseData indicates that prediction reached levelG without
	// finding stored data for every needed cell.
	ErrNoCoarseData = errors.New("mr: no stored data at the coarsest level")

	// ErrComponentRange indicates a component outside the source.
	ErrComponentRange = errors.New("mr: component out of range")

	// ErrUnsupportedDim indicates prediction on a mesh that is not 1D.
	ErrUnsupportedDim = errors.New("mr: prediction is one-dimensional")

	// ErrOddLength indicates fine data that does not pair into children.
	ErrOddLength = errors.New("mr: fine values must come in pairs")
)

// Source is the data a Predictor reads: a field stored on a mesh whose
// existence predicate covers cells and ghosts.
type Source interface {
	Dim() int
	Components() int
	MaxRefinementLevel() int
	ExistsAt(level int, iv interval.Interval, outer ...int) ([]bool, error)
	Values(comp, level int, iv interval.Interval, outer ...int) ([]float64, error)
}

// Stats counts Predictor work since the last Reset.
type Stats struct {
	Calls    int // recursive evaluations, top-level calls included
	Hits     int // memo lookups answered from the cache
	Misses   int // memo lookups that had to compute
	Terminal int // evaluations answered entirely from stored data
	Entries  int // cached results
}

// options holds the functional configuration of NewPredictor.
type options struct {
	logger   *slog.Logger
	capacity int
}

// Option configures a Predictor.
type Option func(*options)

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCapacity presizes the memo table.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

func gatherOptions(opts []Option) options {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
