// SPDX-License-Identifier: MIT

package interval

import (
	"errors"
	"fmt"
)

// ErrInvalidInterval indicates an interval whose start is not strictly below its end.
var ErrInvalidInterval = errors.New("interval: start must be < end")

// Interval is a half-open range [Start, End) of signed cell coordinates.
//
// Step is the traversal stride (0 and 1 both mean "every cell"); strides > 1
// appear when an interval is refined to address one child per coarse cell.
// Index is the storage offset of the value at Start.
type Interval struct {
	Start int // first coordinate (inclusive)
	End   int // last coordinate + 1 (exclusive)
	Step  int // stride between visited coordinates
	Index int // storage offset of Start
}

// New returns the unit-stride interval [start, end).
// Returns ErrInvalidInterval if start >= end.
// Complexity: O(1).
func New(start, end int) (Interval, error) {
	if start >= end {
		return Interval{}, fmt.Errorf("New(%d,%d): %w", start, end, ErrInvalidInterval)
	}

	return Interval{Start: start, End: end, Step: 1}, nil
}

// Must is like New but panics on an invalid range.
// Reserved for literals in code and tests.
func Must(start, end int) Interval {
	iv, err := New(start, end)
	if err != nil {
		panic(err)
	}

	return iv
}

// WithIndex returns a copy of iv with its storage offset replaced.
func (iv Interval) WithIndex(index int) Interval {
	iv.Index = index

	return iv
}

// WithStep returns a copy of iv with its stride replaced.
func (iv Interval) WithStep(step int) Interval {
	iv.Step = step

	return iv
}

// stride normalizes the zero value of Step.
func (iv Interval) stride() int {
	if iv.Step <= 0 {
		return 1
	}

	return iv.Step
}

// IsValid reports whether Start < End.
// Complexity: O(1).
func (iv Interval) IsValid() bool {
	return iv.Start < iv.End
}

// Size returns End - Start, the covered extent ignoring the stride.
// Complexity: O(1).
func (iv Interval) Size() int {
	return iv.End - iv.Start
}

// Len returns the number of visited coordinates, ceil(Size/Step).
// An invalid interval has length 0.
// Complexity: O(1).
func (iv Interval) Len() int {
	if !iv.IsValid() {
		return 0
	}
	s := iv.stride()

	return (iv.Size() + s - 1) / s
}

// Contains reports whether x lies in [Start, End) and on the stride.
// Complexity: O(1).
func (iv Interval) Contains(x int) bool {
	if x < iv.Start || x >= iv.End {
		return false
	}

	return (x-iv.Start)%iv.stride() == 0
}

// Last returns the last visited coordinate. The interval must be valid.
// Complexity: O(1).
func (iv Interval) Last() int {
	return iv.Start + (iv.Len()-1)*iv.stride()
}

// Trim returns iv with End tightened to Last()+1.
// Trim is a no-op on unit-stride intervals.
func (iv Interval) Trim() Interval {
	if iv.IsValid() {
		iv.End = iv.Last() + 1
	}

	return iv
}

// Coords returns the visited coordinates in ascending order.
// Complexity: O(Len) time and memory.
func (iv Interval) Coords() []int {
	out := make([]int, 0, iv.Len())
	for x := iv.Start; x < iv.End; x += iv.stride() {
		out = append(out, x)
	}

	return out
}

// Shift translates the interval by dx cells. Index follows the cells.
// Complexity: O(1).
func (iv Interval) Shift(dx int) Interval {
	iv.Start += dx
	iv.End += dx

	return iv
}

// Scale multiplies Start, End and Step by k (k >= 1).
// Complexity: O(1).
func (iv Interval) Scale(k int) Interval {
	iv.Start *= k
	iv.End *= k
	iv.Step = iv.stride() * k

	return iv
}

// Refine re-expresses iv n levels finer: boundaries and stride times 2^n.
// The result visits the leftmost child of every visited coordinate; use
// WithStep(1) to cover all children.
// Complexity: O(1).
func (iv Interval) Refine(n int) Interval {
	if n <= 0 {
		return iv
	}
	iv.Start <<= n
	iv.End <<= n
	iv.Step = iv.stride() << n

	return iv
}

// Coarsen re-expresses iv n levels coarser. Coordinates are floored with an
// arithmetic shift, so the result covers the ancestor of every visited cell:
// [Start>>n, ((End-1)>>n)+1) with stride max(Step>>n, 1).
// Boundaries that are not multiples of 2^n lose precision; callers that need
// exactness must align first.
// Complexity: O(1).
func (iv Interval) Coarsen(n int) Interval {
	if n <= 0 {
		return iv
	}
	iv.End = ((iv.End - 1) >> n) + 1
	iv.Start >>= n
	iv.Step = iv.stride() >> n
	if iv.Step < 1 {
		iv.Step = 1
	}

	return iv
}

// Equal compares (Start, End), the ordering key used by merge algorithms.
func (iv Interval) Equal(o Interval) bool {
	return iv.Start == o.Start && iv.End == o.End
}

// Less orders by Start, then End.
func (iv Interval) Less(o Interval) bool {
	if iv.Start != o.Start {
		return iv.Start < o.Start
	}

	return iv.End < o.End
}

// Compare returns -1, 0 or +1 following Less and Equal.
func Compare(a, b Interval) int {
	switch {
	case a.Less(b):
		return -1
	case a.Equal(b):
		return 0
	default:
		return 1
	}
}

// Overlap returns the intersection of a and b and whether it is non-empty.
// Strides and indexes are taken from a.
func Overlap(a, b Interval) (Interval, bool) {
	out := a
	out.Start = max(a.Start, b.Start)
	out.End = min(a.End, b.End)

	return out, out.IsValid()
}

// String implements fmt.Stringer as "[start,end[@index", with ":step"
// appended when the stride is larger than one.
func (iv Interval) String() string {
	if iv.stride() > 1 {
		return fmt.Sprintf("[%d,%d[@%d:%d", iv.Start, iv.End, iv.Index, iv.stride())
	}

	return fmt.Sprintf("[%d,%d[@%d", iv.Start, iv.End, iv.Index)
}
