// SPDX-License-Identifier: MIT

package interval

import "slices"

// Merge sorts ivs by Start and coalesces overlapping or adjacent ranges.
// Invalid (empty) intervals are dropped. Strides and indexes of the inputs
// are discarded: the result is unit-stride with Index 0.
// The input slice is reordered in place; the result is a new slice.
// Complexity: O(n log n) time, O(n) memory.
func Merge(ivs []Interval) []Interval {
	slices.SortFunc(ivs, Compare)

	out := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if !iv.IsValid() {
			continue
		}
		n := len(out)
		if n > 0 && iv.Start <= out[n-1].End {
			// overlapping or touching: extend the previous run
			if iv.End > out[n-1].End {
				out[n-1].End = iv.End
			}
			continue
		}
		out = append(out, Interval{Start: iv.Start, End: iv.End, Step: 1})
	}

	return out
}

// Sorted reports whether ivs are valid, sorted by Start and pairwise disjoint.
func Sorted(ivs []Interval) bool {
	for k, iv := range ivs {
		if !iv.IsValid() {
			return false
		}
		if k > 0 && ivs[k-1].End > iv.Start {
			return false
		}
	}

	return true
}

// TotalSize sums Size over ivs.
func TotalSize(ivs []Interval) int {
	n := 0
	for _, iv := range ivs {
		n += iv.Size()
	}

	return n
}
