// Package interval_test contains unit tests for the Interval value type.
package interval_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mrmesh/interval"
)

// TestNew_RejectsEmpty ensures New refuses start >= end.
func TestNew_RejectsEmpty(t *testing.T) {
	_, err := interval.New(3, 3)
	require.ErrorIs(t, err, interval.ErrInvalidInterval)

	_, err = interval.New(4, -1)
	require.ErrorIs(t, err, interval.ErrInvalidInterval)

	require.Panics(t, func() { interval.Must(1, 0) })
}

// TestInterval_ValiditySize checks is_valid == (start < end) and size == end - start.
func TestInterval_ValiditySize(t *testing.T) {
	for start := -4; start <= 4; start++ {
		for end := -4; end <= 4; end++ {
			iv := interval.Interval{Start: start, End: end}
			require.Equal(t, start < end, iv.IsValid(), "iv=%v", iv)
			if iv.IsValid() {
				require.Equal(t, end-start, iv.Size())
				require.Equal(t, end-start, iv.Len()) // zero Step reads as 1
			} else {
				require.Zero(t, iv.Len())
			}
		}
	}
}

// TestContains_HalfOpen covers both boundaries and the stride.
func TestContains_HalfOpen(t *testing.T) {
	iv := interval.Must(-2, 3)
	require.True(t, iv.Contains(-2))
	require.True(t, iv.Contains(2))
	require.False(t, iv.Contains(3))
	require.False(t, iv.Contains(-3))

	strided := iv.WithStep(2)
	require.True(t, strided.Contains(0))
	require.False(t, strided.Contains(-1))
	require.Equal(t, []int{-2, 0, 2}, strided.Coords())
	require.Equal(t, 3, strided.Len())
	require.Equal(t, 2, strided.Last())
}

// TestRefine_CoarsenRoundTrip verifies level L -> L+n -> L is exact.
func TestRefine_CoarsenRoundTrip(t *testing.T) {
	cases := []interval.Interval{
		interval.Must(0, 1),
		interval.Must(-5, 7),
		interval.Must(-1, 0),
		interval.Must(8, 16),
	}
	for _, iv := range cases {
		for n := 1; n <= 4; n++ {
			fine := iv.Refine(n).WithStep(1)
			require.Equal(t, iv.Size()<<n, fine.Size())
			back := fine.Coarsen(n)
			require.True(t, back.Equal(iv), "n=%d iv=%v back=%v", n, iv, back)
			require.Equal(t, 1, back.Step)
		}
	}
}

// TestCoarsen_Floors checks arithmetic-shift flooring on negative and odd bounds.
func TestCoarsen_Floors(t *testing.T) {
	tests := []struct {
		in   interval.Interval
		want interval.Interval
	}{
		{interval.Must(4, 8), interval.Must(2, 4)},
		{interval.Must(5, 8), interval.Must(2, 4)},
		{interval.Must(4, 7), interval.Must(2, 4)},
		{interval.Must(-3, -1), interval.Must(-2, 0)},
		{interval.Must(-1, 1), interval.Must(-1, 1)},
	}
	for _, tc := range tests {
		got := tc.in.Coarsen(1)
		require.True(t, got.Equal(tc.want), "in=%v got=%v want=%v", tc.in, got, tc.want)
	}
}

// TestRefine_Stride checks that refining keeps one visited child per coarse cell.
func TestRefine_Stride(t *testing.T) {
	iv := interval.Must(2, 4).Refine(2)
	require.Equal(t, []int{8, 12}, iv.Coords())

	left := iv.Shift(-1)
	require.Equal(t, []int{7, 11}, left.Coords())

	parent := left.Trim().Coarsen(1)
	require.Equal(t, []int{3, 5}, parent.Coords())
}

// TestMerge_Coalesces ensures merged rows are sorted and disjoint.
func TestMerge_Coalesces(t *testing.T) {
	in := []interval.Interval{
		interval.Must(10, 12),
		interval.Must(0, 2),
		{Start: 5, End: 5},
		interval.Must(2, 4),
		interval.Must(11, 15),
		interval.Must(6, 7),
	}
	got := interval.Merge(in)
	want := []interval.Interval{
		{Start: 0, End: 4, Step: 1},
		{Start: 6, End: 7, Step: 1},
		{Start: 10, End: 15, Step: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Merge mismatch (-want +got):\n%s", diff)
	}
	require.True(t, interval.Sorted(got))
	require.Equal(t, 10, interval.TotalSize(got))
}

// TestOverlap_String covers the sweep primitive and the printed form.
func TestOverlap_String(t *testing.T) {
	o, ok := interval.Overlap(interval.Must(0, 5), interval.Must(3, 9))
	require.True(t, ok)
	require.True(t, o.Equal(interval.Must(3, 5)))

	_, ok = interval.Overlap(interval.Must(0, 3), interval.Must(3, 9))
	require.False(t, ok)

	require.Equal(t, "[3,5[@7", interval.Must(3, 5).WithIndex(7).String())
	require.Equal(t, "[0,8[@0:4", interval.Must(0, 2).Refine(2).String())
}
