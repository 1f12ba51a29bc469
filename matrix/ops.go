// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// ewBinary computes out[i] = fn(a[i], b[i]) over the flat buffers.
// Returns ErrDimensionMismatch unless a and b have the same shape.
// Time: O(r*c). Space: O(r*c). Deterministic flat 0..n-1 loop.
func ewBinary(op string, a, b *Dense, fn func(x, y float64) float64) (*Dense, error) {
	if a.r != b.r || a.c != b.c {
		return nil, fmt.Errorf("%s: %dx%d vs %dx%d: %w", op, a.r, a.c, b.r, b.c, ErrDimensionMismatch)
	}
	out := &Dense{r: a.r, c: a.c, data: make([]float64, len(a.data))}
	for i := range out.data {
		out.data[i] = fn(a.data[i], b.data[i])
	}

	return out, nil
}

// Add returns the element-wise sum m + b.
func (m *Dense) Add(b *Dense) (*Dense, error) {
	return ewBinary("Add", m, b, func(x, y float64) float64 { return x + y })
}

// Sub returns the element-wise difference m - b.
func (m *Dense) Sub(b *Dense) (*Dense, error) {
	return ewBinary("Sub", m, b, func(x, y float64) float64 { return x - y })
}

// Scale returns k·m as a new matrix.
// Time: O(r*c).
func (m *Dense) Scale(k float64) *Dense {
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data))}
	for i, v := range m.data {
		out.data[i] = k * v
	}

	return out
}

// MaxAbs returns the largest absolute element, 0 for an all-zero matrix.
func (m *Dense) MaxAbs() float64 {
	best := 0.0
	for _, v := range m.data {
		if v < 0 {
			v = -v
		}
		if v > best {
			best = v
		}
	}

	return best
}
