// SPDX-License-Identifier: MIT

// Package stencil expresses multiresolution predictions as explicit linear
// combinations of coarse cell values.
//
// A Map sends a coarse coordinate to its coefficient. Builder.Prediction(k, i)
// returns the Map whose application to level L-k values equals the depth-k
// prediction of fine cell i at level L, when no intermediate level stores
// data. Solvers precompute these maps once per depth and apply them to every
// coarse cell, instead of recursing for each one.
package stencil

import (
	"fmt"
	"sort"
	"strings"
)

// Map is a sparse linear combination: coordinate -> coefficient.
type Map map[int]float64

// Unit returns the map selecting coordinate i.
func Unit(i int) Map { return Map{i: 1} }

// combine returns a + k·b, dropping coefficients that cancel exactly.
func combine(a, b Map, k float64) Map {
	out := make(Map, len(a)+len(b))
	for i, c := range a {
		out[i] = c
	}
	for i, c := range b {
		v := out[i] + k*c
		if v == 0 {
			delete(out, i)
			continue
		}
		out[i] = v
	}

	return out
}

// Add returns m + o.
func (m Map) Add(o Map) Map { return combine(m, o, 1) }

// Sub returns m - o.
func (m Map) Sub(o Map) Map { return combine(m, o, -1) }

// Scale returns k·m.
func (m Map) Scale(k float64) Map { return combine(nil, m, k) }

// Shift returns m with every coordinate moved by n.
func (m Map) Shift(n int) Map {
	out := make(Map, len(m))
	for i, c := range m {
		out[i+n] = c
	}

	return out
}

// Keys returns the coordinates in ascending order.
func (m Map) Keys() []int {
	keys := make([]int, 0, len(m))
	for i := range m {
		keys = append(keys, i)
	}
	sort.Ints(keys)

	return keys
}

// Sum returns the sum of the coefficients; 1 for any prediction map.
func (m Map) Sum() float64 {
	s := 0.0
	for _, i := range m.Keys() {
		s += m[i]
	}

	return s
}

// Apply evaluates the combination with values read from at.
// Coordinates are visited in ascending order, so the result is
// deterministic.
func (m Map) Apply(at func(i int) float64) float64 {
	s := 0.0
	for _, i := range m.Keys() {
		s += m[i] * at(i)
	}

	return s
}

// String implements fmt.Stringer: "{-1: 0.125, 0: 1, 1: -0.125}".
func (m Map) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for k, i := range m.Keys() {
		if k > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d: %g", i, m[i])
	}
	sb.WriteByte('}')

	return sb.String()
}

// Builder memoizes prediction maps by (depth, coordinate).
type Builder struct {
	memo map[[2]int]Map
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{memo: make(map[[2]int]Map)}
}

// Prediction returns the map predicting cell i, k levels above the values
// it combines. Depth 0 is the identity. Returned maps are shared and must
// not be modified.
// Complexity: O(k·3) map combinations with a warm cache.
func (b *Builder) Prediction(k, i int) Map {
	if k <= 0 {
		return Unit(i)
	}
	key := [2]int{k, i}
	if m, ok := b.memo[key]; ok {
		return m
	}
	ig := i >> 1
	sign := 1.0
	if i&1 == 1 {
		sign = -1.0
	}
	slope := b.Prediction(k-1, ig+1).Sub(b.Prediction(k-1, ig-1))
	m := b.Prediction(k-1, ig).Sub(slope.Scale(sign / 8))
	b.memo[key] = m

	return m
}

// Edges holds the prediction maps of the four fine cells around the two
// faces of a coarse cell.
type Edges struct {
	LeftOut  Map // last fine cell left of the cell
	LeftIn   Map // first fine cell inside
	RightIn  Map // last fine cell inside
	RightOut Map // first fine cell right of the cell
}

// Edges returns the face maps of coarse cell i at depth k. A finite-volume
// flux across each face of a coarsened cell reads exactly these four fine
// values.
func (b *Builder) Edges(k, i int) Edges {
	size := 1 << max(k, 0)

	return Edges{
		LeftOut:  b.Prediction(k, i*size-1),
		LeftIn:   b.Prediction(k, i*size),
		RightIn:  b.Prediction(k, (i+1)*size-1),
		RightOut: b.Prediction(k, (i+1)*size),
	}
}

// Len returns the number of cached maps.
func (b *Builder) Len() int { return len(b.memo) }
