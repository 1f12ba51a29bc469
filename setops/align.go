// SPDX-License-Identifier: MIT

package setops

import (
	"slices"

	"github.com/katalvlaran/mrmesh/cells"
	"github.com/katalvlaran/mrmesh/interval"
)

// Operand is a level-indexed set of cells.
//
// Outers lists the non-empty row keys in row-major order and Row returns a
// row's sorted, disjoint intervals, both at Level().
type Operand interface {
	Level() int
	Dim() int
	Outers() []cells.Outer
	Row(outer cells.Outer) []interval.Interval
}

// piece is one operand run aligned to the evaluation level.
type piece struct {
	iv  interval.Interval // aligned run, unit stride, Index of the source
	src interval.Interval // run at the operand level
}

// shiftOuter applies an arithmetic shift (n > 0: coarser, n < 0: finer) to
// the used components of a row key.
func shiftOuter(o cells.Outer, dim, n int) cells.Outer {
	for k := 0; k < dim-1; k++ {
		if n > 0 {
			o[k] >>= n
		} else {
			o[k] <<= -n
		}
	}

	return o
}

// children enumerates the 2^(n*(dim-1)) row keys under o, n levels finer.
func children(o cells.Outer, dim, n int, fn func(cells.Outer)) {
	base := shiftOuter(o, dim, -n)
	width := 1 << n
	var rec func(axis int, cur cells.Outer)
	rec = func(axis int, cur cells.Outer) {
		if axis == dim-1 {
			fn(cur)
			return
		}
		for d := 0; d < width; d++ {
			next := cur
			next[axis] = base[axis] + d
			rec(axis+1, next)
		}
	}
	rec(0, base)
}

// sortUnique sorts row keys and drops duplicates in place.
func sortUnique(keys []cells.Outer) []cells.Outer {
	slices.SortFunc(keys, cells.CompareOuter)

	return slices.CompactFunc(keys, func(a, b cells.Outer) bool { return a == b })
}

// alignedOuters returns the row keys of op seen at level.
func alignedOuters(op Operand, level int) []cells.Outer {
	src := op.Outers()
	n := op.Level() - level
	dim := op.Dim()
	switch {
	case n == 0 || dim == 1:
		return src
	case n > 0:
		out := make([]cells.Outer, len(src))
		for k, o := range src {
			out[k] = shiftOuter(o, dim, n)
		}

		return sortUnique(out)
	default:
		out := make([]cells.Outer, 0, len(src)<<((-n)*(dim-1)))
		for _, o := range src {
			children(o, dim, -n, func(c cells.Outer) { out = append(out, c) })
		}
		slices.SortFunc(out, cells.CompareOuter)

		return out
	}
}

// alignedRow returns the runs of op in row outer (a key at level), expressed
// at level, together with the level shift (level - op.Level()).
func alignedRow(op Operand, level int, outer cells.Outer) ([]piece, int) {
	shift := level - op.Level()
	dim := op.Dim()
	switch {
	case shift == 0:
		ivs := op.Row(outer)
		out := make([]piece, len(ivs))
		for k, iv := range ivs {
			iv.Step = 1
			out[k] = piece{iv: iv, src: iv}
		}

		return out, 0
	case shift > 0:
		ivs := op.Row(shiftOuter(outer, dim, shift))
		out := make([]piece, len(ivs))
		for k, iv := range ivs {
			fine := iv.Refine(shift)
			fine.Step = 1
			out[k] = piece{iv: fine, src: iv}
		}

		return out, shift
	default:
		n := -shift
		var coarse []interval.Interval
		children(outer, dim, n, func(c cells.Outer) {
			for _, iv := range op.Row(c) {
				coarse = append(coarse, iv.Coarsen(n))
			}
		})
		merged := interval.Merge(coarse)
		out := make([]piece, len(merged))
		for k, iv := range merged {
			out[k] = piece{iv: iv, src: iv}
		}

		return out, shift
	}
}

// translated is an operand moved by a constant offset.
type translated struct {
	op    Operand
	shift cells.Coord
}

// Translate returns op moved by shift cells (at op's level). Storage offsets
// follow the moved cells, so spans over a translated operand still address
// the original storage.
func Translate(op Operand, shift cells.Coord) Operand {
	for k := op.Dim(); k < cells.MaxDim; k++ {
		shift[k] = 0
	}

	return &translated{op: op, shift: shift}
}

func (t *translated) Level() int { return t.op.Level() }
func (t *translated) Dim() int   { return t.op.Dim() }

func (t *translated) Outers() []cells.Outer {
	src := t.op.Outers()
	d := t.shift.Outer()
	out := make([]cells.Outer, len(src))
	for k, o := range src {
		for a := range o {
			o[a] += d[a]
		}
		out[k] = o
	}

	return out
}

func (t *translated) Row(outer cells.Outer) []interval.Interval {
	d := t.shift.Outer()
	for a := range outer {
		outer[a] -= d[a]
	}
	ivs := t.op.Row(outer)
	if t.shift[0] == 0 {
		return ivs
	}
	out := make([]interval.Interval, len(ivs))
	for k, iv := range ivs {
		out[k] = iv.Shift(t.shift[0])
	}

	return out
}
