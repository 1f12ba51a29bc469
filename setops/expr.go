// SPDX-License-Identifier: MIT

package setops

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/mrmesh/cells"
	"github.com/katalvlaran/mrmesh/interval"
)

// Sentinel errors for expression evaluation.
var (
	// ErrNoOperands indicates an expression built without operands.
	ErrNoOperands = errors.New("setops: expression has no operands")

	// ErrDimMismatch indicates operands of different dimensions.
	ErrDimMismatch = errors.New("setops: operands have different dimensions")

	// ErrBadLevel indicates an evaluation level outside 0..cells.MaxRefinementLevel.
	ErrBadLevel = errors.New("setops: evaluation level out of range")
)

// kind selects the boolean operator of an expression.
type kind int

const (
	kindIntersection kind = iota
	kindUnion
	kindDifference
)

func (k kind) String() string {
	switch k {
	case kindIntersection:
		return "intersection"
	case kindUnion:
		return "union"
	default:
		return "difference"
	}
}

// Span describes how one operand relates to an emitted interval.
type Span struct {
	// Present reports whether the operand covers the emitted interval.
	Present bool
	// Interval is the operand run containing it, at the evaluation level.
	Interval interval.Interval
	// Source is the same run at the operand level.
	Source interval.Interval
	// Shift is the evaluation level minus the operand level.
	Shift int
}

// Offset returns the storage offset of the operand cell that covers
// coordinate x (at the evaluation level). It is defined when the operand is
// present and not coarsened (Shift >= 0).
func (s Span) Offset(x int) (int, bool) {
	if !s.Present || s.Shift < 0 {
		return 0, false
	}

	return s.Source.Index + (x >> s.Shift) - s.Source.Start, true
}

// Func receives one emitted interval. spans has one entry per operand, in
// operand order; the slice is reused between calls.
type Func func(outer cells.Outer, iv interval.Interval, spans []Span)

// Expr is a lazy set expression. Build one with Intersection, Union or
// Difference; it is evaluated only by Run, Collect, Row or Outers.
type Expr struct {
	kind  kind
	ops   []Operand
	level int
	dim   int
	err   error
}

func newExpr(k kind, ops []Operand) *Expr {
	e := &Expr{kind: k, ops: ops}
	if len(ops) == 0 {
		e.err = ErrNoOperands
		return e
	}
	e.dim = ops[0].Dim()
	for _, op := range ops {
		if op.Dim() != e.dim {
			e.err = fmt.Errorf("%s: dims %d and %d: %w", k, e.dim, op.Dim(), ErrDimMismatch)
			return e
		}
		e.level = max(e.level, op.Level())
	}

	return e
}

// Intersection returns the cells present in every operand.
// The default evaluation level is the finest operand level.
func Intersection(ops ...Operand) *Expr { return newExpr(kindIntersection, ops) }

// Union returns the cells present in at least one operand.
func Union(ops ...Operand) *Expr { return newExpr(kindUnion, ops) }

// Difference returns the cells of a absent from every operand in others.
func Difference(a Operand, others ...Operand) *Expr {
	return newExpr(kindDifference, append([]Operand{a}, others...))
}

// On returns a copy of the expression evaluated at level.
func (e *Expr) On(level int) *Expr {
	c := *e
	c.level = level
	if c.err == nil && (level < 0 || level > cells.MaxRefinementLevel) {
		c.err = fmt.Errorf("On(%d): %w", level, ErrBadLevel)
	}

	return &c
}

// Level returns the evaluation level.
func (e *Expr) Level() int { return e.level }

// Dim returns the dimension shared by the operands.
func (e *Expr) Dim() int { return e.dim }

// Err returns the construction error, if any.
func (e *Expr) Err() error { return e.err }

// candidates returns the row keys that may hold output, in row-major order.
func (e *Expr) candidates() []cells.Outer {
	if e.kind != kindUnion {
		return alignedOuters(e.ops[0], e.level)
	}
	var keys []cells.Outer
	for _, op := range e.ops {
		keys = append(keys, alignedOuters(op, e.level)...)
	}

	return sortUnique(keys)
}

// Run evaluates the expression and calls fn once per emitted interval, rows in
// row-major order and intervals ascending. Empty operands produce no call.
func (e *Expr) Run(fn Func) error {
	if e.err != nil {
		return e.err
	}
	spans := make([]Span, len(e.ops))
	rows := make([][]piece, len(e.ops))
	shifts := make([]int, len(e.ops))
	for _, outer := range e.candidates() {
		e.runRow(outer, rows, shifts, spans, fn)
	}

	return nil
}

// runRow evaluates a single row.
func (e *Expr) runRow(outer cells.Outer, rows [][]piece, shifts []int, spans []Span, fn Func) {
	for k, op := range e.ops {
		rows[k], shifts[k] = alignedRow(op, e.level, outer)
	}
	if e.kind == kindIntersection {
		intersectRow(outer, rows, shifts, spans, fn)
		return
	}
	sweepRow(e.kind, outer, rows, shifts, spans, fn)
}

// emitted builds the emitted interval, indexed in the first operand able to
// address it.
func emitted(start, end int, spans []Span) interval.Interval {
	iv := interval.Interval{Start: start, End: end, Step: 1}
	for _, s := range spans {
		if off, ok := s.Offset(start); ok {
			iv.Index = off
			break
		}
	}

	return iv
}

// intersectRow is the k-cursor sweep: emit the overlap of the current runs,
// then advance every cursor whose run ends at the overlap end.
func intersectRow(outer cells.Outer, rows [][]piece, shifts []int, spans []Span, fn Func) {
	cur := make([]int, len(rows))
	for {
		lo, hi := 0, 0
		for k, r := range rows {
			if cur[k] >= len(r) {
				return
			}
			p := r[cur[k]].iv
			if k == 0 || p.Start > lo {
				lo = p.Start
			}
			if k == 0 || p.End < hi {
				hi = p.End
			}
		}
		if lo < hi {
			for k, r := range rows {
				p := r[cur[k]]
				spans[k] = Span{Present: true, Interval: p.iv, Source: p.src, Shift: shifts[k]}
			}
			fn(outer, emitted(lo, hi, spans), spans)
		}
		for k, r := range rows {
			if r[cur[k]].iv.End == hi {
				cur[k]++
			}
		}
	}
}

// accept applies the boolean operator to a presence pattern.
func accept(k kind, present []bool) bool {
	switch k {
	case kindUnion:
		return slices.Contains(present, true)
	case kindDifference:
		return present[0] && !slices.Contains(present[1:], true)
	default:
		return !slices.Contains(present, false)
	}
}

// sweepRow is the boundary sweep used by union and difference. Segments
// between consecutive run boundaries have a constant presence pattern;
// adjacent accepted segments covered by the same runs are coalesced.
func sweepRow(k kind, outer cells.Outer, rows [][]piece, shifts []int, spans []Span, fn Func) {
	var bounds []int
	for _, r := range rows {
		for _, p := range r {
			bounds = append(bounds, p.iv.Start, p.iv.End)
		}
	}
	if len(bounds) == 0 {
		return
	}
	slices.Sort(bounds)
	bounds = slices.Compact(bounds)

	cur := make([]int, len(rows))
	which := make([]int, len(rows)) // run index per operand, -1 if absent
	pendWhich := make([]int, len(rows))
	present := make([]bool, len(rows))
	pendStart, pendEnd := 0, 0
	pending := false

	flush := func() {
		if !pending {
			return
		}
		for o, r := range rows {
			if pendWhich[o] < 0 {
				spans[o] = Span{Shift: shifts[o]}
				continue
			}
			p := r[pendWhich[o]]
			spans[o] = Span{Present: true, Interval: p.iv, Source: p.src, Shift: shifts[o]}
		}
		fn(outer, emitted(pendStart, pendEnd, spans), spans)
		pending = false
	}

	for b := 0; b+1 < len(bounds); b++ {
		lo, hi := bounds[b], bounds[b+1]
		for o, r := range rows {
			for cur[o] < len(r) && r[cur[o]].iv.End <= lo {
				cur[o]++
			}
			present[o] = cur[o] < len(r) && r[cur[o]].iv.Start <= lo
			which[o] = -1
			if present[o] {
				which[o] = cur[o]
			}
		}
		if !accept(k, present) {
			flush()
			continue
		}
		if pending && pendEnd == lo && slices.Equal(which, pendWhich) {
			pendEnd = hi
			continue
		}
		flush()
		copy(pendWhich, which)
		pendStart, pendEnd, pending = lo, hi, true
	}
	flush()
}

// Outers returns the row keys holding at least one emitted interval.
func (e *Expr) Outers() []cells.Outer {
	if e.err != nil {
		return nil
	}
	var out []cells.Outer
	for _, outer := range e.candidates() {
		if len(e.Row(outer)) > 0 {
			out = append(out, outer)
		}
	}

	return out
}

// Row evaluates a single row and returns its coalesced intervals.
func (e *Expr) Row(outer cells.Outer) []interval.Interval {
	if e.err != nil {
		return nil
	}
	spans := make([]Span, len(e.ops))
	rows := make([][]piece, len(e.ops))
	shifts := make([]int, len(e.ops))
	var ivs []interval.Interval
	e.runRow(outer, rows, shifts, spans, func(_ cells.Outer, iv interval.Interval, _ []Span) {
		ivs = append(ivs, iv)
	})

	return interval.Merge(ivs)
}

// Collect evaluates the expression into a new LevelCellArray at Level().
// Offsets of the result are numbered from zero.
func (e *Expr) Collect() (*cells.LevelCellArray, error) {
	if e.err != nil {
		return nil, e.err
	}
	l, err := cells.NewLevelCellList(e.level, e.dim)
	if err != nil {
		return nil, err
	}
	err = e.Run(func(outer cells.Outer, iv interval.Interval, _ []Span) {
		_ = l.AddInterval(outer, iv) // emitted intervals are never empty
	})
	if err != nil {
		return nil, err
	}

	return l.Build(0), nil
}

// Count returns the number of cells in the result.
func (e *Expr) Count() (int, error) {
	n := 0
	err := e.Run(func(_ cells.Outer, iv interval.Interval, _ []Span) { n += iv.Size() })

	return n, err
}

// Empty reports whether the result holds no cell. Errors read as empty.
func (e *Expr) Empty() bool {
	n, err := e.Count()

	return err != nil || n == 0
}
