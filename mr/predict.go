// SPDX-License-Identifier: MIT

package mr

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/mrmesh/interval"
	"github.com/katalvlaran/mrmesh/matrix"
)

// allComponents is the memo component of PredictAll results.
const allComponents = -1

// memoKey identifies one prediction request.
type memoKey struct {
	comp       int
	levelG     int
	level      int
	start, end int
	step       int
}

// Predictor evaluates memoized predictions over one Source.
type Predictor struct {
	src    Source
	memo   map[memoKey]*matrix.Dense
	stats  Stats
	logger *slog.Logger
}

// NewPredictor returns a Predictor with an empty cache.
func NewPredictor(src Source, opts ...Option) *Predictor {
	o := gatherOptions(opts)

	return &Predictor{
		src:    src,
		memo:   make(map[memoKey]*matrix.Dense, o.capacity),
		logger: o.logger,
	}
}

// Reset drops every cached result and zeroes the counters. Call it whenever
// the source values or the mesh behind them change.
func (p *Predictor) Reset() {
	p.logger.Debug("predictor reset",
		"calls", p.stats.Calls,
		"hits", p.stats.Hits,
		"misses", p.stats.Misses,
		"terminal", p.stats.Terminal,
		"entries", len(p.memo),
	)
	clear(p.memo)
	p.stats = Stats{}
}

// Stats returns the counters accumulated since the last Reset.
func (p *Predictor) Stats() Stats {
	s := p.stats
	s.Entries = len(p.memo)

	return s
}

// Predict returns component comp at absolute level levelG+level on the
// cells visited by iv (any positive stride).
//
// Stage 1 (Validate): dimension, interval, levels, component.
// Stage 2 (Evaluate): cached result, stored data, or recursive interpolation
// from level-1 with mixed intervals patched by stored values.
//
// Returns ErrUnsupportedDim, ErrInvalidInterval, ErrLevelOutOfRange,
// ErrComponentRange, ErrNoCoarseData, or a wrapped Source error.
// Complexity: O(Len(iv)·level) with a warm cache.
func (p *Predictor) Predict(comp, levelG, level int, iv interval.Interval) ([]float64, error) {
	iv, err := p.validate(levelG, level, iv)
	if err != nil {
		return nil, err
	}
	if comp < 0 || comp >= p.src.Components() {
		return nil, fmt.Errorf("Predict comp=%d of %d: %w", comp, p.src.Components(), ErrComponentRange)
	}
	out, err := p.evaluate(comp, []int{comp}, levelG, level, iv)
	if err != nil {
		return nil, err
	}

	return out.Col(0)
}

// PredictAll is Predict for every component at once. The result has one row
// per visited coordinate and one column per component.
func (p *Predictor) PredictAll(levelG, level int, iv interval.Interval) (*matrix.Dense, error) {
	iv, err := p.validate(levelG, level, iv)
	if err != nil {
		return nil, err
	}
	comps := make([]int, p.src.Components())
	for c := range comps {
		comps[c] = c
	}
	out, err := p.evaluate(allComponents, comps, levelG, level, iv)
	if err != nil {
		return nil, err
	}

	return out.Clone(), nil
}

// validate checks a top-level request and returns iv in canonical form
// (explicit stride, End right after the last visited cell).
func (p *Predictor) validate(levelG, level int, iv interval.Interval) (interval.Interval, error) {
	if d := p.src.Dim(); d != 1 {
		return iv, fmt.Errorf("dim=%d: %w", d, ErrUnsupportedDim)
	}
	if !iv.IsValid() {
		return iv, fmt.Errorf("%v: %w", iv, ErrInvalidInterval)
	}
	if levelG < 0 || level < 0 || levelG+level > p.src.MaxRefinementLevel() {
		return iv, fmt.Errorf("levelG=%d level=%d max=%d: %w", levelG, level, p.src.MaxRefinementLevel(), ErrLevelOutOfRange)
	}
	if iv.Step < 1 {
		iv.Step = 1
	}

	return iv.Trim(), nil
}

// parentOf returns the coarse interval holding the parents of the cells of
// iv. An even stride keeps one parent per cell; otherwise every parent in
// range is visited once.
func parentOf(iv interval.Interval) interval.Interval {
	step := 1
	if iv.Step%2 == 0 {
		step = iv.Step / 2
	}

	return interval.Interval{Start: iv.Start >> 1, End: (iv.Last() >> 1) + 1, Step: step}
}

// evaluate is the memoized recursion behind Predict and PredictAll.
func (p *Predictor) evaluate(compKey int, comps []int, levelG, level int, iv interval.Interval) (*matrix.Dense, error) {
	p.stats.Calls++
	n := iv.Len()
	key := memoKey{comp: compKey, levelG: levelG, level: level, start: iv.Start, end: iv.End, step: iv.Step}
	cached, seen := p.memo[key]
	if seen && cached.Rows() == n && cached.Cols() == len(comps) {
		p.stats.Hits++

		return cached, nil
	}
	p.stats.Misses++

	abs := levelG + level
	mask, err := p.src.ExistsAt(abs, iv)
	if err != nil {
		return nil, fmt.Errorf("ExistsAt(%d, %v): %w", abs, iv, err)
	}
	present := 0
	for _, ok := range mask {
		if ok {
			present++
		}
	}
	out, err := matrix.NewDense(n, len(comps))
	if err != nil {
		return nil, err
	}
	if present == n {
		p.stats.Terminal++

		return out, p.readRuns(out, comps, abs, iv, mask)
	}
	if level == 0 {
		return nil, fmt.Errorf("level %d %v: %d of %d cells stored: %w", abs, iv, present, n, ErrNoCoarseData)
	}

	pi := parentOf(iv)
	parent, err := p.evaluate(compKey, comps, levelG, level-1, pi)
	if err != nil {
		return nil, err
	}
	right, err := p.evaluate(compKey, comps, levelG, level-1, pi.Shift(1))
	if err != nil {
		return nil, err
	}
	left, err := p.evaluate(compKey, comps, levelG, level-1, pi.Shift(-1))
	if err != nil {
		return nil, err
	}

	for k := 0; k < n; k++ {
		if mask[k] {
			continue
		}
		x := iv.Start + k*iv.Step
		pk := ((x >> 1) - pi.Start) / pi.Step
		sign := 1.0
		if x&1 == 1 {
			sign = -1.0
		}
		for c := range comps {
			pv, _ := parent.At(pk, c)
			rv, _ := right.At(pk, c)
			lv, _ := left.At(pk, c)
			_ = out.Set(k, c, pv-sign/8*(rv-lv))
		}
	}
	if present > 0 {
		if err := p.readRuns(out, comps, abs, iv, mask); err != nil {
			return nil, err
		}
	}

	// first computation wins
	if !seen {
		p.memo[key] = out
	}

	return out, nil
}

// readRuns copies stored values into out wherever mask is set, one Values
// call per run of consecutive stored cells and component.
func (p *Predictor) readRuns(out *matrix.Dense, comps []int, level int, iv interval.Interval, mask []bool) error {
	for k := 0; k < len(mask); {
		if !mask[k] {
			k++
			continue
		}
		j := k
		for j < len(mask) && mask[j] {
			j++
		}
		run := interval.Interval{
			Start: iv.Start + k*iv.Step,
			End:   iv.Start + (j-1)*iv.Step + 1,
			Step:  iv.Step,
		}
		for c, comp := range comps {
			vals, err := p.src.Values(comp, level, run)
			if err != nil {
				return fmt.Errorf("Values(%d, %d, %v): %w", comp, level, run, err)
			}
			if err := out.SetColRange(c, k, vals); err != nil {
				return err
			}
		}
		k = j
	}

	return nil
}
