package mr

import (
	"github.com/katalvlaran/mrmesh/interval"
	"github.com/katalvlaran/mrmesh/matrix"
)

// SeedMemo stores d under the key Predict(comp, levelG, level, iv) uses,
// bypassing evaluation. iv must already be canonical (explicit stride,
// trimmed End).
func SeedMemo(p *Predictor, comp, levelG, level int, iv interval.Interval, d *matrix.Dense) {
	p.memo[memoKey{comp: comp, levelG: levelG, level: level, start: iv.Start, end: iv.End, step: iv.Step}] = d
}
