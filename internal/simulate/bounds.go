package simulate

import (
	"fmt"
	"math"

	"github.com/specialistvlad/mpcexport/internal/layout"
	"github.com/specialistvlad/mpcexport/internal/problem"
)

// DefaultBounds returns fresh copies of LBG_DEF and UBG_DEF.
func DefaultBounds(p *problem.Problem, cons *layout.Table) (lbg, ubg []float64, err error) {
	lbg = make([]float64, cons.Size())
	ubg = make([]float64, cons.Size())
	for _, e := range cons.Entries() {
		c := p.Groups[e.Group].Constraints[e.Block]
		if len(c.Lower) != e.Size() || len(c.Upper) != e.Size() {
			return nil, nil, fmt.Errorf("constraint %s.%s: %d lower and %d upper bounds for %d scalars: %w",
				e.GroupLabel, e.Name, len(c.Lower), len(c.Upper), e.Size(), ErrDimensionMismatch)
		}
		copy(lbg[e.Start:e.End()], c.Lower)
		copy(ubg[e.Start:e.End()], c.Upper)
	}
	return lbg, ubg, nil
}

// UpdateBounds applies the shutdown predicates at time t. Blocks whose
// predicate holds are relaxed to (-Inf, +Inf); blocks whose predicate does
// not hold get their declared bounds back. Blocks without a predicate are
// not touched.
func UpdateBounds(p *problem.Problem, cons *layout.Table, t float64, lbg, ubg []float64) error {
	if len(lbg) != cons.Size() || len(ubg) != cons.Size() {
		return fmt.Errorf("bound vectors have %d and %d entries, want %d: %w", len(lbg), len(ubg), cons.Size(), ErrDimensionMismatch)
	}
	for _, e := range cons.Entries() {
		pred, ok := p.ShutdownFor(e.GroupLabel, e.Name)
		if !ok {
			continue
		}
		off, err := pred.Eval(t)
		if err != nil {
			return fmt.Errorf("constraint %s.%s: %w", e.GroupLabel, e.Name, err)
		}
		c := p.Groups[e.Group].Constraints[e.Block]
		for i := 0; i < e.Size(); i++ {
			if off {
				lbg[e.Start+i] = math.Inf(-1)
				ubg[e.Start+i] = math.Inf(1)
				continue
			}
			lbg[e.Start+i] = c.Lower[i]
			ubg[e.Start+i] = c.Upper[i]
		}
	}
	return nil
}
