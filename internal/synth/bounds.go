package synth

import (
	"context"
	"fmt"
	"math"

	"github.com/specialistvlad/mpcexport/internal/codegen"
	"github.com/specialistvlad/mpcexport/internal/ctxlog"
	"github.com/specialistvlad/mpcexport/internal/layout"
	"github.com/specialistvlad/mpcexport/internal/predicate"
	"github.com/specialistvlad/mpcexport/internal/problem"
)

// constraintAt returns the constraint an entry of the constraint table was
// resolved from.
func constraintAt(p *problem.Problem, e layout.Entry) *problem.Constraint {
	return p.Groups[e.Group].Constraints[e.Block]
}

// boundsOf returns the bounds of a constraint, checked against its entry.
func boundsOf(p *problem.Problem, e layout.Entry) (lower, upper []float64, err error) {
	c := constraintAt(p, e)
	if len(c.Lower) != e.Size() || len(c.Upper) != e.Size() {
		return nil, nil, &layout.UnsupportedShapeError{
			Kind:   layout.Constraints,
			Group:  e.GroupLabel,
			Block:  e.Name,
			Rows:   e.Rows,
			Cols:   e.Cols,
			Detail: fmt.Sprintf("%d lower and %d upper bounds for %d scalars", len(c.Lower), len(c.Upper), e.Size()),
		}
	}
	return c.Lower, c.Upper, nil
}

// UpdateBounds emits, for every constraint block with a shutdown predicate,
// a branch that relaxes its bounds to -INF/+INF while the predicate holds and
// restores the exported bounds otherwise. Blocks without a predicate keep
// the LBG_DEF/UBG_DEF values and produce no code.
func UpdateBounds(ctx context.Context, p *problem.Problem, cons *layout.Table) (codegen.Fragment, error) {
	logger := ctxlog.FromContext(ctx)

	var frag codegen.Fragment
	for _, e := range cons.Entries() {
		pred, ok := p.ShutdownFor(e.GroupLabel, e.Name)
		if !ok {
			continue
		}
		lower, upper, err := boundsOf(p, e)
		if err != nil {
			return nil, err
		}
		cond, err := pred.Render(predicate.RuntimeTimeVariable)
		if err != nil {
			return nil, fmt.Errorf("constraint %q in group %q: %w", e.Name, e.GroupLabel, err)
		}
		logger.Debug("Shutdown predicate rendered.", "group", e.GroupLabel, "constraint", e.Name, "condition", cond)

		var relaxed, restored []codegen.Stmt
		for i := 0; i < e.Size(); i++ {
			off := codegen.Int(e.Start + i)
			relaxed = append(relaxed,
				codegen.Assign{L: codegen.Index(lbg, off), R: codegen.Float(math.Inf(-1))},
				codegen.Assign{L: codegen.Index(ubg, off), R: codegen.Float(math.Inf(1))},
			)
			restored = append(restored,
				codegen.Assign{L: codegen.Index(lbg, off), R: codegen.Float(lower[i])},
				codegen.Assign{L: codegen.Index(ubg, off), R: codegen.Float(upper[i])},
			)
		}
		frag = append(frag, codegen.If{Cond: codegen.Verbatim(cond), Then: relaxed, Else: restored})
	}
	return frag, nil
}
