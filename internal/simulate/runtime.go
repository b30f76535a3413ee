package simulate

import (
	"context"
	"fmt"

	"github.com/specialistvlad/mpcexport/internal/ctxlog"
	"github.com/specialistvlad/mpcexport/internal/layout"
	"github.com/specialistvlad/mpcexport/internal/problem"
	"github.com/specialistvlad/mpcexport/internal/synth"
)

// Runtime holds the flat vectors of one controller instance between updates.
type Runtime struct {
	problem *problem.Problem
	tables  *layout.Tables
	targets []synth.SplineTarget

	Variables []float64
	Lower     []float64
	Upper     []float64
}

// NewRuntime starts a runtime with zeroed variables and the default bounds.
func NewRuntime(p *problem.Problem, res *synth.Result) (*Runtime, error) {
	lbg, ubg, err := DefaultBounds(p, res.Tables.Constraints)
	if err != nil {
		return nil, err
	}
	return &Runtime{
		problem:   p,
		tables:    res.Tables,
		targets:   res.Targets,
		Variables: make([]float64, res.Tables.Variables.Size()),
		Lower:     lbg,
		Upper:     ubg,
	}, nil
}

// Load packs a variable dictionary into the runtime's variable vector.
func (r *Runtime) Load(dict Dict) error {
	return PackVariables(r.tables.Variables, dict, r.Variables)
}

// Dict unpacks the runtime's variable vector.
func (r *Runtime) Dict() (Dict, error) {
	return UnpackVariables(r.tables.Variables, r.Variables)
}

// Update runs one control update at elapsed time t: bound switching first,
// then the spline re-basing when t sits on a knot boundary. It reports
// whether the re-basing ran.
func (r *Runtime) Update(ctx context.Context, t float64) (bool, error) {
	if err := UpdateBounds(r.problem, r.tables.Constraints, t, r.Lower, r.Upper); err != nil {
		return false, fmt.Errorf("failed to update bounds at t=%g: %w", t, err)
	}
	if r.problem.Point2Point != problem.FixedTime || !KnotCrossed(t, r.problem.HorizonTime, r.problem.KnotIntervals) {
		return false, nil
	}
	if err := TransformSplines(r.targets, r.Variables); err != nil {
		return false, fmt.Errorf("failed to transform splines at t=%g: %w", t, err)
	}
	ctxlog.FromContext(ctx).Debug("Knot crossed, splines re-based.", "t", t, "targets", len(r.targets))
	return true, nil
}
