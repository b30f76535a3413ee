package synth

import (
	"github.com/specialistvlad/mpcexport/internal/codegen"
	"github.com/specialistvlad/mpcexport/internal/layout"
	"github.com/specialistvlad/mpcexport/internal/problem"
)

// Defines emits the static constants of the runtime: dimension counts,
// solver settings, labels, the free-time flag, one NAME_TF matrix literal
// per spline target, and the LBG_DEF/UBG_DEF bound arrays in constraint
// offset order.
func Defines(p *problem.Problem, tables *layout.Tables, targets []SplineTarget) (codegen.Defines, error) {
	var freeT codegen.Ident
	switch p.Point2Point {
	case problem.FreeTime:
		freeT = "true"
	case problem.FixedTime:
		freeT = "false"
	default:
		return nil, &UnsupportedProblemKindError{Kind: p.Point2Point}
	}

	defs := codegen.Defines{
		{Name: "N_VAR", Value: codegen.Int(tables.Variables.Size())},
		{Name: "N_PAR", Value: codegen.Int(tables.Parameters.Size())},
		{Name: "N_CON", Value: codegen.Int(tables.Constraints.Size())},
		{Name: "TOL", Value: codegen.Float(p.Tolerance)},
		{Name: "LINEAR_SOLVER", Value: codegen.Str(p.LinearSolver)},
		{Name: "N_DIM", Value: codegen.Int(p.NDim)},
		{Name: "N_OBS", Value: codegen.Int(len(p.ObstacleLabels))},
		{Name: "VEHICLELBL", Value: codegen.Str(p.VehicleLabel)},
		{Name: "P2PLBL", Value: codegen.Str(p.P2PLabel)},
		{Name: "OBSTACLELBLS", Value: codegen.StrList(p.ObstacleLabels)},
		{Name: "FREET", Value: freeT},
	}
	for _, s := range targets {
		defs = append(defs, codegen.Define{Name: s.DefineName(), Value: codegen.Matrix(s.Transform)})
	}

	lower, upper, err := BoundArrays(p, tables.Constraints)
	if err != nil {
		return nil, err
	}
	defs = append(defs,
		codegen.Define{Name: "LBG_DEF", Value: codegen.FloatList(lower)},
		codegen.Define{Name: "UBG_DEF", Value: codegen.FloatList(upper)},
	)
	return defs, nil
}

// BoundArrays concatenates every constraint's bounds in the order the
// constraint table assigns offsets, so lower[off] belongs to offset off.
func BoundArrays(p *problem.Problem, cons *layout.Table) (lower, upper []float64, err error) {
	lower = make([]float64, 0, cons.Size())
	upper = make([]float64, 0, cons.Size())
	for _, e := range cons.Entries() {
		lo, up, err := boundsOf(p, e)
		if err != nil {
			return nil, nil, err
		}
		lower = append(lower, lo...)
		upper = append(upper, up...)
	}
	return lower, upper, nil
}
