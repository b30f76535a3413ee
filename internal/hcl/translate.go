package hcl

import (
	"context"
	"fmt"

	"github.com/specialistvlad/mpcexport/internal/ctxlog"
	"github.com/specialistvlad/mpcexport/internal/hclutil"
	"github.com/specialistvlad/mpcexport/internal/predicate"
	"github.com/specialistvlad/mpcexport/internal/problem"
)

// translateSettings copies the attributes set in a problem block onto p.
func translateSettings(p *problem.Problem, pb *problemBlock) {
	if pb.NDim != nil {
		p.NDim = *pb.NDim
	}
	if pb.Tolerance != nil {
		p.Tolerance = *pb.Tolerance
	}
	if pb.LinearSolver != nil {
		p.LinearSolver = *pb.LinearSolver
	}
	if pb.HorizonTime != nil {
		p.HorizonTime = *pb.HorizonTime
	}
	if pb.KnotIntervals != nil {
		p.KnotIntervals = *pb.KnotIntervals
	}
	if pb.BasisLength != nil {
		p.BasisLength = *pb.BasisLength
	}
	if pb.Point2Point != nil {
		p.Point2Point = problem.Point2PointKind(*pb.Point2Point)
	}
	if pb.VehicleLabel != nil {
		p.VehicleLabel = *pb.VehicleLabel
	}
	if pb.P2PLabel != nil {
		p.P2PLabel = *pb.P2PLabel
	}
	if pb.ObstacleLabels != nil {
		p.ObstacleLabels = pb.ObstacleLabels
	}
}

// translateGroup converts a group block. Shutdown predicates are registered
// on p under the constraint's qualified name.
func translateGroup(ctx context.Context, p *problem.Problem, gb *groupBlock, src []byte) (*problem.Group, error) {
	logger := ctxlog.FromContext(ctx)

	g := &problem.Group{
		Label:   gb.Label,
		Splines: make(map[string]*problem.SplinePrimitive),
	}
	for _, v := range gb.Variables {
		g.Variables = append(g.Variables, translateShape(v.Name, v.Rows, v.Cols))
	}
	for _, v := range gb.Parameters {
		g.Parameters = append(g.Parameters, translateShape(v.Name, v.Rows, v.Cols))
	}

	for _, cb := range gb.Constraints {
		c := &problem.Constraint{Block: *translateShape(cb.Name, cb.Rows, cb.Cols)}
		var err error
		if c.Lower, err = decodeBounds(cb.Lower); err != nil {
			return nil, fmt.Errorf("constraint %q in group %q: lower: %w", cb.Name, gb.Label, err)
		}
		if c.Upper, err = decodeBounds(cb.Upper); err != nil {
			return nil, fmt.Errorf("constraint %q in group %q: upper: %w", cb.Name, gb.Label, err)
		}
		g.Constraints = append(g.Constraints, c)

		if !hclutil.IsExprDefined(ctx, cb.Shutdown, "shutdown") {
			continue
		}
		pred, err := predicate.FromExpression(cb.Shutdown, src)
		if err != nil {
			return nil, fmt.Errorf("constraint %q in group %q: shutdown: %w", cb.Name, gb.Label, err)
		}
		p.Shutdown[problem.QualifiedName(gb.Label, cb.Name)] = pred
		logger.Debug("Shutdown predicate registered.", "group", gb.Label, "constraint", cb.Name, "predicate", pred.String())
	}

	for _, sb := range gb.Splines {
		if _, dup := g.Splines[sb.Name]; dup {
			return nil, fmt.Errorf("duplicate spline %q in group %q", sb.Name, gb.Label)
		}
		spl := &problem.SplinePrimitive{BasisLength: sb.BasisLength}
		if hclutil.IsExprDefined(ctx, sb.Transform, "transform") {
			m, err := decodeMatrix(sb.Transform)
			if err != nil {
				return nil, fmt.Errorf("spline %q in group %q: transform: %w", sb.Name, gb.Label, err)
			}
			spl.Transform = m
		}
		g.Splines[sb.Name] = spl
	}
	return g, nil
}

func translateShape(name string, rows, cols *int) *problem.Block {
	b := &problem.Block{Name: name, Rows: 1, Cols: 1}
	if rows != nil {
		b.Rows = *rows
	}
	if cols != nil {
		b.Cols = *cols
	}
	return b
}
