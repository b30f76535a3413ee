package synth

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/specialistvlad/mpcexport/internal/codegen"
	"github.com/specialistvlad/mpcexport/internal/ctxlog"
	"github.com/specialistvlad/mpcexport/internal/layout"
	"github.com/specialistvlad/mpcexport/internal/predicate"
	"github.com/specialistvlad/mpcexport/internal/problem"
)

const (
	// KnotTimeResolution is the factor elapsed time is rounded with before
	// the knot test (millisecond resolution).
	KnotTimeResolution = 1000.0
	// KnotTolerance is how close to a knot multiple the rounded time must be,
	// on either side of it.
	KnotTolerance = 1e-6
)

// SplineTarget is a spline-backed variable whose coefficients are re-based
// after a knot crossing.
type SplineTarget struct {
	Entry     layout.Entry
	Transform [][]float64
}

// DefineName is the name of the target's transform-matrix define.
func (s SplineTarget) DefineName() string {
	return TransformDefineName(s.Entry.Name)
}

// TransformDefineName maps a variable name to its NAME_TF define.
func TransformDefineName(name string) string {
	upper := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, name)
	return upper + "_TF"
}

// SplineTargets collects, in variable-table order, every variable that is
// also a spline primitive of its group and carries a transform matrix.
// A transform whose dimension differs from the block's row count fails.
func SplineTargets(ctx context.Context, p *problem.Problem, vars *layout.Table) ([]SplineTarget, error) {
	logger := ctxlog.FromContext(ctx)

	var targets []SplineTarget
	byDefine := make(map[string]layout.Entry)
	for _, e := range vars.Entries() {
		spl, ok := p.Groups[e.Group].Splines[e.Name]
		if !ok || spl == nil {
			continue
		}
		if spl.Transform == nil {
			logger.Warn("Spline primitive has no transform matrix, coefficients will not be re-based.", "group", e.GroupLabel, "variable", e.Name)
			continue
		}
		if len(spl.Transform) != e.Rows {
			return nil, &layout.UnsupportedShapeError{
				Kind:   layout.Variables,
				Group:  e.GroupLabel,
				Block:  e.Name,
				Rows:   e.Rows,
				Cols:   e.Cols,
				Detail: fmt.Sprintf("transform matrix is %dx%d, want %dx%d", len(spl.Transform), len(spl.Transform), e.Rows, e.Rows),
			}
		}
		target := SplineTarget{Entry: e, Transform: spl.Transform}
		if owner, dup := byDefine[target.DefineName()]; dup {
			return nil, &UnsupportedConfigurationError{
				Feature: "spline transforms",
				Reason: fmt.Sprintf("variables %s and %s both map to transform define %s; transform names must be unique",
					problem.QualifiedName(owner.GroupLabel, owner.Name), problem.QualifiedName(e.GroupLabel, e.Name), target.DefineName()),
			}
		}
		byDefine[target.DefineName()] = e
		targets = append(targets, target)
	}
	return targets, nil
}

// InitSplines emits the registration of every transform matrix define in
// the runtime's splines_tf map.
func InitSplines(targets []SplineTarget) codegen.Fragment {
	var frag codegen.Fragment
	for _, s := range targets {
		frag = append(frag, codegen.Assign{
			L: codegen.Key(splinesTF, s.Entry.Name),
			R: codegen.Ident(s.DefineName()),
		})
	}
	return frag
}

// knotGuard builds
// (current_time > 0) && fabs(remainder(round(current_time*1000)/1000, horizon_time/K)) < 1e-06
//
// remainder rounds the quotient to the nearest integer, so a rounded time
// landing just below a knot multiple still yields a result near zero.
func knotGuard(knotIntervals int) codegen.Expr {
	now := codegen.Ident(predicate.RuntimeTimeVariable)
	rounded := codegen.Bin(
		codegen.Call("round", codegen.Bin(now, "*", codegen.Float(KnotTimeResolution))),
		"/", codegen.Float(KnotTimeResolution))
	spacing := codegen.Bin(horizon, "/", codegen.Int(knotIntervals))
	return codegen.Bin(
		codegen.Paren{X: codegen.Bin(now, " > ", codegen.Int(0))},
		" && ",
		codegen.Bin(codegen.Call("fabs", codegen.Call("remainder", rounded, spacing)), " < ", codegen.Float(KnotTolerance)),
	)
}

// TransformSplines emits the knot-crossing guard and, inside it, the in-place
// product of every target's transform matrix with each of its stages.
//
// Free-time problems cannot be re-based this way; asking for it with any
// target present is an UnsupportedConfigurationError.
func TransformSplines(ctx context.Context, p *problem.Problem, targets []SplineTarget) (codegen.Fragment, error) {
	switch p.Point2Point {
	case problem.FixedTime:
	case problem.FreeTime:
		if len(targets) > 0 {
			return nil, &UnsupportedConfigurationError{
				Feature: "spline time transform",
				Reason:  "free-time point-to-point problems are not supported",
			}
		}
		return nil, nil
	default:
		return nil, &UnsupportedProblemKindError{Kind: p.Point2Point}
	}
	if len(targets) == 0 {
		return nil, nil
	}
	if p.KnotIntervals <= 0 {
		return nil, &UnsupportedConfigurationError{
			Feature: "spline time transform",
			Reason:  fmt.Sprintf("knot interval count must be positive, got %d", p.KnotIntervals),
		}
	}

	scratch := p.BasisLength
	if scratch < 0 {
		scratch = 0
	}
	body := []codegen.Stmt{codegen.Decl{Type: "vector<double>", Name: string(splineTmp), Args: []codegen.Expr{codegen.Int(scratch)}}}
	for _, s := range targets {
		e := s.Entry
		if e.Rows > scratch {
			scratch = e.Rows
			body = append(body, codegen.ExprStmt{X: codegen.Method(splineTmp, "resize", codegen.Int(scratch))})
		}
		body = append(body, stageProduct(e))
		ctxlog.FromContext(ctx).Debug("Spline transform emitted.", "group", e.GroupLabel, "variable", e.Name, "basis", e.Rows, "stages", e.Cols)
	}
	return codegen.Fragment{codegen.If{Cond: knotGuard(p.KnotIntervals), Then: body}}, nil
}

// stageProduct emits, for every stage k of e:
// spline_tf = TF * variables[start+k*rows : start+(k+1)*rows], then copies it back.
func stageProduct(e layout.Entry) codegen.Stmt {
	i, j, k := codegen.Ident("i"), codegen.Ident("j"), codegen.Ident("k")
	rows := codegen.Int(e.Rows)
	at := func(idx codegen.Expr) codegen.Expr {
		return codegen.Index(variables, codegen.Plus(codegen.Int(e.Start), codegen.Bin(codegen.Bin(k, "*", rows), "+", idx)))
	}
	tf := codegen.Key(splinesTF, e.Name)

	return codegen.For{Var: "k", Count: codegen.Int(e.Cols), Body: []codegen.Stmt{
		codegen.For{Var: "i", Count: rows, Body: []codegen.Stmt{
			codegen.Assign{L: codegen.Index(splineTmp, i), R: codegen.Float(0)},
			codegen.For{Var: "j", Count: rows, Body: []codegen.Stmt{
				codegen.AddAssign{
					L: codegen.Index(splineTmp, i),
					R: codegen.Bin(codegen.Index(tf, i, j), "*", at(j)),
				},
			}},
		}},
		codegen.For{Var: "i", Count: rows, Body: []codegen.Stmt{
			codegen.Assign{L: at(i), R: codegen.Index(splineTmp, i)},
		}},
	}}
}
