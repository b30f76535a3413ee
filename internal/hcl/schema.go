package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes every top-level block a problem file may contain.
type fileRoot struct {
	Problems    []*problemBlock    `hcl:"problem,block"`
	Groups      []*groupBlock      `hcl:"group,block"`
	Substitutes []*substituteBlock `hcl:"substitute,block"`
}

// problemBlock carries the solver settings. At most one may be declared
// across all files.
type problemBlock struct {
	NDim           *int     `hcl:"n_dim,optional"`
	Tolerance      *float64 `hcl:"tolerance,optional"`
	LinearSolver   *string  `hcl:"linear_solver,optional"`
	HorizonTime    *float64 `hcl:"horizon_time,optional"`
	KnotIntervals  *int     `hcl:"knot_intervals,optional"`
	BasisLength    *int     `hcl:"basis_length,optional"`
	Point2Point    *string  `hcl:"point2point,optional"`
	VehicleLabel   *string  `hcl:"vehicle_label,optional"`
	P2PLabel       *string  `hcl:"p2p_label,optional"`
	ObstacleLabels []string `hcl:"obstacle_labels,optional"`
}

type groupBlock struct {
	Label       string             `hcl:"label,label"`
	Variables   []*shapeBlock      `hcl:"variable,block"`
	Parameters  []*shapeBlock      `hcl:"parameter,block"`
	Constraints []*constraintBlock `hcl:"constraint,block"`
	Splines     []*splineBlock     `hcl:"spline,block"`
}

// shapeBlock is a variable or parameter. Rows and cols default to 1.
type shapeBlock struct {
	Name string `hcl:"name,label"`
	Rows *int   `hcl:"rows,optional"`
	Cols *int   `hcl:"cols,optional"`
}

type constraintBlock struct {
	Name     string         `hcl:"name,label"`
	Rows     *int           `hcl:"rows,optional"`
	Cols     *int           `hcl:"cols,optional"`
	Lower    hcl.Expression `hcl:"lower"`
	Upper    hcl.Expression `hcl:"upper"`
	Shutdown hcl.Expression `hcl:"shutdown,optional"`
}

type splineBlock struct {
	Name        string         `hcl:"name,label"`
	BasisLength int            `hcl:"basis_length"`
	Transform   hcl.Expression `hcl:"transform,optional"`
}

type substituteBlock struct {
	Group string `hcl:"group,label"`
	Name  string `hcl:"name,label"`
}
