package testutil

import (
	"testing"

	"github.com/specialistvlad/mpcexport/internal/predicate"
	"github.com/specialistvlad/mpcexport/internal/problem"
	"github.com/stretchr/testify/require"
)

// MustPredicate parses src or fails the test.
func MustPredicate(t *testing.T, src string) *predicate.Predicate {
	t.Helper()
	p, err := predicate.Parse(src)
	require.NoError(t, err, "failed to parse predicate %q", src)
	return p
}

// Identity returns an n x n identity matrix.
func Identity(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	return m
}

// ScenarioProblem is the minimal single-group problem: a 1x3 spline variable,
// a scalar parameter and a 2x1 constraint without a shutdown predicate.
func ScenarioProblem() *problem.Problem {
	return &problem.Problem{
		Groups: []*problem.Group{{
			Label:      "vehicle0",
			Variables:  []*problem.Block{{Name: "x", Rows: 1, Cols: 3}},
			Parameters: []*problem.Block{{Name: "p0", Rows: 1, Cols: 1}},
			Constraints: []*problem.Constraint{{
				Block: problem.Block{Name: "c0", Rows: 2, Cols: 1},
				Lower: []float64{0, -1},
				Upper: []float64{5, 1},
			}},
			Splines: map[string]*problem.SplinePrimitive{
				"x": {BasisLength: 1, Transform: Identity(1)},
			},
		}},
		NDim:           2,
		Tolerance:      1e-3,
		LinearSolver:   "mumps",
		VehicleLabel:   "vehicle0",
		P2PLabel:       "p2p0",
		ObstacleLabels: []string{},
		Point2Point:    problem.FixedTime,
		HorizonTime:    10,
		KnotIntervals:  5,
		BasisLength:    1,
	}
}

// ShiftMatrix returns an n x n matrix that moves coefficient i+1 into i and
// repeats the last one, a recognisable stand-in for a basis change.
func ShiftMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		j := i + 1
		if j >= n {
			j = n - 1
		}
		m[i][j] = 1
	}
	return m
}

// MultiGroupProblem has two vehicles and an obstacle, shutdown predicates on
// two constraints, splines of different basis lengths and substitutes.
func MultiGroupProblem(t *testing.T) *problem.Problem {
	t.Helper()
	return &problem.Problem{
		Groups: []*problem.Group{
			{
				Label: "vehicle0",
				Variables: []*problem.Block{
					{Name: "splines0", Rows: 4, Cols: 2},
					{Name: "T", Rows: 1, Cols: 1},
				},
				Parameters: []*problem.Block{
					{Name: "state0", Rows: 2, Cols: 1},
					{Name: "t", Rows: 1, Cols: 1},
				},
				Constraints: []*problem.Constraint{
					{
						Block: problem.Block{Name: "init", Rows: 2, Cols: 1},
						Lower: []float64{0, 0},
						Upper: []float64{0, 0},
					},
					{
						Block: problem.Block{Name: "vmax", Rows: 1, Cols: 1},
						Lower: []float64{-1.5},
						Upper: []float64{1.5},
					},
				},
				Splines: map[string]*problem.SplinePrimitive{
					"splines0": {BasisLength: 4, Transform: ShiftMatrix(4)},
				},
			},
			{
				Label:      "obstacle0",
				Variables:  []*problem.Block{{Name: "a", Rows: 1, Cols: 2}},
				Parameters: []*problem.Block{{Name: "pos", Rows: 2, Cols: 1}},
				Constraints: []*problem.Constraint{{
					Block: problem.Block{Name: "sep", Rows: 3, Cols: 1},
					Lower: []float64{0, 0, 0},
					Upper: []float64{1, 2, 3},
				}},
			},
			{
				Label:     "vehicle1",
				Variables: []*problem.Block{{Name: "splines1", Rows: 5, Cols: 1}},
				Constraints: []*problem.Constraint{{
					Block: problem.Block{Name: "term", Rows: 1, Cols: 2},
					Lower: []float64{-0.5, 0.25},
					Upper: []float64{0.5, 0.75},
				}},
				Splines: map[string]*problem.SplinePrimitive{
					"splines1": {BasisLength: 5, Transform: ShiftMatrix(5)},
					// Declared as a primitive but not a variable: never transformed.
					"ghost": {BasisLength: 3, Transform: Identity(3)},
				},
			},
		},
		NDim:           2,
		Tolerance:      1e-5,
		LinearSolver:   "ma57",
		VehicleLabel:   "vehicle0",
		P2PLabel:       "p2p0",
		ObstacleLabels: []string{"obstacle0"},
		Point2Point:    problem.FixedTime,
		HorizonTime:    10,
		KnotIntervals:  5,
		BasisLength:    4,
		Shutdown: map[string]*predicate.Predicate{
			problem.QualifiedName("vehicle0", "vmax"): MustPredicate(t, "t > 2 && t < 4"),
			problem.QualifiedName("obstacle0", "sep"): MustPredicate(t, "t >= 5"),
		},
		Substitutes: []problem.Substitute{
			{Group: "vehicle0", Name: "fun0"},
			{Group: "obstacle0", Name: "dist"},
		},
	}
}
