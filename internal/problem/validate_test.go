// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package problem_test

import (
	"math"
	"testing"

	"github.com/specialistvlad/mpcexport/internal/problem"
	"github.com/specialistvlad/mpcexport/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(p *problem.Problem)
		want   string
	}{
		{
			name:   "valid",
			mutate: func(p *problem.Problem) {},
		},
		{
			name:   "empty group label",
			mutate: func(p *problem.Problem) { p.Groups[1].Label = "" },
			want:   "group with empty label",
		},
		{
			name:   "duplicate group",
			mutate: func(p *problem.Problem) { p.Groups[2].Label = "vehicle0" },
			want:   `duplicate group "vehicle0"`,
		},
		{
			name:   "duplicate variable",
			mutate: func(p *problem.Problem) { p.Groups[0].Variables[1].Name = "splines0" },
			want:   `duplicate variable "splines0" in group "vehicle0"`,
		},
		{
			name:   "unnamed parameter",
			mutate: func(p *problem.Problem) { p.Groups[1].Parameters[0].Name = "" },
			want:   `parameter with empty name in group "obstacle0"`,
		},
		{
			name:   "duplicate constraint",
			mutate: func(p *problem.Problem) { p.Groups[0].Constraints[1].Name = "init" },
			want:   `duplicate constraint "init"`,
		},
		{
			name:   "bound length mismatch",
			mutate: func(p *problem.Problem) { p.Groups[1].Constraints[0].Upper = []float64{1, 2} },
			want:   "has 3 scalars but 3 lower and 2 upper bounds",
		},
		{
			name:   "NaN lower bound",
			mutate: func(p *problem.Problem) { p.Groups[1].Constraints[0].Lower[1] = math.NaN() },
			want:   `lower bound 1 of constraint "sep" in group "obstacle0" is NaN`,
		},
		{
			name:   "NaN upper bound",
			mutate: func(p *problem.Problem) { p.Groups[2].Constraints[0].Upper[0] = math.NaN() },
			want:   `upper bound 0 of constraint "term" in group "vehicle1" is NaN`,
		},
		{
			name: "non-square transform",
			mutate: func(p *problem.Problem) {
				p.Groups[0].Splines["splines0"].Transform[2] = []float64{1, 0}
			},
			want: "non-square transform (row 2 has 2 entries, want 4)",
		},
		{
			name: "shutdown for unknown constraint",
			mutate: func(p *problem.Problem) {
				p.Shutdown[problem.QualifiedName("vehicle1", "vmax")] = testutil.MustPredicate(t, "t > 1")
			},
			want: `unknown constraint "vehicle1.vmax"`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := testutil.MultiGroupProblem(t)
			tc.mutate(p)

			err := p.Validate()
			if tc.want == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, problem.ErrInvalidProblem)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidate_LeavesShapesToResolver(t *testing.T) {
	p := testutil.ScenarioProblem()
	p.Groups[0].Constraints[0].Rows = 0

	require.NoError(t, p.Validate())
}

func TestProblemLookups(t *testing.T) {
	p := testutil.MultiGroupProblem(t)

	g, ok := p.Group("obstacle0")
	require.True(t, ok)
	assert.Equal(t, "obstacle0", g.Label)
	_, ok = p.Group("nope")
	assert.False(t, ok)

	v, ok := p.Groups[0].Variable("T")
	require.True(t, ok)
	assert.Equal(t, 1, v.Size())
	_, ok = p.Groups[0].Variable("a")
	assert.False(t, ok)

	pred, ok := p.ShutdownFor("vehicle0", "vmax")
	require.True(t, ok)
	assert.Equal(t, "t > 2 && t < 4", pred.String())
	_, ok = p.ShutdownFor("vehicle0", "init")
	assert.False(t, ok)

	p.Shutdown = nil
	_, ok = p.ShutdownFor("vehicle0", "vmax")
	assert.False(t, ok)
}

func TestApplyDefaults(t *testing.T) {
	p := &problem.Problem{
		Groups: []*problem.Group{{
			Label: "vehicle0",
			Splines: map[string]*problem.SplinePrimitive{
				"a": {BasisLength: 3},
				"b": {BasisLength: 7},
				"c": nil,
			},
		}},
	}
	p.ApplyDefaults()

	assert.Equal(t, problem.DefaultNDim, p.NDim)
	assert.Equal(t, problem.DefaultTolerance, p.Tolerance)
	assert.Equal(t, problem.DefaultLinearSolver, p.LinearSolver)
	assert.Equal(t, problem.FixedTime, p.Point2Point)
	assert.Equal(t, 7, p.BasisLength)
	assert.NotNil(t, p.ObstacleLabels)

	p = testutil.MultiGroupProblem(t)
	p.ApplyDefaults()
	assert.Equal(t, "ma57", p.LinearSolver)
	assert.Equal(t, 1e-5, p.Tolerance)
	assert.Equal(t, 4, p.BasisLength)
}

func TestParseBound(t *testing.T) {
	testCases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "inf", want: math.Inf(1)},
		{in: "+inf", want: math.Inf(1)},
		{in: " -INF ", want: math.Inf(-1)},
		{in: "1.5", want: 1.5},
		{in: "-2", want: -2},
		{in: "1e-3", want: 1e-3},
		{in: "infinity-ish", wantErr: true},
		{in: "", wantErr: true},
		{in: "nan", wantErr: true},
		{in: " NaN ", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := problem.ParseBound(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
