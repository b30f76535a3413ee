package layout

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/mpcexport/internal/problem"
	"github.com/specialistvlad/mpcexport/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Scenario(t *testing.T) {
	ctx, _ := testutil.Context(t)
	tables, err := ResolveAll(ctx, testutil.ScenarioProblem())
	require.NoError(t, err)

	x, ok := tables.Variables.Lookup("vehicle0", "x")
	require.True(t, ok)
	assert.Equal(t, 0, x.Start)
	assert.Equal(t, 3, x.End())

	p0, ok := tables.Parameters.Lookup("vehicle0", "p0")
	require.True(t, ok)
	assert.Equal(t, 0, p0.Start)
	assert.Equal(t, 1, p0.End())

	c0, ok := tables.Constraints.Lookup("vehicle0", "c0")
	require.True(t, ok)
	assert.Equal(t, 0, c0.Start)
	assert.Equal(t, 2, c0.End())

	assert.Equal(t, 3, tables.Variables.Size())
	assert.Equal(t, 1, tables.Parameters.Size())
	assert.Equal(t, 2, tables.Constraints.Size())
}

func TestResolve_GroupThenBlockOrder(t *testing.T) {
	ctx, _ := testutil.Context(t)
	tbl, err := Resolve(ctx, testutil.MultiGroupProblem(t), Variables)
	require.NoError(t, err)

	type span struct {
		Group, Name string
		Start, End  int
	}
	var got []span
	for _, e := range tbl.Entries() {
		got = append(got, span{e.GroupLabel, e.Name, e.Start, e.End()})
	}
	want := []span{
		{"vehicle0", "splines0", 0, 8},
		{"vehicle0", "T", 8, 9},
		{"obstacle0", "a", 9, 11},
		{"vehicle1", "splines1", 11, 16},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected layout (-want +got):\n%s", diff)
	}
	assert.Equal(t, 16, tbl.Size())
}

func TestResolve_Deterministic(t *testing.T) {
	ctx, _ := testutil.Context(t)
	p := testutil.MultiGroupProblem(t)

	for _, kind := range []Kind{Variables, Parameters, Constraints} {
		t.Run(kind.String(), func(t *testing.T) {
			first, err := Resolve(ctx, p, kind)
			require.NoError(t, err)
			second, err := Resolve(ctx, p, kind)
			require.NoError(t, err)
			require.Equal(t, first.Entries(), second.Entries())
			require.Equal(t, first.Size(), second.Size())
		})
	}
}

func TestResolve_DenseAndDisjoint(t *testing.T) {
	ctx, _ := testutil.Context(t)
	tables, err := ResolveAll(ctx, testutil.MultiGroupProblem(t))
	require.NoError(t, err)

	for _, kind := range []Kind{Variables, Parameters, Constraints} {
		t.Run(kind.String(), func(t *testing.T) {
			tbl := tables.Of(kind)
			require.NoError(t, tbl.Verify())

			covered := make([]int, tbl.Size())
			for _, e := range tbl.Entries() {
				for off := e.Start; off < e.End(); off++ {
					covered[off]++
				}
			}
			for off, n := range covered {
				require.Equal(t, 1, n, "offset %d covered %d times", off, n)
			}
		})
	}
}

func TestResolve_UnsupportedShape(t *testing.T) {
	testCases := []struct {
		name       string
		rows, cols int
	}{
		{name: "zero rows", rows: 0, cols: 1},
		{name: "negative cols", rows: 2, cols: -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := testutil.Context(t)
			p := testutil.ScenarioProblem()
			p.Groups[0].Parameters = append(p.Groups[0].Parameters, &problem.Block{Name: "bad", Rows: tc.rows, Cols: tc.cols})

			_, err := ResolveAll(ctx, p)
			require.Error(t, err)

			var shapeErr *UnsupportedShapeError
			require.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, Parameters, shapeErr.Kind)
			assert.Equal(t, "vehicle0", shapeErr.Group)
			assert.Equal(t, "bad", shapeErr.Block)
			assert.Contains(t, err.Error(), "must be positive")
		})
	}
}

func TestEntry_Offset(t *testing.T) {
	e := Entry{Rows: 4, Cols: 2, Start: 10}
	assert.Equal(t, 10, e.Offset(0, 0))
	assert.Equal(t, 13, e.Offset(3, 0))
	assert.Equal(t, 14, e.Offset(0, 1))
	assert.Equal(t, 17, e.Offset(3, 1))
	assert.Equal(t, 18, e.End())
}

func TestTable_LookupMissing(t *testing.T) {
	ctx, _ := testutil.Context(t)
	tbl, err := Resolve(ctx, testutil.ScenarioProblem(), Variables)
	require.NoError(t, err)

	_, ok := tbl.Lookup("vehicle0", "nope")
	assert.False(t, ok)
	_, ok = tbl.Lookup("vehicle1", "x")
	assert.False(t, ok)
}
