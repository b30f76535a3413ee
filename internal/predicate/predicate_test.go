package predicate

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{name: "syntax error", src: "t >", want: "failed to parse predicate"},
		{name: "unknown variable", src: "x > 2", want: `may only reference "t"`},
		{name: "attribute access", src: "t.foo > 2", want: `may only reference "t"`},
		{name: "unknown function", src: "sqrt(t) > 2", want: `unsupported function "sqrt"`},
		{name: "string literal", src: `t == "now"`, want: "unsupported expression"},
		{name: "template", src: `"${t}"`, want: "unsupported expression"},
		{name: "tuple", src: "[t]", want: "unsupported expression"},
		{name: "arithmetic", src: "t + 1", want: "must be a boolean condition"},
		{name: "bare time", src: "t", want: "must be a boolean condition"},
		{name: "function result", src: "abs(t)", want: "must be a boolean condition"},
		{name: "negated number", src: "-t", want: "must be a boolean condition"},
		{name: "numeric branches", src: "t > 1 ? t : 0", want: "must be a boolean condition"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestEval(t *testing.T) {
	testCases := []struct {
		src  string
		time float64
		want bool
	}{
		{src: "t > 2 && t < 4", time: 3, want: true},
		{src: "t > 2 && t < 4", time: 4, want: false},
		{src: "t > 2 && t < 4", time: 2, want: false},
		{src: "t >= 5", time: 5, want: true},
		{src: "!(t >= 5)", time: 5, want: false},
		{src: "t < 1 || t > 9", time: 9.5, want: true},
		{src: "t % 2 == 0", time: 4, want: true},
		{src: "t % 2 == 0", time: 3, want: false},
		{src: "abs(t - 5) < 1", time: 4.5, want: true},
		{src: "max(t, 3, 1) == 3", time: 2, want: true},
		{src: "floor(t) == 2", time: 2.7, want: true},
		{src: "t > 1 ? t < 2 : false", time: 1.5, want: true},
		{src: "true", time: 0, want: true},
	}
	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			p, err := Parse(tc.src)
			require.NoError(t, err)
			got, err := p.Eval(tc.time)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got, "at t=%v", tc.time)
		})
	}
}

func TestEval_NotBool(t *testing.T) {
	expr, diags := hclsyntax.ParseExpression([]byte("t + 1"), "predicate", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	p := &Predicate{src: "t + 1", expr: expr}
	_, err := p.Eval(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not evaluate to a bool")
}

func TestRender(t *testing.T) {
	testCases := []struct {
		src  string
		want string
	}{
		{src: "t >= 5", want: "current_time >= 5.0"},
		{src: "(t >= 5)", want: "current_time >= 5.0"},
		{src: "t > 2 && t < 4", want: "(current_time > 2.0) && (current_time < 4.0)"},
		{src: "t > 0.25", want: "current_time > 0.25"},
		{src: "!(t >= 5)", want: "!(current_time >= 5.0)"},
		{src: "t % 2 == 0", want: "fmod(current_time, 2.0) == 0.0"},
		{src: "abs(t - 5) < 1", want: "fabs(current_time - 5.0) < 1.0"},
		{src: "min(t, 1, 2) > 0", want: "fmin(current_time, fmin(1.0, 2.0)) > 0.0"},
		{src: "t > 1 ? t < 2 : false", want: "(current_time > 1.0) ? (current_time < 2.0) : false"},
		{src: "-(-t) > 1", want: "-(-current_time) > 1.0"},
		{src: "t < -(-3)", want: "current_time < -(-3.0)"},
		{src: "-t < -1", want: "-current_time < -1.0"},
	}
	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			p, err := Parse(tc.src)
			require.NoError(t, err)
			got, err := p.Render(RuntimeTimeVariable)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.src, p.String())
		})
	}
}

func TestFromExpression(t *testing.T) {
	src := []byte("shutdown = t > 2 && t < 4\n")
	file, diags := hclsyntax.ParseConfig(src, "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	attrs, diags := file.Body.JustAttributes()
	require.False(t, diags.HasErrors(), diags.Error())

	p, err := FromExpression(attrs["shutdown"].Expr, src)
	require.NoError(t, err)
	assert.Equal(t, "t > 2 && t < 4", p.String())

	got, err := p.Eval(3)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestFromExpression_Invalid(t *testing.T) {
	src := []byte("shutdown = speed > 2\n")
	file, diags := hclsyntax.ParseConfig(src, "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	attrs, _ := file.Body.JustAttributes()

	_, err := FromExpression(attrs["shutdown"].Expr, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test.hcl:1")
}
