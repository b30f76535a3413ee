package codegen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpressions(t *testing.T) {
	testCases := []struct {
		name string
		expr Expr
		want string
	}{
		{name: "nested keys", expr: Key(Ident("par_dict"), "vehicle0", "p0"), want: `par_dict["vehicle0"]["p0"]`},
		{name: "index with offset", expr: Index(Ident("var_vect"), Plus(Int(12), Ident("i"))), want: "var_vect[12+i]"},
		{name: "zero offset dropped", expr: Index(Ident("var_vect"), Plus(Int(0), Ident("i"))), want: "var_vect[i]"},
		{name: "method call", expr: Method(Ident("vec"), "resize", Int(3)), want: "vec.resize(3)"},
		{name: "call", expr: Call("fabs", Ident("x")), want: "fabs(x)"},
		{name: "integral float", expr: Float(5), want: "5"},
		{name: "small float", expr: Float(1e-6), want: "1e-06"},
		{name: "negative float", expr: Float(-1.5), want: "-1.5"},
		{name: "positive infinity", expr: Float(math.Inf(1)), want: "+INF"},
		{name: "negative infinity", expr: Float(math.Inf(-1)), want: "-INF"},
		{name: "string", expr: Str("mumps"), want: `"mumps"`},
		{name: "float list", expr: FloatList([]float64{0, -1}), want: "{0,-1}"},
		{name: "empty list", expr: FloatList(nil), want: "{}"},
		{name: "string list", expr: StrList([]string{"a", "b"}), want: `{"a","b"}`},
		{name: "matrix", expr: Matrix([][]float64{{1, 0}, {0.5, 1}}), want: "{{1,0},{0.5,1}}"},
		{name: "binary", expr: Bin(Ident("a"), " > ", Int(0)), want: "a > 0"},
		{name: "paren", expr: Paren{X: Bin(Ident("a"), " and ", Ident("b"))}, want: "(a and b)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, String(tc.expr))
		})
	}
}

func TestFragment_Render(t *testing.T) {
	frag := Fragment{
		Decl{Type: "vector<double>", Name: "vec"},
		For{Var: "i", Count: Int(3), Body: []Stmt{
			Assign{L: Index(Ident("vec"), Ident("i")), R: Index(Ident("v"), Plus(Int(4), Ident("i")))},
		}},
		If{
			Cond: Ident("flag"),
			Then: []Stmt{AddAssign{L: Ident("x"), R: Int(1)}},
			Else: []Stmt{ExprStmt{X: Method(Ident("vec"), "clear")}},
		},
		If{Cond: Ident("other"), Then: []Stmt{Decl{Type: "vector<double>", Name: "tmp", Args: []Expr{Int(4)}}}},
		Decl{Type: "string", Name: "obj_path", Init: Ident("CASADIOBJ")},
	}

	want := "\tvector<double> vec;\n" +
		"\tfor (int i=0; i<3; i++){\n" +
		"\t\tvec[i] = v[4+i];\n" +
		"\t}\n" +
		"\tif (flag){\n" +
		"\t\tx += 1;\n" +
		"\t}else{\n" +
		"\t\tvec.clear();\n" +
		"\t}\n" +
		"\tif (other){\n" +
		"\t\tvector<double> tmp(4);\n" +
		"\t}\n" +
		"\tstring obj_path = CASADIOBJ;\n"
	assert.Equal(t, want, frag.Render())
	assert.Equal(t, "", Fragment(nil).Render())
}

func TestDefines_Render(t *testing.T) {
	defs := Defines{
		{Name: "N_VAR", Value: Int(3)},
		{Name: "LINEAR_SOLVER", Value: Str("mumps")},
	}
	assert.Equal(t, "#define N_VAR 3\n#define LINEAR_SOLVER \"mumps\"\n", defs.Render())

	v, ok := defs.Lookup("N_VAR")
	require.True(t, ok)
	assert.Equal(t, "3", String(v))
	_, ok = defs.Lookup("N_PAR")
	assert.False(t, ok)
}

func TestArtifacts_Merge(t *testing.T) {
	a := Artifacts{"defines": Defines{}}
	require.NoError(t, a.Merge(Artifacts{"executable": Text("Executable")}))
	require.Error(t, a.Merge(Artifacts{"defines": Text("")}))

	assert.Equal(t, []string{"defines", "executable"}, a.Keys())
	assert.Equal(t, map[string]string{"defines": "", "executable": "Executable"}, a.Render())
}
