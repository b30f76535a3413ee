package synth

import (
	"github.com/specialistvlad/mpcexport/internal/codegen"
	"github.com/specialistvlad/mpcexport/internal/layout"
)

// copyBlock emits dst[start..start+size) = src[0..size), looping when the
// block has more than one scalar.
func copyBlock(dst codegen.Expr, src codegen.Expr, e layout.Entry) codegen.Stmt {
	if e.Size() == 1 {
		return codegen.Assign{
			L: codegen.Index(dst, codegen.Int(e.Start)),
			R: codegen.Index(src, codegen.Int(0)),
		}
	}
	i := codegen.Ident("i")
	return codegen.For{Var: "i", Count: codegen.Int(e.Size()), Body: []codegen.Stmt{
		codegen.Assign{
			L: codegen.Index(dst, codegen.Plus(codegen.Int(e.Start), i)),
			R: codegen.Index(src, i),
		},
	}}
}

// ParameterPack emits the copy of every parameter block from par_dict into
// par_vect.
func ParameterPack(params *layout.Table) codegen.Fragment {
	var frag codegen.Fragment
	for _, e := range params.Entries() {
		frag = append(frag, copyBlock(parVect, codegen.Key(parDict, e.GroupLabel, e.Name), e))
	}
	return frag
}

// contains builds `m.find("key") != m.end()`.
func contains(m codegen.Expr, key string) codegen.Expr {
	return codegen.Bin(codegen.Method(m, "find", codegen.Str(key)), " != ", codegen.Method(m, "end"))
}

// VariablePack emits the copy of every variable block from var_dict into
// var_vect. Groups and blocks missing from var_dict at run time are skipped,
// leaving their part of var_vect untouched.
func VariablePack(vars *layout.Table) codegen.Fragment {
	var frag codegen.Fragment
	for _, group := range groupRuns(vars) {
		label := group[0].GroupLabel
		groupDict := codegen.Key(varDict, label)
		var body []codegen.Stmt
		for _, e := range group {
			body = append(body, codegen.If{
				Cond: contains(groupDict, e.Name),
				Then: []codegen.Stmt{copyBlock(varVect, codegen.Key(varDict, label, e.Name), e)},
			})
		}
		frag = append(frag, codegen.If{Cond: contains(varDict, label), Then: body})
	}
	return frag
}

// VariableUnpack emits the rebuild of var_dict from var_vect, one vector per
// block.
func VariableUnpack(vars *layout.Table) codegen.Fragment {
	if vars.Len() == 0 {
		return nil
	}
	vec := codegen.Ident("vec")
	frag := codegen.Fragment{codegen.Decl{Type: "vector<double>", Name: "vec"}}
	for _, e := range vars.Entries() {
		frag = append(frag, codegen.ExprStmt{X: codegen.Method(vec, "resize", codegen.Int(e.Size()))})
		if e.Size() == 1 {
			frag = append(frag, codegen.Assign{
				L: codegen.Index(vec, codegen.Int(0)),
				R: codegen.Index(varVect, codegen.Int(e.Start)),
			})
		} else {
			i := codegen.Ident("i")
			frag = append(frag, codegen.For{Var: "i", Count: codegen.Int(e.Size()), Body: []codegen.Stmt{
				codegen.Assign{
					L: codegen.Index(vec, i),
					R: codegen.Index(varVect, codegen.Plus(codegen.Int(e.Start), i)),
				},
			}})
		}
		frag = append(frag, codegen.Assign{L: codegen.Key(varDict, e.GroupLabel, e.Name), R: vec})
	}
	return frag
}

// groupRuns splits a table's entries into consecutive runs of one group.
func groupRuns(tbl *layout.Table) [][]layout.Entry {
	var runs [][]layout.Entry
	for _, e := range tbl.Entries() {
		n := len(runs)
		if n > 0 && runs[n-1][0].Group == e.Group {
			runs[n-1] = append(runs[n-1], e)
			continue
		}
		runs = append(runs, []layout.Entry{e})
	}
	return runs
}
