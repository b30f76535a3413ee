package synth

import (
	"strings"

	"github.com/specialistvlad/mpcexport/internal/codegen"
	"github.com/specialistvlad/mpcexport/internal/problem"
)

// SubstituteSource is the C file an external code generator writes for a
// substitute function.
func SubstituteSource(name string) string {
	return "subst_" + name + ".c"
}

// SubstituteObject is the shared object the runtime loads for a substitute.
func SubstituteObject(name string) string {
	return "subst_" + name + ".so"
}

// GenerateSubstituteFunctions emits the loading of every substitute function
// from CASADIOBJ.
func GenerateSubstituteFunctions(p *problem.Problem) codegen.Fragment {
	frag := codegen.Fragment{codegen.Decl{Type: "string", Name: string(objPath), Init: codegen.Ident("CASADIOBJ")}}
	for _, s := range p.Substitutes {
		frag = append(frag, codegen.Assign{
			L: codegen.Key(substFuncs, s.Name),
			R: codegen.Call("external", codegen.Str(s.Name), codegen.Bin(objPath, "+", codegen.Str("/"+SubstituteObject(s.Name)))),
		})
	}
	return frag
}

// ProbSources lists the substitute sources, space separated, for the makefile.
func ProbSources(p *problem.Problem) string {
	names := make([]string, len(p.Substitutes))
	for i, s := range p.Substitutes {
		names[i] = SubstituteSource(s.Name)
	}
	return strings.Join(names, " ")
}
