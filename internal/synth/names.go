package synth

import "github.com/specialistvlad/mpcexport/internal/codegen"

// Identifiers the runtime templates declare.
const (
	parDict    = codegen.Ident("par_dict")
	parVect    = codegen.Ident("par_vect")
	varDict    = codegen.Ident("var_dict")
	varVect    = codegen.Ident("var_vect")
	variables  = codegen.Ident("variables")
	lbg        = codegen.Ident("lbg")
	ubg        = codegen.Ident("ubg")
	splinesTF  = codegen.Ident("splines_tf")
	splineTmp  = codegen.Ident("spline_tf")
	substFuncs = codegen.Ident("substitutes")
	objPath    = codegen.Ident("obj_path")
	horizon    = codegen.Ident("horizon_time")
)
