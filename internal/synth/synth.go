package synth

import (
	"context"
	"fmt"

	"github.com/specialistvlad/mpcexport/internal/codegen"
	"github.com/specialistvlad/mpcexport/internal/ctxlog"
	"github.com/specialistvlad/mpcexport/internal/layout"
	"github.com/specialistvlad/mpcexport/internal/problem"
	"golang.org/x/sync/errgroup"
)

// Artifact keys.
const (
	KeyDefines                     = "defines"
	KeyGetParameterVector          = "getParameterVector"
	KeyGetVariableVector           = "getVariableVector"
	KeyGetVariableDict             = "getVariableDict"
	KeyUpdateBounds                = "updateBounds"
	KeyInitSplines                 = "initSplines"
	KeyTransformSplines            = "transformSplines"
	KeyGenerateSubstituteFunctions = "generateSubstituteFunctions"
	KeyProbSources                 = "probsources"
)

// BuildOptions are the build settings echoed into the templates.
type BuildOptions struct {
	Directory       string
	CasadiOptiflags string
	CasadiLib       string
	CasadiInc       string
	CasadiObj       string
	SourceFiles     string
	Executable      string
}

// DefaultBuildOptions returns the settings used when none are given.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Directory:       "export/",
		CasadiOptiflags: "",
		CasadiLib:       "/usr/local/lib/",
		CasadiInc:       "/usr/local/include/casadi/",
		CasadiObj:       ".",
		SourceFiles:     "test.cpp Holonomic.cpp",
		Executable:      "Executable",
	}
}

// MakeOptions echoes the build options under their template keys.
func MakeOptions(opts BuildOptions, p *problem.Problem) codegen.Artifacts {
	return codegen.Artifacts{
		"directory":        codegen.Text(opts.Directory),
		"casadi_optiflags": codegen.Text(opts.CasadiOptiflags),
		"casadilib":        codegen.Text(opts.CasadiLib),
		"casadiinc":        codegen.Text(opts.CasadiInc),
		"casadiobj":        codegen.Text(opts.CasadiObj),
		"sourcefiles":      codegen.Text(opts.SourceFiles),
		"executable":       codegen.Text(opts.Executable),
		KeyProbSources:     codegen.Text(ProbSources(p)),
	}
}

// Result is the outcome of a successful synthesis.
type Result struct {
	Tables    *layout.Tables
	Targets   []SplineTarget
	Artifacts codegen.Artifacts
}

// Synthesize resolves the offset tables of p and runs every synthesizer
// against them. Synthesizers are independent once the tables exist and run
// concurrently; the first failure aborts the whole synthesis and no
// artifacts are returned.
func Synthesize(ctx context.Context, p *problem.Problem, opts BuildOptions) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Synthesis started.", "groups", len(p.Groups))

	tables, err := layout.ResolveAll(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve offsets: %w", err)
	}
	targets, err := SplineTargets(ctx, p, tables.Variables)
	if err != nil {
		return nil, fmt.Errorf("failed to collect spline targets: %w", err)
	}

	var (
		defines   codegen.Defines
		bounds    codegen.Fragment
		transform codegen.Fragment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		defines, err = Defines(p, tables, targets)
		if err != nil {
			return fmt.Errorf("failed to synthesize defines: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bounds, err = UpdateBounds(ctxlog.With(gctx, "synthesizer", KeyUpdateBounds), p, tables.Constraints)
		if err != nil {
			return fmt.Errorf("failed to synthesize bound switching: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		transform, err = TransformSplines(ctxlog.With(gctx, "synthesizer", KeyTransformSplines), p, targets)
		if err != nil {
			return fmt.Errorf("failed to synthesize spline transform: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	artifacts := codegen.Artifacts{
		KeyDefines:                     defines,
		KeyGetParameterVector:          ParameterPack(tables.Parameters),
		KeyGetVariableVector:           VariablePack(tables.Variables),
		KeyGetVariableDict:             VariableUnpack(tables.Variables),
		KeyUpdateBounds:                bounds,
		KeyInitSplines:                 InitSplines(targets),
		KeyTransformSplines:            transform,
		KeyGenerateSubstituteFunctions: GenerateSubstituteFunctions(p),
	}
	if err := artifacts.Merge(MakeOptions(opts, p)); err != nil {
		return nil, err
	}

	logger.Info("Synthesis complete.",
		"n_var", tables.Variables.Size(),
		"n_par", tables.Parameters.Size(),
		"n_con", tables.Constraints.Size(),
		"spline_targets", len(targets),
		"artifacts", len(artifacts))
	return &Result{Tables: tables, Targets: targets, Artifacts: artifacts}, nil
}
