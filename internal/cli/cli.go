package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/mpcexport/internal/app"
	"github.com/specialistvlad/mpcexport/internal/synth"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const longHelp = `mpcexport - generates the C++ glue of a receding-horizon motion planner.

It reads a Problem Description (.hcl or .yaml, a file or a directory),
lays out the flat variable, parameter and constraint vectors, and fills
the @KEY@ placeholders of the given template files with generated code.`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	def := synth.DefaultBuildOptions()

	var (
		cfg        app.Config
		problemArg string
		ran        bool
	)
	cmd := &cobra.Command{
		Use:           "mpcexport [flags] [PROBLEM_PATH]",
		Short:         "Export a motion-planning problem as C++ runtime code",
		Long:          longHelp,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ran = true
			if len(args) > 0 {
				problemArg = args[0]
			}
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringVarP(&cfg.ProblemPath, "problem", "p", "", "Path to the problem file or directory.")
	flags.StringSliceVarP(&cfg.TemplateDirs, "template-dir", "t", nil, "Template directory to stage into the export (repeatable, later ones win).")
	flags.StringVarP(&cfg.Directory, "directory", "o", def.Directory, "Export directory.")
	flags.StringVar(&cfg.CasadiOptiflags, "casadi-optiflags", def.CasadiOptiflags, "Optimization flags for the generated CasADi sources, e.g. -O3.")
	flags.StringVar(&cfg.CasadiLib, "casadilib", def.CasadiLib, "CasADi library directory.")
	flags.StringVar(&cfg.CasadiInc, "casadiinc", def.CasadiInc, "CasADi include directory.")
	flags.StringVar(&cfg.CasadiObj, "casadiobj", def.CasadiObj, "Directory the runtime loads substitute objects from.")
	flags.StringVar(&cfg.SourceFiles, "sourcefiles", def.SourceFiles, "Space-separated source files for the makefile.")
	flags.StringVar(&cfg.Executable, "executable", def.Executable, "Name of the executable the makefile builds.")
	flags.StringVar(&cfg.LayoutReport, "layout-report", "", "Write an HCL report of the offset tables to this path.")
	flags.BoolVar(&cfg.Print, "print", false, "Print the generated artifacts.")
	flags.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if !ran {
		// --help was handled by cobra.
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.")

	if cfg.ProblemPath == "" {
		cfg.ProblemPath = problemArg
	}
	if cfg.ProblemPath == "" {
		slog.Debug("No problem path provided, printing usage and exiting.")
		_ = cmd.Usage()
		return nil, true, nil
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI parser finished successfully.", "problem", config.ProblemPath)
	return config, false, nil
}

// AsExitError returns err as an ExitError, if it is one.
func AsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	ok := errors.As(err, &exitErr)
	return exitErr, ok
}
