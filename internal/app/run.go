package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/mpcexport/internal/ctxlog"
	"github.com/specialistvlad/mpcexport/internal/export"
	"github.com/specialistvlad/mpcexport/internal/simulate"
	"github.com/specialistvlad/mpcexport/internal/synth"
)

// Run synthesizes the artifacts, checks them against the reference runtime
// and writes the export. Nothing is written unless synthesis and the
// self-check succeed.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	res, err := synth.Synthesize(ctx, a.problem, a.config.BuildOptions())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := simulate.SelfCheck(ctx, a.problem, res.Tables); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	rendered := res.Artifacts.Render()

	if a.config.Print {
		for _, key := range res.Artifacts.Keys() {
			fmt.Fprintf(a.outW, "// %s\n%s\n", export.Placeholder(key), rendered[key])
		}
	}

	if err := os.MkdirAll(a.config.Directory, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if len(a.config.TemplateDirs) == 0 {
		a.logger.Warn("No template directory given, no source files staged.")
	} else {
		files, err := export.Stage(ctx, a.config.TemplateDirs, a.config.Directory)
		if err != nil {
			return err
		}
		if err := export.Fill(ctx, files, rendered); err != nil {
			return err
		}
		a.logger.Info("Templates filled.", "files", len(files))
	}

	if a.config.LayoutReport != "" {
		if err := export.WriteLayoutReport(a.config.LayoutReport, res.Tables); err != nil {
			return err
		}
		a.logger.Info("Layout report written.", "path", a.config.LayoutReport)
	}

	a.logger.Info("Export written.", "directory", a.config.Directory)
	a.logger.Info("Check out instructions.txt for build and usage instructions.")
	a.logger.Debug("App.Run method finished.")
	return nil
}
