package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/mpcexport/internal/app"
	"github.com/specialistvlad/mpcexport/internal/cli"
)

// main is the entrypoint for the mpcexport application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := cli.AsExitError(err); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics when the problem cannot be loaded; turn that into an
	// ordinary error for the caller.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	loader, err := app.SelectLoader(appConfig.ProblemPath)
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	exporter := app.NewApp(outW, appConfig, loader)

	return exporter.Run(context.Background())
}
