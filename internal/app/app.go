package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/mpcexport/internal/ctxlog"
	"github.com/specialistvlad/mpcexport/internal/problem"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	problem *problem.Problem
}

// NewApp is the constructor for the main application. It loads the Problem
// Description with the given loader; a problem that cannot be loaded is a
// fatal startup error and panics.
func NewApp(outW io.Writer, cfg *Config, loader problem.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	p, err := loader.Load(ctx, cfg.ProblemPath)
	if err != nil {
		panic(fmt.Errorf("failed to load problem: %w", err))
	}
	logger.Debug("Problem description loaded.", "groups", len(p.Groups))

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		problem: p,
	}
}

// Problem returns the loaded Problem Description. This is primarily for testing.
func (a *App) Problem() *problem.Problem {
	return a.problem
}
