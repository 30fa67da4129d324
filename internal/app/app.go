package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/vk/atmconf/internal/ctxlog"
	"github.com/vk/atmconf/internal/hclcase"
	"github.com/vk/atmconf/internal/registry"
)

// App encapsulates one configuration-build invocation.
type App struct {
	outW   io.Writer
	logger *slog.Logger
}

// NewApp constructs an App with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config) *App {
	return &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, outW),
	}
}

// Run loads the case, derives the configuration, and writes the derived
// outputs when an output path is configured.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.", "case", cfg.CasePath)

	caseVars, err := hclcase.Load(cfg.CasePath)
	if err != nil {
		return fmt.Errorf("failed to load case file: %w", err)
	}
	a.logger.Debug("Case file loaded.")

	reg, err := registry.Build(ctx, caseVars)
	if err != nil {
		return fmt.Errorf("configuration build failed: %w", err)
	}
	a.logger.Info("Configuration derived.",
		"variables", len(reg.Names()),
		"namelist_groups", len(reg.NamelistGroups()),
		"cpp_flags", len(reg.CppFlags()))

	// Record the conventional generator output locations under the build
	// root; the generators themselves run in a later build phase.
	bld := reg.BldRoot()
	if err := reg.RecordGeneratedPaths(
		filepath.Join(bld, "registry"),
		filepath.Join(bld, "ccpp_physics"),
		filepath.Join(bld, "init_routines"),
	); err != nil {
		return fmt.Errorf("failed to record generated-code paths: %w", err)
	}

	if cfg.OutPath != "" {
		if err := writeDerived(cfg.OutPath, reg); err != nil {
			return fmt.Errorf("failed to write derived output: %w", err)
		}
		a.logger.Info("Derived output written.", "path", cfg.OutPath)
	}

	a.logger.Debug("App.Run finished.")
	return nil
}
