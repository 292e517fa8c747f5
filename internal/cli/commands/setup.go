package commands

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/loomworks/loom/internal/backend"
	"github.com/loomworks/loom/internal/cli/config"
	"github.com/loomworks/loom/internal/completion"
	"github.com/loomworks/loom/internal/engine"
	"github.com/loomworks/loom/internal/writer"
	"github.com/loomworks/loom/pkg/plugin"
)

// newRegistry builds the plugin registry: built-ins plus anything
// discovered under the plugins directory.
func newRegistry(cfg *config.Config, logger *slog.Logger) (*plugin.Registry, error) {
	reg := plugin.NewRegistry(logger, plugin.Builtins()...)
	if cfg.PluginsDir != "" {
		if err := reg.Discover(cfg.PluginsDir, execRunner{}); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// execRunner invokes external plugin entrypoints as subprocesses, passing
// the request on stdin and reading the manifest from stdout.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, entrypoint string, request []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, entrypoint)
	cmd.Stdin = bytes.NewReader(request)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("plugin process failed: %w", err)
	}
	return out, nil
}

// newEngine wires an engine from config. The completer and backend are
// optional; they are only attached when configured.
func newEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, func(), error) {
	reg, err := newRegistry(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var completer completion.Completer
	if cfg.AI.BaseURL != "" {
		completer = completion.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, logger)
	}

	var be backend.Backend
	cleanup := func() {}
	if cfg.Database.Type != "" {
		be, err = backend.New(backend.Config{Type: cfg.Database.Type, Path: cfg.Database.Path}, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := be.Connect(context.Background(), backend.Config{
			Type: cfg.Database.Type,
			Path: cfg.Database.Path,
		}); err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = be.Close() }
	}

	eng, err := engine.New(engine.Config{
		Registry:    reg,
		Completer:   completer,
		Backend:     be,
		Writer:      writer.NewDir(cfg.OutDir, logger),
		Logger:      logger,
		Target:      cfg.Target,
		ProjectName: cfg.ProjectName,
		Database:    cfg.Database.Type,
		Completion: completion.Options{
			Model:     cfg.AI.Model,
			MaxTokens: cfg.AI.MaxTokens,
		},
		MaxRepairAttempts: cfg.AI.MaxRepairAttempts,
		AttemptTimeout:    cfg.AI.AttemptTimeout,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return eng, cleanup, nil
}
