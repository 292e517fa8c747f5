// Package engine orchestrates a generation run: parse the blueprint,
// resolve references, hand the model to the target plugin, validate the
// produced schema against the database backend, and materialize the
// artifacts.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/loomworks/loom/internal/backend"
	"github.com/loomworks/loom/internal/completion"
	"github.com/loomworks/loom/internal/writer"
	"github.com/loomworks/loom/pkg/blueprint"
	"github.com/loomworks/loom/pkg/generator"
	"github.com/loomworks/loom/pkg/plugin"
	"github.com/loomworks/loom/pkg/selfheal"
)

// Version is stamped into run metadata. Overridden at build time via
// -ldflags "-X github.com/loomworks/loom/internal/engine.Version=...".
var Version = "dev"

// Engine drives blueprint compilation end to end.
type Engine struct {
	registry  *plugin.Registry
	completer completion.Completer
	backend   backend.Backend
	writer    writer.Writer
	logger    *slog.Logger

	target      string
	projectName string
	database    string
	complOpts   completion.Options

	maxRepairAttempts int
	attemptTimeout    time.Duration
}

// Config holds engine configuration.
type Config struct {
	// Registry maps targets to generator plugins (required).
	Registry *plugin.Registry
	// Completer drafts blueprints and proposes repairs. Optional; without
	// one, drafting is unavailable and schema validation gets no repair
	// budget.
	Completer completion.Completer
	// Backend validates generated schemas by applying them. Optional;
	// without one, schema validation is skipped.
	Backend backend.Backend
	// Writer materializes the manifest (required).
	Writer writer.Writer
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger

	Target      string
	ProjectName string
	Database    string

	// Completion carries the model parameters for every completer call.
	Completion completion.Options

	MaxRepairAttempts int
	AttemptTimeout    time.Duration
}

// New creates an engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("engine requires a plugin registry")
	}
	if cfg.Writer == nil {
		return nil, fmt.Errorf("engine requires a writer")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	target := cfg.Target
	if target == "" {
		target = "web"
	}

	return &Engine{
		registry:          cfg.Registry,
		completer:         cfg.Completer,
		backend:           cfg.Backend,
		writer:            cfg.Writer,
		logger:            logger,
		target:            target,
		projectName:       cfg.ProjectName,
		database:          cfg.Database,
		complOpts:         cfg.Completion,
		maxRepairAttempts: cfg.MaxRepairAttempts,
		attemptTimeout:    cfg.AttemptTimeout,
	}, nil
}

// Run compiles blueprint source into artifacts and writes them out. The
// returned manifest describes everything that was generated.
func (e *Engine) Run(ctx context.Context, source string) (*generator.Manifest, error) {
	bp, err := blueprint.Parse(source)
	if err != nil {
		return nil, err
	}
	if err := blueprint.Resolve(bp); err != nil {
		return nil, err
	}
	e.logger.Debug("blueprint parsed",
		"strands", len(bp.Strands), "views", len(bp.Views))

	p, err := e.registry.Load(ctx, e.target)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("no plugin for target %q\nAvailable targets: %v",
			e.target, e.registry.Targets())
	}

	manifest, err := p.Generate(ctx, plugin.Input{
		Blueprint: bp,
		Source:    source,
		Options: plugin.Options{
			ProjectName: e.projectName,
			Database:    e.database,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generating for target %q: %w", e.target, err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}

	manifest.Metadata = generator.Metadata{
		RunID:       uuid.NewString(),
		ProjectName: e.projectName,
		GeneratedAt: time.Now().UTC(),
		Version:     Version,
		Target:      e.target,
		Database:    e.database,
		AI:          e.complOpts.Model,
	}

	if e.backend != nil {
		if err := e.validateSchema(ctx, manifest); err != nil {
			return nil, err
		}
	}

	if err := e.writer.Write(manifest); err != nil {
		return nil, fmt.Errorf("writing artifacts: %w", err)
	}

	e.logger.Info("generation complete",
		"run_id", manifest.Metadata.RunID,
		"target", e.target,
		"files", len(manifest.Files))
	return manifest, nil
}

// selfHealer builds the executor shared by schema validation and drafting.
func (e *Engine) selfHealer() *selfheal.Executor {
	ex := selfheal.New(e.logger)
	ex.MaxRepairAttempts = e.maxRepairAttempts
	ex.AttemptTimeout = e.attemptTimeout
	if e.completer == nil {
		// No model to propose fixes; a retry would replay the same input.
		ex.MaxRepairAttempts = 0
	}
	return ex
}
