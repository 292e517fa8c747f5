package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/loomworks/loom/internal/backend"
	"github.com/loomworks/loom/pkg/generator"
	"github.com/loomworks/loom/pkg/selfheal"
)

// validateSchema applies every generated migration to the backend. A
// failing script is routed through the self-healing loop: the completer
// proposes a corrected script, and the fix replaces the artifact content
// in the manifest so what lands on disk is what actually applied.
func (e *Engine) validateSchema(ctx context.Context, m *generator.Manifest) error {
	ex := e.selfHealer()

	for i := range m.Files {
		a := &m.Files[i]
		if !strings.HasSuffix(a.Path, ".sql") {
			continue
		}

		gen := func(ctx context.Context, repair *selfheal.Repair) (string, error) {
			if repair == nil {
				return a.Content, nil
			}
			out, err := e.completer.Complete(ctx, repairSchemaSystemPrompt,
				repairSchemaUserPrompt(a.Content, repair), e.complOpts)
			if err != nil {
				return "", err
			}
			return selfheal.StripFence(out), nil
		}

		validate := func(script string) error {
			if err := backend.Apply(ctx, e.backend, script); err != nil {
				return &selfheal.ValidationError{Message: err.Error(), Err: err}
			}
			return nil
		}

		res := selfheal.Run(ctx, ex, gen, validate)
		if !res.Success {
			return fmt.Errorf("schema validation failed for %s: %w", a.Path, res.Err)
		}
		if res.Attempts > 1 {
			e.logger.Warn("migration repaired before applying",
				"path", a.Path, "attempts", res.Attempts)
			a.Content = res.Data
		}
	}
	return nil
}
