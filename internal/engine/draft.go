package engine

import (
	"context"
	"fmt"

	"github.com/loomworks/loom/pkg/blueprint"
	"github.com/loomworks/loom/pkg/selfheal"
)

// Draft asks the model to write a blueprint from a plain-language
// description. Output that fails to parse or resolve is fed back through
// the self-healing loop until it is valid or the repair budget runs out.
func (e *Engine) Draft(ctx context.Context, description string) (string, error) {
	if e.completer == nil {
		return "", fmt.Errorf("drafting requires an AI completer; set ai.base_url in loom.yaml")
	}

	ex := e.selfHealer()

	gen := func(ctx context.Context, repair *selfheal.Repair) (string, error) {
		out, err := e.completer.Complete(ctx, draftSystemPrompt,
			draftUserPrompt(description, repair), e.complOpts)
		if err != nil {
			return "", err
		}
		return selfheal.StripFence(out), nil
	}

	validate := func(source string) error {
		bp, err := blueprint.Parse(source)
		if err != nil {
			return &selfheal.ValidationError{Message: err.Error(), Err: err}
		}
		if err := blueprint.Resolve(bp); err != nil {
			return &selfheal.ValidationError{Message: err.Error(), Err: err}
		}
		if len(bp.Strands) == 0 {
			return &selfheal.ValidationError{Message: "blueprint declares no strands"}
		}
		return nil
	}

	res := selfheal.Run(ctx, ex, gen, validate)
	if !res.Success {
		return "", fmt.Errorf("drafting failed after %d attempts: %w", res.Attempts, res.Err)
	}
	if res.Attempts > 1 {
		e.logger.Info("draft repaired", "attempts", res.Attempts)
	}
	return res.Data, nil
}
