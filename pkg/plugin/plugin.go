// Package plugin maps target-platform identifiers to generator
// implementations. Built-in targets are registered when the registry is
// constructed and can never be removed; externally supplied plugins are
// discovered by a filesystem naming convention and invoked through a
// narrow process-runner collaborator.
package plugin

import (
	"context"
	"fmt"

	"github.com/loomworks/loom/pkg/blueprint"
	"github.com/loomworks/loom/pkg/generator"
)

// Options are the per-run knobs passed to a generator plugin.
type Options struct {
	ProjectName string `json:"project_name"`
	Database    string `json:"database"`
	Theme       string `json:"theme,omitempty"`
}

// Input is everything a plugin needs to service one generation request.
type Input struct {
	// Blueprint is the parsed, resolved schema model.
	Blueprint *blueprint.Blueprint

	// Source is the original blueprint text, for plugins that run out of
	// process and re-parse it themselves.
	Source string

	Options Options
}

// GeneratorPlugin services generation requests for one target.
type GeneratorPlugin interface {
	Generate(ctx context.Context, in Input) (*generator.Manifest, error)
}

// Entry describes one registered target: its identifier, a description for
// listings, and a factory producing the plugin instance.
type Entry struct {
	Target      string
	Description string
	New         func() (GeneratorPlugin, error)

	// builtin entries cannot be shadowed or removed.
	builtin bool
}

// LoadError marks a candidate plugin that is malformed or unresolvable.
// It is logged and skipped, never fatal to the overall run: the target is
// simply unavailable.
type LoadError struct {
	Target string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("plugin for target %q failed to load: %v", e.Target, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
