// Package completion provides the language-model client used for drafting
// blueprints and repairing failed generation attempts.
//
// The Completer interface is the seam the engine depends on; Client is the
// HTTP implementation speaking the OpenAI-compatible chat completions
// protocol, which local runtimes such as Ollama and vLLM also serve.
package completion

import (
	"context"
	"fmt"
)

// Options are the per-request model parameters.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// Completer produces a single text completion for a prompt pair.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error)
}

// Error kinds, for callers that branch on failure class.
const (
	KindTransport = "transport"
	KindAuth      = "auth"
	KindRateLimit = "rate_limit"
	KindAPI       = "api"
)

// CallError classifies a failed completion call.
type CallError struct {
	Kind    string
	Status  int
	Message string
	Err     error
}

func (e *CallError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("completion call failed (%s, HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("completion call failed (%s): %s", e.Kind, e.Message)
}

func (e *CallError) Unwrap() error {
	return e.Err
}
