package selfheal

import (
	"context"
	"encoding/json"
)

// RunJSON executes a text-producing generation step whose response embeds a
// JSON value. Each attempt extracts the balanced JSON substring from the
// raw response, unmarshals it into T, and validates the result. A response
// with no balanced structure is a validation failure and triggers a repair
// attempt like any other.
func RunJSON[T any](ctx context.Context, e *Executor, gen GenerateFunc[string], validate ValidateFunc[T]) Result[T] {
	return Run(ctx, e, func(ctx context.Context, repair *Repair) (T, error) {
		var zero T

		raw, err := gen(ctx, repair)
		if err != nil {
			return zero, err
		}

		text, err := ExtractJSON(raw)
		if err != nil {
			return zero, &ValidationError{Message: "response contains no JSON", Err: err}
		}

		var out T
		if err := json.Unmarshal([]byte(text), &out); err != nil {
			return zero, &ValidationError{Message: "response JSON does not parse", Err: err}
		}
		return out, nil
	}, validate)
}

// CheckResult is the outcome of an external build check.
type CheckResult struct {
	Success bool
	Error   string
}

// BuildChecker is the external collaborator that compiles or otherwise
// checks generated code. It is invoked once per attempt.
type BuildChecker interface {
	Check(ctx context.Context, code string) CheckResult
}

// RunCode executes a code-producing generation step validated by an
// external build check. On failure the repair context carries both the
// error and the failing code, so the generator can repair that code given
// that error instead of regenerating from scratch.
func RunCode(ctx context.Context, e *Executor, gen GenerateFunc[string], checker BuildChecker) Result[string] {
	return Run(ctx, e, gen, func(code string) error {
		res := checker.Check(ctx, code)
		if !res.Success {
			return &BuildError{Output: res.Error}
		}
		return nil
	})
}
