// Package selfheal provides a bounded-retry executor for generation steps
// whose result is produced by an external, fallible call and must satisfy a
// validator. Each retry is strictly informed by the immediately preceding
// failure: the generator receives a repair context carrying the prior error,
// so attempts are never run speculatively in parallel.
package selfheal

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultMaxRepairAttempts is the number of extra attempts beyond the first.
const DefaultMaxRepairAttempts = 2

// Repair carries the failure context handed to a retry attempt. It is nil
// on the first attempt.
type Repair struct {
	// Attempt is the ordinal of the failed attempt (1-based).
	Attempt int

	// LastError is the message of the immediately preceding failure.
	LastError string

	// LastOutput is the prior textual output, when the step produces text.
	// Repair prompts should fix this output rather than regenerate from
	// scratch.
	LastOutput string
}

// Result is the outcome of one executor call. The executor never returns a
// Go error directly; callers inspect the result.
type Result[T any] struct {
	Success  bool
	Data     T
	Err      error
	Attempts int

	// RepairLog records each failed attempt as "Attempt N: <error>". It is
	// a value threaded through the retry loop, not shared mutable state.
	RepairLog []string
}

// GenerateFunc produces a candidate result, optionally informed by the
// failure of the previous attempt.
type GenerateFunc[T any] func(ctx context.Context, repair *Repair) (T, error)

// ValidateFunc checks a candidate result, returning an error when invalid.
type ValidateFunc[T any] func(data T) error

// Executor runs generation steps under a bounded self-healing retry loop.
type Executor struct {
	// MaxRepairAttempts is the number of retries after the first attempt.
	MaxRepairAttempts int

	// AttemptTimeout bounds each attempt's wall-clock time when positive;
	// the attempt count alone does not protect against a hung call.
	AttemptTimeout time.Duration

	Logger *slog.Logger
}

// New creates an Executor with default bounds.
func New(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{
		MaxRepairAttempts: DefaultMaxRepairAttempts,
		Logger:            logger,
	}
}

func (e *Executor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// Run executes gen under the retry loop, validating each candidate. On
// generator or validator failure the error is appended to the repair log
// and, if attempts remain, the next generator invocation receives it as
// repair context. Attempts run strictly sequentially.
func Run[T any](ctx context.Context, e *Executor, gen GenerateFunc[T], validate ValidateFunc[T]) Result[T] {
	maxAttempts := e.MaxRepairAttempts + 1
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var (
		repairLog []string
		repair    *Repair
		lastErr   error
	)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result[T]{Err: err, Attempts: attempt - 1, RepairLog: repairLog}
		}

		data, err := runAttempt(ctx, e, gen, validate, repair)
		if err == nil {
			return Result[T]{
				Success:   true,
				Data:      data,
				Attempts:  attempt,
				RepairLog: repairLog,
			}
		}

		lastErr = err
		repairLog = append(repairLog, fmt.Sprintf("Attempt %d: %v", attempt, err))
		e.logger().Warn("generation attempt failed",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"error", err)

		repair = &Repair{Attempt: attempt, LastError: err.Error()}
		// Text-producing steps repair the prior output instead of
		// regenerating from scratch.
		if s, ok := any(data).(string); ok {
			repair.LastOutput = s
		}
	}

	exhausted := &ExhaustedError{
		Attempts:  maxAttempts,
		LastErr:   lastErr,
		RepairLog: repairLog,
	}
	return Result[T]{Err: exhausted, Attempts: maxAttempts, RepairLog: repairLog}
}

// runAttempt performs one generate+validate cycle under the per-attempt
// deadline.
func runAttempt[T any](ctx context.Context, e *Executor, gen GenerateFunc[T], validate ValidateFunc[T], repair *Repair) (T, error) {
	if e.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.AttemptTimeout)
		defer cancel()
	}

	data, err := gen(ctx, repair)
	if err != nil {
		return data, err
	}
	if validate != nil {
		if err := validate(data); err != nil {
			return data, err
		}
	}
	return data, nil
}
