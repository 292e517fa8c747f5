package selfheal

import (
	"fmt"
	"strings"
)

// ValidationError marks generated output that failed a structural check.
// The executor retries it the same way as a failed generation call.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed: %s: %v", e.Message, e.Err)
	}
	return "validation failed: " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildError marks generated code that failed the external build check.
type BuildError struct {
	Output string
}

func (e *BuildError) Error() string {
	return "build check failed: " + e.Output
}

// ExhaustedError is returned after the attempt bound is reached with no
// success. It carries the full repair log for diagnostics.
type ExhaustedError struct {
	Attempts  int
	LastErr   error
	RepairLog []string
}

func (e *ExhaustedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "exhausted %d attempts: %v", e.Attempts, e.LastErr)
	if len(e.RepairLog) > 0 {
		b.WriteString("\nrepair log:\n  ")
		b.WriteString(strings.Join(e.RepairLog, "\n  "))
	}
	return b.String()
}

func (e *ExhaustedError) Unwrap() error {
	return e.LastErr
}
