// Package backend provides database backend interfaces and implementations
// for applying generated schema migrations.
//
// Concrete backends register themselves in their init() functions; callers
// construct one through New using the configured database type.
package backend

import (
	"context"
	"fmt"
	"strings"
)

// Config selects and parameterizes a backend.
type Config struct {
	// Type is the registered backend name, e.g. "sqlite".
	Type string

	// Path is the database location. For sqlite this is a file path or
	// ":memory:".
	Path string
}

// Backend is the contract every database backend implements.
type Backend interface {
	// Connect establishes the database connection.
	Connect(ctx context.Context, cfg Config) error

	// Exec executes a statement that returns no rows.
	Exec(ctx context.Context, sql string) error

	// Close releases the connection and all resources.
	Close() error

	// DialectName identifies the SQL dialect, for diagnostics.
	DialectName() string
}

// Apply executes each DDL statement of a migration script in order. A
// script may contain several statements separated by semicolons; blank
// segments are skipped. The first failing statement aborts the apply.
func Apply(ctx context.Context, b Backend, script string) error {
	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if err := b.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying statement %q: %w", abbreviate(stmt), err)
		}
	}
	return nil
}

// abbreviate truncates a statement for error messages.
func abbreviate(stmt string) string {
	const max = 60
	if len(stmt) <= max {
		return stmt
	}
	return stmt[:max] + "..."
}
