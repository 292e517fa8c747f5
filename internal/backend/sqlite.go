package backend

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

func init() {
	Register("sqlite", func(logger *slog.Logger) Backend {
		return NewSQLite(logger)
	})
}

// SQLiteBackend applies schema migrations to a SQLite database using the
// pure-Go modernc.org/sqlite driver, so no cgo toolchain is required.
type SQLiteBackend struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLite creates an unconnected SQLite backend.
func NewSQLite(logger *slog.Logger) *SQLiteBackend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteBackend{logger: logger}
}

// Connect opens the database at cfg.Path, creating the file if needed.
// An empty path defaults to an in-memory database.
func (b *SQLiteBackend) Connect(ctx context.Context, cfg Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening sqlite database %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("connecting to sqlite database %s: %w", path, err)
	}

	b.db = db
	b.logger.Debug("connected to sqlite database", "path", path)
	return nil
}

// Exec executes a statement that returns no rows.
func (b *SQLiteBackend) Exec(ctx context.Context, query string) error {
	if b.db == nil {
		return fmt.Errorf("sqlite backend not connected")
	}
	if _, err := b.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("executing statement: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (b *SQLiteBackend) Close() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// DialectName identifies the SQL dialect.
func (b *SQLiteBackend) DialectName() string {
	return "sqlite"
}
