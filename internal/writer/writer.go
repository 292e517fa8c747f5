// Package writer materializes generated manifests onto the filesystem.
package writer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/loomworks/loom/pkg/generator"
)

// manifestPath is where run metadata is recorded inside the output dir.
const manifestPath = ".loom/manifest.json"

// Writer persists a manifest somewhere. The engine depends on this seam so
// tests can capture output in memory.
type Writer interface {
	Write(m *generator.Manifest) error
}

// Dir writes each artifact under a root directory, creating parent
// directories as needed. Existing files are preserved unless the artifact
// asks to overwrite them.
type Dir struct {
	Root   string
	Logger *slog.Logger
}

// NewDir creates a directory writer rooted at root.
func NewDir(root string, logger *slog.Logger) *Dir {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dir{Root: root, Logger: logger}
}

// Write materializes every artifact plus the run metadata record. Artifact
// paths must stay inside the root; anything absolute or escaping via ".."
// is rejected.
func (d *Dir) Write(m *generator.Manifest) error {
	for _, a := range m.Files {
		if !filepath.IsLocal(a.Path) {
			return fmt.Errorf("artifact path %q escapes the output directory", a.Path)
		}

		dest := filepath.Join(d.Root, filepath.FromSlash(a.Path))
		if !a.Overwrite {
			if _, err := os.Stat(dest); err == nil {
				d.Logger.Debug("skipping existing file", "path", a.Path)
				continue
			}
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", a.Path, err)
		}
		if err := os.WriteFile(dest, []byte(a.Content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", a.Path, err)
		}
		d.Logger.Debug("wrote artifact", "path", a.Path, "bytes", len(a.Content))
	}

	return d.writeMetadata(m)
}

func (d *Dir) writeMetadata(m *generator.Manifest) error {
	dest := filepath.Join(d.Root, filepath.FromSlash(manifestPath))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating metadata directory: %w", err)
	}

	record := struct {
		Metadata generator.Metadata `json:"metadata"`
		Files    []string           `json:"files"`
	}{Metadata: m.Metadata}
	for _, a := range m.Files {
		record.Files = append(record.Files, a.Path)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run metadata: %w", err)
	}
	if err := os.WriteFile(dest, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing run metadata: %w", err)
	}
	return nil
}
