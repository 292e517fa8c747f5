package generator

import (
	"time"

	"github.com/loomworks/loom/pkg/blueprint"
)

// Metadata describes one generation run.
type Metadata struct {
	RunID       string    `json:"run_id"`
	ProjectName string    `json:"project_name"`
	GeneratedAt time.Time `json:"generated_at"`
	Version     string    `json:"version"`
	Target      string    `json:"target"`
	Database    string    `json:"database,omitempty"`
	AI          string    `json:"ai,omitempty"`
}

// Manifest is the sole handoff contract to the file-writing collaborator:
// the files to materialize plus run metadata. The core never touches a
// filesystem itself.
type Manifest struct {
	Files    []Artifact `json:"files"`
	Metadata Metadata   `json:"metadata"`
}

// Validate checks that artifact paths are unique within the run. A path may
// repeat only when the later artifact is explicitly marked overwritable.
func (m *Manifest) Validate() error {
	seen := make(map[string]struct{}, len(m.Files))
	for _, f := range m.Files {
		if _, dup := seen[f.Path]; dup && !f.Overwrite {
			return &DuplicatePathError{Path: f.Path}
		}
		seen[f.Path] = struct{}{}
	}
	return nil
}

// Generate produces the complete artifact set for a resolved blueprint:
// schema migrations, handler sets, and UI descriptors.
func Generate(bp *blueprint.Blueprint) (*Manifest, error) {
	m := &Manifest{}
	m.Files = append(m.Files, SchemaArtifacts(bp)...)

	api, err := APIArtifacts(bp)
	if err != nil {
		return nil, err
	}
	m.Files = append(m.Files, api...)

	ui, err := UIArtifacts(bp)
	if err != nil {
		return nil, err
	}
	m.Files = append(m.Files, ui...)

	return m, m.Validate()
}
