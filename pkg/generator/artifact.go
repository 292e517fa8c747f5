// Package generator derives the coupled output artifacts of a blueprint:
// persistence schema migrations, CRUD handler descriptors, and UI rendering
// descriptors. Generators are pure functions over the parsed blueprint;
// they never perform I/O and never call the self-healing executor; retries
// around externally validated steps happen one layer up.
package generator

import "fmt"

// Artifact is one generated file: a target-relative path, its content, and
// whether it may replace an existing file. Artifacts are produced only by
// generators, fresh on every invocation.
type Artifact struct {
	Path      string `json:"path"`
	Content   string `json:"content"`
	Overwrite bool   `json:"overwrite"`
}

// DuplicatePathError is returned when two artifacts in one generation run
// claim the same path and the later one is not marked overwritable.
type DuplicatePathError struct {
	Path string
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("duplicate artifact path %q in generation run", e.Path)
}
