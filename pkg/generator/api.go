package generator

import (
	"encoding/json"
	"fmt"

	"github.com/loomworks/loom/pkg/blueprint"
)

// Operation is one CRUD handler in a generated handler set.
type Operation struct {
	Name   string `json:"name"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

// HandlerSet is the per-strand request-handler descriptor: four operations
// over the strand's collection and item routes.
type HandlerSet struct {
	Strand     string      `json:"strand"`
	Resource   string      `json:"resource"`
	Fields     []Column    `json:"fields"`
	Operations []Operation `json:"operations"`
}

// HandlersFor derives the handler set for a strand.
func HandlersFor(s *blueprint.Strand) HandlerSet {
	resource := tableName(s.Name)
	collection := "/api/" + resource
	item := collection + "/{id}"

	fields := make([]Column, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, Column{Name: snakeCase(f.Name), Type: sqlTypes[f.Type]})
	}

	return HandlerSet{
		Strand:   s.Name,
		Resource: resource,
		Fields:   fields,
		Operations: []Operation{
			{Name: "list", Method: "GET", Path: collection},
			{Name: "create", Method: "POST", Path: collection},
			{Name: "update", Method: "PUT", Path: item},
			{Name: "delete", Method: "DELETE", Path: item},
		},
	}
}

// APIArtifacts generates one handler-set artifact per strand.
func APIArtifacts(bp *blueprint.Blueprint) ([]Artifact, error) {
	artifacts := make([]Artifact, 0, len(bp.Strands))
	for _, s := range bp.Strands {
		set := HandlersFor(s)
		content, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal handler set for %s: %w", s.Name, err)
		}
		artifacts = append(artifacts, Artifact{
			Path:    fmt.Sprintf("api/%s.json", set.Resource),
			Content: string(content) + "\n",
		})
	}
	return artifacts, nil
}
