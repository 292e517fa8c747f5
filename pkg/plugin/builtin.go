package plugin

import (
	"context"

	"github.com/loomworks/loom/pkg/generator"
)

// Builtins returns the built-in generator entries. They are registered at
// registry construction and are always available.
func Builtins() []Entry {
	return []Entry{
		{
			Target:      "web",
			Description: "Full-stack web scaffold: schema, handlers, and UI descriptors",
			New: func() (GeneratorPlugin, error) {
				return &webPlugin{}, nil
			},
		},
		{
			Target:      "api",
			Description: "Backend-only scaffold: schema and handlers, no UI",
			New: func() (GeneratorPlugin, error) {
				return &apiPlugin{}, nil
			},
		},
	}
}

// webPlugin generates the full artifact set for a blueprint.
type webPlugin struct{}

func (*webPlugin) Generate(_ context.Context, in Input) (*generator.Manifest, error) {
	return generator.Generate(in.Blueprint)
}

// apiPlugin generates schema migrations and handler sets only.
type apiPlugin struct{}

func (*apiPlugin) Generate(_ context.Context, in Input) (*generator.Manifest, error) {
	m := &generator.Manifest{}
	m.Files = append(m.Files, generator.SchemaArtifacts(in.Blueprint)...)

	api, err := generator.APIArtifacts(in.Blueprint)
	if err != nil {
		return nil, err
	}
	m.Files = append(m.Files, api...)

	return m, m.Validate()
}
