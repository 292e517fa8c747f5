package generator

import (
	"fmt"
	"strings"

	"github.com/loomworks/loom/pkg/blueprint"
)

// Column describes one column of a generated table.
type Column struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	PrimaryKey bool   `json:"primary_key,omitempty"`
}

// TableDescriptor is the target-agnostic persistence descriptor derived
// from one strand: an id primary key, one column per field, and
// created_at/updated_at bookkeeping columns.
type TableDescriptor struct {
	Strand  string   `json:"strand"`
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// sqlTypes maps blueprint field types to column types.
var sqlTypes = map[blueprint.FieldType]string{
	blueprint.FieldText:      "TEXT",
	blueprint.FieldInteger:   "INTEGER",
	blueprint.FieldDecimal:   "REAL",
	blueprint.FieldBoolean:   "BOOLEAN",
	blueprint.FieldTimestamp: "TIMESTAMP",
}

// TableFor derives the table descriptor for a strand.
func TableFor(s *blueprint.Strand) TableDescriptor {
	t := TableDescriptor{
		Strand: s.Name,
		Name:   tableName(s.Name),
	}
	t.Columns = append(t.Columns, Column{Name: "id", Type: "TEXT", PrimaryKey: true})
	for _, f := range s.Fields {
		t.Columns = append(t.Columns, Column{
			Name: snakeCase(f.Name),
			Type: sqlTypes[f.Type],
		})
	}
	t.Columns = append(t.Columns,
		Column{Name: "created_at", Type: "TIMESTAMP"},
		Column{Name: "updated_at", Type: "TIMESTAMP"},
	)
	return t
}

// CreateSQL renders the CREATE TABLE statement for the descriptor.
func (t TableDescriptor) CreateSQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", t.Name)
	for i, c := range t.Columns {
		fmt.Fprintf(&b, "    %s %s", c.Name, c.Type)
		if c.PrimaryKey {
			b.WriteString(" PRIMARY KEY")
		}
		if i < len(t.Columns)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(");\n")
	return b.String()
}

// SchemaArtifacts generates one numbered migration artifact per strand,
// in blueprint declaration order.
func SchemaArtifacts(bp *blueprint.Blueprint) []Artifact {
	artifacts := make([]Artifact, 0, len(bp.Strands))
	for i, s := range bp.Strands {
		table := TableFor(s)
		artifacts = append(artifacts, Artifact{
			Path:    fmt.Sprintf("migrations/%03d_create_%s.sql", i+1, table.Name),
			Content: table.CreateSQL(),
		})
	}
	return artifacts
}
