package generator

import (
	"testing"

	"github.com/loomworks/loom/pkg/blueprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableFor(t *testing.T) {
	s := &blueprint.Strand{
		Name: "Task",
		Fields: []blueprint.Field{
			{Name: "title", Type: blueprint.FieldText},
			{Name: "done", Type: blueprint.FieldBoolean},
		},
	}

	table := TableFor(s)
	assert.Equal(t, "tasks", table.Name)

	// fields + id + created_at + updated_at
	require.Len(t, table.Columns, len(s.Fields)+3)
	assert.Equal(t, Column{Name: "id", Type: "TEXT", PrimaryKey: true}, table.Columns[0])
	assert.Equal(t, Column{Name: "title", Type: "TEXT"}, table.Columns[1])
	assert.Equal(t, Column{Name: "done", Type: "BOOLEAN"}, table.Columns[2])
	assert.Equal(t, "created_at", table.Columns[3].Name)
	assert.Equal(t, "updated_at", table.Columns[4].Name)
}

func TestTableFor_ColumnCountMatchesFields(t *testing.T) {
	strands := []*blueprint.Strand{
		{Name: "Empty"},
		{Name: "One", Fields: []blueprint.Field{{Name: "a", Type: blueprint.FieldText}}},
		{Name: "Many", Fields: []blueprint.Field{
			{Name: "a", Type: blueprint.FieldText},
			{Name: "b", Type: blueprint.FieldInteger},
			{Name: "c", Type: blueprint.FieldDecimal},
			{Name: "d", Type: blueprint.FieldBoolean},
			{Name: "e", Type: blueprint.FieldTimestamp},
		}},
	}

	for _, s := range strands {
		t.Run(s.Name, func(t *testing.T) {
			table := TableFor(s)
			assert.Len(t, table.Columns, len(s.Fields)+3)
		})
	}
}

func TestCreateSQL(t *testing.T) {
	s := &blueprint.Strand{
		Name:   "Task",
		Fields: []blueprint.Field{{Name: "title", Type: blueprint.FieldText}},
	}

	sql := TableFor(s).CreateSQL()
	assert.Contains(t, sql, "CREATE TABLE tasks (")
	assert.Contains(t, sql, "id TEXT PRIMARY KEY,")
	assert.Contains(t, sql, "title TEXT,")
	assert.Contains(t, sql, "updated_at TIMESTAMP\n")
	assert.Contains(t, sql, ");")
}

func TestSchemaArtifacts_NumberedPerStrand(t *testing.T) {
	bp, err := blueprint.Parse("strand Task { field title: Text }\nstrand Category { field name: Text }")
	require.NoError(t, err)

	artifacts := SchemaArtifacts(bp)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "migrations/001_create_tasks.sql", artifacts[0].Path)
	assert.Equal(t, "migrations/002_create_categories.sql", artifacts[1].Path)
	assert.False(t, artifacts[0].Overwrite)
}

func TestNames(t *testing.T) {
	tests := []struct {
		strand string
		want   string
	}{
		{"Task", "tasks"},
		{"Category", "categories"},
		{"BlogPost", "blog_posts"},
		{"Status", "statuses"},
		{"Box", "boxes"},
		{"Day", "days"},
	}

	for _, tt := range tests {
		t.Run(tt.strand, func(t *testing.T) {
			assert.Equal(t, tt.want, tableName(tt.strand))
		})
	}
}
