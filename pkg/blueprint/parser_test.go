package blueprint_test

import (
	"testing"

	"github.com/loomworks/loom/pkg/blueprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_StrandAndView(t *testing.T) {
	src := `
strand Task {
  field title: Text
  field done: Boolean
}

view TaskList {
  list: Task.all()
  theme: dark
}
`
	bp, err := blueprint.Parse(src)
	require.NoError(t, err)

	require.Len(t, bp.Strands, 1)
	task := bp.Strands[0]
	assert.Equal(t, "Task", task.Name)
	require.Len(t, task.Fields, 2)
	assert.Equal(t, blueprint.Field{Name: "title", Type: blueprint.FieldText}, task.Fields[0])
	assert.Equal(t, blueprint.Field{Name: "done", Type: blueprint.FieldBoolean}, task.Fields[1])

	require.Len(t, bp.Views, 1)
	view := bp.Views[0]
	assert.Equal(t, "TaskList", view.Name)
	assert.Equal(t, "Task.all()", view.Props["list"])
	assert.Equal(t, "dark", view.Theme())

	name, ok := view.ListStrand()
	require.True(t, ok)
	assert.Equal(t, "Task", name)
}

func TestParse_SingleLine(t *testing.T) {
	// The end-to-end shape from the docs: everything on one line.
	src := `strand Task { field title: String field done: Boolean } view TaskList { list: Task.all() }`

	bp, err := blueprint.Parse(src)
	require.NoError(t, err)

	require.Len(t, bp.Strands, 1)
	require.Len(t, bp.Strands[0].Fields, 2)
	assert.Equal(t, blueprint.FieldText, bp.Strands[0].Fields[0].Type, "String is a synonym for Text")
	assert.Equal(t, blueprint.FieldBoolean, bp.Strands[0].Fields[1].Type)

	require.Len(t, bp.Views, 1)
	assert.Equal(t, "Task.all()", bp.Views[0].Props["list"])
}

func TestParse_TypeSynonyms(t *testing.T) {
	tests := []struct {
		token string
		want  blueprint.FieldType
	}{
		{"Text", blueprint.FieldText},
		{"string", blueprint.FieldText},
		{"Integer", blueprint.FieldInteger},
		{"int", blueprint.FieldInteger},
		{"Decimal", blueprint.FieldDecimal},
		{"Float", blueprint.FieldDecimal},
		{"Boolean", blueprint.FieldBoolean},
		{"bool", blueprint.FieldBoolean},
		{"Timestamp", blueprint.FieldTimestamp},
		{"DateTime", blueprint.FieldTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			bp, err := blueprint.Parse("strand S { field f: " + tt.token + " }")
			require.NoError(t, err)
			assert.Equal(t, tt.want, bp.Strands[0].Fields[0].Type)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unknown type is a hard failure",
			src:  "strand S { field f: Blob }",
			want: `unknown field type "Blob"`,
		},
		{
			name: "missing brace",
			src:  "strand S field f: Text }",
			want: "expected",
		},
		{
			name: "stray token at top level",
			src:  "table S { }",
			want: "expected 'strand' or 'view'",
		},
		{
			name: "duplicate strand",
			src:  "strand S { } strand S { }",
			want: `duplicate strand "S"`,
		},
		{
			name: "duplicate field",
			src:  "strand S { field a: Text field a: Text }",
			want: `duplicate field "a"`,
		},
		{
			name: "duplicate view",
			src:  "view V { theme: dark }\nview V { theme: light }",
			want: `duplicate view "V"`,
		},
		{
			name: "empty view value",
			src:  "view V { theme:\n}",
			want: `empty value for property "theme"`,
		},
		{
			name: "unterminated strand",
			src:  "strand S { field a: Text",
			want: "end of input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := blueprint.Parse(tt.src)
			require.Error(t, err)

			var perr *blueprint.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, perr.Error(), tt.want)
			assert.Greater(t, perr.Pos.Line, 0, "parse errors carry a position")
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	src := `
strand Post {
  field title: Text
  field body: Text
  field published: Boolean
}
strand Comment {
  field message: Text
}
view PostFeed {
  list: Post.all()
}
`
	first, err := blueprint.Parse(src)
	require.NoError(t, err)
	second, err := blueprint.Parse(src)
	require.NoError(t, err)

	assert.Equal(t, first, second, "parsing the same text twice yields structurally equal ASTs")
}

func TestView_ListStrand(t *testing.T) {
	tests := []struct {
		name     string
		props    map[string]string
		wantName string
		wantOK   bool
	}{
		{name: "well formed", props: map[string]string{"list": "Task.all()"}, wantName: "Task", wantOK: true},
		{name: "no list property", props: map[string]string{"theme": "dark"}, wantOK: false},
		{name: "not a call", props: map[string]string{"list": "Task"}, wantOK: false},
		{name: "wrong method", props: map[string]string{"list": "Task.first()"}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &blueprint.View{Name: "V", Props: tt.props}
			name, ok := v.ListStrand()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
		})
	}
}
