package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer_BasicTokens(t *testing.T) {
	input := "strand Task {\n  field title: Text\n}\n"

	want := []struct {
		typ     TokenType
		literal string
	}{
		{TOKEN_STRAND, "strand"},
		{TOKEN_IDENT, "Task"},
		{TOKEN_LBRACE, "{"},
		{TOKEN_FIELD, "field"},
		{TOKEN_IDENT, "title"},
		{TOKEN_COLON, ":"},
		{TOKEN_IDENT, "Text"},
		{TOKEN_RBRACE, "}"},
		{TOKEN_EOF, ""},
	}

	l := NewLexer(input)
	for i, w := range want {
		tok := l.NextToken()
		assert.Equal(t, w.typ, tok.Type, "token %d type", i)
		assert.Equal(t, w.literal, tok.Literal, "token %d literal", i)
	}
}

func TestLexer_SkipsCommentsAndBlankLines(t *testing.T) {
	input := "# header comment\n\n\nstrand Task { }  # trailing\n"

	toks := Tokenize(input)
	require.Len(t, toks, 5)
	assert.Equal(t, TOKEN_STRAND, toks[0].Type)
	assert.Equal(t, TOKEN_IDENT, toks[1].Type)
	assert.Equal(t, TOKEN_LBRACE, toks[2].Type)
	assert.Equal(t, TOKEN_RBRACE, toks[3].Type)
	assert.Equal(t, TOKEN_EOF, toks[4].Type)
}

func TestLexer_Positions(t *testing.T) {
	input := "strand Task {\n  field title: Text\n}"

	l := NewLexer(input)
	tok := l.NextToken() // strand
	assert.Equal(t, 1, tok.Pos.Line)
	assert.Equal(t, 1, tok.Pos.Column)

	l.NextToken() // Task
	l.NextToken() // {
	tok = l.NextToken() // field
	assert.Equal(t, 2, tok.Pos.Line)
	assert.Equal(t, 3, tok.Pos.Column)
}

func TestLexer_ReadRawValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "call reference", input: " Task.all()\n", want: "Task.all()"},
		{name: "stops at closing brace", input: " Task.all() }", want: "Task.all()"},
		{name: "stops at comment", input: " dark # not part of value\n", want: "dark"},
		{name: "trims trailing space", input: " dark   \n", want: "dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer(tt.input)
			got, _ := l.ReadRawValue()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLexer_IllegalToken(t *testing.T) {
	toks := Tokenize("strand Task @")
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, TOKEN_ILLEGAL, toks[2].Type)
	assert.Equal(t, "@", toks[2].Literal)
}
