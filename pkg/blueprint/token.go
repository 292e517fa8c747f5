package blueprint

import "strings"

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL

	// Literals
	TOKEN_IDENT

	// Delimiters
	TOKEN_COLON
	TOKEN_LBRACE
	TOKEN_RBRACE

	// Keywords
	TOKEN_STRAND
	TOKEN_VIEW
	TOKEN_FIELD
)

var tokenNames = map[TokenType]string{
	TOKEN_EOF:     "EOF",
	TOKEN_ILLEGAL: "ILLEGAL",
	TOKEN_IDENT:   "IDENT",
	TOKEN_COLON:   ":",
	TOKEN_LBRACE:  "{",
	TOKEN_RBRACE:  "}",
	TOKEN_STRAND:  "strand",
	TOKEN_VIEW:    "view",
	TOKEN_FIELD:   "field",
}

// String returns a readable name for the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Position is a location in the blueprint source.
type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based byte offset
}

// Token is a lexical token with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

var keywords = map[string]TokenType{
	"strand": TOKEN_STRAND,
	"view":   TOKEN_VIEW,
	"field":  TOKEN_FIELD,
}

// LookupIdent maps an identifier to its keyword token type, or TOKEN_IDENT.
// Keyword matching is case-insensitive.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToLower(ident)]; ok {
		return tok
	}
	return TOKEN_IDENT
}
