package blueprint

import "fmt"

// Parser parses blueprint source into a Blueprint. It is a single linear
// pass with one token of lookahead; block keywords are unambiguous so no
// backtracking is required.
type Parser struct {
	lex *Lexer
	tok Token
}

// Parse parses blueprint source text into an immutable Blueprint.
// Any input that does not match the grammar fails with a *ParseError.
func Parse(input string) (*Blueprint, error) {
	p := &Parser{lex: NewLexer(input)}
	p.next()
	return p.parseBlueprint()
}

// next advances to the next token.
func (p *Parser) next() {
	p.tok = p.lex.NextToken()
}

// errorf builds a positioned parse error.
func (p *Parser) errorf(pos Position, format string, args ...any) error {
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// expect consumes the current token if it matches t, failing otherwise.
func (p *Parser) expect(t TokenType) (Token, error) {
	if p.tok.Type != t {
		return Token{}, p.errorf(p.tok.Pos, errUnexpectedToken, describe(p.tok), t)
	}
	tok := p.tok
	p.next()
	return tok, nil
}

// describe renders a token for error messages.
func describe(tok Token) string {
	switch tok.Type {
	case TOKEN_EOF:
		return "end of input"
	case TOKEN_IDENT, TOKEN_ILLEGAL:
		return fmt.Sprintf("%q", tok.Literal)
	default:
		return fmt.Sprintf("%q", tok.Type.String())
	}
}

func (p *Parser) parseBlueprint() (*Blueprint, error) {
	bp := &Blueprint{}
	strandNames := make(map[string]struct{})
	viewNames := make(map[string]struct{})

	for p.tok.Type != TOKEN_EOF {
		switch p.tok.Type {
		case TOKEN_STRAND:
			s, err := p.parseStrand(strandNames)
			if err != nil {
				return nil, err
			}
			bp.Strands = append(bp.Strands, s)
		case TOKEN_VIEW:
			v, err := p.parseView(viewNames)
			if err != nil {
				return nil, err
			}
			bp.Views = append(bp.Views, v)
		default:
			return nil, p.errorf(p.tok.Pos, errUnexpectedToken, describe(p.tok), "'strand' or 'view'")
		}
	}

	return bp, nil
}

// parseStrand parses: strand <Name> { field <name>: <Type> ... }
func (p *Parser) parseStrand(seen map[string]struct{}) (*Strand, error) {
	p.next() // consume 'strand'

	name, err := p.expect(TOKEN_IDENT)
	if err != nil {
		return nil, err
	}
	if _, dup := seen[name.Literal]; dup {
		return nil, p.errorf(name.Pos, errDuplicateStrand, name.Literal)
	}
	seen[name.Literal] = struct{}{}
	if _, err := p.expect(TOKEN_LBRACE); err != nil {
		return nil, err
	}

	s := &Strand{Name: name.Literal}
	fieldNames := make(map[string]struct{})

	for p.tok.Type != TOKEN_RBRACE {
		if p.tok.Type != TOKEN_FIELD {
			return nil, p.errorf(p.tok.Pos, errUnexpectedToken, describe(p.tok), "'field' or '}'")
		}
		p.next() // consume 'field'

		fieldName, err := p.expect(TOKEN_IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_COLON); err != nil {
			return nil, err
		}
		typeTok, err := p.expect(TOKEN_IDENT)
		if err != nil {
			return nil, err
		}
		fieldType, ok := LookupFieldType(typeTok.Literal)
		if !ok {
			return nil, p.errorf(typeTok.Pos, errUnknownType, typeTok.Literal)
		}

		if _, dup := fieldNames[fieldName.Literal]; dup {
			return nil, p.errorf(fieldName.Pos, errDuplicateField, fieldName.Literal, s.Name)
		}
		fieldNames[fieldName.Literal] = struct{}{}
		s.Fields = append(s.Fields, Field{Name: fieldName.Literal, Type: fieldType})
	}

	p.next() // consume '}'
	return s, nil
}

// parseView parses: view <Name> { <key>: <value> ... }
// Property values are opaque and run to the end of the line (or the
// closing brace), so references like Task.all() need no extra grammar.
func (p *Parser) parseView(seen map[string]struct{}) (*View, error) {
	p.next() // consume 'view'

	name, err := p.expect(TOKEN_IDENT)
	if err != nil {
		return nil, err
	}
	if _, dup := seen[name.Literal]; dup {
		return nil, p.errorf(name.Pos, errDuplicateView, name.Literal)
	}
	seen[name.Literal] = struct{}{}
	if _, err := p.expect(TOKEN_LBRACE); err != nil {
		return nil, err
	}

	v := &View{Name: name.Literal, Props: make(map[string]string)}

	for p.tok.Type != TOKEN_RBRACE {
		key, err := p.expect(TOKEN_IDENT)
		if err != nil {
			return nil, err
		}
		if p.tok.Type != TOKEN_COLON {
			return nil, p.errorf(p.tok.Pos, errUnexpectedToken, describe(p.tok), "':'")
		}
		// The lexer sits just past the colon; scan the raw value before
		// pulling the next token.
		value, pos := p.lex.ReadRawValue()
		if value == "" {
			return nil, p.errorf(pos, "empty value for property %q", key.Literal)
		}
		if _, dup := v.Props[key.Literal]; dup {
			return nil, p.errorf(key.Pos, errDuplicateProp, key.Literal, v.Name)
		}
		v.Props[key.Literal] = value
		p.next()
	}

	p.next() // consume '}'
	return v, nil
}
