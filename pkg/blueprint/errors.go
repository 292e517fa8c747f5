package blueprint

import "fmt"

// ParseError represents a parsing error with position information.
// Parse errors are fatal: there is no best-effort recovery.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// UnresolvedReferenceError is returned by Resolve when a view's list
// property names a strand that does not exist in the blueprint.
type UnresolvedReferenceError struct {
	View   string
	Strand string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("view %q references unknown strand %q", e.View, e.Strand)
}

// Common error messages
const (
	errUnexpectedToken = "unexpected token %s, expected %s"
	errUnknownType     = "unknown field type %q"
	errDuplicateStrand = "duplicate strand %q"
	errDuplicateField  = "duplicate field %q in strand %q"
	errDuplicateView   = "duplicate view %q"
	errDuplicateProp   = "duplicate property %q in view %q"
)
