// Package blueprint provides parsing of the blueprint DSL into an immutable
// in-memory schema model. A blueprint is a sequence of strand blocks (named
// entities with typed fields) and view blocks (named UI descriptors), in any
// order:
//
//	strand Task {
//	  field title: Text
//	  field done: Boolean
//	}
//
//	view TaskList {
//	  list: Task.all()
//	  theme: dark
//	}
//
// Parsing is pure and deterministic; reference resolution (a view's list
// target must name an existing strand) is a separate pass, see Resolve.
package blueprint

import "strings"

// FieldType is the type tag of a strand field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInteger
	FieldDecimal
	FieldBoolean
	FieldTimestamp
)

var fieldTypeNames = map[FieldType]string{
	FieldText:      "Text",
	FieldInteger:   "Integer",
	FieldDecimal:   "Decimal",
	FieldBoolean:   "Boolean",
	FieldTimestamp: "Timestamp",
}

// String returns the canonical type tag name.
func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// fieldTypes maps accepted type tokens (lowercased) to field types.
// Unrecognized tokens are a hard parse failure, never a default.
var fieldTypes = map[string]FieldType{
	"text":      FieldText,
	"string":    FieldText,
	"integer":   FieldInteger,
	"int":       FieldInteger,
	"decimal":   FieldDecimal,
	"float":     FieldDecimal,
	"boolean":   FieldBoolean,
	"bool":      FieldBoolean,
	"timestamp": FieldTimestamp,
	"datetime":  FieldTimestamp,
}

// LookupFieldType maps a type token to its FieldType, case-insensitively.
func LookupFieldType(token string) (FieldType, bool) {
	t, ok := fieldTypes[strings.ToLower(token)]
	return t, ok
}

// Field is a named, typed member of a strand.
type Field struct {
	Name string
	Type FieldType
}

// Strand is a named data entity with an ordered list of fields.
type Strand struct {
	Name   string
	Fields []Field
}

// FieldNames returns the field names in declaration order.
func (s *Strand) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// View is a named UI descriptor holding a property mapping.
// Recognized keys are "list" (a <Strand>.all() reference) and "theme";
// other keys are carried through untouched.
type View struct {
	Name  string
	Props map[string]string
}

// Recognized view property keys.
const (
	PropList  = "list"
	PropTheme = "theme"
)

// ListStrand extracts the strand name from the view's list property
// ("Task.all()" yields "Task"). Returns false if the view has no list
// property or it does not follow the <Strand>.all() shape.
func (v *View) ListStrand() (string, bool) {
	ref, ok := v.Props[PropList]
	if !ok || ref == "" {
		return "", false
	}
	name, rest, found := strings.Cut(ref, ".")
	if !found || name == "" || strings.TrimSpace(rest) != "all()" {
		return "", false
	}
	return strings.TrimSpace(name), true
}

// Theme returns the view's theme property, if set.
func (v *View) Theme() string {
	return v.Props[PropTheme]
}

// Blueprint is the root of one parse result: an ordered list of strands and
// an ordered list of views. It is immutable once produced.
type Blueprint struct {
	Strands []*Strand
	Views   []*View
}

// Strand returns the strand with the given name, if any.
func (b *Blueprint) Strand(name string) (*Strand, bool) {
	for _, s := range b.Strands {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// View returns the view with the given name, if any.
func (b *Blueprint) View(name string) (*View, bool) {
	for _, v := range b.Views {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}
