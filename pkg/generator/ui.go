package generator

import (
	"encoding/json"
	"fmt"

	"github.com/loomworks/loom/pkg/blueprint"
)

// UIField is one rendered field of a view descriptor.
type UIField struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// ViewDescriptor is the per-view rendering descriptor handed to a frontend:
// which strand it lists, the selected layout, the theme, and the fields to
// render.
type ViewDescriptor struct {
	View   string    `json:"view"`
	Strand string    `json:"strand,omitempty"`
	Layout Layout    `json:"layout"`
	Theme  string    `json:"theme,omitempty"`
	Fields []UIField `json:"fields,omitempty"`
}

// DescriptorFor derives the rendering descriptor for a view. The strand may
// be nil for views without a list property; such views render an empty grid.
func DescriptorFor(v *blueprint.View, s *blueprint.Strand) ViewDescriptor {
	d := ViewDescriptor{
		View:   v.Name,
		Layout: LayoutGrid,
		Theme:  v.Theme(),
	}
	if s == nil {
		return d
	}

	d.Strand = s.Name
	d.Layout = ClassifyLayout(s.FieldNames())
	for _, f := range s.Fields {
		d.Fields = append(d.Fields, UIField{
			Name:  snakeCase(f.Name),
			Type:  uiTypes[f.Type],
			Label: labelFor(f.Name),
		})
	}
	return d
}

// uiTypes maps blueprint field types to UI widget types.
var uiTypes = map[blueprint.FieldType]string{
	blueprint.FieldText:      "text",
	blueprint.FieldInteger:   "number",
	blueprint.FieldDecimal:   "number",
	blueprint.FieldBoolean:   "checkbox",
	blueprint.FieldTimestamp: "datetime",
}

// labelFor derives a human label from a field name ("dueDate" -> "Due date").
func labelFor(name string) string {
	snake := snakeCase(name)
	label := []byte(snake)
	for i := range label {
		if label[i] == '_' {
			label[i] = ' '
		}
	}
	if len(label) > 0 && label[0] >= 'a' && label[0] <= 'z' {
		label[0] -= 'a' - 'A'
	}
	return string(label)
}

// UIArtifacts generates one rendering-descriptor artifact per view.
// References must already be resolved: a view whose list target is missing
// from the blueprint is a programming error here, not a fallback case.
func UIArtifacts(bp *blueprint.Blueprint) ([]Artifact, error) {
	artifacts := make([]Artifact, 0, len(bp.Views))
	for _, v := range bp.Views {
		var strand *blueprint.Strand
		if name, ok := v.ListStrand(); ok {
			s, found := bp.Strand(name)
			if !found {
				return nil, &blueprint.UnresolvedReferenceError{View: v.Name, Strand: name}
			}
			strand = s
		}

		desc := DescriptorFor(v, strand)
		content, err := json.MarshalIndent(desc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal descriptor for view %s: %w", v.Name, err)
		}
		artifacts = append(artifacts, Artifact{
			Path:    fmt.Sprintf("ui/%s.json", snakeCase(v.Name)),
			Content: string(content) + "\n",
		})
	}
	return artifacts, nil
}
