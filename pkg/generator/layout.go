package generator

import "strings"

// Layout is the rendering strategy selected for a view.
type Layout string

const (
	LayoutGallery Layout = "gallery"
	LayoutBoard   Layout = "board"
	LayoutFeed    Layout = "feed"
	LayoutGrid    Layout = "grid"
)

// Field-name token sets consulted by the layout rules.
var (
	imageTokens  = tokenSet("image", "photo", "avatar", "thumbnail", "cover", "picture", "img")
	statusTokens = tokenSet("status", "stage", "phase", "state", "progress")
	titleTokens  = tokenSet("title", "name", "subject", "headline", "heading")
	bodyTokens   = tokenSet("body", "content", "description", "message", "text", "note")
)

// layoutRule pairs a predicate over the field-name set with the layout it
// selects. Rules are evaluated top to bottom; the first match wins, which
// makes the tie-break order explicit (gallery beats board beats feed).
type layoutRule struct {
	layout Layout
	match  func(names map[string]bool) bool
}

var layoutRules = []layoutRule{
	{LayoutGallery, func(names map[string]bool) bool {
		return anyIn(names, imageTokens)
	}},
	{LayoutBoard, func(names map[string]bool) bool {
		return anyIn(names, statusTokens)
	}},
	{LayoutFeed, func(names map[string]bool) bool {
		// A title-ish field and a distinct body-ish field must both be
		// present; one field cannot serve as both.
		for name := range names {
			if !titleTokens[name] {
				continue
			}
			for other := range names {
				if other != name && bodyTokens[other] {
					return true
				}
			}
		}
		return false
	}},
}

// ClassifyLayout selects the best-fit layout for a set of field names.
// It is a total, deterministic function of the name set: field order is
// never consulted and matching is case-insensitive.
func ClassifyLayout(fieldNames []string) Layout {
	names := make(map[string]bool, len(fieldNames))
	for _, n := range fieldNames {
		names[strings.ToLower(n)] = true
	}
	for _, rule := range layoutRules {
		if rule.match(names) {
			return rule.layout
		}
	}
	return LayoutGrid
}

func tokenSet(tokens ...string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

func anyIn(names, tokens map[string]bool) bool {
	for n := range names {
		if tokens[n] {
			return true
		}
	}
	return false
}
