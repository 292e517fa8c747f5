package engine

import (
	"fmt"
	"strings"

	"github.com/loomworks/loom/pkg/selfheal"
)

const draftSystemPrompt = `You write Loom blueprints. A blueprint declares data models and views:

strand Task {
  field title: Text
  field done: Boolean
}

view TaskList {
  list: Task.all()
  theme: dark
}

Field types: Text, Integer, Decimal, Boolean, Timestamp.
Every view's list property must reference a declared strand as Strand.all().
Respond with the blueprint only, no commentary.`

const repairSchemaSystemPrompt = `You fix SQLite DDL. You are given a CREATE TABLE script that failed to
apply, and the database error. Respond with the corrected script only, no
commentary.`

// draftUserPrompt builds the user message for a draft attempt, folding in
// the previous failure when retrying.
func draftUserPrompt(description string, repair *selfheal.Repair) string {
	if repair == nil {
		return fmt.Sprintf("Write a blueprint for this application:\n\n%s", description)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Write a blueprint for this application:\n\n%s\n\n", description)
	fmt.Fprintf(&b, "Your previous attempt failed to parse:\n\n%s\n\n", repair.LastOutput)
	fmt.Fprintf(&b, "Error: %s\n\nFix the blueprint.", repair.LastError)
	return b.String()
}

// repairSchemaUserPrompt builds the user message for a schema repair attempt.
func repairSchemaUserPrompt(script string, repair *selfheal.Repair) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This script failed to apply:\n\n%s\n\n", script)
	if repair.LastOutput != "" {
		fmt.Fprintf(&b, "Your previous correction also failed:\n\n%s\n\n", repair.LastOutput)
	}
	fmt.Fprintf(&b, "Database error: %s\n\nRespond with the corrected script.", repair.LastError)
	return b.String()
}
