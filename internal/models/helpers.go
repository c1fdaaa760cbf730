package models

import (
	"fmt"
	"strings"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// projectTitleLen is the number of idea characters kept in a project title.
const projectTitleLen = 50

// RecordIDString safely extracts the string ID from a SurrealDB RecordID.
// Returns an error if the ID is not a string type.
func RecordIDString(id surrealmodels.RecordID) (string, error) {
	s, ok := id.ID.(string)
	if !ok {
		return "", fmt.Errorf("unexpected ID type: %T (expected string)", id.ID)
	}
	return s, nil
}

// ProjectTitle derives a display title from an idea: "Project: " followed by
// the first 50 characters, with "..." appended when the idea was cut.
func ProjectTitle(idea string) string {
	idea = strings.TrimSpace(idea)
	runes := []rune(idea)
	if len(runes) <= projectTitleLen {
		return "Project: " + idea
	}
	return "Project: " + string(runes[:projectTitleLen]) + "..."
}

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
