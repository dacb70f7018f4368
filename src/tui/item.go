package tui

import (
	"fmt"
	"strings"

	"jenkins-distill/src/snippets"
)

// Item wraps an extracted error snippet so it can back a bubbles/list entry.
type Item struct {
	Snippet snippets.Snippet
	Rank    int
}

// FilterValue is the value used for fuzzy filtering.
func (i Item) FilterValue() string { return i.Snippet.Text }

// Title returns the primary text for the item (required by list.Item).
func (i Item) Title() string { return i.TriggerLine() }

// Description returns the secondary text for the item (required by list.Item).
func (i Item) Description() string { return i.LineRange() }

// LineRange renders the snippet's position in the console log, 1-based.
func (i Item) LineRange() string {
	return fmt.Sprintf("L%d-%d", i.Snippet.Start+1, i.Snippet.End)
}

// TriggerLine returns the first line of the snippet that contains a failure
// keyword. Snippets always contain at least one such line, but if cleaning
// stripped it away the first non-empty line is used instead.
func (i Item) TriggerLine() string {
	var fallback string
	for _, line := range strings.Split(i.Snippet.Text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if fallback == "" {
			fallback = trimmed
		}
		lower := strings.ToLower(trimmed)
		for _, kw := range snippets.Keywords {
			if strings.Contains(lower, kw) {
				return trimmed
			}
		}
	}
	return fallback
}

// Keyword returns the failure keyword that triggered this snippet, or "" if
// none is present after cleaning.
func (i Item) Keyword() string {
	lower := strings.ToLower(i.Snippet.Text)
	for _, kw := range snippets.Keywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}
