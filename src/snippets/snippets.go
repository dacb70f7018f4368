// Package snippets extracts context-padded error snippets from build console
// logs. A line containing any failure-indicator keyword triggers a window of
// surrounding lines; consumed lines cannot re-trigger and never reappear in a
// later window, so windows never overlap.
package snippets

import "strings"

// Keywords are the failure indicators matched case-insensitively as
// substrings of each line.
var Keywords = []string{"error", "exception", "failed", "failure", "traceback", "fatal"}

// Snippet is one merged block of consecutive log lines around one or more
// trigger lines. Start and End are the half-open source line range [Start, End).
type Snippet struct {
	Start int
	End   int
	Text  string
}

// Extract scans log for failure-indicator keywords and returns the matching
// context windows in line order. contextWindow is the number of lines kept on
// each side of a trigger line.
//
// Every line of an emitted window is consumed: trigger lines inside an
// already-emitted window do not start a new snippet, and a later window whose
// leading context would reach back into consumed lines starts where the
// previous one ended. No line index ever appears in two snippets. Empty input
// or input without keywords yields nil.
func Extract(log string, contextWindow int) []Snippet {
	if contextWindow < 0 {
		contextWindow = 0
	}

	lines := SplitLines(log)
	var out []Snippet

	// Windows are emitted in line order, so everything below lastEnd is
	// consumed.
	lastEnd := 0

	for i, line := range lines {
		if i < lastEnd {
			continue
		}
		if !hasKeyword(line) {
			continue
		}

		start := i - contextWindow
		if start < lastEnd {
			start = lastEnd
		}
		end := i + contextWindow + 1
		if end > len(lines) {
			end = len(lines)
		}

		out = append(out, Snippet{
			Start: start,
			End:   end,
			Text:  strings.Join(lines[start:end], "\n"),
		})
		lastEnd = end
	}

	return out
}

func hasKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// SplitLines splits text on line boundaries (\n, \r\n or \r) without
// producing a trailing-newline artifact line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
