// Package sanitize provides utilities for cleaning Jenkins console output
// before analysis and MCP tool responses. It removes ANSI escape codes and
// the line prefixes added by the Jenkins Timestamper plugin so that keyword
// and pattern matching operate on the underlying text.
package sanitize

import "regexp"

var (
	// ANSI escape codes: \x1b[...m (SGR sequences)
	ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

	// Timestamper plugin prefixes: "[2024-05-01T10:00:00.123Z] " at line start
	timestamperPrefix = regexp.MustCompile(`(?m)^\[\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?Z?\]\s?`)
)

// CleanConsole removes ANSI escape codes and Timestamper line prefixes.
func CleanConsole(s string) string {
	s = timestamperPrefix.ReplaceAllString(s, "")
	s = ansiPattern.ReplaceAllString(s, "")
	return s
}
