// Package report formats analysis results into the human-readable text
// returned by the MCP tools and the CLI. Extraction never happens here; the
// formatters receive already-computed structures.
package report

import (
	"fmt"
	"strings"

	"jenkins-distill/src/gitrefs"
	"jenkins-distill/src/jenkins"
	"jenkins-distill/src/snippets"
)

// SnippetDelimiter separates error snippets in the combined analysis output.
const SnippetDelimiter = "--- SNIPPET DELIMITER ---"

// ConsoleLog formats a full console log response with a size header.
func ConsoleLog(jobPath, buildID, log string) string {
	if log == "" {
		return "Console log is empty."
	}
	return fmt.Sprintf("Console log for %s build %s (%d characters):\n\n%s",
		jobPath, buildID, len(log), log)
}

// FullLog formats the analyze response for logs below the size threshold,
// where the whole log is worth reading directly.
func FullLog(jobPath, buildID, log string) string {
	return fmt.Sprintf(
		"Build log for %s build %s (%d characters):\n"+
			"The log is small enough to analyze in its entirety.\n\n"+
			"--- FULL CONSOLE LOG ---\n%s",
		jobPath, buildID, len(log), log)
}

// Snippets formats the analyze response for large logs reduced to error
// snippets.
func Snippets(jobPath, buildID string, logSize int, snips []snippets.Snippet) string {
	texts := make([]string, len(snips))
	for i, s := range snips {
		texts[i] = s.Text
	}
	combined := strings.Join(texts, "\n\n"+SnippetDelimiter+"\n\n")

	return fmt.Sprintf(
		"Build log analysis for %s build %s (%d characters):\n"+
			"Found %d error snippets. Here are the relevant sections:\n\n"+
			"--- ERROR CONTEXT SNIPPETS ---\n%s",
		jobPath, buildID, logSize, len(snips), combined)
}

// NoSnippets formats the analyze response when a large log contained no
// failure-indicator keywords.
func NoSnippets(jobPath, buildID string, logSize int) string {
	return fmt.Sprintf(
		"Build log for %s build %s (%d characters):\n"+
			"The log was too large to analyze fully, and no specific error keywords "+
			"(like 'error' or 'exception') were found. Manual review may be needed.",
		jobPath, buildID, logSize)
}

// EmptyLog is the analyze response for an empty console log.
func EmptyLog() string {
	return "Console log is empty or could not be fetched."
}

// BuildInfo formats a build's api/json summary.
func BuildInfo(jobPath string, build *jenkins.Build) string {
	result := build.Result
	if result == "" {
		result = "IN_PROGRESS"
	}

	lines := []string{
		fmt.Sprintf("Build Information for %s #%d:", jobPath, build.Number),
		"",
		fmt.Sprintf("Status: %s", result),
		fmt.Sprintf("Duration: %.2f seconds", float64(build.Duration)/1000),
		fmt.Sprintf("Timestamp: %d", build.Timestamp),
		fmt.Sprintf("Building: %t", build.Building),
		fmt.Sprintf("URL: %s", build.URL),
	}

	if triggers := build.TriggerDescriptions(); len(triggers) > 0 {
		lines = append(lines, "", "Triggered by:")
		for _, trigger := range triggers {
			lines = append(lines, fmt.Sprintf("  - %s", trigger))
		}
	}

	return strings.Join(lines, "\n")
}

// GitReferences formats the detected repository inventory.
func GitReferences(jobPath, buildID string, refs []gitrefs.Reference) string {
	if len(refs) == 0 {
		return fmt.Sprintf("No git repository references found in the console log for %s build %s.",
			jobPath, buildID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Git repositories referenced by %s build %s (%d found):\n", jobPath, buildID, len(refs))
	for _, ref := range refs {
		fmt.Fprintf(&b, "\n- %s", ref.URL)
		if ref.Branch != "" {
			fmt.Fprintf(&b, "\n  branch: %s", ref.Branch)
		}
		if ref.Commit != "" {
			fmt.Fprintf(&b, "\n  commit: %s", ref.Commit)
		}
	}
	return b.String()
}
