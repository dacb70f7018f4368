// Package gitrefs extracts git repository references from build console logs.
//
// Detection is heuristic: an ordered table of recognizer patterns is applied
// to every line, captured URLs are deduplicated (first occurrence wins), and
// branch/commit metadata is correlated from nearby lines. False positives and
// negatives are acceptable; this is not a git URL grammar.
package gitrefs

import (
	"regexp"
	"strings"
)

// enrichmentRadius is the number of lines searched on each side of a URL hit
// for branch and commit metadata.
const enrichmentRadius = 5

// Reference is a detected repository URL with optionally correlated metadata.
// Identity is the URL; Branch and Commit are empty when nothing nearby matched.
type Reference struct {
	URL    string `json:"url"`
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
}

// recognizer is one URL-matching rule. The patterns form an ordered,
// first-class table so each rule is testable on its own; capture group 1 is
// always the URL candidate.
type recognizer struct {
	name    string
	pattern *regexp.Regexp
}

// recognizers are tried in order against every line. Earlier rules capture
// full URLs from well-known log phrasings; the final rule matches bare
// github.com/gitlab.com/bitbucket.org fragments that the normalization step
// reconstructs into full URLs.
var recognizers = []recognizer{
	{"clone-phrase", regexp.MustCompile(`(?i)(?:Cloning|Fetching|Checking out)\s+(?:remote )?repository\s+["']?([^"'>\s]+\.git)["']?`)},
	{"git-clone", regexp.MustCompile(`(?i)git clone\s+(?:-\S+\s+)*["']?([^"'>\s]+\.git)["']?`)},
	{"git-fetch", regexp.MustCompile(`(?i)git fetch\s+(?:-\S+\s+)*["']?([^"'>\s]+\.git)["']?`)},
	{"url-field", regexp.MustCompile(`(?i)(?:url):\s*([^"'>\s]+\.git)`)},
	{"repository-field", regexp.MustCompile(`(?i)Repository:\s*([^"'>\s]+\.git)`)},
	{"known-host", regexp.MustCompile(`(?i)(?:git@|https?://)\S+?(?:github\.com|gitlab\.com|bitbucket\.org)[:/]([^\s"'<>]+?)(?:\s|$|\.git)`)},
}

var (
	branchPattern = regexp.MustCompile(`(?i)(?:branch|ref)[:=]?\s*["']?([^"'>\s]+)["']?`)
	commitPattern = regexp.MustCompile(`(?i)(?:commit|revision)\s+([0-9a-f]{7,40})`)
)

// ambiguousBranchNames are rejected as branch values unless the context line
// mentions "branch" explicitly, filtering generic boolean/default-branch noise.
var ambiguousBranchNames = map[string]bool{
	"true":   true,
	"false":  true,
	"master": true,
	"main":   true,
}

// Extract scans log for git repository references and returns them in order
// of first acceptance. The same URL is never returned twice; a later
// occurrence never enriches an earlier record.
func Extract(log string) []Reference {
	lines := splitLines(log)
	seen := make(map[string]bool)
	var out []Reference

	for i, line := range lines {
		for _, rec := range recognizers {
			for _, match := range rec.pattern.FindAllStringSubmatch(line, -1) {
				url := normalizeURL(match[1], line)
				if seen[url] {
					continue
				}
				seen[url] = true

				ref := Reference{URL: url}
				enrich(&ref, lines, i)
				out = append(out, ref)
			}
		}
	}

	return out
}

// normalizeURL reconstructs a full URL when a recognizer captured only a path
// fragment: it re-searches the line for a git@/http(s):// prefix immediately
// followed by the captured text and, if found, returns the longer match.
func normalizeURL(url, line string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "git@") {
		return url
	}
	if !strings.Contains(url, "/") || strings.HasPrefix(url, "/") {
		return url
	}

	full, err := regexp.Compile(`((?:git@|https?://)\S+?` + regexp.QuoteMeta(url) + `)`)
	if err != nil {
		return url
	}
	if m := full.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return url
}

// enrich fills Branch and Commit from the lines surrounding index i, each at
// most once, taking the first match in window order.
func enrich(ref *Reference, lines []string, i int) {
	start := i - enrichmentRadius
	if start < 0 {
		start = 0
	}
	end := i + enrichmentRadius + 1
	if end > len(lines) {
		end = len(lines)
	}

	for _, line := range lines[start:end] {
		if ref.Branch == "" {
			if m := branchPattern.FindStringSubmatch(line); m != nil {
				branch := m[1]
				if !ambiguousBranchNames[branch] || strings.Contains(strings.ToLower(line), "branch") {
					ref.Branch = branch
				}
			}
		}
		if ref.Commit == "" {
			if m := commitPattern.FindStringSubmatch(line); m != nil {
				ref.Commit = m[1]
			}
		}
	}
}

func splitLines(text string) []string {
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
