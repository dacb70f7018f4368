// Package resolver maps fully-qualified Jenkins job URLs onto a configured
// instance, a job path, and a build identifier.
//
// Jenkins nests folders as repeated /job/<name> segments, so a URL like
// https://ci.example.com/job/Team/job/App/123/consoleText decomposes into the
// instance https://ci.example.com, the job path "Team/job/App" and build "123".
package resolver

import (
	"errors"
	"fmt"
	"strings"

	"jenkins-distill/src/config"
)

var (
	ErrNoInstancesConfigured = errors.New("no Jenkins instances configured")
	ErrInvalidURLFormat      = errors.New("invalid job URL format")
	ErrNoMatchingInstance    = errors.New("no Jenkins instance matches URL")
	ErrJobPathNotFound       = errors.New("no job path found in URL")
)

// DefaultBuild is the build identifier used when the URL names none.
const DefaultBuild = "lastBuild"

// buildAliases are the symbolic build identifiers Jenkins accepts in place of
// a build number.
var buildAliases = map[string]bool{
	"lastBuild":           true,
	"lastSuccessfulBuild": true,
	"lastFailedBuild":     true,
	"lastCompletedBuild":  true,
}

// ResolvedJob is the decomposition of a job URL.
type ResolvedJob struct {
	// Instance is the configured Jenkins instance owning the URL.
	Instance config.Instance

	// JobPath is the folder/job hierarchy joined with the literal "/job/"
	// separator, ready for use in Jenkins API paths (e.g. "Team/job/App").
	JobPath string

	// BuildID is a positive integer literal or one of the build aliases.
	BuildID string
}

// Resolve determines which configured instance owns jobURL and decomposes the
// remainder into a job path and build identifier. It is a pure function of its
// inputs.
//
// When several configured base URLs prefix the same job URL, the longest
// prefix wins.
func Resolve(jobURL string, registry config.Registry) (ResolvedJob, error) {
	if registry.Len() == 0 {
		return ResolvedJob{}, fmt.Errorf("%w: check the JENKINS_* environment variables", ErrNoInstancesConfigured)
	}

	if !strings.HasPrefix(jobURL, "http://") && !strings.HasPrefix(jobURL, "https://") {
		return ResolvedJob{}, fmt.Errorf(
			"%w: expected a full Jenkins URL starting with http:// or https://, got %q",
			ErrInvalidURLFormat, jobURL)
	}

	instance, ok := matchInstance(jobURL, registry)
	if !ok {
		return ResolvedJob{}, fmt.Errorf(
			"%w: %q does not start with any configured base URL (available: %s)",
			ErrNoMatchingInstance, jobURL, strings.Join(registry.BaseURLs(), ", "))
	}

	jobPath, buildID, err := decomposePath(jobURL, instance.BaseURL)
	if err != nil {
		return ResolvedJob{}, err
	}

	return ResolvedJob{Instance: instance, JobPath: jobPath, BuildID: buildID}, nil
}

// matchInstance finds the instance whose base URL is the longest prefix of
// jobURL.
func matchInstance(jobURL string, registry config.Registry) (config.Instance, bool) {
	var best config.Instance
	found := false
	for _, inst := range registry.Instances() {
		if !strings.HasPrefix(jobURL, inst.BaseURL) {
			continue
		}
		if !found || len(inst.BaseURL) > len(best.BaseURL) {
			best = inst
			found = true
		}
	}
	return best, found
}

// decomposePath strips the base URL and walks the remaining path tokens.
// Each "job"/<name> pair contributes a job-path segment; a standalone token
// that is all digits or a build alias becomes the build identifier (last one
// wins); everything else (consoleText, api, json, empty) is skipped.
func decomposePath(jobURL, baseURL string) (jobPath, buildID string, err error) {
	path := strings.TrimLeft(jobURL[len(baseURL):], "/")
	tokens := strings.Split(path, "/")

	var segments []string
	buildID = DefaultBuild

	for i := 0; i < len(tokens); {
		tok := tokens[i]
		switch {
		case tok == "job" && i+1 < len(tokens):
			segments = append(segments, tokens[i+1])
			i += 2
		case tok != "" && tok != "consoleText" && tok != "api":
			if isDigits(tok) || buildAliases[tok] {
				buildID = tok
			}
			i++
		default:
			i++
		}
	}

	if len(segments) == 0 {
		return "", "", fmt.Errorf(
			"%w: %q (expected %s/job/JobName/... or %s/job/Folder/job/JobName/...)",
			ErrJobPathNotFound, jobURL, baseURL, baseURL)
	}

	return strings.Join(segments, "/job/"), buildID, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizeJobPath rewrites a human-style job path ("Folder/my-job") into the
// /job/-separated form the Jenkins API expects. Paths that already contain a
// /job/ separator pass through untouched.
func NormalizeJobPath(jobPath string) string {
	if !strings.Contains(jobPath, "/job/") && strings.Contains(jobPath, "/") {
		return strings.ReplaceAll(jobPath, "/", "/job/")
	}
	return jobPath
}
