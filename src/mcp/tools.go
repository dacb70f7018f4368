package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"jenkins-distill/src/config"
	"jenkins-distill/src/events"
	"jenkins-distill/src/gitrefs"
	"jenkins-distill/src/jenkins"
	"jenkins-distill/src/report"
	"jenkins-distill/src/resolver"
	"jenkins-distill/src/sanitize"
	"jenkins-distill/src/snippets"
	"jenkins-distill/src/store"
)

// target is the resolved destination of a tool call: which instance to query
// and which job/build on it.
type target struct {
	instance config.Instance
	jobPath  string
	buildID  string
}

// resolveTarget interprets the job_url/job_name/build_number parameters.
// job_url wins and is resolved against the registry; job_name addresses the
// default instance. An explicit build_number overrides the URL's build token.
func (s *Server) resolveTarget(request mcp.CallToolRequest) (target, error) {
	buildNumber := request.GetString("build_number", "")

	if jobURL := request.GetString("job_url", ""); jobURL != "" {
		resolved, err := resolver.Resolve(jobURL, s.registry)
		if err != nil {
			return target{}, err
		}
		t := target{instance: resolved.Instance, jobPath: resolved.JobPath, buildID: resolved.BuildID}
		if buildNumber != "" {
			t.buildID = buildNumber
		}
		return t, nil
	}

	jobName := request.GetString("job_name", "")
	if jobName == "" {
		return target{}, fmt.Errorf("either job_url or job_name is required")
	}

	instance, ok := s.registry.Default()
	if !ok {
		return target{}, resolver.ErrNoInstancesConfigured
	}
	if buildNumber == "" {
		buildNumber = resolver.DefaultBuild
	}

	return target{
		instance: instance,
		jobPath:  resolver.NormalizeJobPath(jobName),
		buildID:  buildNumber,
	}, nil
}

// handleGetConsoleLog returns the build's console log verbatim with a size
// header.
func (s *Server) handleGetConsoleLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := s.resolveTarget(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log, err := s.fetcherFor(t.instance).ConsoleText(ctx, t.jobPath, t.buildID)
	if err != nil {
		return mcp.NewToolResultError(jenkins.WrapError(err).Error()), nil
	}

	return mcp.NewToolResultText(report.ConsoleLog(t.jobPath, t.buildID, log)), nil
}

// handleAnalyzeBuildErrors fetches the console log and either returns it
// whole (below the size threshold) or reduces it to error snippets.
func (s *Server) handleAnalyzeBuildErrors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := s.resolveTarget(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	contextLines := request.GetInt("context_lines", s.settings.ContextWindow)

	log, err := s.fetcherFor(t.instance).ConsoleText(ctx, t.jobPath, t.buildID)
	if err != nil {
		return mcp.NewToolResultError(jenkins.WrapError(err).Error()), nil
	}

	if log == "" {
		return mcp.NewToolResultText(report.EmptyLog()), nil
	}

	// Below the threshold the whole log fits the caller's context window.
	if len(log) < s.settings.MaxLogSize {
		s.recordAnalysis(ctx, t, len(log), 0, 0)
		return mcp.NewToolResultText(report.FullLog(t.jobPath, t.buildID, log)), nil
	}

	snips := snippets.Extract(sanitize.CleanConsole(log), contextLines)
	s.recordAnalysis(ctx, t, len(log), len(snips), 0)

	if len(snips) == 0 {
		return mcp.NewToolResultText(report.NoSnippets(t.jobPath, t.buildID, len(log))), nil
	}
	return mcp.NewToolResultText(report.Snippets(t.jobPath, t.buildID, len(log), snips)), nil
}

// handleGetBuildInfo returns the build's api/json summary.
func (s *Server) handleGetBuildInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := s.resolveTarget(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	build, err := s.fetcherFor(t.instance).BuildInfo(ctx, t.jobPath, t.buildID)
	if err != nil {
		return mcp.NewToolResultError(jenkins.WrapError(err).Error()), nil
	}

	return mcp.NewToolResultText(report.BuildInfo(t.jobPath, build)), nil
}

// handleExtractGitRepositories lists the repositories referenced in the
// build's console log.
func (s *Server) handleExtractGitRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := s.resolveTarget(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log, err := s.fetcherFor(t.instance).ConsoleText(ctx, t.jobPath, t.buildID)
	if err != nil {
		return mcp.NewToolResultError(jenkins.WrapError(err).Error()), nil
	}

	refs := gitrefs.Extract(sanitize.CleanConsole(log))
	s.recordAnalysis(ctx, t, len(log), 0, len(refs))
	return mcp.NewToolResultText(report.GitReferences(t.jobPath, t.buildID, refs)), nil
}

// recordAnalysis persists the analysis summary and publishes an event.
// Failures are logged, never surfaced: history and events are best-effort
// side channels of the tool response.
func (s *Server) recordAnalysis(ctx context.Context, t target, logSize, snippetCount, gitRefCount int) {
	requestID := generateRequestID()
	now := time.Now().UTC()

	err := s.store.SaveAnalysis(ctx, store.AnalysisRecord{
		RequestID:    requestID,
		BaseURL:      t.instance.BaseURL,
		JobPath:      t.jobPath,
		BuildID:      t.buildID,
		LogSize:      logSize,
		SnippetCount: snippetCount,
		GitRefCount:  gitRefCount,
		CreatedAt:    now,
	})
	if err != nil {
		s.log.Error("failed to save analysis record: %v", err)
	}

	payload, err := json.Marshal(events.AnalysisEvent{
		RequestID:    requestID,
		BaseURL:      t.instance.BaseURL,
		JobPath:      t.jobPath,
		BuildID:      t.buildID,
		LogSize:      logSize,
		SnippetCount: snippetCount,
		GitRefCount:  gitRefCount,
		Timestamp:    now.Format(time.RFC3339),
	})
	if err != nil {
		s.log.Error("failed to marshal analysis event: %v", err)
		return
	}
	if err := s.publisher.Publish(ctx, events.TopicAnalyses, requestID, payload); err != nil {
		s.log.Error("failed to publish analysis event: %v", err)
	}
}
