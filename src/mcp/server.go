// Package mcp implements the MCP server for jenkins-distill. It exposes the
// console-log, error-analysis, build-info and git-repository tools over stdio
// or streamable HTTP.
package mcp

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"jenkins-distill/src/config"
	"jenkins-distill/src/events"
	"jenkins-distill/src/jenkins"
	"jenkins-distill/src/logger"
	"jenkins-distill/src/store"
)

// Server is the MCP server for jenkins-distill.
type Server struct {
	mcpServer *server.MCPServer
	registry  config.Registry
	settings  config.Settings
	store     store.Store
	publisher events.Publisher
	log       logger.Logger

	// fetcherFor builds the fetch collaborator for an instance; tests swap in
	// fakes here.
	fetcherFor func(config.Instance) jenkins.Fetcher
}

// NewServer creates an MCP server over the given registry and settings with
// in-memory history and event publishing. Use SetStore/SetPublisher to attach
// durable backends before Run.
func NewServer(registry config.Registry, settings config.Settings) *Server {
	s := server.NewMCPServer(
		"jenkins-distill",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv := &Server{
		mcpServer: s,
		registry:  registry,
		settings:  settings,
		store:     store.NewMemoryStore(),
		publisher: events.NewInMemoryPublisher(),
		log:       logger.NewConsoleLogger(),
		fetcherFor: func(inst config.Instance) jenkins.Fetcher {
			return jenkins.NewClient(inst, settings)
		},
	}
	srv.registerTools()

	return srv
}

// SetStore attaches a persistent analysis-history store.
func (s *Server) SetStore(st store.Store) { s.store = st }

// SetPublisher attaches an event publisher.
func (s *Server) SetPublisher(p events.Publisher) { s.publisher = p }

// SetLogger replaces the default console logger.
func (s *Server) SetLogger(l logger.Logger) { s.log = l }

// registerTools registers all available tools.
func (s *Server) registerTools() {
	consoleLogTool := mcp.NewTool("get_console_log",
		mcp.WithDescription("Fetch the console log for a Jenkins build. Pass either a full job_url (multi-instance setups) or a job_name on the default instance."),
		mcp.WithString("job_url",
			mcp.Description("Full Jenkins job URL, e.g. https://jenkins.example.com/job/Folder/job/my-job/123"),
		),
		mcp.WithString("job_name",
			mcp.Description("Job path on the default instance. Nested folders may use plain slashes, e.g. MyFolder/my-job"),
		),
		mcp.WithString("build_number",
			mcp.Description("Build number or alias (lastBuild, lastSuccessfulBuild, lastFailedBuild, lastCompletedBuild). Default: lastBuild"),
		),
	)

	analyzeTool := mcp.NewTool("analyze_build_errors",
		mcp.WithDescription("Fetch and analyze a Jenkins build log. Small logs are returned whole; large logs are reduced to error snippets with surrounding context."),
		mcp.WithString("job_url",
			mcp.Description("Full Jenkins job URL"),
		),
		mcp.WithString("job_name",
			mcp.Description("Job path on the default instance"),
		),
		mcp.WithString("build_number",
			mcp.Description("Build number or alias. Default: lastBuild"),
		),
		mcp.WithNumber("context_lines",
			mcp.Description("Lines of context before and after each error line (default from CONTEXT_WINDOW)"),
		),
	)

	buildInfoTool := mcp.NewTool("get_build_info",
		mcp.WithDescription("Get status, duration, timestamp and trigger causes for a Jenkins build."),
		mcp.WithString("job_url",
			mcp.Description("Full Jenkins job URL"),
		),
		mcp.WithString("job_name",
			mcp.Description("Job path on the default instance"),
		),
		mcp.WithString("build_number",
			mcp.Description("Build number or alias. Default: lastBuild"),
		),
	)

	gitReposTool := mcp.NewTool("extract_git_repositories",
		mcp.WithDescription("List the git repositories (URL, branch, commit) referenced in a Jenkins build's console log, deduplicated by URL."),
		mcp.WithString("job_url",
			mcp.Description("Full Jenkins job URL"),
		),
		mcp.WithString("job_name",
			mcp.Description("Job path on the default instance"),
		),
		mcp.WithString("build_number",
			mcp.Description("Build number or alias. Default: lastBuild"),
		),
	)

	s.mcpServer.AddTool(consoleLogTool, s.handleGetConsoleLog)
	s.mcpServer.AddTool(analyzeTool, s.handleAnalyzeBuildErrors)
	s.mcpServer.AddTool(buildInfoTool, s.handleGetBuildInfo)
	s.mcpServer.AddTool(gitReposTool, s.handleExtractGitRepositories)
}

// Run serves MCP on stdio.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// RunHTTP serves MCP over streamable HTTP on the configured port and path.
func (s *Server) RunHTTP() error {
	httpServer := server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithEndpointPath(s.settings.ServerPath),
	)
	addr := fmt.Sprintf(":%d", s.settings.ServerPort)
	s.log.Info("MCP server listening on %s%s", addr, s.settings.ServerPath)
	return httpServer.Start(addr)
}

// generateRequestID creates a unique request identifier.
func generateRequestID() string {
	timestamp := time.Now().UTC().Format("20060102T150405")
	randomBytes := make([]byte, 4)
	rand.Read(randomBytes)
	return fmt.Sprintf("req-%s-%s", timestamp, hex.EncodeToString(randomBytes))
}
