// Package main provides the unified jenkins-distill CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"jenkins-distill/src/config"
	"jenkins-distill/src/events"
	"jenkins-distill/src/gitrefs"
	"jenkins-distill/src/jenkins"
	"jenkins-distill/src/logger"
	"jenkins-distill/src/mcp"
	"jenkins-distill/src/report"
	"jenkins-distill/src/resolver"
	"jenkins-distill/src/sanitize"
	"jenkins-distill/src/snippets"
	"jenkins-distill/src/store"
	"jenkins-distill/src/tui"
)

var (
	registry config.Registry
	settings config.Settings

	verbose      bool
	httpMode     bool
	contextLines int
	withGitRefs  bool
	triageFile   string
	recentLimit  int
)

var rootCmd = &cobra.Command{
	Use:   "jenkins-distill",
	Short: "Analyze Jenkins console logs for build failures",
	Long: `jenkins-distill fetches Jenkins console logs and distills them into
error snippets, git repository references and build summaries.

It runs either as an MCP server (stdio or streamable HTTP) or as a
standalone CLI against the instances configured via JENKINS_URL,
JENKINS_USER, JENKINS_API_TOKEN and their JENKINS_<NAME>_* variants.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A .env file is optional; real environment variables win.
		_ = godotenv.Load()

		registry = config.LoadRegistry()
		settings = config.LoadSettings()

		if verbose {
			fmt.Fprintln(os.Stderr, config.Banner(registry, settings))
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Run the MCP server over stdio (default) or streamable HTTP.

When POSTGRES_DSN is set, analysis runs are persisted to Postgres.
When REDPANDA_BROKERS is set, analysis events are published to the
jenkins.build.analyses topic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := mcp.NewServer(registry, settings)

		if verbose {
			l := logger.NewConsoleLogger()
			l.Verbose = true
			srv.SetLogger(l)
		}

		if settings.PostgresDSN != "" {
			st, err := store.NewPostgresStore(settings.PostgresDSN)
			if err != nil {
				return fmt.Errorf("connecting to postgres: %w", err)
			}
			defer st.Close()
			srv.SetStore(st)
		}

		if len(settings.RedpandaBrokers) > 0 {
			pub, err := events.NewRedpandaPublisher(settings.RedpandaBrokers)
			if err != nil {
				return fmt.Errorf("connecting to redpanda: %w", err)
			}
			defer pub.Close()
			srv.SetPublisher(pub)
		}

		if httpMode {
			fmt.Fprintf(os.Stderr, "Serving MCP over HTTP on :%d%s\n", settings.ServerPort, settings.ServerPath)
			return srv.RunHTTP()
		}
		return srv.Run()
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [job-url]",
	Short: "Analyze a build's console log for errors",
	Long: `Fetch a build's console log and print either the whole log (when it
is below MAX_LOG_SIZE) or the extracted error snippets.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		resolved, err := resolver.Resolve(args[0], registry)
		if err != nil {
			return err
		}

		client := jenkins.NewClient(resolved.Instance, settings)
		log, err := client.ConsoleText(ctx, resolved.JobPath, resolved.BuildID)
		if err != nil {
			return jenkins.WrapError(err)
		}

		if withGitRefs {
			refs := gitrefs.Extract(sanitize.CleanConsole(log))
			fmt.Println(report.GitReferences(resolved.JobPath, resolved.BuildID, refs))
			fmt.Println()
		}

		switch {
		case log == "":
			fmt.Println(report.EmptyLog())
		case len(log) < settings.MaxLogSize:
			fmt.Println(report.FullLog(resolved.JobPath, resolved.BuildID, log))
		default:
			window := contextLines
			if window <= 0 {
				window = settings.ContextWindow
			}
			snips := snippets.Extract(sanitize.CleanConsole(log), window)
			if len(snips) == 0 {
				fmt.Println(report.NoSnippets(resolved.JobPath, resolved.BuildID, len(log)))
			} else {
				fmt.Println(report.Snippets(resolved.JobPath, resolved.BuildID, len(log), snips))
			}
		}
		return nil
	},
}

var triageCmd = &cobra.Command{
	Use:   "triage [job-url]",
	Short: "Interactively triage a build's error snippets",
	Long: `Extract error snippets from a build's console log and browse them in
an interactive terminal view. Reads from a local file instead when
--file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			log     string
			jobPath string
			buildID string
		)

		switch {
		case triageFile != "":
			data, err := os.ReadFile(triageFile)
			if err != nil {
				return fmt.Errorf("reading log file: %w", err)
			}
			log = string(data)
			jobPath = triageFile
			buildID = "local"
		case len(args) == 1:
			resolved, err := resolver.Resolve(args[0], registry)
			if err != nil {
				return err
			}
			client := jenkins.NewClient(resolved.Instance, settings)
			log, err = client.ConsoleText(context.Background(), resolved.JobPath, resolved.BuildID)
			if err != nil {
				return jenkins.WrapError(err)
			}
			jobPath = resolved.JobPath
			buildID = resolved.BuildID
		default:
			return fmt.Errorf("either a job URL or --file is required")
		}

		window := contextLines
		if window <= 0 {
			window = settings.ContextWindow
		}
		snips := snippets.Extract(sanitize.CleanConsole(log), window)

		return tui.Run(jobPath, buildID, len(log), snips)
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [job-url]",
	Short: "Show how a job URL maps to an instance, job path and build",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := resolver.Resolve(args[0], registry)
		if err != nil {
			return err
		}

		fmt.Printf("Instance:  %s\n", resolved.Instance.BaseURL)
		fmt.Printf("Job path:  %s\n", resolved.JobPath)
		fmt.Printf("Build:     %s\n", resolved.BuildID)
		return nil
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recent analysis runs recorded in Postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN environment variable is required for the recent command")
		}

		st, err := store.NewPostgresStore(settings.PostgresDSN)
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		defer st.Close()

		records, err := st.RecentAnalyses(context.Background(), recentLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No analysis runs recorded yet.")
			return nil
		}

		for _, r := range records {
			fmt.Printf("%s  %s  %s build %s  (%d chars, %d snippets, %d git refs)\n",
				r.CreatedAt.Format("2006-01-02 15:04:05"),
				shortBaseURL(r.BaseURL), r.JobPath, r.BuildID,
				r.LogSize, r.SnippetCount, r.GitRefCount)
		}
		return nil
	},
}

func shortBaseURL(baseURL string) string {
	trimmed := strings.TrimPrefix(baseURL, "https://")
	return strings.TrimPrefix(trimmed, "http://")
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print configuration and progress to stderr")

	serveCmd.Flags().BoolVar(&httpMode, "http", false, "serve over streamable HTTP instead of stdio")

	analyzeCmd.Flags().IntVar(&contextLines, "context", 0, "context lines around each error (default CONTEXT_WINDOW)")
	analyzeCmd.Flags().BoolVar(&withGitRefs, "git-refs", false, "also list git repositories referenced by the log")

	triageCmd.Flags().StringVar(&triageFile, "file", "", "triage a local console log file instead of fetching")
	triageCmd.Flags().IntVar(&contextLines, "context", 0, "context lines around each error (default CONTEXT_WINDOW)")

	recentCmd.Flags().IntVar(&recentLimit, "limit", 20, "maximum number of runs to list")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(triageCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(recentCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
