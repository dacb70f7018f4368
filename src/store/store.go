// Package store persists the history of completed log analyses. The memory
// implementation backs single-process use; the Postgres implementation is
// enabled by POSTGRES_DSN for deployments that want durable history.
package store

import (
	"context"
	"time"
)

// AnalysisRecord summarizes one analyze_build_errors run.
type AnalysisRecord struct {
	RequestID    string
	BaseURL      string
	JobPath      string
	BuildID      string
	LogSize      int
	SnippetCount int
	GitRefCount  int
	CreatedAt    time.Time
}

// Store persists analysis records.
type Store interface {
	// SaveAnalysis records a completed analysis.
	SaveAnalysis(ctx context.Context, record AnalysisRecord) error

	// RecentAnalyses returns up to limit records, newest first.
	RecentAnalyses(ctx context.Context, limit int) ([]AnalysisRecord, error)

	// Close releases the underlying connection.
	Close() error
}
