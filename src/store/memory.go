package store

import (
	"context"
	"sync"
)

// MemoryStore is a thread-safe in-memory implementation of Store.
type MemoryStore struct {
	mu      sync.RWMutex
	records []AnalysisRecord
}

// NewMemoryStore creates an empty in-memory analysis history.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveAnalysis appends the record.
func (s *MemoryStore) SaveAnalysis(ctx context.Context, record AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// RecentAnalyses returns up to limit records, newest first.
func (s *MemoryStore) RecentAnalyses(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}

	out := make([]AnalysisRecord, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
