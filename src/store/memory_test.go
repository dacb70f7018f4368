package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreSaveAndList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := s.SaveAnalysis(ctx, AnalysisRecord{
			RequestID: fmt.Sprintf("req-%d", i),
			JobPath:   "Team/job/App",
			BuildID:   fmt.Sprintf("%d", 100+i),
			CreatedAt: time.Now(),
		})
		if err != nil {
			t.Fatalf("SaveAnalysis() error: %v", err)
		}
	}

	records, err := s.RecentAnalyses(ctx, 2)
	if err != nil {
		t.Fatalf("RecentAnalyses() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].RequestID != "req-2" {
		t.Errorf("records[0] = %q, want newest first (req-2)", records[0].RequestID)
	}
	if records[1].RequestID != "req-1" {
		t.Errorf("records[1] = %q, want req-1", records[1].RequestID)
	}
}

func TestMemoryStoreLimitLargerThanContents(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.SaveAnalysis(ctx, AnalysisRecord{RequestID: "only"})

	records, err := s.RecentAnalyses(ctx, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.SaveAnalysis(ctx, AnalysisRecord{RequestID: fmt.Sprintf("req-%d", i)})
			s.RecentAnalyses(ctx, 5)
		}(i)
	}
	wg.Wait()

	records, err := s.RecentAnalyses(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 20 {
		t.Errorf("got %d records, want 20", len(records))
	}
}
