// Package events publishes analysis-completed notifications so other systems
// (dashboards, alerting) can follow what the server analyzed. Publishing is
// optional; the in-memory publisher is the default when no brokers are
// configured.
package events

import "context"

// TopicAnalyses receives one event per completed build analysis.
const TopicAnalyses = "jenkins.build.analyses"

// AnalysisEvent is the payload published to TopicAnalyses.
type AnalysisEvent struct {
	RequestID    string `json:"request_id"`
	BaseURL      string `json:"base_url"`
	JobPath      string `json:"job_path"`
	BuildID      string `json:"build_id"`
	LogSize      int    `json:"log_size"`
	SnippetCount int    `json:"snippet_count"`
	GitRefCount  int    `json:"git_ref_count"`
	Timestamp    string `json:"timestamp"`
}

// Publisher abstracts event publishing. Key selects the partition for
// Kafka-compatible brokers and is ignored by the in-memory implementation.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, value []byte) error
	Close() error
}
