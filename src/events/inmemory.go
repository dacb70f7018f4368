package events

import (
	"context"
	"sync"
)

// Message is one published event retained by the in-memory publisher.
type Message struct {
	Topic string
	Key   string
	Value []byte
}

// InMemoryPublisher retains published events in memory. It serves tests and
// single-process runs where no broker is configured.
type InMemoryPublisher struct {
	mu       sync.Mutex
	messages []Message
	closed   bool
}

// NewInMemoryPublisher creates an empty in-memory publisher.
func NewInMemoryPublisher() *InMemoryPublisher {
	return &InMemoryPublisher{}
}

// Publish appends the event.
func (p *InMemoryPublisher) Publish(ctx context.Context, topic string, key string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPublisherClosed
	}
	p.messages = append(p.messages, Message{Topic: topic, Key: key, Value: value})
	return nil
}

// Messages returns a copy of everything published so far.
func (p *InMemoryPublisher) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Message, len(p.messages))
	copy(out, p.messages)
	return out
}

// Close marks the publisher closed; later publishes fail.
func (p *InMemoryPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
