package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"smartstudy/internal/retry"
)

// Subject prefix for submission outcome events.
const SubjectPrefix = "smartstudy.submissions."

// Event describes how one submission ended. It never carries user content.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Task       string    `json:"task"`
	State      string    `json:"state"`
	Class      string    `json:"class,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	At         time.Time `json:"at"`
}

// Publisher exposes a minimal contract to emit events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

const maxPublishBackoff = 2 * time.Second

// PublishWithRetry attempts to publish with retries and exponential backoff.
func PublishWithRetry(ctx context.Context, p Publisher, ev Event, attempts int, base time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		if err := p.Publish(ctx, ev); err == nil {
			return nil
		} else if attempt == attempts-1 {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retry.ExponentialBackoff(attempt, base, maxPublishBackoff)):
		}
	}
	return nil
}
