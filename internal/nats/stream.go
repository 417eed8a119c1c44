package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/capitalize-ai/message-analytics/internal/model"
)

const (
	// StreamName is the name of the analytics stream.
	StreamName = "ANALYTICS"

	// SubjectPrefix is the prefix for all analytics subjects.
	SubjectPrefix = "analytics"

	// SnapshotSubject is where computed dashboard snapshots are published.
	SnapshotSubject = SubjectPrefix + ".snapshot"
)

// StreamConfig describes the analytics stream.
func StreamConfig() jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{SubjectPrefix + ".>"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      30 * 24 * time.Hour,
		MaxBytes:    1024 * 1024 * 1024,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Duplicates:  10 * time.Minute,
		Description: "Dashboard analytics snapshots",
	}
}

// StreamManager handles JetStream stream operations.
type StreamManager struct {
	client *Client
}

// NewStreamManager creates a new stream manager.
func NewStreamManager(client *Client) *StreamManager {
	return &StreamManager{client: client}
}

// EnsureStream creates the analytics stream if it does not exist yet.
func (m *StreamManager) EnsureStream(ctx context.Context) error {
	js := m.client.JetStream()

	_, err := js.Stream(ctx, StreamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, jetstream.ErrStreamNotFound) {
		return fmt.Errorf("failed to look up stream: %w", err)
	}

	if _, err := js.CreateStream(ctx, StreamConfig()); err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

// PublishSnapshot publishes a snapshot and returns its stream sequence.
// The snapshot id doubles as the message id so retries are deduplicated.
func (m *StreamManager) PublishSnapshot(ctx context.Context, snap *model.Snapshot) (uint64, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	ack, err := m.client.JetStream().Publish(ctx, SnapshotSubject, data, jetstream.WithMsgID(snap.ID))
	if err != nil {
		return 0, fmt.Errorf("failed to publish snapshot: %w", err)
	}

	return ack.Sequence, nil
}

// Subject returns the subject snapshots are published to.
func (m *StreamManager) Subject() string {
	return SnapshotSubject
}

// Ready reports whether the underlying connection is usable.
func (m *StreamManager) Ready() bool {
	return m.client.IsConnected()
}
