package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/capitalize-ai/message-analytics/internal/model"
	"github.com/capitalize-ai/message-analytics/pkg/logger"
	"github.com/capitalize-ai/message-analytics/pkg/metrics"
)

// ErrPublisherUnavailable is returned when snapshot publishing is not configured.
var ErrPublisherUnavailable = errors.New("snapshot publishing is not configured")

// SnapshotPublisher delivers a computed snapshot to a downstream consumer.
type SnapshotPublisher interface {
	PublishSnapshot(ctx context.Context, snap *model.Snapshot) (uint64, error)
	Subject() string
}

// SnapshotService publishes the current dashboard snapshot.
type SnapshotService struct {
	dashboard *DashboardService
	publisher SnapshotPublisher
	logger    *logger.Logger
}

// NewSnapshotService creates a snapshot service. A nil publisher disables publishing.
func NewSnapshotService(dashboard *DashboardService, publisher SnapshotPublisher, log *logger.Logger) *SnapshotService {
	return &SnapshotService{
		dashboard: dashboard,
		publisher: publisher,
		logger:    log,
	}
}

// Enabled reports whether a publisher is configured.
func (s *SnapshotService) Enabled() bool {
	return s.publisher != nil
}

// Publish computes a fresh snapshot and publishes it.
func (s *SnapshotService) Publish(ctx context.Context) (*model.PublishSnapshotResponse, error) {
	if s.publisher == nil {
		return nil, ErrPublisherUnavailable
	}

	snap := s.dashboard.Snapshot(ctx)

	seq, err := s.publisher.PublishSnapshot(ctx, snap)
	if err != nil {
		metrics.RecordSnapshotPublish("error")
		return nil, fmt.Errorf("failed to publish snapshot %s: %w", snap.ID, err)
	}
	metrics.RecordSnapshotPublish("success")

	s.logger.Info("snapshot published",
		zap.String("snapshot_id", snap.ID),
		zap.String("subject", s.publisher.Subject()),
		zap.Uint64("sequence", seq),
	)

	return &model.PublishSnapshotResponse{
		SnapshotID: snap.ID,
		Subject:    s.publisher.Subject(),
		Sequence:   seq,
	}, nil
}
