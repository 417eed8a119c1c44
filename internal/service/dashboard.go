// Package service provides the business logic behind the dashboard API.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/capitalize-ai/message-analytics/internal/analytics"
	"github.com/capitalize-ai/message-analytics/internal/dataset"
	"github.com/capitalize-ai/message-analytics/internal/model"
	"github.com/capitalize-ai/message-analytics/pkg/logger"
	"github.com/capitalize-ai/message-analytics/pkg/metrics"
	"github.com/capitalize-ai/message-analytics/pkg/tracing"
)

// DashboardService computes dashboard views from the loaded dataset. Every
// call recomputes from the records; nothing is cached between requests.
type DashboardService struct {
	store           dataset.Store
	logger          *logger.Logger
	defaultPageSize int
	now             func() time.Time
}

// NewDashboardService creates a new dashboard service and publishes the
// dataset gauges.
func NewDashboardService(store dataset.Store, defaultPageSize int, log *logger.Logger) *DashboardService {
	if defaultPageSize <= 0 {
		defaultPageSize = analytics.DefaultPageSize
	}

	s := &DashboardService{
		store:           store,
		logger:          log,
		defaultPageSize: defaultPageSize,
		now:             time.Now,
	}

	stats := analytics.CalculateSummaryStats(store.All())
	bySentiment := make(map[string]int, len(model.Sentiments))
	for _, sentiment := range model.Sentiments {
		bySentiment[string(sentiment)] = stats.SentimentBreakdown.Count(sentiment)
	}
	metrics.SetDataset(stats.TotalMessages, bySentiment)

	log.Info("dataset loaded",
		zap.String("source", store.Source()),
		zap.Int("messages", stats.TotalMessages),
		zap.Int("average_length", stats.AverageLength),
	)

	return s
}

func (s *DashboardService) observe(ctx context.Context, op string) (context.Context, func()) {
	start := time.Now()
	ctx, span := tracing.Tracer().Start(ctx, "dashboard."+op,
		trace.WithAttributes(
			attribute.String("dataset.source", s.store.Source()),
			attribute.Int("dataset.messages", s.store.Len()),
		),
	)
	return ctx, func() {
		span.End()
		metrics.RecordAnalytics(op, time.Since(start).Seconds())
	}
}

// Snapshot computes every dashboard view in one pass over the dataset.
func (s *DashboardService) Snapshot(ctx context.Context) *model.Snapshot {
	_, done := s.observe(ctx, "snapshot")
	defer done()

	messages := s.store.All()
	stats := analytics.CalculateSummaryStats(messages)

	return &model.Snapshot{
		ID:                 uuid.Must(uuid.NewV7()).String(),
		GeneratedAt:        s.now().UTC(),
		Summary:            stats,
		PositivePercentage: analytics.FormatSentimentPercentage(stats.SentimentBreakdown.Positive, stats.TotalMessages),
		Sentiment:          analytics.ProcessSentimentData(messages),
		MessageLengths:     analytics.ProcessMessageLengthData(messages),
	}
}

// Summary returns the headline stats and the positive share.
func (s *DashboardService) Summary(ctx context.Context) model.SummaryResponse {
	_, done := s.observe(ctx, "summary")
	defer done()

	stats := analytics.CalculateSummaryStats(s.store.All())
	return model.SummaryResponse{
		Stats:              stats,
		PositivePercentage: analytics.FormatSentimentPercentage(stats.SentimentBreakdown.Positive, stats.TotalMessages),
	}
}

// Sentiment returns the three-entry sentiment chart series.
func (s *DashboardService) Sentiment(ctx context.Context) []model.SentimentData {
	_, done := s.observe(ctx, "sentiment")
	defer done()

	return analytics.ProcessSentimentData(s.store.All())
}

// Lengths returns the per-user length ranking.
func (s *DashboardService) Lengths(ctx context.Context) []model.MessageLengthData {
	_, done := s.observe(ctx, "lengths")
	defer done()

	return analytics.ProcessMessageLengthData(s.store.All())
}

// Messages returns one page of the filtered, sorted message table.
func (s *DashboardService) Messages(ctx context.Context, q model.TableQuery) model.TablePage {
	_, done := s.observe(ctx, "messages")
	defer done()

	if q.PageSize <= 0 {
		q.PageSize = s.defaultPageSize
	}
	return analytics.Query(s.store.All(), q)
}

// Ready reports whether a dataset is attached and names where it came from.
// An empty dataset still counts; an unnamed store does not.
func (s *DashboardService) Ready() bool {
	return s.store != nil && s.store.Source() != ""
}

// Source describes where the dataset was loaded from.
func (s *DashboardService) Source() string {
	return s.store.Source()
}
