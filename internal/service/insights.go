package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/capitalize-ai/message-analytics/internal/llm"
	"github.com/capitalize-ai/message-analytics/internal/model"
	"github.com/capitalize-ai/message-analytics/pkg/logger"
	"github.com/capitalize-ai/message-analytics/pkg/metrics"
)

// ErrInsightsUnavailable is returned when no LLM provider is configured.
var ErrInsightsUnavailable = errors.New("insights are not configured")

// TokenCallback is called for each token during streaming.
type TokenCallback func(token string, index int) error

const insightSystemPrompt = "You are an analyst summarizing a chat sentiment dashboard. " +
	"Write three short paragraphs: overall mood, notable users, and one suggestion. " +
	"Only use the numbers you are given."

const insightMaxTokens = 512

// InsightService asks an LLM for a narrative digest of the dashboard.
type InsightService struct {
	dashboard *DashboardService
	llmClient llm.Client
	model     string
	logger    *logger.Logger
}

// NewInsightService creates an insight service. A nil client disables insights.
func NewInsightService(dashboard *DashboardService, llmClient llm.Client, modelName string, log *logger.Logger) *InsightService {
	return &InsightService{
		dashboard: dashboard,
		llmClient: llmClient,
		model:     modelName,
		logger:    log,
	}
}

// Enabled reports whether an LLM client is configured.
func (s *InsightService) Enabled() bool {
	return s.llmClient != nil
}

// Generate returns a digest of the current snapshot.
func (s *InsightService) Generate(ctx context.Context) (*model.InsightResponse, error) {
	if s.llmClient == nil {
		return nil, ErrInsightsUnavailable
	}

	snap := s.dashboard.Snapshot(ctx)
	req := s.request(snap)

	start := time.Now()
	resp, err := s.llmClient.Complete(ctx, req)
	if err != nil {
		metrics.RecordLLM(s.modelName(), "error", time.Since(start).Seconds(), 0, 0)
		return nil, fmt.Errorf("insight completion failed: %w", err)
	}
	metrics.RecordLLM(resp.Model, "success", time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)

	return s.response(snap, resp), nil
}

// Stream generates a digest of the current snapshot, calling onToken as
// tokens arrive.
func (s *InsightService) Stream(ctx context.Context, onToken TokenCallback) (*model.InsightResponse, error) {
	if s.llmClient == nil {
		return nil, ErrInsightsUnavailable
	}

	snap := s.dashboard.Snapshot(ctx)
	req := s.request(snap)

	start := time.Now()
	resp, err := s.llmClient.CompleteStream(ctx, req, func(token string, index int) error {
		return onToken(token, index)
	})
	if err != nil {
		metrics.RecordLLM(s.modelName(), "error", time.Since(start).Seconds(), 0, 0)
		s.logger.Warn("insight stream failed", zap.String("snapshot_id", snap.ID), zap.Error(err))
		return nil, fmt.Errorf("insight stream failed: %w", err)
	}
	metrics.RecordLLM(resp.Model, "success", time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)

	return s.response(snap, resp), nil
}

func (s *InsightService) modelName() string {
	if s.model != "" {
		return s.model
	}
	return s.llmClient.DefaultModel()
}

func (s *InsightService) request(snap *model.Snapshot) *llm.CompletionRequest {
	return &llm.CompletionRequest{
		Model:     s.modelName(),
		System:    insightSystemPrompt,
		Messages:  []llm.ChatMessage{{Role: "user", Content: BuildInsightPrompt(snap)}},
		MaxTokens: insightMaxTokens,
	}
}

func (s *InsightService) response(snap *model.Snapshot, resp *llm.CompletionResponse) *model.InsightResponse {
	return &model.InsightResponse{
		SnapshotID: snap.ID,
		Content:    resp.Content,
		Model:      resp.Model,
		TokensIn:   resp.TokensIn,
		TokensOut:  resp.TokensOut,
		LatencyMs:  resp.LatencyMs,
	}
}

// BuildInsightPrompt renders a snapshot as the user turn of the digest prompt.
func BuildInsightPrompt(snap *model.Snapshot) string {
	var b strings.Builder

	stats := snap.Summary
	fmt.Fprintf(&b, "Total messages: %d\n", stats.TotalMessages)
	fmt.Fprintf(&b, "Average message length: %d characters\n", stats.AverageLength)
	fmt.Fprintf(&b, "Positive share: %s\n", snap.PositivePercentage)

	b.WriteString("\nSentiment distribution:\n")
	for _, entry := range snap.Sentiment {
		fmt.Fprintf(&b, "- %s: %d\n", entry.Name, entry.Value)
	}

	if len(snap.MessageLengths) > 0 {
		b.WriteString("\nLongest messages by user:\n")
		for _, entry := range snap.MessageLengths {
			fmt.Fprintf(&b, "- %s: %d\n", entry.User, entry.Length)
		}
	}

	return b.String()
}
