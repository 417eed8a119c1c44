package model

import "time"

// SentimentBreakdown counts messages per sentiment.
type SentimentBreakdown struct {
	Positive int `json:"positive" yaml:"positive"`
	Neutral  int `json:"neutral" yaml:"neutral"`
	Negative int `json:"negative" yaml:"negative"`
}

// Count returns the tally for s, or 0 for an unknown label.
func (b SentimentBreakdown) Count(s Sentiment) int {
	switch s {
	case SentimentPositive:
		return b.Positive
	case SentimentNeutral:
		return b.Neutral
	case SentimentNegative:
		return b.Negative
	default:
		return 0
	}
}

// SummaryStats holds the headline numbers for a message collection.
type SummaryStats struct {
	TotalMessages      int                `json:"total_messages" yaml:"total_messages"`
	AverageLength      int                `json:"average_length" yaml:"average_length"`
	SentimentBreakdown SentimentBreakdown `json:"sentiment_breakdown" yaml:"sentiment_breakdown"`
}

// SentimentData is one slice of the sentiment distribution chart.
type SentimentData struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
	Color string `json:"color" yaml:"color"`
}

// MessageLengthData is one bar of the per-user length chart.
type MessageLengthData struct {
	User   string `json:"user" yaml:"user"`
	Length int    `json:"length" yaml:"length"`
}

// SummaryResponse is the response for the summary cards.
type SummaryResponse struct {
	Stats              SummaryStats `json:"stats" yaml:"stats"`
	PositivePercentage string       `json:"positive_percentage" yaml:"positive_percentage"`
}

// Snapshot is the full dashboard payload computed from one pass over the dataset.
type Snapshot struct {
	ID                 string              `json:"id" yaml:"id"`
	GeneratedAt        time.Time           `json:"generated_at" yaml:"generated_at"`
	Summary            SummaryStats        `json:"summary" yaml:"summary"`
	PositivePercentage string              `json:"positive_percentage" yaml:"positive_percentage"`
	Sentiment          []SentimentData     `json:"sentiment" yaml:"sentiment"`
	MessageLengths     []MessageLengthData `json:"message_lengths" yaml:"message_lengths"`
}

// InsightResponse is the response for a generated dashboard digest.
type InsightResponse struct {
	SnapshotID string `json:"snapshot_id"`
	Content    string `json:"content"`
	Model      string `json:"model"`
	TokensIn   int    `json:"tokens_in,omitempty"`
	TokensOut  int    `json:"tokens_out,omitempty"`
	LatencyMs  int64  `json:"latency_ms"`
}

// PublishSnapshotResponse is the response after publishing a snapshot.
type PublishSnapshotResponse struct {
	SnapshotID string `json:"snapshot_id"`
	Subject    string `json:"subject"`
	Sequence   uint64 `json:"sequence"`
}

// TokenEvent represents a streaming token event.
type TokenEvent struct {
	Token string `json:"token"`
	Index int    `json:"index"`
}

// ErrorEvent represents an error event.
type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
