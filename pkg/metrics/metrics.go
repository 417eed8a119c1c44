// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AnalyticsDuration tracks time spent computing dashboard aggregates.
	AnalyticsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_compute_duration_seconds",
			Help:    "Time spent computing dashboard aggregates",
			Buckets: []float64{.00001, .0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"operation"},
	)

	// DatasetMessages tracks the number of loaded messages.
	DatasetMessages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_messages",
			Help: "Number of messages in the loaded dataset",
		},
	)

	// DatasetSentimentMessages tracks loaded messages per sentiment.
	DatasetSentimentMessages = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_sentiment_messages",
			Help: "Number of loaded messages per sentiment",
		},
		[]string{"sentiment"},
	)

	// LLMRequestDuration tracks insight generation duration.
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "LLM insight generation duration",
			Buckets: []float64{.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"model", "status"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"model", "direction"},
	)

	// SSEConnectionsActive tracks active SSE connections.
	SSEConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sse_connections_active",
			Help: "Number of active SSE connections",
		},
	)

	// SnapshotsPublished tracks dashboard snapshots published to NATS.
	SnapshotsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshots_published_total",
			Help: "Dashboard snapshots published to NATS",
		},
		[]string{"status"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordAnalytics records how long an aggregate took to compute.
func RecordAnalytics(operation string, duration float64) {
	AnalyticsDuration.WithLabelValues(operation).Observe(duration)
}

// SetDataset publishes the size and sentiment split of the loaded dataset.
func SetDataset(total int, bySentiment map[string]int) {
	DatasetMessages.Set(float64(total))
	for sentiment, n := range bySentiment {
		DatasetSentimentMessages.WithLabelValues(sentiment).Set(float64(n))
	}
}

// RecordLLM records metrics for an LLM insight request.
func RecordLLM(model, status string, duration float64, tokensIn, tokensOut int) {
	LLMRequestDuration.WithLabelValues(model, status).Observe(duration)
	LLMTokensTotal.WithLabelValues(model, "in").Add(float64(tokensIn))
	LLMTokensTotal.WithLabelValues(model, "out").Add(float64(tokensOut))
}

// RecordSnapshotPublish counts a snapshot publish attempt.
func RecordSnapshotPublish(status string) {
	SnapshotsPublished.WithLabelValues(status).Inc()
}

// IncrementSSEConnections increments the active SSE connection count.
func IncrementSSEConnections() {
	SSEConnectionsActive.Inc()
}

// DecrementSSEConnections decrements the active SSE connection count.
func DecrementSSEConnections() {
	SSEConnectionsActive.Dec()
}
