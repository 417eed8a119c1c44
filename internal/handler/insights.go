package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/capitalize-ai/message-analytics/internal/middleware"
	"github.com/capitalize-ai/message-analytics/internal/model"
	"github.com/capitalize-ai/message-analytics/internal/service"
	"github.com/capitalize-ai/message-analytics/pkg/logger"
	"github.com/capitalize-ai/message-analytics/pkg/metrics"
)

// InsightHandler handles the LLM digest endpoints.
type InsightHandler struct {
	insightService *service.InsightService
	logger         *logger.Logger
}

// NewInsightHandler creates a new insight handler.
func NewInsightHandler(svc *service.InsightService, log *logger.Logger) *InsightHandler {
	return &InsightHandler{
		insightService: svc,
		logger:         log,
	}
}

// Get handles GET /api/v1/insights
func (h *InsightHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.insightService.Generate(r.Context())
	if errors.Is(err, service.ErrInsightsUnavailable) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to generate insights",
			zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, "failed to generate insights")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Stream handles GET /api/v1/insights/stream
// Emits token events as the digest is generated, then complete and done.
func (h *InsightHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.insightService.Enabled() {
		writeError(w, http.StatusServiceUnavailable, service.ErrInsightsUnavailable.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	metrics.IncrementSSEConnections()
	defer metrics.DecrementSSEConnections()

	resp, err := h.insightService.Stream(ctx, func(token string, index int) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		return sendSSEEvent(w, flusher, "token", &model.TokenEvent{
			Token: token,
			Index: index,
		})
	})
	if err != nil {
		if ctx.Err() != nil {
			h.logger.Info("SSE client disconnected")
			return
		}
		h.logger.Error("insight stream failed",
			zap.String("correlation_id", middleware.GetCorrelationID(ctx)),
			zap.Error(err),
		)
		sendSSEEvent(w, flusher, "error", &model.ErrorEvent{
			Code:    "stream_error",
			Message: "failed to generate insights",
		})
		return
	}

	sendSSEEvent(w, flusher, "complete", resp)
	sendSSEEvent(w, flusher, "done", map[string]bool{"success": true})
}
