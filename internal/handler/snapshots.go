package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/capitalize-ai/message-analytics/internal/middleware"
	"github.com/capitalize-ai/message-analytics/internal/service"
	"github.com/capitalize-ai/message-analytics/pkg/logger"
)

// SnapshotHandler handles snapshot publishing.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
	logger          *logger.Logger
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(svc *service.SnapshotService, log *logger.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: svc,
		logger:          log,
	}
}

// Publish handles POST /api/v1/snapshots
func (h *SnapshotHandler) Publish(w http.ResponseWriter, r *http.Request) {
	resp, err := h.snapshotService.Publish(r.Context())
	if errors.Is(err, service.ErrPublisherUnavailable) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to publish snapshot",
			zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, "failed to publish snapshot")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}
