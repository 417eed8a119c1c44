package handler

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/capitalize-ai/message-analytics/internal/middleware"
	"github.com/capitalize-ai/message-analytics/internal/model"
	"github.com/capitalize-ai/message-analytics/internal/service"
	"github.com/capitalize-ai/message-analytics/pkg/logger"
)

// DashboardHandler handles the read-only dashboard endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(svc *service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: svc,
		logger:           log,
	}
}

// Dashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboardService.Snapshot(r.Context()))
}

// Summary handles GET /api/v1/summary
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboardService.Summary(r.Context()))
}

// Sentiment handles GET /api/v1/sentiment
func (h *DashboardHandler) Sentiment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboardService.Sentiment(r.Context()))
}

// Lengths handles GET /api/v1/lengths
func (h *DashboardHandler) Lengths(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboardService.Lengths(r.Context()))
}

// Messages handles GET /api/v1/messages
// Query: search, sentiment, sort, order, page (1-based), page_size
func (h *DashboardHandler) Messages(w http.ResponseWriter, r *http.Request) {
	q, err := parseTableQuery(r.URL.Query())
	if err != nil {
		h.logger.Debug("rejected table query",
			zap.String("query", r.URL.RawQuery),
			zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.dashboardService.Messages(r.Context(), q))
}

func parseTableQuery(values url.Values) (model.TableQuery, error) {
	q := model.TableQuery{
		Search:    values.Get("search"),
		Sentiment: values.Get("sentiment"),
		SortBy:    model.SortColumn(values.Get("sort")),
		Order:     model.SortOrder(values.Get("order")),
	}

	if err := middleware.ValidateSearchTerm(q.Search); err != nil {
		return q, err
	}
	if err := middleware.ValidateSentimentFilter(q.Sentiment); err != nil {
		return q, err
	}
	if err := middleware.ValidateSortColumn(string(q.SortBy)); err != nil {
		return q, err
	}
	if err := middleware.ValidateSortOrder(string(q.Order)); err != nil {
		return q, err
	}

	page, err := middleware.ParsePositiveInt("page", values.Get("page"), 1)
	if err != nil {
		return q, err
	}
	q.PageIndex = page - 1

	// Zero leaves the service default in place.
	q.PageSize, err = middleware.ParsePositiveInt("page_size", values.Get("page_size"), 0)
	if err != nil {
		return q, err
	}

	return q, nil
}
