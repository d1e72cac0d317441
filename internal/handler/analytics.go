package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/service"
	"github.com/SpaceC00kies/pranara-prototype-sub001/pkg/logger"
)

// AnalyticsHandler handles the admin analytics endpoints.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	logger           *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(svc *service.AnalyticsService, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: svc,
		logger:           log,
	}
}

// Report handles GET /api/v1/admin/analytics
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	days, err := parseDays(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.analyticsService.Report(r.Context(), days)
	if err != nil {
		h.logger.Error("failed to build analytics report", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "analytics data unavailable")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Export handles GET /api/v1/admin/analytics/export
func (h *AnalyticsHandler) Export(w http.ResponseWriter, r *http.Request) {
	days, err := parseDays(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Render to a buffer first so a store failure still yields a clean
	// error status instead of a truncated download.
	var buf bytes.Buffer
	if err := h.analyticsService.ExportCSV(r.Context(), &buf, days); err != nil {
		h.logger.Error("failed to export analytics", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "analytics data unavailable")
		return
	}

	filename := fmt.Sprintf("care-analytics-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(buf.Bytes())
}

// parseDays reads the optional days query parameter. Zero means "use the
// configured default"; the service clamps the upper bound.
func parseDays(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return 0, fmt.Errorf("days must be a positive integer")
	}
	return days, nil
}
