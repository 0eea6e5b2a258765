package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/server/responses"
	"git.home.luguber.info/inful/docsite/internal/version"
)

// MonitoringHandlers contains health and readiness handlers.
type MonitoringHandlers struct {
	startTime    time.Time
	contentRoot  string
	errorAdapter *errors.HTTPErrorAdapter
}

// NewMonitoringHandlers creates monitoring handlers. contentRoot is checked by
// the readiness probe.
func NewMonitoringHandlers(contentRoot string, startTime time.Time, logger *slog.Logger) *MonitoringHandlers {
	return &MonitoringHandlers{
		startTime:    startTime,
		contentRoot:  contentRoot,
		errorAdapter: errors.NewHTTPErrorAdapter(logger),
	}
}

// HandleHealthCheck reports liveness.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	health := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.startTime).Seconds(),
	}
	if err := writeJSONPretty(w, r, http.StatusOK, health); err != nil {
		internalErr := errors.WrapError(err, errors.CategoryInternal, "failed to write health response").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}

// HandleReadiness is ready once the content root is a directory.
func (h *MonitoringHandlers) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	resp := responses.ReadinessResponse{Status: "ready"}
	if st, err := os.Stat(h.contentRoot); err != nil || !st.IsDir() {
		status = http.StatusServiceUnavailable
		resp = responses.ReadinessResponse{Status: "not ready", Reason: "content root missing"}
	}
	if err := writeJSON(w, status, resp); err != nil {
		internalErr := errors.WrapError(err, errors.CategoryInternal, "failed to write readiness response").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}
