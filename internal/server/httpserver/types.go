package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// LiveReloadHub supports the LiveReload SSE endpoint and broadcast notifications.
type LiveReloadHub interface {
	http.Handler
	Broadcast(version string)
	Shutdown()
}

// Options configures additional server wiring that is runtime-specific.
type Options struct {
	// Optional: live reload support.
	LiveReloadHub LiveReloadHub

	// Optional: served on the admin server at metrics.path when metrics are enabled.
	MetricsHandler http.Handler

	Recorder  metrics.Recorder
	Logger    *slog.Logger
	StartTime time.Time
}
