package httpserver

import "net/http"

func (s *Server) adminMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.monitoringHandlers.HandleHealthCheck)
	mux.HandleFunc("GET /readyz", s.monitoringHandlers.HandleReadiness)

	if s.cfg.Metrics.Enabled && s.opts.MetricsHandler != nil {
		mux.Handle("GET "+s.cfg.Metrics.Path, s.opts.MetricsHandler)
	}
	return mux
}
