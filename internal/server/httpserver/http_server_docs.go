package httpserver

import (
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/docsite/internal/livereload"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

func (s *Server) docsMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.pageHandlers.HandleIndex)
	for _, set := range s.library.Sets() {
		page := s.pageHandlers.DocumentHandler(set)
		mux.HandleFunc("GET "+set.Route(), page)
		mux.HandleFunc("GET "+set.Route()+"/{slug...}", page)
		s.logger.Debug("Registered document set", logfields.Set(set.ID()), logfields.Route(set.Route()))
	}

	mux.HandleFunc("GET /api/sets", s.apiHandlers.HandleSets)
	mux.HandleFunc("GET /api/sets/{set}/manifest", s.apiHandlers.HandleManifest)
	mux.HandleFunc("GET /api/sets/{set}/default", s.apiHandlers.HandleDefault)
	mux.HandleFunc("GET /api/sets/{set}/docs/{slug...}", s.apiHandlers.HandleDocument)

	if s.opts.LiveReloadHub != nil {
		mux.Handle("GET /livereload", s.opts.LiveReloadHub)
		mux.HandleFunc("GET /livereload.js", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
			if _, err := w.Write([]byte(livereload.Script)); err != nil {
				s.logger.Error("failed to write livereload script", logfields.Error(err))
			}
		})
		s.logger.Info("LiveReload endpoint registered", slog.String("path", "/livereload"))
	}

	mux.HandleFunc("/", s.pageHandlers.HandleNotFound)
	return mux
}
