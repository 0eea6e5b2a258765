package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/server/handlers"
	smw "git.home.luguber.info/inful/docsite/internal/server/middleware"
)

// Server manages the docs and admin HTTP endpoints.
type Server struct {
	docsServer   *http.Server
	adminServer  *http.Server
	cfg          *config.Config
	library      *docs.Library
	opts         Options
	logger       *slog.Logger
	errorAdapter *derrors.HTTPErrorAdapter

	// Handler modules
	monitoringHandlers *handlers.MonitoringHandlers
	apiHandlers        *handlers.APIHandlers
	pageHandlers       *handlers.PageHandlers

	docsHandler  http.Handler
	adminHandler http.Handler

	mu        sync.Mutex
	docsAddr  net.Addr
	adminAddr net.Addr
}

// New constructs the server and its routes. Nothing is bound until Start.
func New(cfg *config.Config, library *docs.Library, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.StartTime.IsZero() {
		opts.StartTime = time.Now()
	}

	s := &Server{
		cfg:          cfg,
		library:      library,
		opts:         opts,
		logger:       opts.Logger,
		errorAdapter: derrors.NewHTTPErrorAdapter(opts.Logger),
	}

	s.monitoringHandlers = handlers.NewMonitoringHandlers(cfg.Content.Root, opts.StartTime, opts.Logger)
	s.apiHandlers = handlers.NewAPIHandlers(library, opts.Logger)
	pages, err := handlers.NewPageHandlers(library, handlers.PageOptions{
		SiteTitle:  cfg.Server.SiteTitle,
		LiveReload: opts.LiveReloadHub != nil,
	}, opts.Logger)
	if err != nil {
		return nil, err
	}
	s.pageHandlers = pages

	chain := smw.Chain(opts.Logger, s.errorAdapter, opts.Recorder)
	s.docsHandler = chain(s.docsMux())
	s.adminHandler = chain(s.adminMux())
	return s, nil
}

// DocsHandler returns the fully wrapped docs handler.
func (s *Server) DocsHandler() http.Handler { return s.docsHandler }

// AdminHandler returns the fully wrapped admin handler.
func (s *Server) AdminHandler() http.Handler { return s.adminHandler }

// Start binds both ports and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	// Pre-bind all required ports so we can fail fast and surface aggregate errors instead of
	// logging independent 'address already in use' lines after partial initialization.
	type preBind struct {
		name string
		port int
		ln   net.Listener
	}
	binds := []preBind{
		{name: "docs", port: s.cfg.Server.DocsPort},
		{name: "admin", port: s.cfg.Server.AdminPort},
	}
	var bindErrs []error
	lc := net.ListenConfig{}
	for i := range binds {
		addr := net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(binds[i].port))
		ln, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			bindErrs = append(bindErrs, fmt.Errorf("%s port %d: %w", binds[i].name, binds[i].port, err))
			continue
		}
		binds[i].ln = ln
	}
	if len(bindErrs) > 0 {
		for _, b := range binds {
			if b.ln != nil {
				_ = b.ln.Close()
			}
		}
		return derrors.WrapError(errors.Join(bindErrs...), derrors.CategoryRuntime, "http startup failed").
			Fatal().
			Build()
	}

	s.mu.Lock()
	s.docsServer = &http.Server{
		Handler:      s.docsHandler,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}
	s.adminServer = &http.Server{
		Handler:      s.adminHandler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	s.docsAddr = binds[0].ln.Addr()
	s.adminAddr = binds[1].ln.Addr()
	s.mu.Unlock()

	s.serve("docs", s.docsServer, binds[0].ln)
	s.serve("admin", s.adminServer, binds[1].ln)

	s.logger.Info("HTTP servers started",
		slog.String("docs_addr", s.docsAddr.String()),
		slog.String("admin_addr", s.adminAddr.String()),
		slog.Bool("live_reload", s.opts.LiveReloadHub != nil))
	return nil
}

// Addrs reports the bound docs and admin addresses after Start.
func (s *Server) Addrs() (docsAddr, adminAddr net.Addr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docsAddr, s.adminAddr
}

// Stop gracefully shuts down both servers.
func (s *Server) Stop(ctx context.Context) error {
	var errs []error

	// SSE streams never finish on their own.
	if s.opts.LiveReloadHub != nil {
		s.opts.LiveReloadHub.Shutdown()
	}

	s.mu.Lock()
	adminServer, docsServer := s.adminServer, s.docsServer
	s.mu.Unlock()

	if adminServer != nil {
		if err := adminServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("admin server shutdown: %w", err))
		}
	}
	if docsServer != nil {
		if err := docsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("docs server shutdown: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}

	s.logger.Info("HTTP servers stopped")
	return nil
}

// serve launches srv on a pre-bound listener.
func (s *Server) serve(kind string, srv *http.Server, ln net.Listener) {
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(fmt.Sprintf("%s server error", kind), logfields.Error(err))
		}
	}()
}
