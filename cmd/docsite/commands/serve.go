package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
	"git.home.luguber.info/inful/docsite/internal/livereload"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/server/httpserver"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	DocsPort     int  `name:"docs-port" help:"Docs server port (overrides configuration)."`
	AdminPort    int  `name:"admin-port" help:"Admin server port (overrides configuration)."`
	NoLiveReload bool `name:"no-live-reload" help:"Disable live reload of pages on content changes."`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if s.DocsPort > 0 {
		cfg.Server.DocsPort = s.DocsPort
	}
	if s.AdminPort > 0 {
		cfg.Server.AdminPort = s.AdminPort
	}
	if s.NoLiveReload {
		cfg.LiveReload.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunServe(ctx, cfg, g.Logger)
}

// RunServe starts the docs and admin servers and blocks until ctx is done.
func RunServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	opts := httpserver.Options{Logger: logger, Recorder: metrics.NoopRecorder{}}
	if cfg.Metrics.Enabled {
		reg := prom.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts.Recorder = metrics.NewPrometheusRecorder(reg)
		opts.MetricsHandler = metrics.HTTPHandler(reg)
	}

	library, err := docs.NewLibrary(cfg, os.DirFS(cfg.Content.Root),
		docs.WithLogger(logger), docs.WithRecorder(opts.Recorder))
	if err != nil {
		return err
	}

	var watcher *livereload.Watcher
	if cfg.LiveReload.Enabled {
		hub := livereload.NewHub(logger)
		opts.LiveReloadHub = hub
		watcher = livereload.NewWatcher(cfg.Content.Root, cfg.LiveReload.Debounce, hub.Broadcast,
			livereload.WithWatcherLogger(logger),
			livereload.WithWatcherRecorder(opts.Recorder))
	}

	srv, err := httpserver.New(cfg, library, opts)
	if err != nil {
		return err
	}
	if err := srv.Start(ctx); err != nil {
		return err
	}

	if watcher != nil {
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Warn("Content watcher stopped", logfields.Error(err))
			}
		}()
	}

	<-ctx.Done()
	logger.Info("Shutdown signal received, stopping servers")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer stopCancel()
	return srv.Stop(stopCtx)
}
