package commands

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
)

// Global is shared state bound into every command's Run method.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsite.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve      ServeCmd      `cmd:"" help:"Serve the documentation site and the admin endpoints"`
	Manifest   ManifestCmd   `cmd:"" help:"Print the ordered manifest of a document set"`
	Show       ShowCmd       `cmd:"" help:"Render one document of a set"`
	Render     RenderCmd     `cmd:"" help:"Render a markdown file and print its table of contents"`
	CheckLinks CheckLinksCmd `cmd:"" name:"check-links" help:"Report links that point to missing documents"`
	Init       InitCmd       `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig reads the configuration file, or the built-in defaults when it
// does not exist, and switches logging to the configured handler.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(c.Config)
	if err != nil {
		return nil, err
	}
	g.Logger = cfg.Logging.NewLogger(os.Stderr, c.Verbose)
	slog.SetDefault(g.Logger)
	return cfg, nil
}

func openLibrary(cfg *config.Config, g *Global, opts ...docs.Option) (*docs.Library, error) {
	opts = append([]docs.Option{docs.WithLogger(g.Logger)}, opts...)
	return docs.NewLibrary(cfg, os.DirFS(cfg.Content.Root), opts...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
