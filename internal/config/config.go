package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Config is the docs site configuration.
type Config struct {
	Content    ContentConfig    `yaml:"content"`
	Sets       []DocumentSet    `yaml:"sets"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	LiveReload LiveReloadConfig `yaml:"live_reload"`
}

// ContentConfig locates the document sets on disk.
type ContentConfig struct {
	Root      string `yaml:"root"`
	Extension string `yaml:"extension"` // suffix stripped to form slugs, e.g. ".txt"
}

// DocumentSet configures one independent collection of documents.
type DocumentSet struct {
	ID             string           `yaml:"id"`
	Title          string           `yaml:"title,omitempty"`
	Dir            string           `yaml:"dir"`   // relative to content.root
	Route          string           `yaml:"route"` // URL prefix for HTML pages
	Sections       []string         `yaml:"sections"`
	DefaultSection string           `yaml:"default_section"`
	DefaultOrder   *int             `yaml:"default_order,omitempty"`
	Order          map[string]int   `yaml:"order,omitempty"` // keyed by slug or basename
	Preferred      []string         `yaml:"preferred,omitempty"`
	FallbackSlug   string           `yaml:"fallback_slug,omitempty"`
	Classifier     ClassifierConfig `yaml:"classifier"`
}

// ClassifierConfig selects the section classification strategy for a set.
type ClassifierConfig struct {
	Strategy ClassifierStrategy `yaml:"strategy"`
	Rules    []SectionRule      `yaml:"rules"`
}

// SectionRule maps documents to a section. Prefixes and Slugs are used by the
// prefix strategy; Names by the basename strategy.
type SectionRule struct {
	Section  string   `yaml:"section"`
	Prefixes []string `yaml:"prefixes,omitempty"`
	Slugs    []string `yaml:"slugs,omitempty"`
	Names    []string `yaml:"names,omitempty"`
}

// ServerConfig configures the HTTP listeners.
type ServerConfig struct {
	Host            string        `yaml:"host,omitempty"`
	DocsPort        int           `yaml:"docs_port"`
	AdminPort       int           `yaml:"admin_port"`
	SiteTitle       string        `yaml:"site_title"`
	ReadTimeout     time.Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout    time.Duration `yaml:"write_timeout,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig toggles the Prometheus endpoint on the admin server.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LiveReloadConfig toggles content watching and browser refresh.
type LiveReloadConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce,omitempty"`
}

// Load reads a YAML config file, expanding ${VAR} references. Variables from
// .env and .env.local are loaded first without overriding the environment.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.ConfigError("configuration file not found").WithContext("path", path).Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "read config file").Fatal().Build()
	}
	return Parse(data)
}

// Parse decodes, defaults and validates configuration bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "unmarshal config").Fatal().Build()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to Default otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		loadEnvFiles()
		return Default(), nil
	}
	return Load(path)
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		// godotenv.Load never overrides variables that are already set.
		if err := godotenv.Load(name); err != nil {
			fmt.Fprintf(os.Stderr, "Note: could not load %s: %v\n", name, err)
		}
	}
}
