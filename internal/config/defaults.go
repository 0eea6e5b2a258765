package config

import "time"

const (
	DefaultContentRoot    = "./content"
	DefaultExtension      = ".txt"
	DefaultSectionLabel   = "Start"
	DefaultFallbackSlug   = "README"
	DefaultDocumentOrder  = 10
	DefaultDocsPort       = 3000
	DefaultAdminPort      = 3001
	DefaultSiteTitle      = "Documentation"
	DefaultMetricsPath    = "/metrics"
	DefaultReloadDebounce = 300 * time.Millisecond
)

func intPtr(v int) *int { return &v }

// Default returns a complete configuration with the built-in document sets.
func Default() *Config {
	cfg := &Config{
		Metrics:    MetricsConfig{Enabled: true},
		LiveReload: LiveReloadConfig{Enabled: true},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields. It is idempotent.
func (c *Config) ApplyDefaults() {
	if c.Content.Root == "" {
		c.Content.Root = DefaultContentRoot
	}
	if c.Content.Extension == "" {
		c.Content.Extension = DefaultExtension
	}
	if len(c.Sets) == 0 {
		c.Sets = DefaultSets()
	}
	for i := range c.Sets {
		c.Sets[i].applyDefaults()
	}

	if c.Server.DocsPort == 0 {
		c.Server.DocsPort = DefaultDocsPort
	}
	if c.Server.AdminPort == 0 {
		c.Server.AdminPort = DefaultAdminPort
	}
	if c.Server.SiteTitle == "" {
		c.Server.SiteTitle = DefaultSiteTitle
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}

	c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))

	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.LiveReload.Debounce == 0 {
		c.LiveReload.Debounce = DefaultReloadDebounce
	}
}

func (s *DocumentSet) applyDefaults() {
	if s.Dir == "" {
		s.Dir = s.ID
	}
	if s.Route == "" {
		s.Route = "/" + s.ID
	}
	if s.Title == "" {
		s.Title = s.ID
	}
	if s.DefaultSection == "" {
		s.DefaultSection = DefaultSectionLabel
	}
	if s.DefaultOrder == nil {
		s.DefaultOrder = intPtr(DefaultDocumentOrder)
	}
	if s.FallbackSlug == "" {
		s.FallbackSlug = DefaultFallbackSlug
	}
	if s.Classifier.Strategy == "" {
		s.Classifier.Strategy = StrategyPrefix
	}
}

// DefaultSets returns the package and CLI document sets.
func DefaultSets() []DocumentSet {
	return []DocumentSet{PackageSet(), CLISet()}
}

// PackageSet classifies package docs by path prefix.
func PackageSet() DocumentSet {
	return DocumentSet{
		ID:             "package",
		Title:          "Package",
		Dir:            "package",
		Route:          "/docs",
		Sections:       []string{"Start", "AI", "Agent", "TUI", "Reference"},
		DefaultSection: DefaultSectionLabel,
		DefaultOrder:   intPtr(10),
		Order: map[string]int{
			"README":                     0,
			"getting-started":            1,
			"package-exports":            90,
			"use-cases/security-testing": 91,
		},
		Preferred:    []string{"getting-started", "README"},
		FallbackSlug: DefaultFallbackSlug,
		Classifier: ClassifierConfig{
			Strategy: StrategyPrefix,
			Rules: []SectionRule{
				{Section: "AI", Prefixes: []string{"ai/"}},
				{Section: "Agent", Prefixes: []string{"agent/"}},
				{Section: "TUI", Prefixes: []string{"tui/"}},
				{Section: "Reference", Slugs: []string{"package-exports"}, Prefixes: []string{"use-cases/"}},
			},
		},
	}
}

// CLISet classifies CLI docs by the final slug segment.
func CLISet() DocumentSet {
	return DocumentSet{
		ID:             "cli",
		Title:          "CLI",
		Dir:            "cli",
		Route:          "/cli",
		Sections:       []string{"Start", "SDK & API", "Customization", "Session", "Configuration", "UI", "Platform"},
		DefaultSection: DefaultSectionLabel,
		DefaultOrder:   intPtr(100),
		Order: map[string]int{
			"README":           0,
			"providers":        1,
			"sdk":              2,
			"rpc":              3,
			"json":             4,
			"extensions":       10,
			"skills":           11,
			"hooks":            12,
			"subagents":        13,
			"session":          20,
			"tree":             21,
			"compaction":       22,
			"settings":         30,
			"models":           31,
			"custom-provider":  32,
			"keybindings":      33,
			"tui":              40,
			"terminal-setup":   41,
			"development":      50,
			"shell-aliases":    51,
			"windows":          52,
			"packages":         60,
			"prompt-templates": 61,
			"themes":           62,
		},
		Preferred:    []string{"README", "providers", "sdk"},
		FallbackSlug: DefaultFallbackSlug,
		Classifier: ClassifierConfig{
			Strategy: StrategyBasename,
			Rules: []SectionRule{
				{Section: "SDK & API", Names: []string{"sdk", "rpc", "json"}},
				{Section: "Customization", Names: []string{"extensions", "skills", "hooks", "subagents", "prompt-templates", "themes", "packages"}},
				{Section: "Session", Names: []string{"session", "tree", "compaction"}},
				{Section: "Configuration", Names: []string{"settings", "models", "providers", "custom-provider", "keybindings"}},
				{Section: "UI", Names: []string{"tui", "terminal-setup"}},
				{Section: "Platform", Names: []string{"development", "shell-aliases", "windows"}},
			},
		},
	}
}
