package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultContentRoot, cfg.Content.Root)
	assert.Equal(t, ".txt", cfg.Content.Extension)
	require.Len(t, cfg.Sets, 2)

	pkg := cfg.Sets[0]
	assert.Equal(t, "package", pkg.ID)
	assert.Equal(t, "/docs", pkg.Route)
	assert.Equal(t, StrategyPrefix, pkg.Classifier.Strategy)
	assert.Equal(t, 10, *pkg.DefaultOrder)
	assert.Equal(t, []string{"getting-started", "README"}, pkg.Preferred)

	cli := cfg.Sets[1]
	assert.Equal(t, "cli", cli.ID)
	assert.Equal(t, StrategyBasename, cli.Classifier.Strategy)
	assert.Equal(t, 100, *cli.DefaultOrder)
	assert.Equal(t, 33, cli.Order["keybindings"])

	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
}

func TestParse_AppliesSetDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
content:
  root: ./site
sets:
  - id: guides
    sections: [Start, Advanced]
    classifier:
      rules:
        - section: Advanced
          prefixes: [advanced/]
logging:
  level: WARNING
  format: json
`))
	require.NoError(t, err)

	require.Len(t, cfg.Sets, 1)
	set := cfg.Sets[0]
	assert.Equal(t, "guides", set.Dir)
	assert.Equal(t, "/guides", set.Route)
	assert.Equal(t, "Start", set.DefaultSection)
	assert.Equal(t, DefaultDocumentOrder, *set.DefaultOrder)
	assert.Equal(t, "README", set.FallbackSlug)
	assert.Equal(t, StrategyPrefix, set.Classifier.Strategy)
	assert.Equal(t, ".txt", cfg.Content.Extension)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, 300*time.Millisecond, cfg.LiveReload.Debounce)
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("DOCSITE_TEST_ROOT", "/srv/content")
	cfg, err := Parse([]byte("content:\n  root: ${DOCSITE_TEST_ROOT}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/content", cfg.Content.Root)
}

func TestParse_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"duplicate ids": `
sets:
  - {id: a, sections: [Start]}
  - {id: a, route: /other, sections: [Start]}
`,
		"duplicate routes": `
sets:
  - {id: a, route: /x, sections: [Start]}
  - {id: b, route: /x, sections: [Start]}
`,
		"unknown strategy": `
sets:
  - id: a
    sections: [Start]
    classifier: {strategy: regex}
`,
		"no sections": `
sets:
  - {id: a}
`,
		"escaping dir": `
sets:
  - {id: a, dir: ../secrets, sections: [Start]}
`,
		"api route": `
sets:
  - {id: a, route: /api/a, sections: [Start]}
`,
		"port clash": `
server: {docs_port: 8080, admin_port: 8080}
`,
		"extension without dot": `
content: {extension: txt}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig), "got %v", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Len(t, cfg.Sets, 2)
}

func TestInit_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	require.NoError(t, Init(path, false))

	err := Init(path, false)
	require.Error(t, err)
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Sets, cfg.Sets)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNormalizeLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, NormalizeLogLevel(" DEBUG "))
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel("warning"))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	assert.Equal(t, LogFormatText, NormalizeLogFormat(""))
}

func TestParseClassifierStrategy(t *testing.T) {
	s, err := ParseClassifierStrategy("Basename")
	require.NoError(t, err)
	assert.Equal(t, StrategyBasename, s)

	s, err = ParseClassifierStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyPrefix, s)

	_, err = ParseClassifierStrategy("glob")
	require.Error(t, err)
}
