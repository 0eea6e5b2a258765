package docs

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/docs/errors"
)

func file(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestBuildManifest_OverrideBeatsUnlisted(t *testing.T) {
	root := fstest.MapFS{
		"aaa.txt":             file("# Aardvark\n"),
		"getting-started.txt": file("# Getting Started\n"),
	}
	cfg := config.DocumentSet{
		ID:             "guides",
		Sections:       []string{"Start"},
		DefaultSection: "Start",
		DefaultOrder:   intPtr(10),
		Order:          map[string]int{"README": 0, "getting-started": 1},
	}

	got, err := newTestSet(t, cfg, root).BuildManifest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Summary{
		{Slug: "getting-started", Title: "Getting Started", Section: "Start", Order: 1},
		{Slug: "aaa", Title: "Aardvark", Section: "Start", Order: 10},
	}, got)
}

func TestBuildManifest_PackageSet(t *testing.T) {
	root := fstest.MapFS{
		"README.txt":                     file("# Indusagi\n\nIntro"),
		"getting-started.txt":            file("# Getting Started\n"),
		"concepts.txt":                   file("# Concepts\n"),
		"ai/README.txt":                  file("# AI Overview\n"),
		"ai/models.txt":                  file("# Models\n"),
		"agent/loop.txt":                 file("# Agent Loop\n"),
		"tui/widgets.txt":                file("# Widgets\n"),
		"package-exports.txt":            file("# Package Exports\n"),
		"use-cases/security-testing.txt": file("# Security Testing\n"),
		"use-cases/automation.txt":       file("# Automation\n"),
		"notes.md":                       file("# Not a document\n"),
	}

	got, err := newTestSet(t, config.PackageSet(), root).BuildManifest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"README", "getting-started", "concepts",
		"ai/README", "ai/models",
		"agent/loop",
		"tui/widgets",
		"use-cases/automation", "package-exports", "use-cases/security-testing",
	}, slugs(got))

	// Nested README picks up the top-level README override through its basename.
	assert.Equal(t, 0, got[3].Order)
	assert.Equal(t, "AI", got[3].Section)
}

func TestBuildManifest_CLISetUsesBasenames(t *testing.T) {
	root := fstest.MapFS{
		"README.txt":        file("# Coding Agent\n"),
		"providers.txt":     file("# Providers\n"),
		"sdk.txt":           file("# SDK\n"),
		"rpc.txt":           file("# RPC Mode\n"),
		"guides/themes.txt": file("# Themes\n"),
		"extensions.txt":    file("# Extensions\n"),
		"faq.txt":           file("# FAQ\n"),
		"windows.txt":       file("# Windows\n"),
	}

	got, err := newTestSet(t, config.CLISet(), root).BuildManifest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"README", "faq",
		"sdk", "rpc",
		"extensions", "guides/themes",
		"providers",
		"windows",
	}, slugs(got))
	assert.Equal(t, 100, got[1].Order)
	assert.Equal(t, "Customization", got[5].Section)
	assert.Equal(t, 62, got[5].Order)
}

func TestBuildManifest_ExcludesUnlistedSections(t *testing.T) {
	root := fstest.MapFS{
		"intro.txt":         file("# Intro\n"),
		"drafts/secret.txt": file("# Secret\n"),
	}
	cfg := config.DocumentSet{
		ID:             "guides",
		Sections:       []string{"Start"},
		DefaultSection: "Start",
		Classifier: config.ClassifierConfig{
			Strategy: config.StrategyPrefix,
			Rules:    []config.SectionRule{{Section: "Drafts", Prefixes: []string{"drafts/"}}},
		},
	}

	got, err := newTestSet(t, cfg, root).BuildManifest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"intro"}, slugs(got))
}

func TestBuildManifest_TitleOrdering(t *testing.T) {
	root := fstest.MapFS{
		"b.txt": file("# Banana\n"),
		"a.txt": file("# apple\n"),
		"c.txt": file("# Cherry\n"),
		"d.txt": file("# Apple\n"),
		"e.txt": file("# Apple\n"),
	}
	cfg := config.DocumentSet{ID: "x", Sections: []string{"Start"}, DefaultSection: "Start"}

	got, err := newTestSet(t, cfg, root).BuildManifest(context.Background())
	require.NoError(t, err)

	// Locale-aware comparison keeps "apple" next to "Apple" instead of after "Cherry".
	assert.Equal(t, []string{"a", "d", "e", "b", "c"}, slugs(got))
}

func TestBuildManifest_Deterministic(t *testing.T) {
	root := fstest.MapFS{}
	for _, name := range []string{"one", "two", "three", "four", "five", "six", "seven"} {
		root[name+".txt"] = file("# Same Title\n")
	}
	set := newTestSet(t, config.DocumentSet{ID: "x", Sections: []string{"Start"}, DefaultSection: "Start"}, root)

	first, err := set.BuildManifest(context.Background())
	require.NoError(t, err)
	for range 5 {
		again, err := set.BuildManifest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, []string{"five", "four", "one", "seven", "six", "three", "two"}, slugs(first))
}

func TestBuildManifest_TitleFallbacks(t *testing.T) {
	root := failingFS{
		FS: fstest.MapFS{
			"plain.txt":          file("no heading here\n## Sub\n"),
			"nested/locked.txt":  file("# Hidden Title\n"),
			"indented.txt":       file("  #   Spaced Out  \n"),
			".hidden/config.txt": file("# Dot Directory\n"),
		},
		fail: "nested/locked.txt",
	}
	cfg := config.DocumentSet{ID: "x", Sections: []string{"Start"}, DefaultSection: "Start"}
	rec := newFakeRecorder()

	got, err := newTestSet(t, cfg, root, WithLogger(quietLogger()), WithRecorder(rec)).BuildManifest(context.Background())
	require.NoError(t, err)

	titles := map[string]string{}
	for _, e := range got {
		titles[e.Slug] = e.Title
	}
	assert.Equal(t, map[string]string{
		"plain":          "plain",
		"nested/locked":  "locked",
		"indented":       "Spaced Out",
		".hidden/config": "Dot Directory",
	}, titles)
	assert.Equal(t, 4, rec.manifests["x"])
}

func TestBuildManifest_SkipsUnreadableDirectory(t *testing.T) {
	root := lockedDirFS{
		MapFS: fstest.MapFS{
			"README.txt":     file("# Home\n"),
			"locked/x.txt":   file("# Locked\n"),
			"open/guide.txt": file("# Guide\n"),
		},
		locked: "locked",
	}
	cfg := config.DocumentSet{ID: "x", Sections: []string{"Start"}, DefaultSection: "Start"}

	got, err := newTestSet(t, cfg, root, WithLogger(quietLogger())).BuildManifest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"README", "open/guide"}, slugs(got))
}

func TestBuildManifest_UnreadableRootFails(t *testing.T) {
	root := lockedDirFS{MapFS: fstest.MapFS{"README.txt": file("# Home\n")}, locked: "."}
	cfg := config.DocumentSet{ID: "x", Sections: []string{"Start"}, DefaultSection: "Start"}

	_, err := newTestSet(t, cfg, root, WithLogger(quietLogger())).BuildManifest(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, derrors.ErrWalkFailed)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestBuildManifest_MissingRoot(t *testing.T) {
	lib, err := NewLibrary(config.Default(), fstest.MapFS{"cli/README.txt": file("# CLI\n")})
	require.NoError(t, err)

	got, err := lib.BuildManifest(context.Background(), "package")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuildManifest_IgnoresDirectoriesAndBareExtension(t *testing.T) {
	root := fstest.MapFS{
		"folder.txt/inner.txt": file("# Inner\n"),
		".txt":                 file("# Nameless\n"),
	}
	cfg := config.DocumentSet{ID: "x", Sections: []string{"Start"}, DefaultSection: "Start"}

	got, err := newTestSet(t, cfg, root).BuildManifest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"folder.txt/inner"}, slugs(got))
}

func TestBuildManifest_CanceledContext(t *testing.T) {
	root := fstest.MapFS{"a.txt": file("# A\n")}
	set := newTestSet(t, config.DocumentSet{ID: "x", Sections: []string{"Start"}, DefaultSection: "Start"}, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := set.BuildManifest(ctx)
	require.Error(t, err)
}

func intPtr(v int) *int { return &v }
