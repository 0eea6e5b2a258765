package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/livereload"
	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/server/responses"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func testContent() fstest.MapFS {
	f := func(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }
	return fstest.MapFS{
		"package/README.txt":          f("# Indusagi\n\nWelcome.\n"),
		"package/getting-started.txt": f("# Getting Started\n\nInstall it.\n\n## Install\n\n### From source\n"),
		"package/ai/models.txt":       f("# Models\n\n## Providers & Keys\n"),
		"cli/README.txt":              f("# Coding Agent\n"),
		"cli/sdk.txt":                 f("# SDK\n\n## Usage\n"),
	}
}

type fixture struct {
	srv      *Server
	cfg      *config.Config
	registry *prom.Registry
}

func newFixture(t *testing.T, hub LiveReloadHub) fixture {
	t.Helper()
	cfg := config.Default()
	cfg.Content.Root = t.TempDir()
	cfg.Server.SiteTitle = "Indusagi Docs"

	lib, err := docs.NewLibrary(cfg, testContent(), docs.WithLogger(quietLogger()))
	require.NoError(t, err)

	reg := prom.NewRegistry()
	srv, err := New(cfg, lib, Options{
		LiveReloadHub:  hub,
		MetricsHandler: metrics.HTTPHandler(reg),
		Recorder:       metrics.NewPrometheusRecorder(reg),
		Logger:         quietLogger(),
	})
	require.NoError(t, err)
	return fixture{srv: srv, cfg: cfg, registry: reg}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestDocs_IndexListsSets(t *testing.T) {
	fx := newFixture(t, nil)

	rr := get(t, fx.srv.DocsHandler(), "/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	body := rr.Body.String()
	assert.Contains(t, body, "<h1>Indusagi Docs</h1>")
	assert.Contains(t, body, `<a href="/docs">Package</a>`)
	assert.Contains(t, body, `<a href="/cli">CLI</a>`)
	assert.NotContains(t, body, "livereload.js")
}

func TestDocs_SetRouteRendersDefaultDocument(t *testing.T) {
	fx := newFixture(t, nil)

	rr := get(t, fx.srv.DocsHandler(), "/docs")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()

	assert.Contains(t, body, "<h1>Getting Started</h1>")
	assert.Contains(t, body, `<h2 id="install">Install</h2>`)
	assert.Contains(t, body, "On This Page")
	assert.Contains(t, body, `<a href="#from-source">From source</a>`)
	assert.Contains(t, body, `<a href="/docs/getting-started" class="active" aria-current="page">Getting Started</a>`)
	assert.Contains(t, body, `<a href="/docs/ai/models">Models</a>`)
	assert.Less(t, strings.Index(body, "<h3>Start</h3>"), strings.Index(body, "<h3>AI</h3>"))
}

func TestDocs_DocumentPage(t *testing.T) {
	fx := newFixture(t, nil)

	rr := get(t, fx.srv.DocsHandler(), "/docs/ai/models")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "<title>Models · Package</title>")
	assert.Contains(t, body, `<a href="#providers-amp-keys">Providers &amp; Keys</a>`)
}

func TestDocs_NotFoundPages(t *testing.T) {
	fx := newFixture(t, nil)

	for _, path := range []string{"/docs/missing", "/docs/ai", "/cli/getting-started", "/nowhere"} {
		rr := get(t, fx.srv.DocsHandler(), path)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.Contains(t, rr.Body.String(), "Page not found", path)
	}
}

func TestAPI_Sets(t *testing.T) {
	fx := newFixture(t, nil)

	rr := get(t, fx.srv.DocsHandler(), "/api/sets")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp responses.SetsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Sets, 2)
	assert.Equal(t, "package", resp.Sets[0].ID)
	assert.Equal(t, "/cli", resp.Sets[1].Route)
}

func TestAPI_Manifest(t *testing.T) {
	fx := newFixture(t, nil)

	rr := get(t, fx.srv.DocsHandler(), "/api/sets/package/manifest")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp responses.ManifestResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "package", resp.Set)
	assert.Equal(t, []docs.Summary{
		{Slug: "README", Title: "Indusagi", Section: "Start", Order: 0},
		{Slug: "getting-started", Title: "Getting Started", Section: "Start", Order: 1},
		{Slug: "ai/models", Title: "Models", Section: "AI", Order: 10},
	}, resp.Documents)
}

func TestAPI_Default(t *testing.T) {
	fx := newFixture(t, nil)

	rr := get(t, fx.srv.DocsHandler(), "/api/sets/cli/default")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp responses.DefaultSlugResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"README"}, resp.Slug)
	assert.Equal(t, "/cli/README", resp.Path)
}

func TestAPI_Document(t *testing.T) {
	fx := newFixture(t, nil)

	rr := get(t, fx.srv.DocsHandler(), "/api/sets/cli/docs/sdk?pretty=1")
	require.Equal(t, http.StatusOK, rr.Code)

	var doc docs.Content
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Equal(t, "SDK", doc.Title)
	assert.Equal(t, "SDK & API", doc.Section)
	assert.Equal(t, []markdown.Heading{{ID: "usage", Text: "Usage", Level: 2}}, doc.TOC)
}

func TestAPI_Errors(t *testing.T) {
	fx := newFixture(t, nil)

	for _, path := range []string{"/api/sets/cli/docs/nope", "/api/sets/unknown/manifest", "/api/sets/unknown/default"} {
		rr := get(t, fx.srv.DocsHandler(), path)
		require.Equal(t, http.StatusNotFound, rr.Code, path)

		var body derrors.HTTPErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "not_found", body.Code, path)
	}
}

func TestAdmin_HealthAndReadiness(t *testing.T) {
	fx := newFixture(t, nil)

	rr := get(t, fx.srv.AdminHandler(), "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	var health responses.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)

	assert.Equal(t, http.StatusOK, get(t, fx.srv.AdminHandler(), "/readyz").Code)

	fx.cfg.Content.Root = filepath.Join(fx.cfg.Content.Root, "missing")
	missing, err := New(fx.cfg, mustLibrary(t, fx.cfg), Options{Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, missing.AdminHandler(), "/readyz").Code)
}

func TestAdmin_Metrics(t *testing.T) {
	fx := newFixture(t, nil)

	get(t, fx.srv.DocsHandler(), "/api/sets/cli/docs/sdk")
	rr := get(t, fx.srv.AdminHandler(), "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `docsite_http_requests_total{route="GET /api/sets/{set}/docs/{slug...}",status="200"} 1`)
	assert.Contains(t, body, `docsite_document_lookups_total{result="found",set="cli"} 1`)
}

func TestDocs_LiveReloadWiring(t *testing.T) {
	hub := livereload.NewHub(quietLogger())
	fx := newFixture(t, hub)

	script := get(t, fx.srv.DocsHandler(), "/livereload.js")
	require.Equal(t, http.StatusOK, script.Code)
	assert.Equal(t, livereload.Script, script.Body.String())

	page := get(t, fx.srv.DocsHandler(), "/cli")
	assert.Contains(t, page.Body.String(), `<script src="/livereload.js"></script>`)
}

func TestServer_StartStop(t *testing.T) {
	fx := newFixture(t, livereload.NewHub(quietLogger()))
	fx.cfg.Server.Host = "127.0.0.1"
	fx.cfg.Server.DocsPort = 0
	fx.cfg.Server.AdminPort = 0

	require.NoError(t, fx.srv.Start(t.Context()))
	docsAddr, adminAddr := fx.srv.Addrs()

	resp, err := http.Get("http://" + adminAddr.String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get("http://" + docsAddr.String() + "/api/sets")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, fx.srv.Stop(ctx))
}

func TestServer_StartFailsWhenPortTaken(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	fx := newFixture(t, nil)
	fx.cfg.Server.Host = "127.0.0.1"
	fx.cfg.Server.DocsPort = ln.Addr().(*net.TCPAddr).Port
	fx.cfg.Server.AdminPort = 0

	err = fx.srv.Start(t.Context())
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryRuntime))
	assert.Contains(t, err.Error(), "docs port")
}

func mustLibrary(t *testing.T, cfg *config.Config) *docs.Library {
	t.Helper()
	lib, err := docs.NewLibrary(cfg, testContent())
	require.NoError(t, err)
	return lib
}
