package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/docs"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"index.html", "document.html", "notfound.html"}

var funcs = template.FuncMap{
	// TOC text is tag-free rendered HTML; only entities remain.
	"headingText": func(s string) template.HTML {
		return template.HTML(s) //nolint:gosec // tags already stripped
	},
}

// PageOptions configures the HTML pages.
type PageOptions struct {
	SiteTitle  string
	LiveReload bool
}

// PageHandlers renders HTML pages for document sets.
type PageHandlers struct {
	library      Library
	opts         PageOptions
	pages        map[string]*template.Template
	logger       *slog.Logger
	errorAdapter *errors.HTTPErrorAdapter
}

type navItem struct {
	Title  string
	Href   string
	Active bool
}

type navSection struct {
	Label string
	Items []navItem
}

type setLink struct {
	ID     string
	Title  string
	Href   string
	Active bool
}

type pageData struct {
	SiteTitle  string
	PageTitle  string
	LiveReload bool
	Sets       []setLink
	Nav        []navSection
	Doc        *docs.Content
	Body       template.HTML
	TOC        []markdown.Heading
	Message    string
}

// NewPageHandlers parses the embedded templates.
func NewPageHandlers(library Library, opts PageOptions, logger *slog.Logger) (*PageHandlers, error) {
	if logger == nil {
		logger = slog.Default()
	}
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout template: %w", err)
	}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout template: %w", err)
		}
		t, err := clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = t
	}
	return &PageHandlers{
		library:      library,
		opts:         opts,
		pages:        pages,
		logger:       logger,
		errorAdapter: errors.NewHTTPErrorAdapter(logger),
	}, nil
}

// HandleIndex renders the landing page listing all document sets.
func (h *PageHandlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "index.html", pageData{
		PageTitle: h.opts.SiteTitle,
		Sets:      h.setLinks(""),
	})
}

// DocumentHandler serves the pages of one set: the default document at the
// set route and any document below it.
func (h *PageHandlers) DocumentHandler(set *docs.Set) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")
		var parts []string
		if slug == "" {
			parts = set.DefaultSlug(r.Context())
		} else {
			parts = strings.Split(slug, "/")
		}

		doc, err := set.GetDocument(r.Context(), parts)
		if err != nil {
			if errors.HasCategory(err, errors.CategoryNotFound) {
				h.notFound(w, r, set)
				return
			}
			h.errorAdapter.WriteErrorResponse(w, r, err)
			return
		}

		manifest, err := set.BuildManifest(r.Context())
		if err != nil {
			h.errorAdapter.WriteErrorResponse(w, r, err)
			return
		}

		h.render(w, r, http.StatusOK, "document.html", pageData{
			PageTitle: doc.Title + " · " + set.Title(),
			Sets:      h.setLinks(set.ID()),
			Nav:       buildNav(set, manifest, doc.Slug),
			Doc:       doc,
			Body:      template.HTML(doc.HTML), //nolint:gosec // goldmark runs without unsafe mode
			TOC:       doc.TOC,
		})
	}
}

// HandleNotFound renders the 404 page for paths no route matched.
func (h *PageHandlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r, nil)
}

func (h *PageHandlers) notFound(w http.ResponseWriter, r *http.Request, set *docs.Set) {
	active := ""
	if set != nil {
		active = set.ID()
	}
	h.render(w, r, http.StatusNotFound, "notfound.html", pageData{
		PageTitle: "Not found",
		Sets:      h.setLinks(active),
		Message:   "No document exists at " + r.URL.Path + ".",
	})
}

func (h *PageHandlers) setLinks(active string) []setLink {
	sets := h.library.Sets()
	links := make([]setLink, 0, len(sets))
	for _, s := range sets {
		links = append(links, setLink{ID: s.ID(), Title: s.Title(), Href: s.Route(), Active: s.ID() == active})
	}
	return links
}

// buildNav groups a manifest by section, keeping manifest order.
func buildNav(set *docs.Set, manifest []docs.Summary, current string) []navSection {
	var nav []navSection
	for _, d := range manifest {
		if len(nav) == 0 || nav[len(nav)-1].Label != d.Section {
			nav = append(nav, navSection{Label: d.Section})
		}
		last := &nav[len(nav)-1]
		last.Items = append(last.Items, navItem{
			Title:  d.Title,
			Href:   docPath(set.Route(), docs.SlugParts(d.Slug)),
			Active: d.Slug == current,
		})
	}
	return nav
}

func (h *PageHandlers) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	data.SiteTitle = h.opts.SiteTitle
	data.LiveReload = h.opts.LiveReload

	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error("Failed to render page", slog.String("template", name), logfields.Error(err))
		internalErr := errors.WrapError(err, errors.CategoryInternal, "failed to render page").Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Debug("failed writing page", logfields.Error(err))
	}
}
