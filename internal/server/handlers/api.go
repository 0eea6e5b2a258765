package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/server/responses"
)

// APIHandlers serves the JSON API for document sets.
type APIHandlers struct {
	library      Library
	errorAdapter *errors.HTTPErrorAdapter
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(library Library, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		library:      library,
		errorAdapter: errors.NewHTTPErrorAdapter(logger),
	}
}

// HandleSets lists the configured document sets.
func (h *APIHandlers) HandleSets(w http.ResponseWriter, r *http.Request) {
	resp := responses.SetsResponse{Sets: []responses.SetInfo{}}
	for _, s := range h.library.Sets() {
		resp.Sets = append(resp.Sets, responses.SetInfo{
			ID:       s.ID(),
			Title:    s.Title(),
			Route:    s.Route(),
			Sections: s.Sections(),
		})
	}
	h.write(w, r, resp)
}

// HandleManifest returns the ordered manifest of {set}.
func (h *APIHandlers) HandleManifest(w http.ResponseWriter, r *http.Request) {
	set, err := h.library.Set(r.PathValue("set"))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	documents, err := set.BuildManifest(r.Context())
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	h.write(w, r, responses.ManifestResponse{Set: set.ID(), Documents: documents})
}

// HandleDefault returns the default document slug of {set}.
func (h *APIHandlers) HandleDefault(w http.ResponseWriter, r *http.Request) {
	set, err := h.library.Set(r.PathValue("set"))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	slug := set.DefaultSlug(r.Context())
	h.write(w, r, responses.DefaultSlugResponse{
		Set:  set.ID(),
		Slug: slug,
		Path: docPath(set.Route(), slug),
	})
}

// HandleDocument returns a rendered document of {set} named by {slug...}.
func (h *APIHandlers) HandleDocument(w http.ResponseWriter, r *http.Request) {
	set, err := h.library.Set(r.PathValue("set"))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	doc, err := set.GetDocument(r.Context(), strings.Split(r.PathValue("slug"), "/"))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	h.write(w, r, doc)
}

func (h *APIHandlers) write(w http.ResponseWriter, r *http.Request, v any) {
	if err := writeJSONPretty(w, r, http.StatusOK, v); err != nil {
		internalErr := errors.WrapError(err, errors.CategoryInternal, "failed to write API response").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}
