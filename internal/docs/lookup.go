package docs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	derrors "git.home.luguber.info/inful/docsite/internal/docs/errors"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// GetDocument reads the document named by slugParts, removes its first
// level-1 heading line as the title and renders the rest. Slugs that cannot
// name a file inside the set and documents that do not exist both yield a
// not_found error wrapping derrors.ErrDocumentNotFound.
func (s *Set) GetDocument(ctx context.Context, slugParts []string) (*Content, error) {
	slug := strings.Join(slugParts, "/")
	if !validSlug(slugParts) {
		s.recorder.IncLookupResult(s.id, metrics.LookupNotFound)
		return nil, s.notFound(slug, derrors.ErrInvalidSlug)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.root, slug+s.extension)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.recorder.IncLookupResult(s.id, metrics.LookupNotFound)
			return nil, s.notFound(slug, err)
		}
		s.recorder.IncLookupResult(s.id, metrics.LookupError)
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read document").
			WithContext("set", s.id).
			WithContext("slug", slug).
			Build()
	}

	title, body := markdown.StripTitle(string(data))

	start := time.Now()
	res, err := markdown.Render(body)
	if err != nil {
		s.recorder.IncLookupResult(s.id, metrics.LookupError)
		return nil, ferrors.WrapError(err, ferrors.CategoryRender, "render document").
			WithContext("set", s.id).
			WithContext("slug", slug).
			Build()
	}
	s.recorder.ObserveRenderDuration(s.id, time.Since(start))
	s.recorder.IncLookupResult(s.id, metrics.LookupFound)

	return &Content{
		Slug:    slug,
		Title:   title,
		Section: s.SectionOf(slug),
		HTML:    res.HTML,
		Raw:     body,
		TOC:     res.TOC,
	}, nil
}

// DefaultSlug returns the first preferred slug that exists as a document,
// or the fallback slug when none does.
func (s *Set) DefaultSlug(ctx context.Context) []string {
	for _, slug := range s.preferred {
		if ctx.Err() != nil {
			break
		}
		info, err := fs.Stat(s.root, slug+s.extension)
		if err == nil && info.Mode().IsRegular() {
			return SlugParts(slug)
		}
	}
	return SlugParts(s.fallbackSlug)
}

func (s *Set) notFound(slug string, cause error) error {
	s.logger.Debug("Document not found", logfields.Slug(slug))
	return ferrors.WrapError(fmt.Errorf("%w: %w", derrors.ErrDocumentNotFound, cause), ferrors.CategoryNotFound, "document not found").
		WithContext("set", s.id).
		WithContext("slug", slug).
		Build()
}

// validSlug rejects empty segments, dot segments and anything fs.ValidPath
// refuses, so a slug can never leave the set root.
func validSlug(parts []string) bool {
	if len(parts) == 0 {
		return false
	}
	for _, p := range parts {
		if p == "" || p == "." || p == ".." || strings.ContainsAny(p, "/\\") {
			return false
		}
	}
	return fs.ValidPath(strings.Join(parts, "/"))
}
