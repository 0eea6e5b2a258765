package docs

import (
	"context"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markdown"
)

// BrokenLink is a link between documents of one set whose target is missing.
type BrokenLink struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Target      string `json:"target"`
}

// CheckLinks scans every manifest document for links into the same set and
// reports those whose target document does not exist. Relative links resolve
// against the linking document's directory, absolute ones must start with the
// set route. External URLs, fragments and images are not checked.
func (s *Set) CheckLinks(ctx context.Context) ([]BrokenLink, error) {
	entries, err := s.collect()
	if err != nil {
		return nil, err
	}

	found := make([][]BrokenLink, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.readLimit)
	for i := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			found[i] = s.brokenLinks(entries[i].Slug, entries[i].file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "link check interrupted").
			WithContext("set", s.id).
			Build()
	}

	bySlug := make(map[string][]BrokenLink, len(entries))
	for i, e := range entries {
		bySlug[e.Slug] = found[i]
	}
	sortEntries(entries)
	var out []BrokenLink
	for _, e := range entries {
		out = append(out, bySlug[e.Slug]...)
	}
	s.logger.Debug("Links checked", logfields.Count(len(out)))
	return out, nil
}

func (s *Set) brokenLinks(slug, file string) []BrokenLink {
	data, err := fs.ReadFile(s.root, file)
	if err != nil {
		s.logger.Warn("Failed to read document for link check", logfields.Path(file), logfields.Error(err))
		return nil
	}

	var out []BrokenLink
	seen := make(map[string]struct{})
	links, err := markdown.ExtractLinks(data)
	if err != nil {
		s.logger.Warn("Failed to parse document for link check", logfields.Path(file), logfields.Error(err))
		return nil
	}
	for _, link := range links {
		if link.Kind != markdown.LinkKindInline && link.Kind != markdown.LinkKindReferenceDefinition {
			continue
		}
		if _, dup := seen[link.Destination]; dup {
			continue
		}
		seen[link.Destination] = struct{}{}

		target, internal := s.resolveLink(slug, link.Destination)
		if !internal || s.exists(target) {
			continue
		}
		out = append(out, BrokenLink{Source: slug, Destination: link.Destination, Target: target})
	}
	return out
}

// resolveLink maps a link destination found in document source to a slug of
// this set. internal is false for destinations outside the set.
func (s *Set) resolveLink(source, dest string) (target string, internal bool) {
	u, err := url.Parse(strings.TrimSpace(dest))
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}

	p := u.Path
	if strings.HasPrefix(p, "/") {
		prefix := s.route + "/"
		if !strings.HasPrefix(p, prefix) {
			return "", false
		}
		p = strings.TrimPrefix(p, prefix)
	} else {
		p = path.Join(path.Dir(source), p)
	}

	p = strings.TrimSuffix(p, "/")
	switch {
	case strings.HasSuffix(p, s.extension):
		p = strings.TrimSuffix(p, s.extension)
	case strings.HasSuffix(p, ".md"):
		p = strings.TrimSuffix(p, ".md")
	}
	return p, true
}

func (s *Set) exists(slug string) bool {
	if slug == "" || slug == "." || !fs.ValidPath(slug) {
		return false
	}
	info, err := fs.Stat(s.root, slug+s.extension)
	return err == nil && info.Mode().IsRegular()
}
