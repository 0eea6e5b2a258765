package docs

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	derrors "git.home.luguber.info/inful/docsite/internal/docs/errors"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markdown"
)

type manifestEntry struct {
	Summary
	sectionIdx int
	file       string
}

// BuildManifest lists every document of the set whose section is part of the
// set's section list, ordered by section position, order value, title and
// finally slug. A missing set directory yields an empty manifest.
func (s *Set) BuildManifest(ctx context.Context) ([]Summary, error) {
	start := time.Now()

	entries, err := s.collect()
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.readLimit)
	for i := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entries[i].Title = s.readTitle(entries[i].file, entries[i].Slug)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "manifest build interrupted").
			WithContext("set", s.id).
			Build()
	}

	sortEntries(entries)

	out := make([]Summary, len(entries))
	for i, e := range entries {
		out[i] = e.Summary
	}

	elapsed := time.Since(start)
	s.recorder.ObserveManifestBuild(s.id, elapsed, len(out))
	s.logger.Debug("Manifest built", logfields.Count(len(out)), logfields.Duration(elapsed))
	return out, nil
}

// collect walks the set root and returns one entry per document in a listed
// section. Titles are filled in later.
func (s *Set) collect() ([]manifestEntry, error) {
	var entries []manifestEntry
	err := fs.WalkDir(s.root, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				if p == "." {
					return fs.SkipAll
				}
				return nil
			}
			if d != nil && d.IsDir() && p != "." {
				s.logger.Warn("Skipping unreadable directory", logfields.Path(p), logfields.Error(err))
				return fs.SkipDir
			}
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		name := d.Name()
		if name == s.extension || !strings.HasSuffix(name, s.extension) {
			return nil
		}

		slug := strings.TrimSuffix(p, s.extension)
		section := s.SectionOf(slug)
		idx, listed := s.sectionIndex[section]
		if !listed {
			return nil
		}
		entries = append(entries, manifestEntry{
			Summary: Summary{
				Slug:    slug,
				Section: section,
				Order:   s.OrderOf(slug),
			},
			sectionIdx: idx,
			file:       p,
		})
		return nil
	})
	if err != nil {
		return nil, ferrors.WrapError(fmt.Errorf("%w: %w", derrors.ErrWalkFailed, err), ferrors.CategoryFileSystem, "walk document set").
			WithContext("set", s.id).
			Build()
	}
	return entries, nil
}

// readTitle returns the first level-1 heading of file, falling back to the
// file's base name when there is none or the file cannot be read.
func (s *Set) readTitle(file, slug string) string {
	data, err := fs.ReadFile(s.root, file)
	if err != nil {
		s.logger.Warn("Failed to read document title", logfields.Path(file), logfields.Error(err))
		return path.Base(slug)
	}
	if title, ok := markdown.TitleLine(string(data)); ok {
		return title
	}
	return path.Base(slug)
}

func sortEntries(entries []manifestEntry) {
	// Collators carry internal buffers and are not safe for concurrent use.
	col := collate.New(language.English)
	slices.SortFunc(entries, func(a, b manifestEntry) int {
		if c := cmp.Compare(a.sectionIdx, b.sectionIdx); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		if c := col.CompareString(a.Title, b.Title); c != 0 {
			return c
		}
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})
}
