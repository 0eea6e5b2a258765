package docs

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/docs/errors"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Library holds the configured document sets keyed by id.
type Library struct {
	sets []*Set
	byID map[string]*Set
}

// NewLibrary creates one Set per configured document set. content is the
// content root; each set is rooted at its configured dir inside it.
func NewLibrary(cfg *config.Config, content fs.FS, opts ...Option) (*Library, error) {
	lib := &Library{byID: make(map[string]*Set, len(cfg.Sets))}
	for _, sc := range cfg.Sets {
		dir := path.Clean(filepath.ToSlash(sc.Dir))
		root, err := fs.Sub(content, dir)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid document set dir").
				WithContext("set", sc.ID).
				WithContext("dir", sc.Dir).
				Build()
		}
		set, err := NewSet(sc, root, cfg.Content.Extension, opts...)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid document set").
				WithContext("set", sc.ID).
				Build()
		}
		if _, dup := lib.byID[set.ID()]; dup {
			return nil, ferrors.ConfigError("duplicate document set id").WithContext("set", sc.ID).Build()
		}
		lib.sets = append(lib.sets, set)
		lib.byID[set.ID()] = set
	}
	return lib, nil
}

// Sets returns the sets in configuration order.
func (l *Library) Sets() []*Set {
	out := make([]*Set, len(l.sets))
	copy(out, l.sets)
	return out
}

// Set returns the set with the given id.
func (l *Library) Set(id string) (*Set, error) {
	if s, ok := l.byID[id]; ok {
		return s, nil
	}
	return nil, ferrors.WrapError(fmt.Errorf("%w: %s", derrors.ErrUnknownSet, id), ferrors.CategoryNotFound, "unknown document set").
		WithContext("set", id).
		Build()
}

// BuildManifest builds the manifest of the named set.
func (l *Library) BuildManifest(ctx context.Context, setID string) ([]Summary, error) {
	s, err := l.Set(setID)
	if err != nil {
		return nil, err
	}
	return s.BuildManifest(ctx)
}

// GetDocument resolves a document in the named set.
func (l *Library) GetDocument(ctx context.Context, setID string, slugParts []string) (*Content, error) {
	s, err := l.Set(setID)
	if err != nil {
		return nil, err
	}
	return s.GetDocument(ctx, slugParts)
}

// DefaultSlug returns the default document slug of the named set.
func (l *Library) DefaultSlug(ctx context.Context, setID string) ([]string, error) {
	s, err := l.Set(setID)
	if err != nil {
		return nil, err
	}
	return s.DefaultSlug(ctx), nil
}
