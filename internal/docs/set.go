package docs

import (
	"io/fs"
	"log/slog"
	"maps"
	"slices"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

const defaultReadConcurrency = 16

// Set is one configured document set bound to a file system.
type Set struct {
	id           string
	title        string
	route        string
	root         fs.FS
	extension    string
	sections     []string
	sectionIndex map[string]int
	classifier   Classifier
	order        map[string]int
	defaultOrder int
	preferred    []string
	fallbackSlug string
	readLimit    int
	logger       *slog.Logger
	recorder     metrics.Recorder
}

// Option customizes a Set.
type Option func(*Set)

// WithLogger sets the logger used for per-file warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Set) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Set) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithReadConcurrency bounds the number of files read in parallel during a
// manifest build.
func WithReadConcurrency(n int) Option {
	return func(s *Set) {
		if n > 0 {
			s.readLimit = n
		}
	}
}

// NewSet binds a document set configuration to root, which must be the set's
// own directory. ext is the document file extension including the dot.
func NewSet(cfg config.DocumentSet, root fs.FS, ext string, opts ...Option) (*Set, error) {
	classifier, err := NewClassifier(cfg.Classifier, cfg.DefaultSection)
	if err != nil {
		return nil, err
	}
	s := &Set{
		id:           cfg.ID,
		title:        cfg.Title,
		route:        cfg.Route,
		root:         root,
		extension:    ext,
		sections:     slices.Clone(cfg.Sections),
		sectionIndex: make(map[string]int, len(cfg.Sections)),
		classifier:   classifier,
		order:        maps.Clone(cfg.Order),
		defaultOrder: config.DefaultDocumentOrder,
		preferred:    slices.Clone(cfg.Preferred),
		fallbackSlug: cfg.FallbackSlug,
		readLimit:    defaultReadConcurrency,
		logger:       slog.Default(),
		recorder:     metrics.NoopRecorder{},
	}
	if cfg.DefaultOrder != nil {
		s.defaultOrder = *cfg.DefaultOrder
	}
	if s.fallbackSlug == "" {
		s.fallbackSlug = config.DefaultFallbackSlug
	}
	for i, name := range cfg.Sections {
		if _, dup := s.sectionIndex[name]; !dup {
			s.sectionIndex[name] = i
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logfields.Set(s.id))
	return s, nil
}

func (s *Set) ID() string    { return s.id }
func (s *Set) Title() string { return s.title }
func (s *Set) Route() string { return s.route }

// Sections returns the section labels in display order.
func (s *Set) Sections() []string { return slices.Clone(s.sections) }

// SectionOf classifies slug.
func (s *Set) SectionOf(slug string) string {
	return s.classifier.Classify(slug)
}

// OrderOf resolves the order value for slug: an entry for the full slug, then
// one for its basename, then the set default.
func (s *Set) OrderOf(slug string) int {
	if v, ok := s.order[slug]; ok {
		return v
	}
	if v, ok := s.order[basename(slug)]; ok {
		return v
	}
	return s.defaultOrder
}
