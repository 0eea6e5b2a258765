package docs

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// Classifier maps a slug to a section label.
type Classifier interface {
	Classify(slug string) string
}

type prefixRule struct {
	section  string
	prefixes []string
	slugs    []string
}

// PrefixClassifier assigns sections by slug prefix or exact slug. Rules are
// tried in order; the first match wins.
type PrefixClassifier struct {
	rules    []prefixRule
	fallback string
}

// NewPrefixClassifier builds a PrefixClassifier from configuration rules.
func NewPrefixClassifier(rules []config.SectionRule, fallback string) *PrefixClassifier {
	c := &PrefixClassifier{fallback: fallback}
	for _, r := range rules {
		c.rules = append(c.rules, prefixRule{section: r.Section, prefixes: r.Prefixes, slugs: r.Slugs})
	}
	return c
}

func (c *PrefixClassifier) Classify(slug string) string {
	for _, r := range c.rules {
		if slices.Contains(r.slugs, slug) {
			return r.section
		}
		for _, p := range r.prefixes {
			if strings.HasPrefix(slug, p) {
				return r.section
			}
		}
	}
	return c.fallback
}

// BasenameClassifier assigns sections by membership of the slug's last
// segment in per-section name lists.
type BasenameClassifier struct {
	names    map[string]string
	fallback string
}

// NewBasenameClassifier builds a BasenameClassifier. When a name appears in
// several rules the first rule keeps it.
func NewBasenameClassifier(rules []config.SectionRule, fallback string) *BasenameClassifier {
	c := &BasenameClassifier{names: make(map[string]string), fallback: fallback}
	for _, r := range rules {
		for _, n := range r.Names {
			if _, taken := c.names[n]; !taken {
				c.names[n] = r.Section
			}
		}
	}
	return c
}

func (c *BasenameClassifier) Classify(slug string) string {
	if section, ok := c.names[basename(slug)]; ok {
		return section
	}
	return c.fallback
}

// NewClassifier selects the classifier for a configured strategy.
func NewClassifier(cfg config.ClassifierConfig, fallback string) (Classifier, error) {
	switch cfg.Strategy {
	case config.StrategyPrefix, "":
		return NewPrefixClassifier(cfg.Rules, fallback), nil
	case config.StrategyBasename:
		return NewBasenameClassifier(cfg.Rules, fallback), nil
	default:
		return nil, fmt.Errorf("unsupported classifier strategy %q", cfg.Strategy)
	}
}

// basename returns the last slug segment.
func basename(slug string) string {
	return path.Base(slug)
}
