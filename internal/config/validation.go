package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Content.Extension) == "" || !strings.HasPrefix(c.Content.Extension, ".") {
		return invalid("content.extension must start with a dot", "extension", c.Content.Extension)
	}
	if len(c.Sets) == 0 {
		return invalid("at least one document set is required", "sets", 0)
	}

	ids := make(map[string]struct{}, len(c.Sets))
	routes := make(map[string]string, len(c.Sets))
	for i := range c.Sets {
		s := &c.Sets[i]
		if err := s.validate(); err != nil {
			return err
		}
		if _, dup := ids[s.ID]; dup {
			return invalid("duplicate document set id", "set", s.ID)
		}
		ids[s.ID] = struct{}{}
		if other, dup := routes[s.Route]; dup {
			return invalid(fmt.Sprintf("route %s used by %s and %s", s.Route, other, s.ID), "route", s.Route)
		}
		routes[s.Route] = s.ID
	}

	if c.Server.DocsPort == c.Server.AdminPort {
		return invalid("docs_port and admin_port must differ", "port", c.Server.DocsPort)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid("metrics.path must start with /", "path", c.Metrics.Path)
	}
	return nil
}

func (s *DocumentSet) validate() error {
	if s.ID == "" {
		return invalid("document set id is required", "set", "")
	}
	if strings.ContainsAny(s.ID, "/ ") {
		return invalid("document set id must not contain slashes or spaces", "set", s.ID)
	}
	if filepath.IsAbs(s.Dir) || slices.Contains(strings.Split(filepath.ToSlash(s.Dir), "/"), "..") {
		return invalid("document set dir must stay inside content.root", "dir", s.Dir)
	}
	if !strings.HasPrefix(s.Route, "/") || s.Route == "/" || strings.HasPrefix(s.Route, "/api") {
		return invalid("document set route must be a non-root path outside /api", "route", s.Route)
	}
	if len(s.Sections) == 0 {
		return invalid("document set needs at least one section", "set", s.ID)
	}
	strategy, err := ParseClassifierStrategy(string(s.Classifier.Strategy))
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid classifier").
			Fatal().
			WithContext("set", s.ID).
			Build()
	}
	s.Classifier.Strategy = strategy
	for _, r := range s.Classifier.Rules {
		if r.Section == "" {
			return invalid("classifier rule without section", "set", s.ID)
		}
	}
	return nil
}

func invalid(msg, key string, value any) error {
	return ferrors.ConfigError(msg).WithContext(key, value).Build()
}
