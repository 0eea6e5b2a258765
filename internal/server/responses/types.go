// Package responses defines API response types used by the docs site HTTP handlers.
package responses

import (
	"time"

	"git.home.luguber.info/inful/docsite/internal/docs"
)

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
}

// ReadinessResponse reports whether content can be served.
type ReadinessResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// SetInfo describes one document set.
type SetInfo struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Route    string   `json:"route"`
	Sections []string `json:"sections"`
}

// SetsResponse lists the configured document sets.
type SetsResponse struct {
	Sets []SetInfo `json:"sets"`
}

// ManifestResponse is the ordered manifest of one set.
type ManifestResponse struct {
	Set       string         `json:"set"`
	Documents []docs.Summary `json:"documents"`
}

// DefaultSlugResponse names the document a set opens with.
type DefaultSlugResponse struct {
	Set  string   `json:"set"`
	Slug []string `json:"slug"`
	Path string   `json:"path"`
}
