package docs

import (
	"strings"

	"git.home.luguber.info/inful/docsite/internal/markdown"
)

// Summary is one manifest entry.
type Summary struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Section string `json:"section"`
	Order   int    `json:"order"`
}

// Content is a resolved and rendered document.
type Content struct {
	Slug    string             `json:"slug"`
	Title   string             `json:"title"`
	Section string             `json:"section"`
	HTML    string             `json:"html"`
	Raw     string             `json:"raw"`
	TOC     []markdown.Heading `json:"toc"`
}

// SlugParts splits a slug into its path segments.
func SlugParts(slug string) []string {
	return strings.Split(slug, "/")
}
