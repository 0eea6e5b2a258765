package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Heading is a table-of-contents entry.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Result is the output of a single render pass.
type Result struct {
	HTML string    `json:"html"`
	TOC  []Heading `json:"toc"`
}

// Render converts a markdown body into HTML and collects level 2 and 3 headings.
//
// Every heading receives an id attribute derived from its rendered text. Anchors
// are unique within one call; nothing is shared between calls, so Render is safe
// for concurrent use.
func Render(body string) (Result, error) {
	md := newEngine()
	source := []byte(body)
	doc := md.Parser().Parse(text.NewReader(source))

	anchors := newAnchorSet()
	toc := make([]Heading, 0)

	err := gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		heading, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}

		inner, err := headingText(md, source, heading)
		if err != nil {
			return gmast.WalkStop, err
		}
		id := anchors.unique(Slugify(inner))
		heading.SetAttributeString("id", []byte(id))

		if heading.Level == 2 || heading.Level == 3 {
			toc = append(toc, Heading{ID: id, Text: StripTags(inner), Level: heading.Level})
		}
		return gmast.WalkSkipChildren, nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("collect headings: %w", err)
	}

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, source, doc); err != nil {
		return Result{}, fmt.Errorf("render markdown: %w", err)
	}
	return Result{HTML: buf.String(), TOC: toc}, nil
}

// newEngine returns a GFM goldmark instance. Raw HTML in the source is omitted
// from the output and soft line breaks stay soft.
func newEngine() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
}

// headingText renders a heading on its own and returns the inline HTML between
// the opening and closing tags.
func headingText(md goldmark.Markdown, source []byte, heading *gmast.Heading) (string, error) {
	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, source, heading); err != nil {
		return "", err
	}
	out := strings.TrimSpace(buf.String())
	open := fmt.Sprintf("<h%d>", heading.Level)
	closing := fmt.Sprintf("</h%d>", heading.Level)
	out = strings.TrimPrefix(out, open)
	out = strings.TrimSuffix(out, closing)
	return strings.TrimSpace(out), nil
}
