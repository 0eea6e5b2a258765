package commands

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/markdown"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Set  string `short:"s" required:"" help:"Document set id."`
	Slug string `arg:"" optional:"" help:"Document slug such as ai/models. Defaults to the set's default document."`
	JSON bool   `name:"json" help:"Print the rendered document as JSON."`
}

func (s *ShowCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	library, err := openLibrary(cfg, g)
	if err != nil {
		return err
	}

	ctx := context.Background()
	parts := strings.Split(s.Slug, "/")
	if s.Slug == "" {
		if parts, err = library.DefaultSlug(ctx, s.Set); err != nil {
			return err
		}
	}
	doc, err := library.GetDocument(ctx, s.Set, parts)
	if err != nil {
		return err
	}

	if s.JSON {
		return writeJSON(g.Out, doc)
	}
	fmt.Fprintf(g.Out, "%s (%s)\n\n", doc.Title, doc.Section)
	printTOC(g.Out, doc.TOC)
	_, err = io.WriteString(g.Out, doc.HTML)
	return err
}

func printTOC(w io.Writer, toc []markdown.Heading) {
	if len(toc) == 0 {
		return
	}
	fmt.Fprintln(w, "On This Page")
	for _, h := range toc {
		indent := strings.Repeat("  ", h.Level-1)
		fmt.Fprintf(w, "%s- %s #%s\n", indent, html.UnescapeString(h.Text), h.ID)
	}
	fmt.Fprintln(w)
}
