package commands

import (
	"fmt"
	"io"
	"os"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/markdown"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	File string `arg:"" type:"existingfile" help:"Markdown file to render."`
	JSON bool   `name:"json" help:"Print title, HTML and table of contents as JSON."`
}

type renderOutput struct {
	Title string             `json:"title"`
	HTML  string             `json:"html"`
	TOC   []markdown.Heading `json:"toc"`
}

func (r *RenderCmd) Run(g *Global, _ *CLI) error {
	data, err := os.ReadFile(r.File)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "read markdown file").
			WithContext("path", r.File).
			Build()
	}

	title, body := markdown.StripTitle(string(data))
	res, err := markdown.Render(body)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRender, "render markdown").
			WithContext("path", r.File).
			Build()
	}

	if r.JSON {
		return writeJSON(g.Out, renderOutput{Title: title, HTML: res.HTML, TOC: res.TOC})
	}
	fmt.Fprintf(g.Out, "%s\n\n", title)
	printTOC(g.Out, res.TOC)
	_, err = io.WriteString(g.Out, res.HTML)
	return err
}
