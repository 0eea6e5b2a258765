package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/docsite/internal/server/responses"
)

// ManifestCmd implements the 'manifest' command.
type ManifestCmd struct {
	Set  string `short:"s" required:"" help:"Document set id."`
	JSON bool   `name:"json" help:"Print JSON instead of a table."`
}

func (m *ManifestCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	library, err := openLibrary(cfg, g)
	if err != nil {
		return err
	}
	documents, err := library.BuildManifest(context.Background(), m.Set)
	if err != nil {
		return err
	}

	if m.JSON {
		return writeJSON(g.Out, responses.ManifestResponse{Set: m.Set, Documents: documents})
	}
	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTION\tORDER\tSLUG\tTITLE")
	for _, d := range documents {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", d.Section, d.Order, d.Slug, d.Title)
	}
	return tw.Flush()
}
