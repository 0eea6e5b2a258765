package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/docsite/internal/docs"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// CheckLinksCmd implements the 'check-links' command.
type CheckLinksCmd struct {
	Set  string `short:"s" help:"Only check this document set."`
	JSON bool   `name:"json" help:"Print broken links as JSON."`
}

type setBrokenLink struct {
	Set string `json:"set"`
	docs.BrokenLink
}

func (c *CheckLinksCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	library, err := openLibrary(cfg, g)
	if err != nil {
		return err
	}

	sets := library.Sets()
	if c.Set != "" {
		set, err := library.Set(c.Set)
		if err != nil {
			return err
		}
		sets = []*docs.Set{set}
	}

	broken := make([]setBrokenLink, 0)
	for _, set := range sets {
		links, err := set.CheckLinks(context.Background())
		if err != nil {
			return err
		}
		for _, l := range links {
			broken = append(broken, setBrokenLink{Set: set.ID(), BrokenLink: l})
		}
	}

	if c.JSON {
		if err := writeJSON(g.Out, broken); err != nil {
			return err
		}
	} else if len(broken) > 0 {
		tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SET\tSOURCE\tDESTINATION")
		for _, b := range broken {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Set, b.Source, b.Destination)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(g.Out, "No broken links found")
	}

	if len(broken) > 0 {
		return ferrors.ValidationError("broken links found").WithContext("count", len(broken)).Build()
	}
	return nil
}
