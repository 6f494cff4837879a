package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/site"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	path := configPath(root)
	f, err := config.LoadSite(path)
	if err != nil {
		return err
	}

	links := len(site.Links(&f.Site))
	slog.Debug("Configuration valid", logfields.ConfigPath(path), logfields.Links(links))
	_, err = fmt.Fprintf(g.out(), "✓ %s is valid (%d links, depth %d)\n", path, links, site.Depth(&f.Site))
	return err
}
