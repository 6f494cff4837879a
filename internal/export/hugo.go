package export

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/site"
)

// HugoExporter writes a Hugo configuration fragment holding the site title,
// the social links as params and the sidebar as the main menu. Groups become
// parent entries without a URL; children reference them by identifier.
type HugoExporter struct{}

// MenuEntry is one Hugo menu item.
type MenuEntry struct {
	Identifier string `yaml:"identifier"`
	Name       string `yaml:"name"`
	URL        string `yaml:"url,omitempty"`
	Parent     string `yaml:"parent,omitempty"`
	Weight     int    `yaml:"weight"`
}

type hugoDoc struct {
	Title  string                 `yaml:"title"`
	Params map[string]any         `yaml:"params,omitempty"`
	Menu   map[string][]MenuEntry `yaml:"menu"`
}

func (HugoExporter) Format() config.ExportFormat { return config.ExportHugo }

func (HugoExporter) Export(w io.Writer, f *config.File) error {
	doc := hugoDoc{
		Title: f.Site.Title,
		Menu:  map[string][]MenuEntry{"main": MenuEntries(f.Site.Sidebar)},
	}
	if len(f.Site.Social) > 0 {
		social := make(map[string]string, len(f.Site.Social))
		for k, v := range f.Site.Social {
			social[k] = v
		}
		doc.Params = map[string]any{"social": social}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

// MenuEntries flattens the sidebar into Hugo menu entries in pre-order.
// Identifiers derive from node paths ("nav-1-0"), weights from sibling
// position, so sidebar order survives Hugo's weight-based sorting.
func MenuEntries(sidebar []site.NavNode) []MenuEntry {
	entries := []MenuEntry{}
	_ = site.Walk(sidebar, func(path site.NodePath, node site.NavNode) error {
		e := MenuEntry{
			Identifier: menuIdentifier(path),
			Name:       node.NodeLabel(),
			Weight:     (path[len(path)-1] + 1) * 10,
		}
		if len(path) > 1 {
			e.Parent = menuIdentifier(path[:len(path)-1])
		}
		if link, ok := node.(*site.LinkNode); ok {
			e.URL = link.Link
		}
		entries = append(entries, e)
		return nil
	})
	return entries
}

func menuIdentifier(path site.NodePath) string {
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = fmt.Sprint(idx)
	}
	return "nav-" + strings.Join(parts, "-")
}
