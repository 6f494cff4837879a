package commands

import (
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/site"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	Paths bool `short:"p" help:"Show node paths"`
}

func (t *TreeCmd) Run(g *Global, root *CLI) error {
	f, err := config.Load(configPath(root))
	if err != nil {
		return err
	}
	return RenderTree(g.out(), &f.Site, t.Paths)
}

// RenderTree prints the sidebar below the site title using box-drawing
// branches. Links are followed by their target.
func RenderTree(w io.Writer, cfg *site.SiteConfig, paths bool) error {
	var b strings.Builder
	title := cfg.Title
	if title == "" {
		title = "(untitled)"
	}
	b.WriteString(title + "\n")
	renderNodes(&b, cfg.Sidebar, nil, "", paths)
	_, err := io.WriteString(w, b.String())
	return err
}

func renderNodes(b *strings.Builder, nodes []site.NavNode, parent site.NodePath, prefix string, paths bool) {
	for i, node := range nodes {
		path := parent.Child(i)
		last := i == len(nodes)-1

		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		b.WriteString(prefix + branch)

		switch n := node.(type) {
		case *site.LinkNode:
			if n != nil {
				fmt.Fprintf(b, "%s → %s", n.Label, n.Link)
			}
		case *site.GroupNode:
			if n != nil {
				b.WriteString(n.Label)
				if len(n.Items) == 0 {
					b.WriteString(" (empty)")
				}
			}
		}
		if site.IsNil(node) {
			b.WriteString("(missing)")
		}
		if paths {
			fmt.Fprintf(b, "  %s", path)
		}
		b.WriteString("\n")

		if g, ok := node.(*site.GroupNode); ok && g != nil {
			renderNodes(b, g.Items, path, prefix+indent, paths)
		}
	}
}
