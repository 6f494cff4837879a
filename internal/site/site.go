// Package site models the declarative configuration of a documentation site:
// its title, social profile links and the navigation sidebar tree.
//
// A SiteConfig is built once (from a file or from Default) and treated as
// immutable afterwards. Validate checks the structural invariants of the
// sidebar and the social links before the value is handed to a site generator.
package site

import (
	"fmt"
	"sort"
	"strings"
)

// Recognized social platforms. Other keys are accepted but flagged by lint.
const (
	PlatformGitHub    = "github"
	PlatformGitLab    = "gitlab"
	PlatformLinkedIn  = "linkedin"
	PlatformMastodon  = "mastodon"
	PlatformX         = "x"
	PlatformBluesky   = "bluesky"
	PlatformYouTube   = "youtube"
	PlatformDiscord   = "discord"
	PlatformEmail     = "email"
	PlatformRSS       = "rss"
	PlatformStackOver = "stackOverflow"
)

var knownPlatforms = map[string]bool{
	PlatformGitHub:    true,
	PlatformGitLab:    true,
	PlatformLinkedIn:  true,
	PlatformMastodon:  true,
	PlatformX:         true,
	PlatformBluesky:   true,
	PlatformYouTube:   true,
	PlatformDiscord:   true,
	PlatformEmail:     true,
	PlatformRSS:       true,
	PlatformStackOver: true,
}

// IsKnownPlatform reports whether name is one of the documented social platforms.
func IsKnownPlatform(name string) bool {
	return knownPlatforms[name]
}

// SiteConfig is the top-level site declaration.
type SiteConfig struct {
	Title   string    `yaml:"title" json:"title"`
	Social  Social    `yaml:"social,omitempty" json:"social,omitempty"`
	Sidebar []NavNode `yaml:"sidebar" json:"sidebar"`
}

// Social maps a platform name to an absolute profile URL.
type Social map[string]string

// Platforms returns the configured platform names in sorted order.
func (s Social) Platforms() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NavNode is a node of the sidebar tree: either a *LinkNode or a *GroupNode.
type NavNode interface {
	NodeLabel() string
	isNavNode()
}

// LinkNode is a leaf pointing at a site-relative route.
type LinkNode struct {
	Label string `yaml:"label" json:"label"`
	Link  string `yaml:"link" json:"link"`
}

// GroupNode is a labeled, ordered collection of child nodes.
type GroupNode struct {
	Label string    `yaml:"label" json:"label"`
	Items []NavNode `yaml:"items" json:"items"`
}

func (n *LinkNode) NodeLabel() string {
	if n == nil {
		return ""
	}
	return n.Label
}

func (n *GroupNode) NodeLabel() string {
	if n == nil {
		return ""
	}
	return n.Label
}

func (*LinkNode) isNavNode()  {}
func (*GroupNode) isNavNode() {}

// IsNil reports whether node is a nil interface or a nil *LinkNode or *GroupNode.
func IsNil(node NavNode) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *LinkNode:
		return n == nil
	case *GroupNode:
		return n == nil
	}
	return false
}

// Link is a convenience constructor for a leaf node.
func Link(label, link string) *LinkNode {
	return &LinkNode{Label: label, Link: link}
}

// Group is a convenience constructor for a group node.
func Group(label string, items ...NavNode) *GroupNode {
	return &GroupNode{Label: label, Items: items}
}

// NodePath locates a node by its index at each level, starting from the sidebar.
type NodePath []int

// String renders the path as "[0 2 1]".
func (p NodePath) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = fmt.Sprint(idx)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Child returns a new path extended with idx. The receiver is never aliased.
func (p NodePath) Child(idx int) NodePath {
	out := make(NodePath, len(p)+1)
	copy(out, p)
	out[len(p)] = idx
	return out
}

// Equal reports whether two paths point at the same position.
func (p NodePath) Equal(other NodePath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// WalkFunc is called for every node visited by Walk.
type WalkFunc func(path NodePath, node NavNode) error

// Walk visits nodes depth-first, pre-order, left to right. A non-nil error
// returned by fn stops the walk and is returned unchanged.
func Walk(nodes []NavNode, fn WalkFunc) error {
	return walk(nodes, nil, fn)
}

func walk(nodes []NavNode, parent NodePath, fn WalkFunc) error {
	for i, node := range nodes {
		path := parent.Child(i)
		if err := fn(path, node); err != nil {
			return err
		}
		if g, ok := node.(*GroupNode); ok && g != nil {
			if err := walk(g.Items, path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Links returns every link path in traversal order, duplicates included.
func Links(cfg *SiteConfig) []string {
	var links []string
	_ = Walk(cfg.Sidebar, func(_ NodePath, node NavNode) error {
		if l, ok := node.(*LinkNode); ok && l != nil {
			links = append(links, l.Link)
		}
		return nil
	})
	return links
}

// Depth returns the depth of the deepest node (1 for a flat sidebar, 0 when empty).
func Depth(cfg *SiteConfig) int {
	depth := 0
	_ = Walk(cfg.Sidebar, func(path NodePath, _ NavNode) error {
		if len(path) > depth {
			depth = len(path)
		}
		return nil
	})
	return depth
}
