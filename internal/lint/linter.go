package lint

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/cases"

	"git.home.luguber.info/inful/sitenav/internal/content"
	"git.home.luguber.info/inful/sitenav/internal/site"
)

// Config tunes which checks run.
type Config struct {
	// Ignore lists routes that may exist as pages without a sidebar entry.
	// The home page (/) and /404 are always ignored.
	Ignore []string
	// Quiet drops warnings and infos from the result.
	Quiet bool
}

// Linter runs the rule set over a site declaration.
type Linter struct {
	cfg  Config
	fold cases.Caser
}

// NewLinter creates a linter. A nil cfg uses defaults.
func NewLinter(cfg *Config) *Linter {
	l := &Linter{fold: cases.Fold()}
	if cfg != nil {
		l.cfg = *cfg
	}
	return l
}

// Lint checks cfg. When pages is non-nil the content rules run as well.
func (l *Linter) Lint(cfg *site.SiteConfig, pages *content.Index) *Result {
	res := &Result{}
	_ = site.Walk(cfg.Sidebar, func(site.NodePath, site.NavNode) error {
		res.NodesTotal++
		return nil
	})

	l.checkStructure(cfg, res)
	l.checkSiblingLabels(cfg.Sidebar, nil, res)
	l.checkRoutes(cfg, res)
	l.checkSocialPlatforms(cfg, res)
	if pages != nil {
		res.PagesTotal = pages.Len()
		l.checkPages(cfg, pages, res)
	}

	if l.cfg.Quiet {
		res.Issues = slices.DeleteFunc(res.Issues, func(i Issue) bool { return i.Severity != SeverityError })
	}
	return res
}

func (l *Linter) checkStructure(cfg *site.SiteConfig, res *Result) {
	for _, err := range site.Issues(cfg) {
		issue := Issue{Severity: SeverityError, Rule: RuleNavStructure, Message: err.Error()}

		var (
			dup   *site.DuplicateLinkError
			label *site.EmptyLabelError
			group *site.EmptyGroupError
			link  *site.InvalidLinkFormatError
			url   *site.InvalidURLError
			nilN  *site.NilNodeError
		)
		switch {
		case errors.As(err, &dup):
			issue.Location = dup.NodePath.String()
			issue.Fix = fmt.Sprintf("give one of the entries at %s and %s a different link", dup.First, dup.NodePath)
		case errors.As(err, &label):
			issue.Location = label.NodePath.String()
			issue.Fix = "set a non-empty label"
		case errors.As(err, &group):
			issue.Location = group.NodePath.String()
			issue.Fix = "add items to the group or replace it with a link"
		case errors.As(err, &link):
			issue.Location = link.NodePath.String()
			issue.Fix = fmt.Sprintf("use a site-relative path such as %q", "/"+link.Path)
		case errors.As(err, &nilN):
			issue.Location = nilN.NodePath.String()
			issue.Fix = "remove the empty entry"
		case errors.As(err, &url):
			issue.Location = "social." + url.Platform
			issue.Fix = "use an absolute URL such as https://example.com/profile"
		}
		res.Issues = append(res.Issues, issue)
	}
}

// checkSiblingLabels flags siblings whose labels are equal under Unicode case
// folding; readers cannot tell such entries apart.
func (l *Linter) checkSiblingLabels(nodes []site.NavNode, parent site.NodePath, res *Result) {
	seen := make(map[string]int, len(nodes))
	for i, node := range nodes {
		if site.IsNil(node) {
			continue
		}
		path := parent.Child(i)
		if label := node.NodeLabel(); label != "" {
			key := l.fold.String(label)
			if prev, dup := seen[key]; dup {
				res.Issues = append(res.Issues, Issue{
					Location: path.String(),
					Severity: SeverityWarning,
					Rule:     RuleSiblingLabelCollision,
					Message:  fmt.Sprintf("label %q repeats sibling %s", label, parent.Child(prev)),
					Fix:      "rename one of the entries",
				})
			} else {
				seen[key] = i
			}
		}
		if g, ok := node.(*site.GroupNode); ok && g != nil {
			l.checkSiblingLabels(g.Items, path, res)
		}
	}
}

// checkRoutes flags links that differ as strings but resolve to the same
// route once case and trailing slashes are normalized. Identical links are
// already reported by nav-structure.
func (l *Linter) checkRoutes(cfg *site.SiteConfig, res *Result) {
	type first struct {
		path site.NodePath
		link string
	}
	seen := make(map[string]first)
	_ = site.Walk(cfg.Sidebar, func(path site.NodePath, node site.NavNode) error {
		link, ok := node.(*site.LinkNode)
		if !ok || link == nil || link.Link == "" || link.Link[0] != '/' {
			return nil
		}
		route := content.NormalizeRoute(link.Link)
		prev, dup := seen[route]
		if !dup {
			seen[route] = first{path: path, link: link.Link}
			return nil
		}
		if prev.link == link.Link {
			return nil
		}
		res.Issues = append(res.Issues, Issue{
			Location: path.String(),
			Severity: SeverityWarning,
			Rule:     RuleDuplicateRoute,
			Message:  fmt.Sprintf("link %q resolves to the same route as %q at %s", link.Link, prev.link, prev.path),
			Fix:      "point both entries at distinct routes or remove one",
		})
		return nil
	})
}

func (l *Linter) checkSocialPlatforms(cfg *site.SiteConfig, res *Result) {
	for _, platform := range cfg.Social.Platforms() {
		if site.IsKnownPlatform(platform) {
			continue
		}
		res.Issues = append(res.Issues, Issue{
			Location: "social." + platform,
			Severity: SeverityWarning,
			Rule:     RuleUnknownSocialPlatform,
			Message:  fmt.Sprintf("social platform %q is not recognized by the site theme", platform),
		})
	}
}

func (l *Linter) checkPages(cfg *site.SiteConfig, pages *content.Index, res *Result) {
	linked := make(map[string]bool)
	_ = site.Walk(cfg.Sidebar, func(path site.NodePath, node site.NavNode) error {
		link, ok := node.(*site.LinkNode)
		if !ok || link == nil || link.Link == "" || link.Link[0] != '/' {
			return nil
		}
		page, found := pages.Lookup(link.Link)
		if !found {
			res.Issues = append(res.Issues, Issue{
				Location: path.String(),
				Severity: SeverityError,
				Rule:     RuleMissingPage,
				Message:  fmt.Sprintf("link %q has no page in %s", link.Link, pages.Dir),
				Fix:      fmt.Sprintf("create %s%s.md or fix the link", pages.Dir, content.NormalizeRoute(link.Link)),
			})
			return nil
		}
		linked[page.Route] = true
		if page.Title != "" && page.Title != link.Label {
			res.Issues = append(res.Issues, Issue{
				Location: path.String(),
				Severity: SeverityInfo,
				Rule:     RuleLabelTitleMismatch,
				Message:  fmt.Sprintf("label %q differs from page title %q (%s)", link.Label, page.Title, page.File),
			})
		}
		return nil
	})

	ignored := map[string]bool{"/": true, "/404": true}
	for _, r := range l.cfg.Ignore {
		ignored[content.NormalizeRoute(r)] = true
	}
	for _, page := range pages.Pages() {
		if linked[page.Route] || ignored[page.Route] {
			continue
		}
		res.Issues = append(res.Issues, Issue{
			Location: page.File,
			Severity: SeverityWarning,
			Rule:     RuleOrphanPage,
			Message:  fmt.Sprintf("page %s is not reachable from the sidebar", page.Route),
			Fix:      "add a sidebar link or list the route under content.ignore",
		})
	}
}
