// Package lint checks a site declaration for structural problems and, when a
// content tree is available, for drift between the sidebar and the pages.
package lint

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityInfo indicates informational messages.
	SeverityInfo Severity = iota
	// SeverityWarning indicates issues that should be fixed but don't block builds.
	SeverityWarning
	// SeverityError indicates issues the site generator would fail on or render broken.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Rule identifiers.
const (
	RuleNavStructure          = "nav-structure"
	RuleMissingPage           = "missing-page"
	RuleOrphanPage            = "orphan-page"
	RuleLabelTitleMismatch    = "label-title-mismatch"
	RuleSiblingLabelCollision = "sibling-label-collision"
	RuleUnknownSocialPlatform = "unknown-social-platform"
	RuleDuplicateRoute        = "duplicate-route"
)

// Issue is a single linting problem.
type Issue struct {
	Location string   // node path ("[1 0]"), config field ("social.github") or content file
	Severity Severity
	Rule     string
	Message  string
	Fix      string // suggested fix, may be empty
}

// Result contains all issues found during linting, in discovery order.
type Result struct {
	Issues     []Issue
	NodesTotal int // sidebar nodes visited
	PagesTotal int // content pages scanned (0 when no content dir was checked)
}

func (r *Result) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

func (r *Result) ErrorCount() int   { return r.count(SeverityError) }
func (r *Result) WarningCount() int { return r.count(SeverityWarning) }
func (r *Result) InfoCount() int    { return r.count(SeverityInfo) }
func (r *Result) HasErrors() bool   { return r.ErrorCount() > 0 }
func (r *Result) HasWarnings() bool { return r.WarningCount() > 0 }

// ByRule returns the issues reported by rule.
func (r *Result) ByRule(rule string) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Rule == rule {
			out = append(out, issue)
		}
	}
	return out
}
