package notify

import "time"

// CheckEvent describes the result of one check run. It is published as JSON
// so downstream consumers (CI dashboards, chat bots) can react to a broken
// sidebar without polling.
type CheckEvent struct {
	// Run identification
	RunID      string    `json:"run_id"`      // Unique per run
	Trigger    string    `json:"trigger"`     // startup, fsnotify, interval
	ConfigPath string    `json:"config_path"` // Configuration file checked
	Timestamp  time.Time `json:"timestamp"`   // When the run finished

	// Outcome
	Outcome    string  `json:"outcome"`         // clean, warning, invalid, failed
	Error      string  `json:"error,omitempty"` // Load failure, if any
	DurationMS float64 `json:"duration_ms"`

	// Counts
	Links    int `json:"links"`
	Pages    int `json:"pages"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`

	Issues []IssueSummary `json:"issues,omitempty"`
}

// IssueSummary is the published form of a lint issue.
type IssueSummary struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Location string `json:"location"`
	Message  string `json:"message"`
}
