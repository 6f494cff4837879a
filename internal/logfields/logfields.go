// Package logfields defines the structured field names used in logs and
// error context.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages. The
// same keys name the context of classified errors.
const (
	KeyConfigPath = "config_path"
	KeyContentDir = "content_dir"
	KeyLink       = "link"
	KeyNodePath   = "node_path"
	KeyLabel      = "label"
	KeyPlatform   = "platform"
	KeyFile       = "file"
	KeyRule       = "rule"
	KeyRunID      = "run_id"
	KeyTrigger    = "trigger"
	KeyIssues     = "issues"
	KeyErrors     = "errors"
	KeyWarnings   = "warnings"
	KeyLinks      = "links"
	KeyFormat     = "format"
	KeyOutput     = "output"
	KeySubject    = "subject"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func ConfigPath(p string) slog.Attr   { return slog.String(KeyConfigPath, p) }
func ContentDir(d string) slog.Attr   { return slog.String(KeyContentDir, d) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Rule(r string) slog.Attr         { return slog.String(KeyRule, r) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Trigger(t string) slog.Attr      { return slog.String(KeyTrigger, t) }
func Issues(n int) slog.Attr          { return slog.Int(KeyIssues, n) }
func Errors(n int) slog.Attr          { return slog.Int(KeyErrors, n) }
func Warnings(n int) slog.Attr        { return slog.Int(KeyWarnings, n) }
func Links(n int) slog.Attr           { return slog.Int(KeyLinks, n) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Output(o string) slog.Attr       { return slog.String(KeyOutput, o) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
