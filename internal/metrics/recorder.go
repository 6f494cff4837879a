package metrics

import "time"

// OutcomeLabel enumerates check run outcomes for counters.
type OutcomeLabel string

const (
	OutcomeClean    OutcomeLabel = "clean"    // no issues
	OutcomeWarning  OutcomeLabel = "warning"  // warnings or infos only
	OutcomeInvalid  OutcomeLabel = "invalid"  // lint errors, including structural ones
	OutcomeFailed   OutcomeLabel = "failed"   // configuration or content could not be read
	OutcomeCanceled OutcomeLabel = "canceled" // context canceled mid-run
)

// Recorder defines observability hooks for check runs. Implementations
// must be safe for concurrent use.
type Recorder interface {
	ObserveCheckDuration(d time.Duration)
	IncCheckOutcome(outcome OutcomeLabel, trigger string)
	AddIssues(rule, severity string, n int)
	SetSidebarLinks(n int)
	SetContentPages(n int)
	IncPublishResult(success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveCheckDuration(time.Duration)   {}
func (NoopRecorder) IncCheckOutcome(OutcomeLabel, string) {}
func (NoopRecorder) AddIssues(string, string, int)        {}
func (NoopRecorder) SetSidebarLinks(int)                  {}
func (NoopRecorder) SetContentPages(int)                  {}
func (NoopRecorder) IncPublishResult(bool)                {}
