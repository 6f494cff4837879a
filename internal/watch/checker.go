// Package watch keeps re-checking a sitenav configuration while it is being
// edited: file changes and a periodic schedule both funnel into one
// serialized Checker.
package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/content"
	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/lint"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
	"git.home.luguber.info/inful/sitenav/internal/notify"
	"git.home.luguber.info/inful/sitenav/internal/retry"
	"git.home.luguber.info/inful/sitenav/internal/site"
)

// Triggers label what started a check run.
const (
	TriggerStartup  = "startup"
	TriggerFSNotify = "fsnotify"
	TriggerInterval = "interval"
)

// CheckOptions configures a Checker.
type CheckOptions struct {
	ConfigPath string
	// ContentDir overrides content.dir from the configuration file.
	ContentDir string
	// NoContent skips the content rules.
	NoContent bool
	Quiet     bool
	// Out receives the text report of each run; nil disables it.
	Out io.Writer
}

// Report is the outcome of one check run.
type Report struct {
	RunID    string
	Trigger  string
	Outcome  metrics.OutcomeLabel
	Result   *lint.Result // nil when the configuration could not be loaded
	Links    int
	Err      error
	Duration time.Duration
}

// Checker loads, lints and reports on the configuration. Run is safe for
// concurrent use; runs are serialized.
type Checker struct {
	opts      CheckOptions
	mu        sync.Mutex
	recorder  metrics.Recorder
	publisher notify.Publisher
	retry     retry.Policy
	last      *Report
}

// NewChecker creates a checker that records into NoopRecorder and publishes nothing.
func NewChecker(opts CheckOptions) *Checker {
	return &Checker{opts: opts, recorder: metrics.NoopRecorder{}, retry: retry.DefaultPolicy()}
}

// WithRecorder sets the metrics recorder.
func (c *Checker) WithRecorder(r metrics.Recorder) *Checker {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	c.recorder = r
	return c
}

// WithPublisher sets where check events are published; nil disables publishing.
func (c *Checker) WithPublisher(p notify.Publisher) *Checker {
	c.publisher = p
	return c
}

// WithRetryPolicy sets the backoff used when publishing fails transiently.
func (c *Checker) WithRetryPolicy(p retry.Policy) *Checker {
	c.retry = p
	return c
}

// Last returns the report of the most recent run, or nil.
func (c *Checker) Last() *Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Run performs one check. Each run loads a fresh configuration value.
func (c *Checker) Run(ctx context.Context, trigger string) *Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	rep := &Report{RunID: uuid.NewString(), Trigger: trigger}
	log := slog.With(logfields.RunID(rep.RunID), logfields.Trigger(trigger))
	log.Debug("Starting check", logfields.ConfigPath(c.opts.ConfigPath))

	c.check(ctx, rep, log)
	rep.Duration = time.Since(start)
	log.Debug("Check finished", logfields.DurationMS(float64(rep.Duration.Microseconds())/1000))

	c.record(rep)
	c.publish(ctx, rep, log)
	c.last = rep
	return rep
}

func (c *Checker) check(ctx context.Context, rep *Report, log *slog.Logger) {
	if err := ctx.Err(); err != nil {
		rep.Outcome, rep.Err = metrics.OutcomeCanceled, err
		return
	}

	f, err := config.Load(c.opts.ConfigPath)
	if err != nil {
		rep.Outcome, rep.Err = metrics.OutcomeFailed, err
		log.Error("Check failed", logfields.Error(err))
		return
	}
	rep.Links = len(site.Links(&f.Site))

	pages, err := c.scan(f, log)
	if err != nil {
		rep.Outcome, rep.Err = metrics.OutcomeFailed, err
		log.Error("Check failed", logfields.Error(err))
		return
	}

	if err := ctx.Err(); err != nil {
		rep.Outcome, rep.Err = metrics.OutcomeCanceled, err
		return
	}

	linter := lint.NewLinter(&lint.Config{Ignore: f.Content.Ignore, Quiet: c.opts.Quiet})
	rep.Result = linter.Lint(&f.Site, pages)
	rep.Outcome = outcomeOf(rep.Result)

	if c.opts.Out != nil {
		if err := lint.NewFormatter("text").Format(c.opts.Out, rep.Result, c.opts.ConfigPath); err != nil {
			log.Warn("Failed to write report", logfields.Error(err))
		}
	}
	for _, issue := range rep.Result.Issues {
		log.Debug(issue.Message, logfields.Rule(issue.Rule), slog.String("location", issue.Location))
	}
	log.Info("Check completed",
		slog.String("outcome", string(rep.Outcome)),
		logfields.Links(rep.Links),
		logfields.Issues(len(rep.Result.Issues)),
		logfields.Errors(rep.Result.ErrorCount()),
		logfields.Warnings(rep.Result.WarningCount()))
}

// scan indexes the content tree. A missing default content directory only
// disables the content rules; a missing explicit one is an error.
func (c *Checker) scan(f *config.File, log *slog.Logger) (*content.Index, error) {
	if c.opts.NoContent {
		return nil, nil
	}
	dir := f.Content.Dir
	if c.opts.ContentDir != "" {
		dir = c.opts.ContentDir
	}
	pages, err := content.Scan(dir, f.Content.Extensions)
	if err == nil {
		return pages, nil
	}
	var ce *ferrors.ClassifiedError
	if errors.As(err, &ce) && ce.Category() == ferrors.CategoryNotFound && c.opts.ContentDir == "" {
		log.Warn("Content directory not found, skipping content rules", logfields.ContentDir(dir))
		return nil, nil
	}
	return nil, err
}

func outcomeOf(res *lint.Result) metrics.OutcomeLabel {
	switch {
	case res.HasErrors():
		return metrics.OutcomeInvalid
	case len(res.Issues) > 0:
		return metrics.OutcomeWarning
	default:
		return metrics.OutcomeClean
	}
}

func (c *Checker) record(rep *Report) {
	c.recorder.ObserveCheckDuration(rep.Duration)
	c.recorder.IncCheckOutcome(rep.Outcome, rep.Trigger)
	if rep.Result == nil {
		return
	}
	c.recorder.SetSidebarLinks(rep.Links)
	c.recorder.SetContentPages(rep.Result.PagesTotal)

	type key struct{ rule, severity string }
	counts := make(map[key]int)
	for _, issue := range rep.Result.Issues {
		counts[key{issue.Rule, strings.ToLower(issue.Severity.String())}]++
	}
	for k, n := range counts {
		c.recorder.AddIssues(k.rule, k.severity, n)
	}
}

func (c *Checker) publish(ctx context.Context, rep *Report, log *slog.Logger) {
	if c.publisher == nil || rep.Outcome == metrics.OutcomeCanceled {
		return
	}
	event := EventFor(rep, c.opts.ConfigPath)
	err := c.retry.Do(ctx, func(ctx context.Context) error {
		return c.publisher.Publish(ctx, event)
	})
	c.recorder.IncPublishResult(err == nil)
	if err != nil {
		log.Warn("Failed to publish check event", logfields.Error(err))
	}
}

// EventFor converts a report into the event published for it.
func EventFor(rep *Report, configPath string) *notify.CheckEvent {
	ev := &notify.CheckEvent{
		RunID:      rep.RunID,
		Trigger:    rep.Trigger,
		ConfigPath: configPath,
		Outcome:    string(rep.Outcome),
		DurationMS: float64(rep.Duration.Microseconds()) / 1000,
		Links:      rep.Links,
	}
	if rep.Err != nil {
		ev.Error = rep.Err.Error()
	}
	if rep.Result != nil {
		ev.Pages = rep.Result.PagesTotal
		ev.Errors = rep.Result.ErrorCount()
		ev.Warnings = rep.Result.WarningCount()
		ev.Infos = rep.Result.InfoCount()
		for _, issue := range rep.Result.Issues {
			ev.Issues = append(ev.Issues, notify.IssueSummary{
				Rule:     issue.Rule,
				Severity: strings.ToLower(issue.Severity.String()),
				Location: issue.Location,
				Message:  issue.Message,
			})
		}
	}
	return ev
}
