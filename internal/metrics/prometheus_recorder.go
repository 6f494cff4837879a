package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	checkDuration prom.Histogram
	checkOutcome  *prom.CounterVec
	issues        *prom.CounterVec
	sidebarLinks  prom.Gauge
	contentPages  prom.Gauge
	publishes     *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		checkDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "sitenav",
			Name:      "check_duration_seconds",
			Help:      "Duration of a full load, validate and lint run",
			Buckets:   prom.DefBuckets,
		}),
		checkOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitenav",
			Name:      "check_runs_total",
			Help:      "Check runs by outcome and trigger",
		}, []string{"outcome", "trigger"}),
		issues: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitenav",
			Name:      "lint_issues_total",
			Help:      "Lint issues reported, by rule and severity",
		}, []string{"rule", "severity"}),
		sidebarLinks: prom.NewGauge(prom.GaugeOpts{
			Namespace: "sitenav",
			Name:      "sidebar_links",
			Help:      "Number of sidebar links in the last loaded configuration",
		}),
		contentPages: prom.NewGauge(prom.GaugeOpts{
			Namespace: "sitenav",
			Name:      "content_pages",
			Help:      "Number of content pages found by the last scan",
		}),
		publishes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitenav",
			Name:      "event_publish_total",
			Help:      "Check event publications by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.checkDuration, pr.checkOutcome, pr.issues, pr.sidebarLinks, pr.contentPages, pr.publishes)
	return pr
}

func (p *PrometheusRecorder) ObserveCheckDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.checkDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCheckOutcome(outcome OutcomeLabel, trigger string) {
	if p == nil {
		return
	}
	p.checkOutcome.WithLabelValues(string(outcome), trigger).Inc()
}

func (p *PrometheusRecorder) AddIssues(rule, severity string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.issues.WithLabelValues(rule, severity).Add(float64(n))
}

func (p *PrometheusRecorder) SetSidebarLinks(n int) {
	if p == nil {
		return
	}
	p.sidebarLinks.Set(float64(n))
}

func (p *PrometheusRecorder) SetContentPages(n int) {
	if p == nil {
		return
	}
	p.contentPages.Set(float64(n))
}

func (p *PrometheusRecorder) IncPublishResult(success bool) {
	if p == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.publishes.WithLabelValues(res).Inc()
}
