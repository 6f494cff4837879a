// Package metrics records outcomes of sitenav check runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so recording needs no nil checks:
//
//	checker := watch.NewChecker(opts) // records into NoopRecorder
//	checker.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// PrometheusRecorder registers its collectors on the given registry;
// HTTPHandler exposes that registry for scraping.
package metrics
