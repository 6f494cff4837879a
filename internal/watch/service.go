package watch

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
	"git.home.luguber.info/inful/sitenav/internal/notify"
)

const shutdownTimeout = 5 * time.Second

// ServiceOptions configures watch mode.
type ServiceOptions struct {
	Check CheckOptions
	// Interval between scheduled re-checks; zero disables the schedule.
	Interval time.Duration
	Debounce time.Duration
	// MetricsAddr serves /metrics when non-empty.
	MetricsAddr string
	// NATSURL enables publishing check events when non-empty.
	NATSURL     string
	NATSSubject string
}

// Service wires the checker to the file watcher, the scheduler, the metrics
// endpoint and the event publisher.
type Service struct {
	opts     ServiceOptions
	registry *prom.Registry
	checker  *Checker

	mu          sync.Mutex
	metricsAddr string
	ready       chan struct{}
}

// NewService creates a service. Nothing is started until Run.
func NewService(opts ServiceOptions) *Service {
	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return &Service{
		opts:     opts,
		registry: reg,
		checker:  NewChecker(opts.Check).WithRecorder(metrics.NewPrometheusRecorder(reg)),
		ready:    make(chan struct{}),
	}
}

// Checker returns the checker all triggers run through.
func (s *Service) Checker() *Checker { return s.checker }

// Ready is closed once the initial check ran and all triggers are active.
func (s *Service) Ready() <-chan struct{} { return s.ready }

// MetricsAddr returns the address the metrics endpoint listens on, or "".
func (s *Service) MetricsAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metricsAddr
}

// Run checks once, then keeps checking on every configuration change and
// interval tick until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	if s.opts.NATSURL != "" {
		pub, err := notify.NewNATSPublisher(s.opts.NATSURL, s.opts.NATSSubject)
		if err != nil {
			return err
		}
		defer func() {
			if err := pub.Close(); err != nil {
				slog.Warn("Failed to close NATS connection", logfields.Error(err))
			}
		}()
		s.checker.WithPublisher(pub)
	}

	if s.opts.MetricsAddr != "" {
		stop, err := s.serveMetrics()
		if err != nil {
			return err
		}
		defer stop()
	}

	s.checker.Run(ctx, TriggerStartup)

	watcher, err := NewConfigWatcher(s.opts.Check.ConfigPath, s.opts.Debounce, func(ctx context.Context) {
		s.checker.Run(ctx, TriggerFSNotify)
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		_ = watcher.Stop()
		return err
	}
	defer func() { _ = watcher.Stop() }()

	if s.opts.Interval > 0 {
		sched, err := NewScheduler()
		if err != nil {
			return err
		}
		if _, err := sched.SchedulePeriodicCheck(ctx, s.opts.Interval, func(ctx context.Context) {
			s.checker.Run(ctx, TriggerInterval)
		}); err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Warn("Failed to stop scheduler", logfields.Error(err))
			}
		}()
	}

	close(s.ready)
	<-ctx.Done()
	slog.Info("Stopping watch mode")
	return nil
}

func (s *Service) serveMetrics() (func(), error) {
	ln, err := net.Listen("tcp", s.opts.MetricsAddr)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to listen for metrics").
			WithContext("addr", s.opts.MetricsAddr).
			Build()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(s.registry))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	s.mu.Lock()
	s.metricsAddr = ln.Addr().String()
	s.mu.Unlock()
	slog.Info("Serving metrics", slog.String("addr", ln.Addr().String()))

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Warn("Failed to stop metrics server", logfields.Error(err))
		}
	}, nil
}
