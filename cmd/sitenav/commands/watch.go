package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/sitenav/internal/notify"
	"git.home.luguber.info/inful/sitenav/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	ContentDir  string        `short:"d" name:"content-dir" help:"Content directory (overrides content.dir)"`
	NoContent   bool          `name:"no-content" help:"Skip the rules that need the content tree"`
	Interval    time.Duration `default:"1m" help:"Re-check interval so content changes are picked up (0 disables)"`
	Debounce    time.Duration `default:"500ms" help:"Quiet period after a config change before re-checking"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9090)"`
	NATSURL     string        `name:"nats-url" env:"SITENAV_NATS_URL" help:"Publish check events to this NATS server"`
	NATSSubject string        `name:"nats-subject" default:"sitenav.checks" help:"NATS subject for check events"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.run(ctx, g, root)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	subject := w.NATSSubject
	if subject == "" {
		subject = notify.DefaultSubject
	}
	svc := watch.NewService(watch.ServiceOptions{
		Check: watch.CheckOptions{
			ConfigPath: configPath(root),
			ContentDir: w.ContentDir,
			NoContent:  w.NoContent,
			Out:        g.out(),
		},
		Interval:    w.Interval,
		Debounce:    w.Debounce,
		MetricsAddr: w.MetricsAddr,
		NATSURL:     w.NATSURL,
		NATSSubject: subject,
	})
	return svc.Run(ctx)
}
