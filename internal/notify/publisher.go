// Package notify publishes check run events to a message broker.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// DefaultSubject is the NATS subject check events are published on.
const DefaultSubject = "sitenav.checks"

const flushTimeout = 5 * time.Second

// Publisher delivers check events.
type Publisher interface {
	Publish(ctx context.Context, event *CheckEvent) error
	Close() error
}

// NATSPublisher publishes check events on a core NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to the NATS server at url. An empty subject uses
// DefaultSubject.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	if subject == "" {
		subject = DefaultSubject
	}

	conn, err := nats.Connect(url,
		nats.Name("sitenav"),
		nats.Timeout(flushTimeout),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("NATS connection lost", logfields.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			slog.Info("NATS connection restored", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to connect to NATS").
			Retryable().
			WithContext("nats_url", url).
			Build()
	}

	slog.Info("NATS publisher initialized", slog.String("url", url), logfields.Subject(subject))
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

// Subject returns the subject events are published on.
func (p *NATSPublisher) Subject() string { return p.subject }

// Publish encodes event and waits until the server has received it.
func (p *NATSPublisher) Publish(ctx context.Context, event *CheckEvent) error {
	data, err := Encode(event)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to publish check event").
			Retryable().
			WithContext("subject", p.subject).
			Build()
	}

	ctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to flush check event").
			Retryable().
			WithContext("subject", p.subject).
			Build()
	}

	slog.Debug("Published check event",
		logfields.RunID(event.RunID),
		logfields.Subject(p.subject),
		slog.String("outcome", event.Outcome))
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}

// Encode renders event as the JSON payload published on the wire. A zero
// timestamp is set to now.
func Encode(event *CheckEvent) ([]byte, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode check event").Build()
	}
	return data, nil
}
