package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teemow/meetinvite/internal/instrumentation"
	"github.com/teemow/meetinvite/internal/logging"
)

// Dispatcher sends one invitation per attendee.
type Dispatcher struct {
	from      string
	transport string
	location  *time.Location
	limit     int
	metrics   *instrumentation.Metrics
	logger    *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithFrom sets the From header of every invitation.
func WithFrom(from string) DispatcherOption {
	return func(d *Dispatcher) { d.from = from }
}

// WithTransport sets the transport name used in metrics and logs.
func WithTransport(transport string) DispatcherOption {
	return func(d *Dispatcher) { d.transport = transport }
}

// WithLocation sets the zone event times are shown in.
func WithLocation(loc *time.Location) DispatcherOption {
	return func(d *Dispatcher) { d.location = loc }
}

// WithConcurrencyLimit caps the number of sends in flight. Zero means no limit.
func WithConcurrencyLimit(n int) DispatcherOption {
	return func(d *Dispatcher) { d.limit = n }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *instrumentation.Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		transport: "smtp",
		location:  time.UTC,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Notify sends inv to every attendee concurrently through sender. Every send
// is attempted and awaited; a failed send does not stop the others. The
// returned error joins all failures.
func (d *Dispatcher) Notify(ctx context.Context, sender Sender, inv Invitation, attendees []string) error {
	if len(attendees) == 0 {
		return nil
	}

	body, err := inv.RenderHTML(d.location)
	if err != nil {
		return err
	}
	subject := inv.Subject()

	errs := make([]error, len(attendees))

	var g errgroup.Group
	if d.limit > 0 {
		g.SetLimit(d.limit)
	}

	for i, attendee := range attendees {
		g.Go(func() error {
			msg := &Message{
				From:     d.from,
				To:       attendee,
				Subject:  subject,
				HTMLBody: body,
			}

			start := time.Now()
			err := sender.Send(ctx, msg)
			if err != nil {
				d.metrics.RecordMailSend(ctx, d.transport, instrumentation.StatusError, time.Since(start))
				d.logger.Warn("invitation send failed",
					logging.Service(d.transport),
					logging.Domain(attendee),
					logging.Err(err))
				errs[i] = fmt.Errorf("send to attendee %d: %w", i, err)
				return nil
			}

			d.metrics.RecordMailSend(ctx, d.transport, instrumentation.StatusSuccess, time.Since(start))
			d.logger.Debug("invitation sent",
				logging.Service(d.transport),
				logging.Domain(attendee))
			return nil
		})
	}

	_ = g.Wait()
	return errors.Join(errs...)
}
