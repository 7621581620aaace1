package notification

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/platform/metrics"
)

const DefaultDispatchTimeout = 5 * time.Second

type Dispatcher interface {
	Dispatch(ctx context.Context, channel Channel, msg Message) error
}

// Notifier sends one message on several channels at once and reports each
// channel's outcome. It never returns an error: delivery failures are
// outcomes.
type Notifier struct {
	dispatcher Dispatcher
	timeout    time.Duration
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(*Notifier)

func WithLogger(logger *slog.Logger) Option {
	return func(n *Notifier) {
		n.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(n *Notifier) {
		n.metrics = m
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(n *Notifier) {
		if timeout > 0 {
			n.timeout = timeout
		}
	}
}

func NewNotifier(dispatcher Dispatcher, opts ...Option) *Notifier {
	n := &Notifier{
		dispatcher: dispatcher,
		timeout:    DefaultDispatchTimeout,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Send makes at most one attempt per channel. Attempts run detached from the
// caller's cancellation, bounded by the notifier timeout. Outcomes keep the
// order of channels.
func (n *Notifier) Send(ctx context.Context, msg Message, channels ...Channel) []Outcome {
	dispatchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	outcomes := make([]Outcome, len(channels))
	var g errgroup.Group
	for i, channel := range channels {
		g.Go(func() error {
			outcomes[i] = n.attempt(dispatchCtx, channel, msg)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (n *Notifier) attempt(ctx context.Context, channel Channel, msg Message) Outcome {
	err := n.dispatcher.Dispatch(ctx, channel, msg)
	if n.metrics != nil {
		n.metrics.IncNotification(channel.String(), err == nil)
	}
	if err != nil {
		n.logger.WarnContext(ctx, "notification dispatch failed",
			"channel", channel.String(),
			"reference", msg.Reference,
			"error", err,
		)
		return Outcome{Channel: channel, Delivered: false, Error: err.Error()}
	}
	return Outcome{Channel: channel, Delivered: true}
}
