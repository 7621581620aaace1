package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/audit/store/postgres"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/tx"
)

const (
	defaultBatchSize    = 100
	defaultPollInterval = 2 * time.Second
)

// OutboxStore is the outbox side of the relay.
type OutboxStore interface {
	FetchPending(ctx context.Context, limit int) ([]postgres.OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// Producer publishes one keyed message to a topic.
type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// Metrics observes relay progress.
type Metrics interface {
	IncOutboxRelayed(n int)
	IncOutboxRelayFailures()
}

// Relay moves audit events from the outbox table to Kafka. Each batch runs in
// one transaction so the row locks taken by FetchPending hold until the
// entries are marked published.
type Relay struct {
	store     OutboxStore
	producer  Producer
	tx        tx.Runner
	topic     string
	batchSize int
	interval  time.Duration
	logger    *slog.Logger
	metrics   Metrics
}

type Option func(*Relay)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) { r.logger = logger }
}

func WithMetrics(m Metrics) Option {
	return func(r *Relay) { r.metrics = m }
}

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func NewRelay(store OutboxStore, producer Producer, runner tx.Runner, topic string, opts ...Option) *Relay {
	r := &Relay{
		store:     store,
		producer:  producer,
		tx:        runner,
		topic:     topic,
		batchSize: defaultBatchSize,
		interval:  defaultPollInterval,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.RelayOnce(ctx); err != nil {
				r.logger.WarnContext(ctx, "audit outbox relay failed", "error", err)
			}
		}
	}
}

// RelayOnce publishes one batch and returns how many entries were relayed.
// A publish failure stops the batch; entries already published are marked.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	relayed := 0
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		entries, err := r.store.FetchPending(ctx, r.batchSize)
		if err != nil {
			return err
		}
		published := make([]uuid.UUID, 0, len(entries))
		var publishErr error
		for _, e := range entries {
			if err := r.producer.Publish(ctx, r.topic, []byte(e.AggregateID), e.Payload); err != nil {
				publishErr = err
				if r.metrics != nil {
					r.metrics.IncOutboxRelayFailures()
				}
				break
			}
			published = append(published, e.ID)
		}
		if err := r.store.MarkPublished(ctx, published, time.Now()); err != nil {
			return err
		}
		relayed = len(published)
		if r.metrics != nil && relayed > 0 {
			r.metrics.IncOutboxRelayed(relayed)
		}
		if publishErr != nil {
			r.logger.WarnContext(ctx, "audit outbox publish failed",
				"relayed", relayed,
				"pending", len(entries)-relayed,
				"error", publishErr,
			)
		}
		return nil
	})
	return relayed, err
}
