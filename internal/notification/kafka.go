package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/circuit"
)

// Producer publishes one record and waits for the broker acknowledgement.
type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// KafkaDispatcher publishes envelopes to one topic per channel. Each channel
// has its own breaker so an unavailable voice gateway does not slow down
// message delivery.
type KafkaDispatcher struct {
	producer Producer
	topics   map[Channel]string
	breakers map[Channel]*circuit.Breaker
	logger   *slog.Logger
	now      func() time.Time
}

type KafkaOption func(*KafkaDispatcher)

func WithKafkaLogger(logger *slog.Logger) KafkaOption {
	return func(d *KafkaDispatcher) {
		d.logger = logger
	}
}

func WithBreakerOptions(opts ...circuit.Option) KafkaOption {
	return func(d *KafkaDispatcher) {
		for channel := range d.topics {
			d.breakers[channel] = circuit.New("notification_"+channel.String(), opts...)
		}
	}
}

func NewKafkaDispatcher(producer Producer, topics map[Channel]string, opts ...KafkaOption) *KafkaDispatcher {
	d := &KafkaDispatcher{
		producer: producer,
		topics:   topics,
		breakers: make(map[Channel]*circuit.Breaker, len(topics)),
		logger:   slog.Default(),
		now:      time.Now,
	}
	for channel := range topics {
		d.breakers[channel] = circuit.New("notification_" + channel.String())
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *KafkaDispatcher) Dispatch(ctx context.Context, channel Channel, msg Message) error {
	topic, ok := d.topics[channel]
	if !ok {
		return ErrUnsupportedChannel
	}
	breaker := d.breakers[channel]
	if !breaker.Allow() {
		return ErrChannelUnavailable
	}

	value, err := json.Marshal(Envelope{
		ID:        uuid.NewString(),
		Channel:   channel,
		Message:   msg,
		CreatedAt: d.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if err := d.producer.Publish(ctx, topic, []byte(msg.Reference), value); err != nil {
		if _, change := breaker.RecordFailure(); change.Opened {
			d.logger.WarnContext(ctx, "notification channel circuit opened",
				"channel", channel.String(),
				"topic", topic,
			)
		}
		return dErrors.Wrap(err, dErrors.CodeDependency, "notification publish failed")
	}
	if _, change := breaker.RecordSuccess(); change.Closed {
		d.logger.InfoContext(ctx, "notification channel circuit closed", "channel", channel.String())
	}
	return nil
}
