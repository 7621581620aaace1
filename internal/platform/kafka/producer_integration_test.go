//go:build integration

package kafka_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/platform/config"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/platform/kafka"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/testutil"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/testutil/containers"
)

func TestProducerAgainstBroker(t *testing.T) {
	broker := containers.GetManager().GetRedpanda(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg := config.KafkaConfig{Brokers: broker.Brokers, ClientID: "pension-core-test"}
	const topic = "pension.notifications.message.test"

	testutil.Given(t, "a producer connected to the broker", func(t *testing.T) {
		producer, err := kafka.NewProducer(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
		require.NoError(t, err)
		require.NotNil(t, producer)
		defer producer.Close()

		testutil.When(t, "topics are ensured twice", func(t *testing.T) {
			require.NoError(t, producer.EnsureTopics(ctx, 1, 1, topic))
			require.NoError(t, producer.EnsureTopics(ctx, 1, 1, topic))
		})

		testutil.Then(t, "a published record can be consumed", func(t *testing.T) {
			require.NoError(t, producer.Publish(ctx, topic, []byte("nominee-1"), []byte(`{"channel":"message"}`)))

			consumer, err := kgo.NewClient(
				kgo.SeedBrokers(broker.Brokers...),
				kgo.ConsumeTopics(topic),
				kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
			)
			require.NoError(t, err)
			defer consumer.Close()

			fetches := consumer.PollFetches(ctx)
			require.NoError(t, fetches.Err())
			records := fetches.Records()
			require.NotEmpty(t, records)
			assert.Equal(t, "nominee-1", string(records[0].Key))
			assert.JSONEq(t, `{"channel":"message"}`, string(records[0].Value))
		})
	})

	testutil.Given(t, "no brokers", func(t *testing.T) {
		producer, err := kafka.NewProducer(ctx, config.KafkaConfig{}, nil)
		require.NoError(t, err)
		assert.Nil(t, producer)
	})
}
