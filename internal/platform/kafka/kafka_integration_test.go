//go:build integration

package kafka_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vigil/internal/platform/kafka"
	"vigil/internal/platform/kafka/consumer"
	"vigil/internal/platform/kafka/producer"
	"vigil/internal/platform/logger"
	"vigil/pkg/testutil/containers"
)

type recordingHandler struct {
	mu       sync.Mutex
	messages []*consumer.Message
}

func (h *recordingHandler) Handle(ctx context.Context, msg *consumer.Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msg)
	return nil
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.messages)
}

// TestProduceConsumeRoundTrip verifies a record produced with the producer
// arrives at a group consumer with key and value intact.
func TestProduceConsumeRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	broker := containers.GetManager().GetRedpanda(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	const topic = "vigil.test.roundtrip"
	require.NoError(t, kafka.EnsureTopics(ctx, broker.Brokers, 1, topic))
	// Creating an existing topic again must not fail.
	require.NoError(t, kafka.EnsureTopics(ctx, broker.Brokers, 1, topic))

	prod, err := producer.New(producer.Config{Brokers: broker.Brokers})
	require.NoError(t, err)
	defer prod.Close()

	require.NoError(t, prod.Produce(ctx, topic, []byte("pay-1"), []byte(`{"hello":"world"}`)))

	cons, err := consumer.New(consumer.Config{
		Brokers: broker.Brokers,
		Topics:  []string{topic},
		Group:   "vigil-test-group",
	}, logger.New())
	require.NoError(t, err)
	defer cons.Close()

	handler := &recordingHandler{}
	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- cons.Run(runCtx, handler) }()

	require.Eventually(t, func() bool { return handler.count() >= 1 }, 30*time.Second, 100*time.Millisecond)
	stop()
	<-done

	msg := handler.messages[0]
	require.Equal(t, topic, msg.Topic)
	require.Equal(t, "pay-1", string(msg.Key))
	require.JSONEq(t, `{"hello":"world"}`, string(msg.Value))
}
