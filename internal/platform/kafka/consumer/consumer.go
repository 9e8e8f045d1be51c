// Package consumer wraps franz-go group consumption behind a small handler
// interface. Offsets are committed after the handler returns, including when
// it returns nil for a message it chose to skip.
package consumer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"
)

// Message is one consumed Kafka record.
type Message struct {
	Topic     string
	Partition int32
	Offset    int64
	Key       []byte
	Value     []byte
	Timestamp time.Time
}

// Handler processes one message. Returning an error leaves the offset
// uncommitted so the message is redelivered; handlers that want to drop a
// malformed message log it and return nil.
type Handler interface {
	Handle(ctx context.Context, msg *Message) error
}

// Config holds consumer settings. Workers bounds how many partitions are
// handled concurrently per poll; zero means one.
type Config struct {
	Brokers []string
	Topics  []string
	Group   string
	Workers int
}

// Consumer runs a poll loop against a consumer group.
type Consumer struct {
	client  *kgo.Client
	logger  *slog.Logger
	workers int
}

func New(cfg Config, logger *slog.Logger) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if cfg.Group == "" {
		return nil, fmt.Errorf("consumer group is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumerGroup(cfg.Group),
		kgo.ConsumeTopics(cfg.Topics...),
		kgo.DisableAutoCommit(),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Consumer{client: client, logger: logger, workers: workers}, nil
}

// Run polls until the context is cancelled. Partitions within a poll are
// handled concurrently up to the worker bound; records within a partition
// stay in order. It returns the context error on shutdown and any fatal
// client error otherwise.
func (c *Consumer) Run(ctx context.Context, handler Handler) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if err := ctx.Err(); err != nil {
			return err
		}
		if errs := fetches.Errors(); len(errs) > 0 {
			for _, fe := range errs {
				c.logger.ErrorContext(ctx, "kafka fetch error",
					"topic", fe.Topic,
					"partition", fe.Partition,
					"error", fe.Err,
				)
			}
		}

		var (
			mu          sync.Mutex
			committable []*kgo.Record
		)
		g := new(errgroup.Group)
		g.SetLimit(c.workers)
		fetches.EachPartition(func(p kgo.FetchTopicPartition) {
			recs := p.Records
			if len(recs) == 0 {
				return
			}
			g.Go(func() error {
				handled := c.handlePartition(ctx, handler, recs)
				if len(handled) > 0 {
					mu.Lock()
					committable = append(committable, handled...)
					mu.Unlock()
				}
				return nil
			})
		})
		_ = g.Wait()

		if len(committable) > 0 {
			if err := c.client.CommitRecords(ctx, committable...); err != nil {
				c.logger.ErrorContext(ctx, "offset commit failed", "error", err)
			}
		}
	}
}

// handlePartition dispatches one partition's records in order, stopping at
// the first handler error so the failed offset and everything after it are
// redelivered.
func (c *Consumer) handlePartition(ctx context.Context, handler Handler, recs []*kgo.Record) []*kgo.Record {
	handled := make([]*kgo.Record, 0, len(recs))
	for _, rec := range recs {
		msg := &Message{
			Topic:     rec.Topic,
			Partition: rec.Partition,
			Offset:    rec.Offset,
			Key:       rec.Key,
			Value:     rec.Value,
			Timestamp: rec.Timestamp,
		}
		if err := handler.Handle(ctx, msg); err != nil {
			c.logger.ErrorContext(ctx, "message handling failed, offset not committed",
				"topic", rec.Topic,
				"partition", rec.Partition,
				"offset", rec.Offset,
				"error", err,
			)
			return handled
		}
		handled = append(handled, rec)
	}
	return handled
}

func (c *Consumer) Close() {
	c.client.Close()
}
