package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"sulfurwatch/internal/platform/config"
	audit "sulfurwatch/pkg/platform/audit"
)

// Handler receives each decoded event. Satisfied by consumer.Router.
type Handler interface {
	Handle(ctx context.Context, event audit.Event) error
}

// ConsumerOptions selects what to read.
type ConsumerOptions struct {
	// Categories to subscribe to; empty means all.
	Categories []audit.EventCategory
	// Group joins a consumer group with committed offsets. Empty reads
	// without a group.
	Group string
	// FromStart reads each topic from the earliest offset instead of the end.
	FromStart bool
}

// Consumer reads events written by Producer.
type Consumer struct {
	client *kgo.Client
	logger *slog.Logger
}

func NewConsumer(cfg config.KafkaConfig, opts ConsumerOptions, logger *slog.Logger) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	categories := opts.Categories
	if len(categories) == 0 {
		categories = []audit.EventCategory{audit.CategoryCompliance, audit.CategoryLedger, audit.CategoryAdmin}
	}
	topics := make([]string, 0, len(categories))
	for _, c := range categories {
		topics = append(topics, audit.Topic(cfg.TopicPrefix, c))
	}

	offset := kgo.NewOffset().AtEnd()
	if opts.FromStart {
		offset = kgo.NewOffset().AtStart()
	}
	kopts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumeTopics(topics...),
		kgo.ConsumeResetOffset(offset),
		kgo.ClientID("sulfurwatch-consumer"),
	}
	if opts.Group != "" {
		kopts = append(kopts, kgo.ConsumerGroup(opts.Group))
	}

	client, err := kgo.NewClient(kopts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}
	return &Consumer{client: client, logger: logger}, nil
}

// Run polls until ctx is done or h returns an error. Records that do not
// decode as events are logged and skipped.
func (c *Consumer) Run(ctx context.Context, h Handler) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if ctx.Err() != nil || fetches.IsClientClosed() {
			return nil
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			c.warn(ctx, "fetch failed", "topic", topic, "partition", partition, "error", err)
		})

		var handleErr error
		fetches.EachRecord(func(r *kgo.Record) {
			if handleErr != nil {
				return
			}
			var event audit.Event
			if err := json.Unmarshal(r.Value, &event); err != nil {
				c.warn(ctx, "skipping undecodable record",
					"topic", r.Topic, "partition", r.Partition, "offset", r.Offset, "error", err)
				return
			}
			handleErr = h.Handle(ctx, event)
		})
		if handleErr != nil {
			return handleErr
		}
	}
}

// Close leaves the group, if any, and closes the client.
func (c *Consumer) Close() {
	c.client.Close()
}

func (c *Consumer) warn(ctx context.Context, msg string, args ...any) {
	if c.logger != nil {
		c.logger.WarnContext(ctx, msg, args...)
	}
}
