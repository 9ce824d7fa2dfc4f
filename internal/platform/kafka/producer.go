// Package kafka publishes audit events to Kafka-compatible brokers.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"sulfurwatch/internal/platform/config"
	audit "sulfurwatch/pkg/platform/audit"
)

const eventTypeHeader = "event_type"

// Producer is an audit.Sink writing one record per event. Records are keyed
// by vessel ID so a vessel's events stay ordered within a partition.
type Producer struct {
	client *kgo.Client
	prefix string
	logger *slog.Logger
}

// NewProducer connects to the configured brokers.
func NewProducer(cfg config.KafkaConfig, logger *slog.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(5*time.Millisecond),
		kgo.ClientID("sulfurwatch"),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Producer{client: client, prefix: cfg.TopicPrefix, logger: logger}, nil
}

// Write produces the event synchronously. The publisher worker calls this off
// the request path, so blocking here never delays a business operation.
func (p *Producer) Write(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	record := &kgo.Record{
		Topic: audit.Topic(p.prefix, event.Category()),
		Key:   []byte(event.VesselID),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: eventTypeHeader, Value: []byte(event.Type)},
		},
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce %s: %w", event.Type, err)
	}
	return nil
}

// EnsureTopics creates one topic per event category, ignoring topics that
// already exist.
func (p *Producer) EnsureTopics(ctx context.Context, partitions int32, replicationFactor int16) error {
	adm := kadm.NewClient(p.client)
	topics := []string{
		audit.Topic(p.prefix, audit.CategoryCompliance),
		audit.Topic(p.prefix, audit.CategoryLedger),
		audit.Topic(p.prefix, audit.CategoryAdmin),
	}
	resp, err := adm.CreateTopics(ctx, partitions, replicationFactor, nil, topics...)
	if err != nil {
		return fmt.Errorf("create topics: %w", err)
	}
	for topic, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", topic, r.Err)
		}
		if r.Err == nil && p.logger != nil {
			p.logger.InfoContext(ctx, "created kafka topic", "topic", topic)
		}
	}
	return nil
}

// Health pings the brokers.
func (p *Producer) Health(ctx context.Context) error {
	return p.client.Ping(ctx)
}

// Close flushes buffered records and closes the client.
func (p *Producer) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil && p.logger != nil {
		p.logger.Warn("kafka flush on close failed", "error", err)
	}
	p.client.Close()
}
