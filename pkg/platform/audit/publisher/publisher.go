// Package publisher delivers audit events to a sink without blocking the
// business operation that produced them.
//
// In sync mode (the default) Emit writes straight to the sink. With
// WithAsyncBuffer, events are queued on a bounded channel and a single worker
// drains them in order; a full buffer drops the event rather than block.
package publisher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	audit "sulfurwatch/pkg/platform/audit"
	"sulfurwatch/pkg/platform/audit/worker"
)

// Metrics receives delivery counters. Satisfied by platform metrics.
type Metrics interface {
	IncEventsPublished(eventType string)
	IncEventsDropped(eventType string)
	IncEventsFailed()
}

// Publisher implements audit.Emitter.
type Publisher struct {
	sink    audit.Sink
	logger  *slog.Logger
	metrics Metrics
	buffer  int

	inbox  chan audit.Event
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer enables asynchronous delivery with a bounded queue.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.buffer = size
	}
}

// WithLogger sets a logger for delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// NewPublisher creates a publisher over sink.
func NewPublisher(sink audit.Sink, opts ...Option) *Publisher {
	p := &Publisher{sink: sink}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer > 0 {
		p.inbox = make(chan audit.Event, p.buffer)
		p.done = make(chan struct{})
		w := worker.NewWorker(sink, p.inbox, p.logger, p.incFailed)
		go func() {
			defer close(p.done)
			w.Run(context.Background())
		}()
	}
	return p
}

// Emit hands the event to the sink. Timestamp is set when missing.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if p.inbox == nil {
		if err := p.sink.Write(ctx, event); err != nil {
			p.incFailed()
			return err
		}
		p.incPublished(event)
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.incDropped(event)
		return nil
	}
	select {
	case p.inbox <- event:
		p.incPublished(event)
	default:
		p.incDropped(event)
		if p.logger != nil {
			p.logger.WarnContext(ctx, "event buffer full, dropping event",
				"type", event.Type,
				"vessel_id", event.VesselID,
			)
		}
	}
	return nil
}

// Close stops accepting events and waits for queued ones to drain.
func (p *Publisher) Close() error {
	if p.inbox == nil {
		return nil
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.inbox)
	p.mu.Unlock()
	<-p.done
	return nil
}

func (p *Publisher) incPublished(event audit.Event) {
	if p.metrics != nil {
		p.metrics.IncEventsPublished(string(event.Type))
	}
}

func (p *Publisher) incDropped(event audit.Event) {
	if p.metrics != nil {
		p.metrics.IncEventsDropped(string(event.Type))
	}
}

func (p *Publisher) incFailed() {
	if p.metrics != nil {
		p.metrics.IncEventsFailed()
	}
}
