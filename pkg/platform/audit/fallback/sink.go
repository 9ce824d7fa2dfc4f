// Package fallback routes audit events to a secondary sink while the
// primary one is failing.
package fallback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	audit "sulfurwatch/pkg/platform/audit"
	"sulfurwatch/pkg/platform/circuit"
)

const defaultProbeInterval = 30 * time.Second

// Sink writes to primary until its breaker opens, then to secondary. While
// open, one event per probe interval is tried against the primary again.
type Sink struct {
	primary   audit.Sink
	secondary audit.Sink
	breaker   *circuit.Breaker
	logger    *slog.Logger
	probe     time.Duration
	now       func() time.Time

	mu        sync.Mutex
	lastProbe time.Time
}

type Option func(*Sink)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) {
		s.logger = logger
	}
}

// WithProbeInterval sets how often an open breaker retries the primary.
func WithProbeInterval(d time.Duration) Option {
	return func(s *Sink) {
		if d > 0 {
			s.probe = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Sink) {
		s.now = now
	}
}

func New(primary, secondary audit.Sink, breaker *circuit.Breaker, opts ...Option) *Sink {
	s := &Sink{
		primary:   primary,
		secondary: secondary,
		breaker:   breaker,
		probe:     defaultProbeInterval,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sink) Write(ctx context.Context, event audit.Event) error {
	if s.breaker.IsOpen() && !s.probeDue() {
		return s.secondary.Write(ctx, event)
	}

	if err := s.primary.Write(ctx, event); err != nil {
		useFallback, change := s.breaker.RecordFailure()
		if change.Opened {
			s.mu.Lock()
			s.lastProbe = s.now()
			s.mu.Unlock()
			s.warn(ctx, "event sink circuit opened, using fallback", err)
		}
		if useFallback {
			return s.secondary.Write(ctx, event)
		}
		return err
	}

	if _, change := s.breaker.RecordSuccess(); change.Closed && s.logger != nil {
		s.logger.InfoContext(ctx, "event sink circuit closed", "breaker", s.breaker.Name())
	}
	return nil
}

func (s *Sink) probeDue() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastProbe) < s.probe {
		return false
	}
	s.lastProbe = now
	return true
}

func (s *Sink) warn(ctx context.Context, msg string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.WarnContext(ctx, msg, "breaker", s.breaker.Name(), "error", err)
}
