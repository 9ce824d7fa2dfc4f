// Package service implements the emission ledger: it records readings,
// evaluates them against the sulfur limits and raises an alert for every
// non-compliant reading in the same transaction.
package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"sulfurwatch/internal/emission/models"
	notifiermodels "sulfurwatch/internal/notifier/models"
	"sulfurwatch/internal/platform/metrics"
	audit "sulfurwatch/pkg/platform/audit"
	txcontext "sulfurwatch/pkg/platform/tx"

	dErrors "sulfurwatch/pkg/domain-errors"
)

// VesselDirectory answers registration lookups.
type VesselDirectory interface {
	IsRegistered(ctx context.Context, vesselID string) (bool, error)
	GetFlagState(ctx context.Context, vesselID string) (string, error)
}

// Notifier provides port states and accepts alerts.
type Notifier interface {
	GetPortState(ctx context.Context, location string) (string, error)
	ReportNonCompliance(ctx context.Context, vesselID, message, flagState, portState string) (*notifiermodels.Alert, error)
}

type ReadingStore interface {
	Append(ctx context.Context, r *models.Reading) error
	ListByVessel(ctx context.Context, vesselID string) ([]*models.Reading, error)
}

type Service struct {
	vessels  VesselDirectory
	notifier Notifier
	readings ReadingStore
	tx       LedgerTx
	events   audit.Emitter
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	clock    func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithEmitter(events audit.Emitter) Option {
	return func(s *Service) {
		s.events = events
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func New(vessels VesselDirectory, notifier Notifier, readings ReadingStore, tx LedgerTx, opts ...Option) *Service {
	s := &Service{
		vessels:  vessels,
		notifier: notifier,
		readings: readings,
		tx:       tx,
		tracer:   otel.Tracer("sulfurwatch/emission"),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordEmission appends a reading for a registered vessel and, when the
// reading breaches its zone limit, reports an alert carrying the vessel's
// flag state and the position's port state. The reading and its alert commit
// together; if the alert cannot be written neither is kept.
func (s *Service) RecordEmission(ctx context.Context, vesselID string, sulfurContent uint64, position string, isECA bool) (*models.Reading, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "emission.RecordEmission",
		trace.WithAttributes(
			attribute.String("vessel_id", vesselID),
			attribute.Bool("is_eca", isECA),
			attribute.Int64("sulfur_content", int64(min(sulfurContent, math.MaxInt64))),
		),
	)
	defer span.End()

	reading, err := s.record(ctx, vesselID, sulfurContent, position, isECA)
	if s.metrics != nil {
		s.metrics.ObserveRecordDuration(time.Since(start))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		if s.metrics != nil {
			s.metrics.IncRecordFailure(string(dErrors.CodeOf(err)))
		}
		s.logRecordFailure(ctx, vesselID, err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("is_compliant", reading.IsCompliant))
	if s.metrics != nil {
		s.metrics.IncReadingRecorded(reading.IsCompliant)
	}
	return reading, nil
}

func (s *Service) record(ctx context.Context, vesselID string, sulfurContent uint64, position string, isECA bool) (*models.Reading, error) {
	if sulfurContent > math.MaxInt64 {
		return nil, dErrors.New(dErrors.CodeValidation, "sulfur_content is out of range")
	}

	var reading *models.Reading
	err := s.tx.RunInTx(ctx, vesselID, func(ctx context.Context) error {
		registered, err := s.vessels.IsRegistered(ctx, vesselID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check vessel registration")
		}
		if !registered {
			return dErrors.New(dErrors.CodeVesselNotRegistered, "vessel is not registered")
		}

		r := models.NewReading(uuid.New(), vesselID, sulfurContent, position, isECA, s.clock())
		if err := s.readings.Append(ctx, r); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append reading")
		}
		s.emit(ctx, audit.NewEvent(ctx, audit.EventReadingRecorded, vesselID, r.Timestamp, map[string]any{
			"reading_id":     r.ID.String(),
			"sulfur_content": r.SulfurContent,
			"position":       r.Position,
			"is_eca":         r.IsECA,
			"is_compliant":   r.IsCompliant,
		}))

		if !r.IsCompliant {
			if err := s.raiseAlert(ctx, r); err != nil {
				return err
			}
		}
		reading = r
		return nil
	})
	if err != nil {
		var coded *dErrors.Error
		if !errors.As(err, &coded) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record emission")
		}
		return nil, err
	}
	return reading, nil
}

// raiseAlert snapshots flag and port state and reports the breach. Any
// failure here aborts the enclosing transaction.
func (s *Service) raiseAlert(ctx context.Context, r *models.Reading) error {
	flagState, portState, err := s.snapshot(ctx, r.VesselID, r.Position)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeAlertWriteFailed, "failed to snapshot alert context")
	}
	alert, err := s.notifier.ReportNonCompliance(ctx, r.VesselID, models.AlertMessage(r.IsECA), flagState, portState)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeAlertWriteFailed, "failed to record compliance alert")
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "non-compliant reading",
			"vessel_id", r.VesselID,
			"reading_id", r.ID,
			"alert_id", alert.ID,
			"sulfur_content", r.SulfurContent,
			"limit", models.LimitFor(r.IsECA),
		)
	}
	return nil
}

// snapshot fetches flag and port state in parallel. A *sql.Tx serves one
// query at a time, so the lookups read committed state through the pool.
func (s *Service) snapshot(ctx context.Context, vesselID, position string) (string, string, error) {
	var flagState, portState string
	g, gctx := errgroup.WithContext(txcontext.Without(ctx))
	g.Go(func() error {
		var err error
		flagState, err = s.vessels.GetFlagState(gctx, vesselID)
		return err
	})
	g.Go(func() error {
		var err error
		portState, err = s.notifier.GetPortState(gctx, position)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return flagState, portState, nil
}

// GetHistory returns the vessel's readings oldest first; unknown vessels
// yield an empty history.
func (s *Service) GetHistory(ctx context.Context, vesselID string) ([]*models.Reading, error) {
	readings, err := s.readings.ListByVessel(ctx, vesselID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load emission history")
	}
	if readings == nil {
		readings = []*models.Reading{}
	}
	return readings, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.events == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	txcontext.AfterCommit(ctx, func() {
		if err := s.events.Emit(ctx, event); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "event not accepted",
				"type", event.Type,
				"vessel_id", event.VesselID,
				"error", err,
			)
		}
	})
}

func (s *Service) logRecordFailure(ctx context.Context, vesselID string, err error) {
	if s.logger == nil {
		return
	}
	code := dErrors.CodeOf(err)
	level := slog.LevelWarn
	if code == dErrors.CodeInternal || code == dErrors.CodeAlertWriteFailed {
		level = slog.LevelError
	}
	s.logger.Log(ctx, level, "record emission failed",
		"vessel_id", vesselID,
		"code", code,
		"error", err,
	)
}
