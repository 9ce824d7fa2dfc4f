// Package service implements the compliance notifier: the port-state table
// and the append-only alert log.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"sulfurwatch/internal/admin"
	"sulfurwatch/internal/notifier/models"
	"sulfurwatch/internal/platform/metrics"
	audit "sulfurwatch/pkg/platform/audit"
	"sulfurwatch/pkg/platform/sentinel"
	txcontext "sulfurwatch/pkg/platform/tx"

	dErrors "sulfurwatch/pkg/domain-errors"
)

type AlertStore interface {
	Append(ctx context.Context, a *models.Alert) error
	List(ctx context.Context) ([]*models.Alert, error)
	ListByVessels(ctx context.Context, vesselIDs []string) ([]*models.Alert, error)
}

type PortStateStore interface {
	Set(ctx context.Context, ps *models.PortState) error
	Get(ctx context.Context, location string) (*models.PortState, error)
	List(ctx context.Context) ([]*models.PortState, error)
}

type Service struct {
	alerts     AlertStore
	portStates PortStateStore
	authz      admin.Authorizer
	events     audit.Emitter
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
	clock      func() time.Time
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

func New(alerts AlertStore, portStates PortStateStore, authz admin.Authorizer, opts ...Option) *Service {
	s := &Service{
		alerts:     alerts,
		portStates: portStates,
		authz:      authz,
		tracer:     otel.Tracer("sulfurwatch/notifier"),
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetPortState assigns label to location, replacing any previous label.
func (s *Service) SetPortState(ctx context.Context, location, label string) (*models.PortState, error) {
	if err := s.authz.Authorize(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(location) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "location is required")
	}

	ps := &models.PortState{Location: location, PortState: label, UpdatedAt: s.clock()}
	if err := s.portStates.Set(ctx, ps); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to set port state")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "port state set",
			"location", location,
			"port_state", label,
		)
	}
	if s.metrics != nil {
		s.metrics.IncAdminMutation("set_port_state")
	}
	s.emit(ctx, audit.NewEvent(ctx, audit.EventPortStateSet, "", ps.UpdatedAt, map[string]any{
		"location":   location,
		"port_state": label,
	}))
	return ps, nil
}

// GetPortState returns the label for location, or "" when none is assigned.
func (s *Service) GetPortState(ctx context.Context, location string) (string, error) {
	ps, err := s.portStates.Get(ctx, location)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", nil
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load port state")
	}
	return ps.PortState, nil
}

// ListPortStates returns every assignment ordered by location.
func (s *Service) ListPortStates(ctx context.Context) ([]*models.PortState, error) {
	states, err := s.portStates.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list port states")
	}
	return states, nil
}

// ReportNonCompliance appends an alert with a fresh ID and timestamp. Any
// caller may report, and the vessel is not checked against the directory.
func (s *Service) ReportNonCompliance(ctx context.Context, vesselID, message, flagState, portState string) (*models.Alert, error) {
	ctx, span := s.tracer.Start(ctx, "notifier.ReportNonCompliance",
		trace.WithAttributes(attribute.String("vessel_id", vesselID)),
	)
	defer span.End()

	alert := &models.Alert{
		ID:        uuid.New(),
		Timestamp: s.clock(),
		VesselID:  vesselID,
		Message:   message,
		FlagState: flagState,
		PortState: portState,
	}
	if err := s.alerts.Append(ctx, alert); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "append alert")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to append alert")
	}
	span.SetAttributes(attribute.String("alert_id", alert.ID.String()))

	if s.metrics != nil {
		txcontext.AfterCommit(ctx, s.metrics.IncAlertReported)
	}
	s.emit(ctx, audit.NewEvent(ctx, audit.EventNonComplianceReported, vesselID, alert.Timestamp, map[string]any{
		"alert_id":   alert.ID.String(),
		"message":    message,
		"flag_state": flagState,
		"port_state": portState,
	}))
	return alert, nil
}

// ListNotifications returns every alert in append order.
func (s *Service) ListNotifications(ctx context.Context) ([]*models.Alert, error) {
	alerts, err := s.alerts.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list alerts")
	}
	return alerts, nil
}

// ListForVessels returns alerts raised against any of vesselIDs, in append order.
func (s *Service) ListForVessels(ctx context.Context, vesselIDs []string) ([]*models.Alert, error) {
	if len(vesselIDs) == 0 {
		return []*models.Alert{}, nil
	}
	alerts, err := s.alerts.ListByVessels(ctx, vesselIDs)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list alerts")
	}
	return alerts, nil
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
