// Package service implements the vessel directory.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"sulfurwatch/internal/admin"
	"sulfurwatch/internal/platform/metrics"
	"sulfurwatch/internal/vessel/models"
	audit "sulfurwatch/pkg/platform/audit"
	"sulfurwatch/pkg/platform/sentinel"
	txcontext "sulfurwatch/pkg/platform/tx"

	dErrors "sulfurwatch/pkg/domain-errors"
)

type Store interface {
	Save(ctx context.Context, v *models.Vessel) error
	FindByID(ctx context.Context, id string) (*models.Vessel, error)
}

// Service is the vessel directory. Registration is admin-only; lookups are
// open to every caller.
type Service struct {
	vessels Store
	authz   admin.Authorizer
	events  audit.Emitter
	logger  *slog.Logger
	metrics *metrics.Metrics
	clock   func() time.Time
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

func New(vessels Store, authz admin.Authorizer, opts ...Option) *Service {
	s := &Service{vessels: vessels, authz: authz, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register inserts or overwrites the record for vesselID.
func (s *Service) Register(ctx context.Context, vesselID, owner, flagState string) (*models.Vessel, error) {
	if err := s.authz.Authorize(ctx); err != nil {
		return nil, err
	}

	v, err := models.NewVessel(vesselID, owner, flagState, s.clock())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		return nil, err
	}

	if err := s.vessels.Save(ctx, v); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register vessel")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "vessel registered",
			"vessel_id", v.ID,
			"flag_state", v.FlagState,
		)
	}
	if s.metrics != nil {
		s.metrics.IncAdminMutation("register_vessel")
	}
	s.emit(ctx, audit.NewEvent(ctx, audit.EventVesselRegistered, v.ID, v.UpdatedAt, map[string]any{
		"owner":      v.Owner,
		"flag_state": v.FlagState,
	}))
	return v, nil
}

// IsRegistered reports whether a record exists for vesselID.
func (s *Service) IsRegistered(ctx context.Context, vesselID string) (bool, error) {
	_, err := s.lookup(ctx, vesselID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetFlagState returns the stored flag state, or "" for unknown vessels.
func (s *Service) GetFlagState(ctx context.Context, vesselID string) (string, error) {
	v, err := s.lookup(ctx, vesselID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return v.FlagState, nil
}

// Status describes the registration of vesselID without failing for unknown vessels.
func (s *Service) Status(ctx context.Context, vesselID string) (*models.Status, error) {
	status := &models.Status{VesselID: vesselID}
	v, err := s.lookup(ctx, vesselID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return status, nil
		}
		return nil, err
	}
	status.Registered = true
	status.Owner = v.Owner
	status.FlagState = v.FlagState
	return status, nil
}

func (s *Service) lookup(ctx context.Context, vesselID string) (*models.Vessel, error) {
	if vesselID == "" {
		return nil, sentinel.ErrNotFound
	}
	v, err := s.vessels.FindByID(ctx, vesselID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load vessel")
	}
	return v, nil
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
