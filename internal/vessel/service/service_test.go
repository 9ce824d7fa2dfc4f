package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"sulfurwatch/internal/admin"
	"sulfurwatch/internal/storage"
	"sulfurwatch/internal/vessel/models"
	"sulfurwatch/internal/vessel/store"
	audit "sulfurwatch/pkg/platform/audit"
	"sulfurwatch/pkg/platform/audit/publisher"
	auditmemory "sulfurwatch/pkg/platform/audit/store/memory"
	"sulfurwatch/pkg/testutil"

	dErrors "sulfurwatch/pkg/domain-errors"
)

type VesselServiceSuite struct {
	suite.Suite
	svc    *Service
	events *auditmemory.InMemoryStore
	now    time.Time
}

func TestVesselServiceSuite(t *testing.T) {
	suite.Run(t, new(VesselServiceSuite))
}

func (s *VesselServiceSuite) SetupTest() {
	s.events = auditmemory.NewInMemoryStore()
	s.now = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	s.svc = New(
		store.NewInMemory(storage.NewCoordinator()),
		admin.NewGate("harbour-master"),
		WithEmitter(publisher.NewPublisher(s.events)),
		WithClock(func() time.Time { return s.now }),
	)
}

func (s *VesselServiceSuite) adminCtx() context.Context {
	return testutil.ActorContext("harbour-master")
}

func (s *VesselServiceSuite) TestRegister() {
	s.Run("admin registers a vessel", func() {
		v, err := s.svc.Register(s.adminCtx(), "IMO1234567", "Acme", "PA")
		s.Require().NoError(err)
		s.Equal("IMO1234567", v.ID)

		registered, err := s.svc.IsRegistered(context.Background(), "IMO1234567")
		s.Require().NoError(err)
		s.True(registered)

		flag, err := s.svc.GetFlagState(context.Background(), "IMO1234567")
		s.Require().NoError(err)
		s.Equal("PA", flag)
	})

	s.Run("non-admin caller is unauthorized and nothing is stored", func() {
		_, err := s.svc.Register(testutil.ActorContext("deckhand"), "IMO7", "Acme", "PA")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

		registered, err := s.svc.IsRegistered(context.Background(), "IMO7")
		s.Require().NoError(err)
		s.False(registered)
	})

	s.Run("anonymous caller is unauthorized", func() {
		_, err := s.svc.Register(context.Background(), "IMO8", "Acme", "PA")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("empty vessel id is a validation error", func() {
		_, err := s.svc.Register(s.adminCtx(), "", "Acme", "PA")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("re-registration overwrites owner and flag", func() {
		_, err := s.svc.Register(s.adminCtx(), "IMO5", "Acme", "PA")
		s.Require().NoError(err)
		_, err = s.svc.Register(s.adminCtx(), "IMO5", "Globex", "LR")
		s.Require().NoError(err)

		flag, err := s.svc.GetFlagState(context.Background(), "IMO5")
		s.Require().NoError(err)
		s.Equal("LR", flag)
	})

	s.Run("padded identifiers are distinct keys", func() {
		_, err := s.svc.Register(s.adminCtx(), " IMO9 ", "Acme", "PA")
		s.Require().NoError(err)
		_, err = s.svc.Register(s.adminCtx(), "IMO9", "Globex", "LR")
		s.Require().NoError(err)

		registered, err := s.svc.IsRegistered(context.Background(), " IMO9 ")
		s.Require().NoError(err)
		s.True(registered)

		padded, err := s.svc.GetFlagState(context.Background(), " IMO9 ")
		s.Require().NoError(err)
		s.Equal("PA", padded)

		plain, err := s.svc.GetFlagState(context.Background(), "IMO9")
		s.Require().NoError(err)
		s.Equal("LR", plain)
	})
}

func (s *VesselServiceSuite) TestLookupsOnUnknownVessel() {
	registered, err := s.svc.IsRegistered(context.Background(), "UNKNOWN123")
	s.Require().NoError(err)
	s.False(registered)

	flag, err := s.svc.GetFlagState(context.Background(), "UNKNOWN123")
	s.Require().NoError(err)
	s.Empty(flag)

	status, err := s.svc.Status(context.Background(), "UNKNOWN123")
	s.Require().NoError(err)
	s.False(status.Registered)
	s.Empty(status.FlagState)
}

func (s *VesselServiceSuite) TestEmitsRegistrationEvent() {
	_, err := s.svc.Register(s.adminCtx(), "IMO1234567", "Acme", "PA")
	s.Require().NoError(err)

	events, err := s.events.ListByVessel(context.Background(), "IMO1234567")
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.EventVesselRegistered, events[0].Type)
	s.Equal("harbour-master", events[0].ActorID)
	s.Equal("PA", events[0].Fields["flag_state"])
	s.Equal(s.now, events[0].Timestamp)
}

func (s *VesselServiceSuite) TestStoreFailureIsInternal() {
	svc := New(failingStore{}, admin.NewGate("harbour-master"))

	_, err := svc.Register(s.adminCtx(), "IMO1", "Acme", "PA")
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	_, err = svc.IsRegistered(context.Background(), "IMO1")
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

type failingStore struct{}

func (failingStore) Save(context.Context, *models.Vessel) error {
	return errors.New("connection reset")
}

func (failingStore) FindByID(context.Context, string) (*models.Vessel, error) {
	return nil, errors.New("connection reset")
}
