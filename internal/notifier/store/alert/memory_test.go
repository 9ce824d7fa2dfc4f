package alert

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"sulfurwatch/internal/notifier/models"
	"sulfurwatch/internal/storage"
)

type AlertStoreSuite struct {
	suite.Suite
	coord *storage.Coordinator
	store *InMemory
	ctx   context.Context
}

func TestAlertStoreSuite(t *testing.T) {
	suite.Run(t, new(AlertStoreSuite))
}

func (s *AlertStoreSuite) SetupTest() {
	s.coord = storage.NewCoordinator()
	s.store = NewInMemory(s.coord)
	s.ctx = context.Background()
}

func newAlert(vesselID string) *models.Alert {
	return &models.Alert{ID: uuid.New(), Timestamp: time.Now(), VesselID: vesselID, Message: "m"}
}

func (s *AlertStoreSuite) TestAppendOrder() {
	for _, v := range []string{"A", "B", "A", "C"} {
		s.Require().NoError(s.store.Append(s.ctx, newAlert(v)))
	}

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 4)
	s.Equal("C", all[3].VesselID)

	filtered, err := s.store.ListByVessels(s.ctx, []string{"A"})
	s.Require().NoError(err)
	s.Len(filtered, 2)
}

func (s *AlertStoreSuite) TestRolledBackAppendLeavesNoTrace() {
	ctx, batch := s.coord.Begin(s.ctx)
	s.Require().NoError(s.store.Append(ctx, newAlert("A")))
	batch.Rollback()

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}
