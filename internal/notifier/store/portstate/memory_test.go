package portstate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"sulfurwatch/internal/notifier/models"
	"sulfurwatch/internal/storage"
	"sulfurwatch/pkg/platform/sentinel"
)

type PortStateStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestPortStateStoreSuite(t *testing.T) {
	suite.Run(t, new(PortStateStoreSuite))
}

func (s *PortStateStoreSuite) SetupTest() {
	s.store = NewInMemory(storage.NewCoordinator())
	s.ctx = context.Background()
}

func (s *PortStateStoreSuite) TestSetGetList() {
	s.Require().NoError(s.store.Set(s.ctx, &models.PortState{Location: "Baltic Sea", PortState: "EU"}))
	s.Require().NoError(s.store.Set(s.ctx, &models.PortState{Location: "Adriatic", PortState: "EU"}))
	s.Require().NoError(s.store.Set(s.ctx, &models.PortState{Location: "Baltic Sea", PortState: "HELCOM"}))

	ps, err := s.store.Get(s.ctx, "Baltic Sea")
	s.Require().NoError(err)
	s.Equal("HELCOM", ps.PortState)

	_, err = s.store.Get(s.ctx, "Nowhere")
	s.ErrorIs(err, sentinel.ErrNotFound)

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Adriatic", all[0].Location)
}
