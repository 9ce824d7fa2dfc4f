//go:build integration

package portstate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"sulfurwatch/internal/notifier/models"
	"sulfurwatch/internal/notifier/store/portstate"
	"sulfurwatch/pkg/platform/sentinel"
	"sulfurwatch/pkg/testutil/containers"
)

type RedisPortStateSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *portstate.RedisStore
}

func TestRedisPortStateSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisPortStateSuite))
}

func (s *RedisPortStateSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = portstate.NewRedis(s.redis.Client, portstate.WithHashKey("test:port_states"))
}

func (s *RedisPortStateSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisPortStateSuite) TestRoundTrip() {
	ctx := context.Background()
	at := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Set(ctx, &models.PortState{Location: "Baltic Sea", PortState: "EU", UpdatedAt: at}))
	s.Require().NoError(s.store.Set(ctx, &models.PortState{Location: "Adriatic", PortState: "EU", UpdatedAt: at}))

	ps, err := s.store.Get(ctx, "Baltic Sea")
	s.Require().NoError(err)
	s.Equal("EU", ps.PortState)
	s.True(ps.UpdatedAt.Equal(at))

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Adriatic", all[0].Location)
}

func (s *RedisPortStateSuite) TestMissingLocation() {
	_, err := s.store.Get(context.Background(), "Nowhere")
	s.ErrorIs(err, sentinel.ErrNotFound)
}
