//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"sulfurwatch/internal/emission/models"
	"sulfurwatch/internal/emission/store"
	"sulfurwatch/pkg/testutil/containers"
)

type PostgresReadingSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresReadingSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresReadingSuite))
}

func (s *PostgresReadingSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresReadingSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "emission_readings"))
}

func (s *PostgresReadingSuite) TestHistoryInInsertionOrder() {
	ctx := context.Background()
	// later readings carry earlier timestamps; order must still follow insertion
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, sulfur := range []uint64{300, 50, 120} {
		r := models.NewReading(uuid.New(), "IMO1", sulfur, "North Sea", true, base.Add(-time.Duration(i)*time.Minute))
		s.Require().NoError(s.store.Append(ctx, r))
	}

	history, err := s.store.ListByVessel(ctx, "IMO1")
	s.Require().NoError(err)
	s.Require().Len(history, 3)
	s.Equal(uint64(300), history[0].SulfurContent)
	s.Equal(uint64(50), history[1].SulfurContent)
	s.Equal(uint64(120), history[2].SulfurContent)
	s.False(history[0].IsCompliant)
	s.True(history[1].IsCompliant)

	empty, err := s.store.ListByVessel(ctx, "UNKNOWN123")
	s.Require().NoError(err)
	s.Empty(empty)
}
