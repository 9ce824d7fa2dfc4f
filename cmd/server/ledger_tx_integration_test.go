//go:build integration

package main

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"sulfurwatch/internal/admin"
	emissionservice "sulfurwatch/internal/emission/service"
	emissionstore "sulfurwatch/internal/emission/store"
	notifiermodels "sulfurwatch/internal/notifier/models"
	notifierservice "sulfurwatch/internal/notifier/service"
	alertstore "sulfurwatch/internal/notifier/store/alert"
	portstatestore "sulfurwatch/internal/notifier/store/portstate"
	vesselservice "sulfurwatch/internal/vessel/service"
	vesselstore "sulfurwatch/internal/vessel/store"
	dErrors "sulfurwatch/pkg/domain-errors"
	txcontext "sulfurwatch/pkg/platform/tx"
	"sulfurwatch/pkg/testutil/containers"
)

type LedgerPostgresTxSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	tx       *ledgerPostgresTx
	vessels  *vesselservice.Service
	notifier *notifierservice.Service
	readings *emissionstore.PostgresStore
	adminCtx context.Context
}

func TestLedgerPostgresTxSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(LedgerPostgresTxSuite))
}

func (s *LedgerPostgresTxSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	db := s.postgres.DB
	gate := admin.NewGate("admin")
	s.adminCtx = gate.AsAdmin(context.Background())
	s.tx = newLedgerPostgresTx(db, 0)
	s.vessels = vesselservice.New(vesselstore.NewPostgres(db), gate)
	s.notifier = notifierservice.New(alertstore.NewPostgres(db), portstatestore.NewPostgres(db), gate)
	s.readings = emissionstore.NewPostgres(db)
}

func (s *LedgerPostgresTxSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background()))
	_, err := s.vessels.Register(s.adminCtx, "IMO9", "Blue Line", "LR")
	s.Require().NoError(err)
	_, err = s.notifier.SetPortState(s.adminCtx, "Rotterdam", "NL")
	s.Require().NoError(err)
}

func (s *LedgerPostgresTxSuite) ledger(notifier emissionservice.Notifier) *emissionservice.Service {
	return emissionservice.New(s.vessels, notifier, s.readings, s.tx)
}

func (s *LedgerPostgresTxSuite) TestNonCompliantReadingCommitsAlert() {
	ctx := context.Background()
	r, err := s.ledger(s.notifier).RecordEmission(ctx, "IMO9", 150, "Rotterdam", true)
	s.Require().NoError(err)
	s.False(r.IsCompliant)

	alerts, err := s.notifier.ListNotifications(ctx)
	s.Require().NoError(err)
	s.Require().Len(alerts, 1)
	s.Equal("IMO9", alerts[0].VesselID)
	s.Equal("LR", alerts[0].FlagState)
	s.Equal("NL", alerts[0].PortState)
	s.Equal("Sulfur content exceeds ECA limit", alerts[0].Message)
}

func (s *LedgerPostgresTxSuite) TestAlertFailureRollsBackReading() {
	ctx := context.Background()
	_, err := s.ledger(failingNotifier{s.notifier}).RecordEmission(ctx, "IMO9", 600, "Rotterdam", false)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeAlertWriteFailed))

	history, err := s.readings.ListByVessel(ctx, "IMO9")
	s.Require().NoError(err)
	s.Empty(history)
}

func (s *LedgerPostgresTxSuite) TestHooksRunOnlyAfterCommit() {
	ctx := context.Background()
	ran := false
	err := s.tx.RunInTx(ctx, "IMO9", func(ctx context.Context) error {
		_, ok := txcontext.From(ctx)
		s.True(ok)
		txcontext.AfterCommit(ctx, func() { ran = true })
		s.False(ran)
		return nil
	})
	s.Require().NoError(err)
	s.True(ran)

	ran = false
	err = s.tx.RunInTx(ctx, "IMO9", func(ctx context.Context) error {
		txcontext.AfterCommit(ctx, func() { ran = true })
		return errors.New("abort")
	})
	s.Require().Error(err)
	s.False(ran)
}

func (s *LedgerPostgresTxSuite) TestCancelledContextTimesOut() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.tx.RunInTx(ctx, "IMO9", func(context.Context) error { return nil })
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
}

func (s *LedgerPostgresTxSuite) TestConcurrentWritesKeepEveryReading() {
	ctx := context.Background()
	ledger := s.ledger(s.notifier)
	const writers = 20

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := ledger.RecordEmission(ctx, "IMO9", uint64(90+i), "Rotterdam", true)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	history, err := ledger.GetHistory(ctx, "IMO9")
	s.Require().NoError(err)
	s.Len(history, writers)

	alerts, err := s.notifier.ListForVessels(ctx, []string{"IMO9"})
	s.Require().NoError(err)
	// readings 101..109 exceed the ECA limit
	s.Len(alerts, 9)
}

type failingNotifier struct {
	emissionservice.Notifier
}

func (failingNotifier) ReportNonCompliance(context.Context, string, string, string, string) (*notifiermodels.Alert, error) {
	return nil, errors.New("alert store unavailable")
}
