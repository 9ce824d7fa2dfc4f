package consumer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "sulfurwatch/pkg/platform/audit"
)

type recorder struct {
	events []audit.Event
	err    error
}

func (r *recorder) Handle(_ context.Context, event audit.Event) error {
	r.events = append(r.events, event)
	return r.err
}

func TestRouterDispatchesByCategory(t *testing.T) {
	ctx := context.Background()
	compliance := &recorder{}
	ledger := &recorder{}
	fallback := &recorder{}

	router := NewRouter(nil, fallback)
	router.Register(audit.CategoryCompliance, compliance)
	router.Register(audit.CategoryLedger, ledger)

	require.NoError(t, router.Handle(ctx, audit.Event{Type: audit.EventNonComplianceReported, VesselID: "IMO9"}))
	require.NoError(t, router.Handle(ctx, audit.Event{Type: audit.EventReadingRecorded, VesselID: "IMO9"}))
	require.NoError(t, router.Handle(ctx, audit.Event{Type: audit.EventVesselRegistered, VesselID: "IMO9"}))

	require.Len(t, compliance.events, 1)
	assert.Equal(t, audit.EventNonComplianceReported, compliance.events[0].Type)
	require.Len(t, ledger.events, 1)
	require.Len(t, fallback.events, 1)
	assert.Equal(t, audit.EventVesselRegistered, fallback.events[0].Type)
}

func TestRouterSkipsUnhandledWithoutFallback(t *testing.T) {
	router := NewRouter(nil, nil)
	assert.NoError(t, router.Handle(context.Background(), audit.Event{Type: audit.EventPortStateSet}))
}

func TestRouterPropagatesHandlerError(t *testing.T) {
	boom := errors.New("write failed")
	router := NewRouter(nil, nil)
	router.Register(audit.CategoryAdmin, HandlerFunc(func(context.Context, audit.Event) error { return boom }))

	err := router.Handle(context.Background(), audit.Event{Type: audit.EventPortStateSet})
	assert.ErrorIs(t, err, boom)
}
