package fallback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "sulfurwatch/pkg/platform/audit"
	"sulfurwatch/pkg/platform/audit/store/memory"
	"sulfurwatch/pkg/platform/circuit"
)

// flakySink fails while down is set and records successful writes otherwise.
type flakySink struct {
	down  bool
	calls int
	store *memory.InMemoryStore
}

func (f *flakySink) Write(ctx context.Context, event audit.Event) error {
	f.calls++
	if f.down {
		return errors.New("broker unreachable")
	}
	return f.store.Write(ctx, event)
}

func event(vesselID string) audit.Event {
	return audit.Event{Type: audit.EventReadingRecorded, VesselID: vesselID, Timestamp: time.Unix(0, 0).UTC()}
}

func TestSinkRoutesAroundFailingPrimary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	primary := &flakySink{store: memory.NewInMemoryStore()}
	secondary := memory.NewInMemoryStore()
	breaker := circuit.New("kafka", circuit.WithFailureThreshold(2))
	sink := New(primary, secondary, breaker,
		WithProbeInterval(time.Minute),
		WithClock(func() time.Time { return now }),
	)

	require.NoError(t, sink.Write(ctx, event("IMO1")))

	primary.down = true
	// first failure is below the threshold and surfaces to the caller
	assert.Error(t, sink.Write(ctx, event("IMO2")))
	// second failure opens the breaker and lands on the fallback
	require.NoError(t, sink.Write(ctx, event("IMO3")))
	assert.True(t, breaker.IsOpen())

	callsBefore := primary.calls
	require.NoError(t, sink.Write(ctx, event("IMO4")))
	assert.Equal(t, callsBefore, primary.calls, "open breaker skips primary until the probe is due")

	primary.down = false
	now = now.Add(2 * time.Minute)
	require.NoError(t, sink.Write(ctx, event("IMO5")))
	assert.False(t, breaker.IsOpen())

	onPrimary, err := primary.store.ListAll(ctx)
	require.NoError(t, err)
	onSecondary, err := secondary.ListAll(ctx)
	require.NoError(t, err)

	ids := func(events []audit.Event) []string {
		out := make([]string, 0, len(events))
		for _, e := range events {
			out = append(out, e.VesselID)
		}
		return out
	}
	assert.Equal(t, []string{"IMO1", "IMO5"}, ids(onPrimary))
	assert.Equal(t, []string{"IMO3", "IMO4"}, ids(onSecondary))
}

func TestSinkFailedProbeStaysOnFallback(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	primary := &flakySink{down: true, store: memory.NewInMemoryStore()}
	secondary := memory.NewInMemoryStore()
	breaker := circuit.New("kafka", circuit.WithFailureThreshold(1))
	sink := New(primary, secondary, breaker,
		WithProbeInterval(time.Minute),
		WithClock(func() time.Time { return now }),
	)

	require.NoError(t, sink.Write(ctx, event("IMO1")))
	now = now.Add(time.Minute)
	require.NoError(t, sink.Write(ctx, event("IMO2")))

	assert.Equal(t, 2, primary.calls)
	assert.True(t, breaker.IsOpen())
	stored, err := secondary.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}
