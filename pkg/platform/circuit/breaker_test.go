package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failTimes(b *Breaker, n int) (useFallback bool, change StateChange) {
	for i := 0; i < n; i++ {
		useFallback, change = b.RecordFailure()
	}
	return useFallback, change
}

func succeedTimes(b *Breaker, n int) (usePrimary bool, change StateChange) {
	for i := 0; i < n; i++ {
		usePrimary, change = b.RecordSuccess()
	}
	return usePrimary, change
}

func TestNewBreakerStartsClosed(t *testing.T) {
	b := New("kafka")
	assert.Equal(t, "kafka", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.False(t, b.IsOpen())
}

func TestBreakerOpening(t *testing.T) {
	tests := []struct {
		name         string
		threshold    int
		failures     int
		wantOpen     bool
		wantOpenedAt bool
	}{
		{name: "below threshold stays closed", threshold: 3, failures: 2, wantOpen: false},
		{name: "reaching threshold opens", threshold: 3, failures: 3, wantOpen: true, wantOpenedAt: true},
		{name: "failures past threshold report no new transition", threshold: 3, failures: 4, wantOpen: true},
		{name: "zero threshold falls back to default", threshold: 0, failures: defaultFailureThreshold, wantOpen: true, wantOpenedAt: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("kafka", WithFailureThreshold(tt.threshold))
			useFallback, change := failTimes(b, tt.failures)
			assert.Equal(t, tt.wantOpen, useFallback)
			assert.Equal(t, tt.wantOpen, b.IsOpen())
			assert.Equal(t, tt.wantOpenedAt, change.Opened)
			assert.False(t, change.Closed)
		})
	}
}

func TestBreakerSuccessWhileClosedClearsFailures(t *testing.T) {
	b := New("kafka", WithFailureThreshold(3))
	failTimes(b, 2)
	usePrimary, change := b.RecordSuccess()
	require.True(t, usePrimary)
	assert.Equal(t, StateChange{}, change)

	failTimes(b, 2)
	assert.False(t, b.IsOpen(), "count restarted after the success")
	failTimes(b, 1)
	assert.True(t, b.IsOpen())
}

func TestBreakerRecovery(t *testing.T) {
	b := New("kafka", WithFailureThreshold(1), WithSuccessThreshold(3))
	failTimes(b, 1)
	require.True(t, b.IsOpen())

	usePrimary, _ := succeedTimes(b, 2)
	assert.False(t, usePrimary)
	assert.True(t, b.IsOpen())

	// a failed probe restarts the success count
	useFallback, change := b.RecordFailure()
	assert.True(t, useFallback)
	assert.False(t, change.Opened)

	usePrimary, change = succeedTimes(b, 2)
	assert.False(t, usePrimary)
	assert.False(t, change.Closed)

	usePrimary, change = b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerReset(t *testing.T) {
	b := New("kafka", WithFailureThreshold(1), WithSuccessThreshold(-1))
	failTimes(b, 1)
	require.True(t, b.IsOpen())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())

	// default success threshold is one probe
	failTimes(b, 1)
	usePrimary, change := b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)
}
