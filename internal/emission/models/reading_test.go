package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsCompliant(t *testing.T) {
	tests := []struct {
		name   string
		sulfur uint64
		isECA  bool
		want   bool
	}{
		{"ECA zero", 0, true, true},
		{"ECA at limit", 100, true, true},
		{"ECA one above limit", 101, true, false},
		{"ECA far above limit", 150, true, false},
		{"non-ECA at ECA limit", 101, false, true},
		{"non-ECA at limit", 500, false, true},
		{"non-ECA one above limit", 501, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCompliant(tt.sulfur, tt.isECA))
		})
	}
}

func TestAlertMessage(t *testing.T) {
	assert.Contains(t, AlertMessage(true), "ECA limit")
	assert.NotContains(t, AlertMessage(true), "non-ECA")
	assert.Contains(t, AlertMessage(false), "non-ECA limit")
}

func TestNewReadingDerivesCompliance(t *testing.T) {
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	id := uuid.New()

	r := NewReading(id, "IMO1234567", 150, "Baltic Sea", true, at)

	assert.Equal(t, id, r.ID)
	assert.Equal(t, at, r.Timestamp)
	assert.Equal(t, "Baltic Sea", r.Position)
	assert.False(t, r.IsCompliant)

	assert.True(t, NewReading(id, "IMO1234567", 150, "Atlantic", false, at).IsCompliant)
}
