package models

import (
	"time"

	"github.com/google/uuid"
)

// Sulfur limits in scaled units. A reading exactly at its limit is compliant.
const (
	ECASulfurLimit    uint64 = 100
	NonECASulfurLimit uint64 = 500
)

// Alert messages name the breached threshold, never the overage.
const (
	MessageECALimitExceeded    = "Sulfur content exceeds ECA limit"
	MessageNonECALimitExceeded = "Sulfur content exceeds non-ECA limit"
)

// Reading is one recorded sulfur measurement. IsCompliant is derived from
// SulfurContent and IsECA when the reading is built and is never changed.
type Reading struct {
	ID            uuid.UUID `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	VesselID      string    `json:"vessel_id"`
	SulfurContent uint64    `json:"sulfur_content"`
	Position      string    `json:"position"`
	IsECA         bool      `json:"is_eca"`
	IsCompliant   bool      `json:"is_compliant"`
}

// NewReading builds a reading and evaluates its compliance.
func NewReading(id uuid.UUID, vesselID string, sulfurContent uint64, position string, isECA bool, at time.Time) *Reading {
	return &Reading{
		ID:            id,
		Timestamp:     at,
		VesselID:      vesselID,
		SulfurContent: sulfurContent,
		Position:      position,
		IsECA:         isECA,
		IsCompliant:   IsCompliant(sulfurContent, isECA),
	}
}

// LimitFor returns the threshold that applies inside or outside an ECA.
func LimitFor(isECA bool) uint64 {
	if isECA {
		return ECASulfurLimit
	}
	return NonECASulfurLimit
}

// IsCompliant reports whether sulfurContent is within the zone's limit.
func IsCompliant(sulfurContent uint64, isECA bool) bool {
	return sulfurContent <= LimitFor(isECA)
}

// AlertMessage returns the fixed alert text for a breach in the given zone.
func AlertMessage(isECA bool) string {
	if isECA {
		return MessageECALimitExceeded
	}
	return MessageNonECALimitExceeded
}
