package models

import (
	"strings"
	"time"

	dErrors "sulfurwatch/pkg/domain-errors"
)

// Vessel is a registered ship.
//
// Invariants:
//   - ID is non-empty (typically an IMO number)
//   - a vessel is registered iff a record with its ID exists
//   - re-registration replaces Owner and FlagState; RegisteredAt is kept
type Vessel struct {
	ID           string    `json:"vessel_id"`
	Owner        string    `json:"owner"`
	FlagState    string    `json:"flag_state"`
	RegisteredAt time.Time `json:"registered_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewVessel validates and builds a vessel record.
func NewVessel(id, owner, flagState string, now time.Time) (*Vessel, error) {
	if strings.TrimSpace(id) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "vessel_id is required")
	}
	return &Vessel{
		ID:           id,
		Owner:        owner,
		FlagState:    flagState,
		RegisteredAt: now,
		UpdatedAt:    now,
	}, nil
}

// Status is the public view of a vessel's registration.
type Status struct {
	VesselID   string `json:"vessel_id"`
	Registered bool   `json:"registered"`
	Owner      string `json:"owner,omitempty"`
	FlagState  string `json:"flag_state"`
}
