package models

import (
	"time"

	"github.com/google/uuid"
)

// Alert records one non-compliance report. FlagState and PortState are
// snapshots taken when the report was made and never follow later changes.
type Alert struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	VesselID  string    `json:"vessel_id"`
	Message   string    `json:"message"`
	FlagState string    `json:"flag_state"`
	PortState string    `json:"port_state"`
}

// PortState assigns a port-state authority label to a location.
// Locations are matched by exact string.
type PortState struct {
	Location  string    `json:"location"`
	PortState string    `json:"port_state"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
