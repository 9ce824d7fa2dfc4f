package audit

import (
	"context"
	"time"

	"sulfurwatch/pkg/requestcontext"
)

// EventCategory classifies events by their primary consumer.
// Each category is published to its own topic so retention can differ.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance: alerts
	// raised against a vessel. Auditors consume these; retain indefinitely.
	CategoryCompliance EventCategory = "compliance"

	// CategoryLedger covers every recorded emission reading. Dashboards
	// consume these.
	CategoryLedger EventCategory = "ledger"

	// CategoryAdmin covers administrative mutations of the registries.
	CategoryAdmin EventCategory = "admin"
)

// EventType names the action that produced an event.
type EventType string

const (
	EventVesselRegistered      EventType = "vessel_registered"
	EventPortStateSet          EventType = "port_state_set"
	EventReadingRecorded       EventType = "reading_recorded"
	EventNonComplianceReported EventType = "noncompliance_reported"
)

var eventCategories = map[EventType]EventCategory{
	EventVesselRegistered:      CategoryAdmin,
	EventPortStateSet:          CategoryAdmin,
	EventReadingRecorded:       CategoryLedger,
	EventNonComplianceReported: CategoryCompliance,
}

// Category returns the EventCategory for this event type.
// Unknown types default to CategoryLedger.
func (e EventType) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryLedger
}

// Topic returns the topic name for a category under the given prefix.
func Topic(prefix string, category EventCategory) string {
	if prefix == "" {
		return string(category)
	}
	return prefix + "." + string(category)
}

// Event is emitted after a registry mutation commits. It carries every field
// of the entity it describes so external observers never need to call back.
type Event struct {
	Type        EventType      `json:"type"`
	Timestamp   time.Time      `json:"timestamp"`
	VesselID    string         `json:"vessel_id,omitempty"`
	ActorID     string         `json:"actor_id,omitempty"`
	ActorClient string         `json:"actor_client,omitempty"`
	RequestID   string         `json:"request_id,omitempty"`
	Fields      map[string]any `json:"fields"`
}

// NewEvent builds an event of type t stamped with the caller identity and
// request ID carried by ctx.
func NewEvent(ctx context.Context, t EventType, vesselID string, at time.Time, fields map[string]any) Event {
	return Event{
		Type:        t,
		Timestamp:   at,
		VesselID:    vesselID,
		ActorID:     requestcontext.ActorID(ctx),
		ActorClient: requestcontext.ActorClient(ctx),
		RequestID:   requestcontext.RequestID(ctx),
		Fields:      fields,
	}
}

// Category returns the category of the event's type.
func (e Event) Category() EventCategory {
	return e.Type.Category()
}

// Sink persists or forwards events. Implementations: the in-memory store and
// the Kafka producer.
type Sink interface {
	Write(ctx context.Context, event Event) error
}

// Emitter is what services depend on. Delivery is fire-and-forget: an error
// means the event was not accepted, never that the business operation failed.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}
