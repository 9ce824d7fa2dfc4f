package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	audit "sulfurwatch/pkg/platform/audit"
	txcontext "sulfurwatch/pkg/platform/tx"
)

// Store is an audit.Sink persisting events to the audit_events table.
// Used when Postgres is the primary backend and as the Kafka fallback.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *Store) Write(ctx context.Context, event audit.Event) error {
	fields := event.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal audit fields: %w", err)
	}

	query := `
		INSERT INTO audit_events (
			event_type, category, occurred_at, vessel_id,
			actor_id, actor_client, request_id, fields
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		string(event.Type),
		string(event.Category()),
		event.Timestamp,
		event.VesselID,
		event.ActorID,
		event.ActorClient,
		event.RequestID,
		payload,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByVessel returns a vessel's events in write order.
func (s *Store) ListByVessel(ctx context.Context, vesselID string) ([]audit.Event, error) {
	query := `
		SELECT event_type, occurred_at, vessel_id, actor_id, actor_client, request_id, fields
		FROM audit_events
		WHERE vessel_id = $1
		ORDER BY seq
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, vesselID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListAll returns every event in write order.
func (s *Store) ListAll(ctx context.Context) ([]audit.Event, error) {
	query := `
		SELECT event_type, occurred_at, vessel_id, actor_id, actor_client, request_id, fields
		FROM audit_events
		ORDER BY seq
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	events := []audit.Event{}
	for rows.Next() {
		var (
			e       audit.Event
			evType  string
			rawJSON []byte
		)
		if err := rows.Scan(&evType, &e.Timestamp, &e.VesselID, &e.ActorID, &e.ActorClient, &e.RequestID, &rawJSON); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Type = audit.EventType(evType)
		if err := json.Unmarshal(rawJSON, &e.Fields); err != nil {
			return nil, fmt.Errorf("decode audit fields: %w", err)
		}
		e.Timestamp = e.Timestamp.UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
