// Package migrations applies the Postgres schema at start-up.
package migrations

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Tables lists every table in dependency order, for truncation in tests.
var Tables = []string{"audit_events", "compliance_alerts", "emission_readings", "port_states", "vessels"}

// Apply creates any missing tables and indexes. It is idempotent.
func Apply(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
