package alert

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"sulfurwatch/internal/notifier/models"
	txcontext "sulfurwatch/pkg/platform/tx"
)

// PostgresStore persists alerts in PostgreSQL. Append order is the seq column.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// appendLockKey sits outside the int4 range of hashtext, so it never collides
// with the per-vessel ledger locks.
const appendLockKey int64 = 1 << 40

// Append inserts the alert while holding a transaction-scoped append lock, so
// seq order matches commit order and readers only ever see a growing prefix.
// Inside an ambient transaction the lock is held until that transaction ends.
func (s *PostgresStore) Append(ctx context.Context, a *models.Alert) error {
	if tx, ok := txcontext.From(ctx); ok {
		return insertAlert(ctx, tx, a)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin alert append: %w", err)
	}
	if err := insertAlert(ctx, tx, a); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit alert append: %w", err)
	}
	return nil
}

func insertAlert(ctx context.Context, tx *sql.Tx, a *models.Alert) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, appendLockKey); err != nil {
		return fmt.Errorf("lock alert log: %w", err)
	}
	query := `
		INSERT INTO compliance_alerts (id, reported_at, vessel_id, message, flag_state, port_state)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query, a.ID, a.Timestamp, a.VesselID, a.Message, a.FlagState, a.PortState)
	if err != nil {
		return fmt.Errorf("append alert: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Alert, error) {
	query := `
		SELECT id, reported_at, vessel_id, message, flag_state, port_state
		FROM compliance_alerts
		ORDER BY seq
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return scanAlerts(rows)
}

func (s *PostgresStore) ListByVessels(ctx context.Context, vesselIDs []string) ([]*models.Alert, error) {
	query := `
		SELECT id, reported_at, vessel_id, message, flag_state, port_state
		FROM compliance_alerts
		WHERE vessel_id = ANY($1)
		ORDER BY seq
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, pq.Array(vesselIDs))
	if err != nil {
		return nil, fmt.Errorf("list alerts by vessel: %w", err)
	}
	return scanAlerts(rows)
}

func scanAlerts(rows *sql.Rows) ([]*models.Alert, error) {
	defer rows.Close()
	alerts := make([]*models.Alert, 0)
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(&a.ID, &a.Timestamp, &a.VesselID, &a.Message, &a.FlagState, &a.PortState); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}
	return alerts, nil
}
