package store

import (
	"context"
	"database/sql"
	"fmt"

	"sulfurwatch/internal/emission/models"
	txcontext "sulfurwatch/pkg/platform/tx"
)

// PostgresStore persists readings in PostgreSQL. Per-vessel order is the seq
// column; writers for one vessel are serialized by the ledger transaction.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Append(ctx context.Context, r *models.Reading) error {
	query := `
		INSERT INTO emission_readings (id, vessel_id, recorded_at, sulfur_content, position, is_eca, is_compliant)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		r.ID, r.VesselID, r.Timestamp, int64(r.SulfurContent), r.Position, r.IsECA, r.IsCompliant)
	if err != nil {
		return fmt.Errorf("append reading: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByVessel(ctx context.Context, vesselID string) ([]*models.Reading, error) {
	query := `
		SELECT id, vessel_id, recorded_at, sulfur_content, position, is_eca, is_compliant
		FROM emission_readings
		WHERE vessel_id = $1
		ORDER BY seq
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, vesselID)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Reading, 0)
	for rows.Next() {
		var (
			r      models.Reading
			sulfur int64
		)
		if err := rows.Scan(&r.ID, &r.VesselID, &r.Timestamp, &sulfur, &r.Position, &r.IsECA, &r.IsCompliant); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		r.SulfurContent = uint64(sulfur)
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate readings: %w", err)
	}
	return out, nil
}
