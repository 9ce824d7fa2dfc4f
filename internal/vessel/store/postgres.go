package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sulfurwatch/internal/vessel/models"
	"sulfurwatch/pkg/platform/sentinel"
	txcontext "sulfurwatch/pkg/platform/tx"
)

// PostgresStore persists vessels in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Save(ctx context.Context, v *models.Vessel) error {
	query := `
		INSERT INTO vessels (vessel_id, owner, flag_state, registered_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (vessel_id) DO UPDATE SET
			owner = EXCLUDED.owner,
			flag_state = EXCLUDED.flag_state,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := s.execer(ctx).ExecContext(ctx, query, v.ID, v.Owner, v.FlagState, v.RegisteredAt, v.UpdatedAt); err != nil {
		return fmt.Errorf("save vessel: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.Vessel, error) {
	query := `
		SELECT vessel_id, owner, flag_state, registered_at, updated_at
		FROM vessels
		WHERE vessel_id = $1
	`
	var v models.Vessel
	err := s.execer(ctx).QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Owner, &v.FlagState, &v.RegisteredAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find vessel: %w", err)
	}
	return &v, nil
}
