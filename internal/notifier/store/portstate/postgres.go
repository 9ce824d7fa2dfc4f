package portstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sulfurwatch/internal/notifier/models"
	"sulfurwatch/pkg/platform/sentinel"
	txcontext "sulfurwatch/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Set(ctx context.Context, ps *models.PortState) error {
	query := `
		INSERT INTO port_states (location, port_state, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (location) DO UPDATE SET
			port_state = EXCLUDED.port_state,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := s.execer(ctx).ExecContext(ctx, query, ps.Location, ps.PortState, ps.UpdatedAt); err != nil {
		return fmt.Errorf("set port state: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, location string) (*models.PortState, error) {
	var ps models.PortState
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT location, port_state, updated_at FROM port_states WHERE location = $1`, location,
	).Scan(&ps.Location, &ps.PortState, &ps.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get port state: %w", err)
	}
	return &ps, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.PortState, error) {
	rows, err := s.execer(ctx).QueryContext(ctx,
		`SELECT location, port_state, updated_at FROM port_states ORDER BY location`)
	if err != nil {
		return nil, fmt.Errorf("list port states: %w", err)
	}
	defer rows.Close()

	out := make([]*models.PortState, 0)
	for rows.Next() {
		var ps models.PortState
		if err := rows.Scan(&ps.Location, &ps.PortState, &ps.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan port state: %w", err)
		}
		out = append(out, &ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate port states: %w", err)
	}
	return out, nil
}
