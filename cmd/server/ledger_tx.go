package main

import (
	"context"
	"database/sql"
	"time"

	emissionservice "sulfurwatch/internal/emission/service"
	dErrors "sulfurwatch/pkg/domain-errors"
	txcontext "sulfurwatch/pkg/platform/tx"
)

// ledgerPostgresTx serializes writes per vessel with a transaction-scoped
// advisory lock. Stores pick the transaction up from ctx.
type ledgerPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

var _ emissionservice.LedgerTx = (*ledgerPostgresTx)(nil)

func newLedgerPostgresTx(db *sql.DB, timeout time.Duration) *ledgerPostgresTx {
	return &ledgerPostgresTx{db: db, timeout: timeout}
}

func (t *ledgerPostgresTx) RunInTx(ctx context.Context, vesselID string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = emissionservice.DefaultLedgerTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapTxErr(ctx, err, "begin ledger transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, vesselID); err != nil {
		return wrapTxErr(ctx, err, "acquire vessel lock")
	}

	txCtx := txcontext.WithTx(ctx, tx)
	txCtx, hooks := txcontext.WithHooks(txCtx)
	if err := fn(txCtx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrapTxErr(ctx, err, "commit ledger transaction")
	}
	hooks.Run()
	return nil
}

func wrapTxErr(ctx context.Context, err error, msg string) error {
	if ctx.Err() != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
