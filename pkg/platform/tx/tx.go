package tx

import (
	"context"
	"database/sql"
	"sync"
)

type ctxKey struct{}
type hooksKey struct{}

var txKey = ctxKey{}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok && tx != nil
}

// Without hides any transaction in ctx so stores fall back to the pool.
// After-commit hooks stay attached.
func Without(ctx context.Context) context.Context {
	if _, ok := From(ctx); !ok {
		return ctx
	}
	return context.WithValue(ctx, txKey, (*sql.Tx)(nil))
}

// Hooks collects callbacks that must only run once the surrounding
// transaction has committed. A rolled-back transaction discards them.
type Hooks struct {
	mu  sync.Mutex
	fns []func()
}

// WithHooks attaches a fresh hook list to ctx.
func WithHooks(ctx context.Context) (context.Context, *Hooks) {
	h := &Hooks{}
	return context.WithValue(ctx, hooksKey{}, h), h
}

// AfterCommit defers fn until the transaction in ctx commits. Without an
// enclosing transaction fn runs immediately.
func AfterCommit(ctx context.Context, fn func()) {
	if h, ok := ctx.Value(hooksKey{}).(*Hooks); ok {
		h.mu.Lock()
		h.fns = append(h.fns, fn)
		h.mu.Unlock()
		return
	}
	fn()
}

// Run executes the collected hooks in registration order.
func (h *Hooks) Run() {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
