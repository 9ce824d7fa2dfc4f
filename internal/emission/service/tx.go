package service

import (
	"context"
	"sync"
	"time"

	"sulfurwatch/internal/storage"
	txcontext "sulfurwatch/pkg/platform/tx"

	dErrors "sulfurwatch/pkg/domain-errors"
)

// LedgerTx is the serialization point for one vessel's ledger writes.
// Everything fn writes becomes visible together on success and not at all on
// error. Implementations wrap a database transaction or, in memory, a shard
// lock plus a storage batch.
type LedgerTx interface {
	RunInTx(ctx context.Context, vesselID string, fn func(ctx context.Context) error) error
}

// Operations for the same vessel always land on the same shard.
const numLedgerShards = 128

// DefaultLedgerTxTimeout bounds a ledger transaction when the caller set no deadline.
const DefaultLedgerTxTimeout = 5 * time.Second

// ShardedTx is the in-memory LedgerTx.
type ShardedTx struct {
	shards  [numLedgerShards]sync.Mutex
	coord   *storage.Coordinator
	timeout time.Duration
}

func NewShardedTx(coord *storage.Coordinator, timeout time.Duration) *ShardedTx {
	return &ShardedTx{coord: coord, timeout: timeout}
}

func (t *ShardedTx) RunInTx(ctx context.Context, vesselID string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = DefaultLedgerTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	shard := &t.shards[hashVesselID(vesselID)%numLedgerShards]
	shard.Lock()
	defer shard.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	txCtx, batch := t.coord.Begin(ctx)
	txCtx, hooks := txcontext.WithHooks(txCtx)
	if err := fn(txCtx); err != nil {
		batch.Rollback()
		return err
	}
	if err := ctx.Err(); err != nil {
		batch.Rollback()
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	batch.Commit()
	hooks.Run()
	return nil
}

// hashVesselID is FNV-1a.
func hashVesselID(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
