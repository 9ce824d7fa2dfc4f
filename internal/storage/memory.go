package storage

import (
	"context"
	"sync"
)

// Coordinator guards every in-memory registry with a single lock so that a
// batch of writes spanning several stores becomes visible all at once. Reads
// take the shared lock and therefore only ever observe committed batches.
type Coordinator struct {
	mu sync.RWMutex
}

func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

type batchKey struct{}

// Batch buffers writes until Commit. A batch that is never committed leaves
// no trace.
type Batch struct {
	coord *Coordinator
	mu    sync.Mutex
	ops   []func()
	done  bool
}

// Begin attaches a new batch to ctx. Writes issued through Write with the
// returned context are deferred into the batch.
func (c *Coordinator) Begin(ctx context.Context) (context.Context, *Batch) {
	b := &Batch{coord: c}
	return context.WithValue(ctx, batchKey{}, b), b
}

// Read runs fn under the shared lock.
func (c *Coordinator) Read(fn func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn()
}

// Write runs fn under the exclusive lock, or defers it into the batch carried
// by ctx when that batch belongs to this coordinator.
func (c *Coordinator) Write(ctx context.Context, fn func()) {
	if b, ok := ctx.Value(batchKey{}).(*Batch); ok && b.coord == c {
		b.add(fn)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

func (b *Batch) add(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.done {
		// Late writes after commit/rollback apply directly.
		b.coord.mu.Lock()
		defer b.coord.mu.Unlock()
		fn()
		return
	}
	b.ops = append(b.ops, fn)
}

// Commit applies buffered writes in order under one exclusive lock.
func (b *Batch) Commit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.done {
		return
	}
	b.done = true
	b.coord.mu.Lock()
	defer b.coord.mu.Unlock()
	for _, op := range b.ops {
		op()
	}
	b.ops = nil
}

// Rollback discards buffered writes.
func (b *Batch) Rollback() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done = true
	b.ops = nil
}

// Pending reports how many writes are waiting for commit.
func (b *Batch) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ops)
}
