package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sulfurwatch/internal/storage"
	txcontext "sulfurwatch/pkg/platform/tx"

	dErrors "sulfurwatch/pkg/domain-errors"
)

func TestShardedTx(t *testing.T) {
	t.Run("commits writes and runs hooks after commit", func(t *testing.T) {
		coord := storage.NewCoordinator()
		tx := NewShardedTx(coord, time.Second)
		var value int
		var hookSaw int

		err := tx.RunInTx(context.Background(), "IMO1", func(ctx context.Context) error {
			coord.Write(ctx, func() { value = 42 })
			txcontext.AfterCommit(ctx, func() {
				coord.Read(func() { hookSaw = value })
			})
			coord.Read(func() { assert.Zero(t, value) })
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 42, value)
		assert.Equal(t, 42, hookSaw)
	})

	t.Run("error discards writes and hooks", func(t *testing.T) {
		coord := storage.NewCoordinator()
		tx := NewShardedTx(coord, time.Second)
		var value int
		hookRan := false

		err := tx.RunInTx(context.Background(), "IMO1", func(ctx context.Context) error {
			coord.Write(ctx, func() { value = 42 })
			txcontext.AfterCommit(ctx, func() { hookRan = true })
			return errors.New("boom")
		})

		require.Error(t, err)
		assert.Zero(t, value)
		assert.False(t, hookRan)
	})

	t.Run("serializes the same vessel", func(t *testing.T) {
		tx := NewShardedTx(storage.NewCoordinator(), time.Second)
		var inside, maxInside atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = tx.RunInTx(context.Background(), "IMO1", func(context.Context) error {
					n := inside.Add(1)
					if n > maxInside.Load() {
						maxInside.Store(n)
					}
					time.Sleep(time.Millisecond)
					inside.Add(-1)
					return nil
				})
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), maxInside.Load())
	})

	t.Run("cancelled context aborts with timeout code", func(t *testing.T) {
		tx := NewShardedTx(storage.NewCoordinator(), time.Second)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := tx.RunInTx(ctx, "IMO1", func(context.Context) error { return nil })
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	})

	t.Run("hash is stable", func(t *testing.T) {
		assert.Equal(t, hashVesselID("IMO1234567"), hashVesselID("IMO1234567"))
		assert.NotEqual(t, hashVesselID("IMO1234567"), hashVesselID("IMO7654321"))
	})
}
