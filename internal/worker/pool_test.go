package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolExecutesTasks(t *testing.T) {
	pool := NewPool(2, 8)
	defer pool.Stop()

	var counter int64
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		ok := pool.Submit(func(ctx context.Context) {
			defer wg.Done()
			atomic.AddInt64(&counter, 1)
		})
		assert.True(t, ok)
	}

	wg.Wait()
	assert.Equal(t, int64(5), atomic.LoadInt64(&counter))
}

func TestPoolDropsWhenQueueFull(t *testing.T) {
	pool := NewPool(1, 1)
	defer pool.Stop()

	block := make(chan struct{})
	started := make(chan struct{})

	// Ocupa o único worker
	pool.Submit(func(ctx context.Context) {
		close(started)
		<-block
	})
	<-started

	// Enche a fila
	assert.True(t, pool.Submit(func(ctx context.Context) {}))

	// Fila cheia: descarta sem bloquear
	assert.False(t, pool.Submit(func(ctx context.Context) {}))

	close(block)
}

func TestPoolStopDrainsPendingTasks(t *testing.T) {
	pool := NewPool(1, 8)

	var counter int64
	for i := 0; i < 4; i++ {
		pool.Submit(func(ctx context.Context) {
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt64(&counter, 1)
		})
	}

	pool.Stop()
	assert.Equal(t, int64(4), atomic.LoadInt64(&counter))
}

func TestPoolRejectsAfterStop(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Stop()

	assert.False(t, pool.Submit(func(ctx context.Context) {}))
}

func TestPoolTaskContextHasDeadline(t *testing.T) {
	pool := NewPool(1, 1)
	defer pool.Stop()

	done := make(chan bool, 1)
	pool.Submit(func(ctx context.Context) {
		_, ok := ctx.Deadline()
		done <- ok
	})

	assert.True(t, <-done)
}
