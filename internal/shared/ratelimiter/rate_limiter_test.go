package ratelimiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock は after が呼ばれると時計を進める手動クロックです。
type fakeClock struct {
	mu     sync.Mutex
	t      time.Time
	waited []time.Duration
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) after(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.waited = append(c.waited, d)
	c.t = c.t.Add(d)
	now := c.t
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

func newTestLimiter(limit int, interval time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, interval)
	rl.now = clock.now
	rl.after = clock.after
	rl.lastReset = clock.t
	return rl, clock
}

func TestRateLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("calls within the limit do not wait", func(t *testing.T) {
		t.Parallel()
		rl, clock := newTestLimiter(3, time.Minute)
		for i := 0; i < 3; i++ {
			require.NoError(t, rl.Wait(context.Background()))
		}
		assert.Empty(t, clock.waited)
	})

	t.Run("call over the limit waits for the rest of the window", func(t *testing.T) {
		t.Parallel()
		rl, clock := newTestLimiter(2, time.Minute)
		require.NoError(t, rl.Wait(context.Background()))
		clock.t = clock.t.Add(20 * time.Second)
		require.NoError(t, rl.Wait(context.Background()))

		require.NoError(t, rl.Wait(context.Background()))
		assert.Equal(t, []time.Duration{40 * time.Second}, clock.waited)
		assert.Equal(t, 1, rl.count)
	})

	t.Run("zero limit disables limiting", func(t *testing.T) {
		t.Parallel()
		rl, clock := newTestLimiter(0, time.Minute)
		for i := 0; i < 10; i++ {
			require.NoError(t, rl.Wait(context.Background()))
		}
		assert.Empty(t, clock.waited)
	})

	t.Run("cancelled context stops waiting", func(t *testing.T) {
		t.Parallel()
		rl := NewRateLimiter(1, time.Hour)
		require.NoError(t, rl.Wait(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, rl.Wait(ctx), context.Canceled)
	})
}

func TestRateLimiter_Concurrent(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(100, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, rl.Wait(context.Background()))
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, rl.count)
}
