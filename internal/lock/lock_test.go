package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/glowslot/salon-scheduler/internal/httperr"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCoordinator(client, 3*time.Minute, zerolog.Nop()), mr
}

func TestAcquireRelease(t *testing.T) {
	c, _ := newTestCoordinator(t)
	ctx := context.Background()

	hold, err := c.Acquire(ctx, 1, "2026-09-01", 600, 60, 30)
	require.NoError(t, err)
	require.NotEmpty(t, hold.Token)

	// Same interval is taken until released.
	_, err = c.Acquire(ctx, 1, "2026-09-01", 600, 60, 30)
	require.Equal(t, "slot_held", httperr.BusinessCode(err))

	require.NoError(t, c.Release(ctx, hold))

	_, err = c.Acquire(ctx, 1, "2026-09-01", 600, 60, 30)
	require.NoError(t, err)
}

func TestAcquireOverlappingIntervals(t *testing.T) {
	c, _ := newTestCoordinator(t)
	ctx := context.Background()

	// 60 minutes from 10:00 covers the 10:00 and 10:30 cells.
	_, err := c.Acquire(ctx, 1, "2026-09-01", 600, 60, 30)
	require.NoError(t, err)

	// A 30-minute hold at 10:30 lands on a covered cell.
	_, err = c.Acquire(ctx, 1, "2026-09-01", 630, 30, 30)
	require.Equal(t, "slot_held", httperr.BusinessCode(err))

	// 11:00 is clear.
	_, err = c.Acquire(ctx, 1, "2026-09-01", 660, 30, 30)
	require.NoError(t, err)
}

func TestAcquireIsolation(t *testing.T) {
	c, _ := newTestCoordinator(t)
	ctx := context.Background()

	_, err := c.Acquire(ctx, 1, "2026-09-01", 600, 30, 30)
	require.NoError(t, err)

	// Different stylist, same time.
	_, err = c.Acquire(ctx, 2, "2026-09-01", 600, 30, 30)
	require.NoError(t, err)

	// Same stylist, different date.
	_, err = c.Acquire(ctx, 1, "2026-09-02", 600, 30, 30)
	require.NoError(t, err)
}

func TestConcurrentAcquireSingleWinner(t *testing.T) {
	c, _ := newTestCoordinator(t)
	ctx := context.Background()

	const attempts = 20

	var wg sync.WaitGroup
	wins := make(chan *Hold, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if hold, err := c.Acquire(ctx, 5, "2026-09-01", 900, 90, 30); err == nil {
				wins <- hold
			}
		}()
	}

	wg.Wait()
	close(wins)

	require.Len(t, wins, 1)
}

func TestReleaseIgnoresStolenCells(t *testing.T) {
	c, mr := newTestCoordinator(t)
	ctx := context.Background()

	stale, err := c.Acquire(ctx, 1, "2026-09-01", 600, 30, 30)
	require.NoError(t, err)

	// Expire the hold, let somebody else claim the slot.
	mr.FastForward(5 * time.Minute)

	fresh, err := c.Acquire(ctx, 1, "2026-09-01", 600, 30, 30)
	require.NoError(t, err)

	// Releasing the stale hold must not free the fresh one.
	require.NoError(t, c.Release(ctx, stale))

	_, err = c.Acquire(ctx, 1, "2026-09-01", 600, 30, 30)
	require.Equal(t, "slot_held", httperr.BusinessCode(err))

	require.NoError(t, c.Release(ctx, fresh))
}

func TestHoldExpires(t *testing.T) {
	c, mr := newTestCoordinator(t)
	ctx := context.Background()

	_, err := c.Acquire(ctx, 1, "2026-09-01", 600, 30, 30)
	require.NoError(t, err)

	mr.FastForward(5 * time.Minute)

	_, err = c.Acquire(ctx, 1, "2026-09-01", 600, 30, 30)
	require.NoError(t, err)
}

func TestAcquireUnalignedStart(t *testing.T) {
	c, _ := newTestCoordinator(t)
	ctx := context.Background()

	// 10:15 rounds down to the 10:00 cell.
	_, err := c.Acquire(ctx, 1, "2026-09-01", 615, 30, 30)
	require.NoError(t, err)

	_, err = c.Acquire(ctx, 1, "2026-09-01", 600, 30, 30)
	require.Equal(t, "slot_held", httperr.BusinessCode(err))
}

func TestAcquireRejectsBadInput(t *testing.T) {
	c, _ := newTestCoordinator(t)
	ctx := context.Background()

	_, err := c.Acquire(ctx, 1, "2026-09-01", 600, 0, 30)
	require.Equal(t, "invalid_duration", httperr.BusinessCode(err))

	_, err = c.Acquire(ctx, 1, "2026-09-01", 600, 30, 0)
	require.Equal(t, "invalid_duration", httperr.BusinessCode(err))
}
