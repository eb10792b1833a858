package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/glowslot/salon-scheduler/internal/httperr"
)

// Coordinator hands out short-lived exclusive holds on slot intervals so
// two checkouts cannot both claim overlapping time on one stylist. A hold
// claims every grid cell its interval touches, which makes a 60-minute
// hold at 10:00 contend with a 30-minute hold at 10:30.
//
// Keys expire on their own; a crashed client strands a slot for at most
// one TTL.
type Coordinator struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

type Hold struct {
	Token       string `json:"hold_token"`
	StylistID   uint   `json:"stylist_id"`
	Date        string `json:"date"`
	StartMinute int    `json:"start_minute"`
	DurationMin int    `json:"duration_min"`
	Granularity int    `json:"-"`
}

// acquireScript sets all cell keys only if none exist. Single script, so
// concurrent acquires for overlapping intervals serialize inside redis.
var acquireScript = redis.NewScript(`
for i = 1, #KEYS do
	if redis.call('EXISTS', KEYS[i]) == 1 then
		return 0
	end
end
for i = 1, #KEYS do
	redis.call('SET', KEYS[i], ARGV[1], 'PX', ARGV[2])
end
return 1
`)

// releaseScript deletes only cells still owned by the token, so an expired
// hold never frees somebody else's claim.
var releaseScript = redis.NewScript(`
local n = 0
for i = 1, #KEYS do
	if redis.call('GET', KEYS[i]) == ARGV[1] then
		n = n + redis.call('DEL', KEYS[i])
	end
end
return n
`)

func NewCoordinator(client *redis.Client, ttl time.Duration, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "slot_lock").Logger(),
	}
}

func (c *Coordinator) TTL() time.Duration {
	return c.ttl
}

// Acquire places an exclusive claim on (stylist, date, interval). Failure
// means another checkout holds overlapping time; callers must re-fetch
// availability instead of retrying the same interval.
func (c *Coordinator) Acquire(
	ctx context.Context,
	stylistID uint,
	date string,
	startMinute int,
	durationMin int,
	granularityMin int,
) (*Hold, error) {

	if durationMin <= 0 || granularityMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	hold := &Hold{
		Token:       uuid.NewString(),
		StylistID:   stylistID,
		Date:        date,
		StartMinute: startMinute,
		DurationMin: durationMin,
		Granularity: granularityMin,
	}

	keys := cellKeys(stylistID, date, startMinute, durationMin, granularityMin)

	ok, err := acquireScript.Run(
		ctx, c.client, keys,
		hold.Token, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return nil, err
	}
	if ok != 1 {
		return nil, httperr.ErrBusiness("slot_held")
	}

	return hold, nil
}

// Release frees a hold. Safe to call after expiry or double-release; the
// token check makes it a no-op then.
func (c *Coordinator) Release(ctx context.Context, hold *Hold) error {
	keys := cellKeys(hold.StylistID, hold.Date, hold.StartMinute, hold.DurationMin, hold.Granularity)

	if err := releaseScript.Run(ctx, c.client, keys, hold.Token).Err(); err != nil {
		c.log.Warn().Err(err).
			Uint("stylist_id", hold.StylistID).
			Str("date", hold.Date).
			Msg("failed to release slot hold")
		return err
	}
	return nil
}

func cellKeys(stylistID uint, date string, startMinute, durationMin, granularityMin int) []string {
	end := startMinute + durationMin

	first := startMinute - startMinute%granularityMin

	var keys []string
	for cell := first; cell < end; cell += granularityMin {
		keys = append(keys, fmt.Sprintf("slotlock:%d:%s:%d", stylistID, date, cell))
	}
	return keys
}
