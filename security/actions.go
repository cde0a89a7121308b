package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrActionInFlight is returned when the same action is already running for
// the session.
var ErrActionInFlight = errors.New("action already in progress")

// ActionGuard suppresses duplicate in-flight actions (double-clicked join,
// repeated upload) per session and event. The lock auto-expires so a
// crashed request cannot wedge the action forever.
type ActionGuard struct {
	redis *redis.Client
	ttl   time.Duration
	log   *zerolog.Logger
}

func NewActionGuard(rdb *redis.Client, ttl time.Duration, log *zerolog.Logger) *ActionGuard {
	return &ActionGuard{redis: rdb, ttl: ttl, log: log}
}

func actionKey(sessionID, action string, eventID int64) string {
	return fmt.Sprintf("inflight:%s:%s:%d", sessionID, action, eventID)
}

// Acquire takes the lock for one action. It returns a release func on
// success and ErrActionInFlight when the same action is still running.
// When redis itself is down the guard fails open; duplicate suppression is
// a convenience, not a correctness requirement.
func (g *ActionGuard) Acquire(ctx context.Context, sessionID, action string, eventID int64) (func(), error) {
	key := actionKey(sessionID, action, eventID)

	ok, err := g.redis.SetNX(ctx, key, 1, g.ttl).Result()
	if err != nil {
		g.log.Warn().Err(err).Str("action", action).Msg("action guard unavailable; allowing")
		return func() {}, nil
	}
	if !ok {
		return nil, ErrActionInFlight
	}

	release := func() {
		if err := g.redis.Del(context.Background(), key).Err(); err != nil {
			g.log.Warn().Err(err).Str("key", key).Msg("failed to release action lock")
		}
	}
	return release, nil
}
