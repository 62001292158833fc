package calls

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"click2dial/internal/dialerr"
	"click2dial/pkg/logger"
	"click2dial/pkg/utils"
)

// RedisGuard caps in-flight dials per user across API instances.
//
// A Redis failure lets the dial through.
type RedisGuard struct {
	rdb   redis.Scripter
	limit int
	ttl   time.Duration
}

func NewRedisGuard(rdb redis.Scripter, limit int, ttl time.Duration) *RedisGuard {
	return &RedisGuard{rdb: rdb, limit: limit, ttl: ttl}
}

func guardKey(tenantID, userID string) string {
	return "dial:inflight:" + tenantID + ":" + userID
}

func (g *RedisGuard) Acquire(ctx context.Context, tenantID, userID string) (func(), error) {
	key := guardKey(tenantID, userID)
	ok, err := utils.AcquireSlot(ctx, g.rdb, key, g.limit, g.ttl)
	if err != nil {
		logger.From(ctx).Warn("dial guard unavailable", "key", key, "err", err)
		return func() {}, nil
	}
	if !ok {
		return nil, dialerr.Newf(dialerr.KindDialInProgress, "user %s", userID)
	}
	return func() {
		// The request context may already be canceled; the slot must still go back.
		if err := utils.ReleaseSlot(context.WithoutCancel(ctx), g.rdb, key); err != nil {
			logger.From(ctx).Warn("dial guard release failed", "key", key, "err", err)
		}
	}, nil
}
