package calls

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"click2dial/internal/dialerr"
)

func TestRedisGuard_OneDialPerUser(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	g := NewRedisGuard(rdb, 1, 30*time.Second)

	release, err := g.Acquire(ctx, "t1", "u1")
	require.NoError(t, err)

	_, err = g.Acquire(ctx, "t1", "u1")
	assert.Equal(t, dialerr.KindDialInProgress, dialerr.KindOf(err))

	other, err := g.Acquire(ctx, "t1", "u2")
	require.NoError(t, err, "users are limited independently")
	other()

	release()
	again, err := g.Acquire(ctx, "t1", "u1")
	require.NoError(t, err)
	again()
}

func TestRedisGuard_RedisDownLetsDialThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	release, err := NewRedisGuard(rdb, 1, time.Second).Acquire(context.Background(), "t1", "u1")
	require.NoError(t, err)
	release()
}
