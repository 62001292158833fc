package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestAcquireSlot_RespectsLimit(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()

	ok, err := AcquireSlot(ctx, rdb, "dial:t1:u1", 1, time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected first acquire, got %v %v", ok, err)
	}
	ok, err = AcquireSlot(ctx, rdb, "dial:t1:u1", 1, time.Minute)
	if err != nil || ok {
		t.Fatalf("expected second acquire to be rejected, got %v %v", ok, err)
	}

	if err := ReleaseSlot(ctx, rdb, "dial:t1:u1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, err = AcquireSlot(ctx, rdb, "dial:t1:u1", 1, time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected acquire after release, got %v %v", ok, err)
	}
}

func TestAcquireSlot_TTLFreesLeakedSlot(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()

	if ok, _ := AcquireSlot(ctx, rdb, "k", 1, time.Second); !ok {
		t.Fatalf("expected acquire")
	}
	mr.FastForward(2 * time.Second)
	if ok, _ := AcquireSlot(ctx, rdb, "k", 1, time.Second); !ok {
		t.Fatalf("expected slot to expire")
	}
}

func TestAcquireSlot_ValidatesArguments(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()
	if _, err := AcquireSlot(ctx, rdb, "", 1, time.Second); err == nil {
		t.Fatalf("expected key error")
	}
	if _, err := AcquireSlot(ctx, rdb, "k", 0, time.Second); err == nil {
		t.Fatalf("expected limit error")
	}
	if _, err := AcquireSlot(ctx, rdb, "k", 1, 0); err == nil {
		t.Fatalf("expected ttl error")
	}
}
