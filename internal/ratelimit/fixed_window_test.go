package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*FixedWindowLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter, err := NewFixedWindowLimiter(client, "test:ratelimit", limit, window)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	return limiter, mr
}

func TestAllowWithinLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !limiter.Allow(ctx, "1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow(ctx, "1.2.3.4") {
		t.Fatal("fourth request must be blocked")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if !limiter.Allow(ctx, "1.2.3.4") {
		t.Fatal("first key should be allowed")
	}
	if !limiter.Allow(ctx, "5.6.7.8") {
		t.Fatal("a different key must have its own window")
	}
	if limiter.Allow(ctx, "1.2.3.4") {
		t.Fatal("first key must now be blocked")
	}
}

func TestWindowExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if !limiter.Allow(ctx, "1.2.3.4") {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow(ctx, "1.2.3.4") {
		t.Fatal("second request must be blocked")
	}

	mr.FastForward(time.Minute + time.Second)

	if !limiter.Allow(ctx, "1.2.3.4") {
		t.Fatal("counter must reset after the window")
	}
}

func TestFailsOpenWhenRedisIsDown(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	mr.Close()

	if !limiter.Allow(context.Background(), "1.2.3.4") {
		t.Fatal("guest endpoints must keep working without redis")
	}
}

func TestNilLimiterAllows(t *testing.T) {
	var limiter *FixedWindowLimiter
	if !limiter.Allow(context.Background(), "1.2.3.4") {
		t.Fatal("nil limiter disables throttling")
	}
}
