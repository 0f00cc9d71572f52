package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/assettrack-backend/pkg/config"
	"github.com/redis/go-redis/v9"
)

func TestHitCountsFixedWindow(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	client := &Client{store: mock, now: func() time.Time { return now }}

	win, err := client.Hit(ctx, "write:10.0.0.1", 5*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if win.Count != 1 {
		t.Fatalf("expected counter 1 got %d", win.Count)
	}
	if !win.ResetAt.Equal(now.Add(5 * time.Minute)) {
		t.Fatalf("unexpected reset %v", win.ResetAt)
	}
	if len(mock.expireCalls) != 1 || mock.expireCalls[0].key != "assettrack:rate_limit:write:10.0.0.1" {
		t.Fatalf("expected expire for first increment, got %+v", mock.expireCalls)
	}

	win, err = client.Hit(ctx, "write:10.0.0.1", 5*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if win.Count != 2 {
		t.Fatalf("expected counter 2 got %d", win.Count)
	}
	if len(mock.expireCalls) != 1 {
		t.Fatalf("expire should not be set again")
	}
}

func TestHitRestoresMissingExpiry(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	mock.incr["assettrack:rate_limit:read:ip"] = 4
	client := &Client{store: mock}

	win, err := client.Hit(ctx, "read:ip", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if win.Count != 5 {
		t.Fatalf("expected counter 5 got %d", win.Count)
	}
	if len(mock.expireCalls) != 1 || mock.expireCalls[0].ttl != time.Minute {
		t.Fatalf("expected expiry to be restored, got %+v", mock.expireCalls)
	}
}

func TestHitPropagatesErrors(t *testing.T) {
	mock := newMockCmdable()
	mock.incrErr = errors.New("connection reset")
	client := &Client{store: mock}
	if _, err := client.Hit(context.Background(), "read:ip", time.Minute); err == nil {
		t.Fatalf("expected error")
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.RateLimitKey("read:1.2.3.4"); got != "assettrack:rate_limit:read:1.2.3.4" {
		t.Fatalf("unexpected rate limit key %s", got)
	}
	if got := client.buildKey("a", "", "b"); got != "assettrack:a:b" {
		t.Fatalf("expected empty parts to be skipped, got %s", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatalf("expected error without url or address")
	}
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2", PoolSize: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.DB != 2 || opts.PoolSize != 7 {
		t.Fatalf("unexpected options db=%d pool=%d", opts.DB, opts.PoolSize)
	}
}

type mockCmdable struct {
	incr        map[string]int64
	ttl         map[string]time.Duration
	expireCalls []expireCall
	incrErr     error
}

type expireCall struct {
	key string
	ttl time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		incr: make(map[string]int64),
		ttl:  make(map[string]time.Duration),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Incr(_ context.Context, key string) *redis.IntCmd {
	if m.incrErr != nil {
		return redis.NewIntResult(0, m.incrErr)
	}
	m.incr[key]++
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *mockCmdable) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, expireCall{key: key, ttl: expiration})
	m.ttl[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) PTTL(_ context.Context, key string) *redis.DurationCmd {
	ttl, ok := m.ttl[key]
	if !ok {
		return redis.NewDurationResult(-1, nil)
	}
	return redis.NewDurationResult(ttl, nil)
}
