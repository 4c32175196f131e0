package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	c, err := Connect(ctx, "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	if _, err := c.Get(ctx, "stats"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}

	if err := c.Set(ctx, "stats", []byte(`{"users":3}`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.Get(ctx, "stats")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"users":3}` {
		t.Fatalf("unexpected value %q", got)
	}
	if !mr.Exists(keyPrefix + "stats") {
		t.Fatal("expected key to be namespaced")
	}

	mr.FastForward(2 * time.Minute)
	if _, err := c.Get(ctx, "stats"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestConnectRejectsBadURL(t *testing.T) {
	if _, err := Connect(context.Background(), "not a url"); err == nil {
		t.Fatal("expected error for invalid url")
	}
}
