// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Cache tests require a reachable Valkey instance; they are skipped
// otherwise.
package cache

import (
	"context"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, pageKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func TestRequestKey(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if got := RequestKey(r); got != "/" {
		t.Errorf("RequestKey: got %q, want %q", got, "/")
	}

	r = httptest.NewRequest("GET", "/?page=2", nil)
	if got := RequestKey(r); got != "/?page=2" {
		t.Errorf("RequestKey: got %q, want %q", got, "/?page=2")
	}
}

func TestPageCacheRoundTrip(t *testing.T) {
	pc := NewPageCache(testClient(t), time.Minute)
	ctx := context.Background()

	if _, ok := pc.Get(ctx, "/"); ok {
		t.Fatal("expected miss on empty cache")
	}

	pc.Set(ctx, "/", []byte("<html>cached listing</html>"))

	got, ok := pc.Get(ctx, "/")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(got) != "<html>cached listing</html>" {
		t.Errorf("cached body: got %q", got)
	}

	// Pages of the same route cache independently.
	if _, ok := pc.Get(ctx, "/?page=2"); ok {
		t.Error("expected page 2 to be a separate key")
	}
}

func TestPageCacheInvalidate(t *testing.T) {
	pc := NewPageCache(testClient(t), time.Minute)
	ctx := context.Background()

	pc.Set(ctx, "/", []byte("one"))
	pc.Invalidate(ctx, "/")

	if _, ok := pc.Get(ctx, "/"); ok {
		t.Error("expected miss after Invalidate")
	}
}

func TestPageCacheInvalidateAll(t *testing.T) {
	pc := NewPageCache(testClient(t), time.Minute)
	ctx := context.Background()

	pc.Set(ctx, "/", []byte("one"))
	pc.Set(ctx, "/?page=2", []byte("two"))
	pc.InvalidateAll(ctx)

	if _, ok := pc.Get(ctx, "/"); ok {
		t.Error("expected all keys cleared")
	}
	if _, ok := pc.Get(ctx, "/?page=2"); ok {
		t.Error("expected all keys cleared")
	}
}
