// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestTypedCache_GetOrSet(t *testing.T) {
	mem := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute})
	defer func() { _ = mem.Close() }()
	tc := NewTypedCache[[]item](mem, "services:", time.Minute)
	ctx := context.Background()

	calls := 0
	load := func() ([]item, error) {
		calls++
		return []item{{ID: 1, Title: "Inbound"}, {ID: 2, Title: "Outbound"}}, nil
	}

	for range 3 {
		got, err := tc.GetOrSet(ctx, "active", load)
		if err != nil {
			t.Fatalf("GetOrSet: %v", err)
		}
		if len(got) != 2 || got[1].Title != "Outbound" {
			t.Fatalf("GetOrSet = %+v", got)
		}
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}

	if _, err := mem.Get(ctx, "services:active"); err != nil {
		t.Errorf("value not stored under namespaced key: %v", err)
	}

	if err := tc.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := tc.GetOrSet(ctx, "active", load); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("loader called %d times after invalidate, want 2", calls)
	}
}

func TestTypedCache_LoaderErrorNotCached(t *testing.T) {
	mem := NewMemoryCache(MemoryOptions{})
	defer func() { _ = mem.Close() }()
	tc := NewTypedCache[item](mem, "x:", 0)
	ctx := context.Background()

	boom := errors.New("boom")
	if _, err := tc.GetOrSet(ctx, "k", func() (item, error) { return item{}, boom }); !errors.Is(err, boom) {
		t.Fatalf("GetOrSet error = %v, want boom", err)
	}
	if _, ok := tc.Get(ctx, "k"); ok {
		t.Error("failed load must not be cached")
	}
}

func TestTypedCache_CorruptEntryIsMiss(t *testing.T) {
	mem := NewMemoryCache(MemoryOptions{})
	defer func() { _ = mem.Close() }()
	tc := NewTypedCache[item](mem, "x:", 0)
	ctx := context.Background()

	_ = mem.Set(ctx, "x:k", []byte("{not json"), 0)
	if _, ok := tc.Get(ctx, "k"); ok {
		t.Error("corrupt entry decoded as hit")
	}
}

func TestNew_FallsBackToMemory(t *testing.T) {
	c := New(Config{RedisURL: "redis://127.0.0.1:1/0", DefaultTTL: time.Minute})
	defer func() { _ = c.Close() }()

	if _, ok := c.(*MemoryCache); !ok {
		t.Fatalf("New with unreachable redis returned %T, want *MemoryCache", c)
	}
	if c.Stats().Backend != "memory" {
		t.Errorf("Backend = %q", c.Stats().Backend)
	}
}
