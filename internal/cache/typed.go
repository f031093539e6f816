// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// TypedCache stores values of T as JSON under a fixed key namespace.
type TypedCache[T any] struct {
	cache     Cache
	namespace string
	ttl       time.Duration
}

// NewTypedCache creates a TypedCache whose keys all start with namespace.
func NewTypedCache[T any](c Cache, namespace string, ttl time.Duration) *TypedCache[T] {
	return &TypedCache[T]{cache: c, namespace: namespace, ttl: ttl}
}

// Namespace returns the key prefix of this cache.
func (c *TypedCache[T]) Namespace() string {
	return c.namespace
}

// Get returns the cached value and true, or the zero value and false on a
// miss or an undecodable entry.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var value T
	data, err := c.cache.Get(ctx, c.namespace+key)
	if err != nil {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false
	}
	return value, true
}

// Set stores value under key.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, c.namespace+key, data, c.ttl)
}

// GetOrSet returns the cached value or computes it with fn and stores it.
// A failing cache write is logged and the computed value is still returned.
func (c *TypedCache[T]) GetOrSet(ctx context.Context, key string, fn func() (T, error)) (T, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	value, err := fn()
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value); err != nil {
		slog.Debug("cache write failed", "key", c.namespace+key, "error", err)
	}
	return value, nil
}

// Invalidate drops every entry in the namespace.
func (c *TypedCache[T]) Invalidate(ctx context.Context) error {
	return c.cache.DeleteByPrefix(ctx, c.namespace)
}
