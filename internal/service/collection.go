// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/olegiv/ccms-go/internal/cache"
	"github.com/olegiv/ccms-go/internal/store"
)

// Patch is a partial update of T: every non-nil field of the patch replaces
// the stored value, nil fields leave it untouched.
type Patch[T any] interface {
	apply(*T)
}

// errAbsent marks a keyed lookup that found nothing. It never leaves the
// package; callers see (nil, nil).
var errAbsent = errors.New("absent")

// Collection implements the procedures shared by every content entity on
// top of a store.Repo. Public reads go through the cache; every write drops
// the entity's cache namespace.
type Collection[T any, P Patch[T]] struct {
	repo   *store.Repo[T]
	label  string
	lists  *cache.TypedCache[[]T]
	items  *cache.TypedCache[T]
	newT   func() T
	before func(ctx context.Context, v *T, id int64) error
}

type collectionOpts[T any] struct {
	label      string
	defaults   func() T
	beforeSave func(ctx context.Context, v *T, id int64) error
}

func newCollection[T any, P Patch[T]](repo *store.Repo[T], c cache.Cache, ttl time.Duration, opts collectionOpts[T]) *Collection[T, P] {
	ns := repo.Name() + ":"
	newT := opts.defaults
	if newT == nil {
		newT = func() T {
			var zero T
			return zero
		}
	}
	return &Collection[T, P]{
		repo:   repo,
		label:  opts.label,
		lists:  cache.NewTypedCache[[]T](c, ns, ttl),
		items:  cache.NewTypedCache[T](c, ns, ttl),
		newT:   newT,
		before: opts.beforeSave,
	}
}

// List returns every record, including inactive ones, in display order.
func (c *Collection[T, P]) List(ctx context.Context) ([]T, error) {
	items, err := c.repo.List(ctx)
	return items, storeErr(c.label, err)
}

// ListActive returns the publicly visible records in display order.
func (c *Collection[T, P]) ListActive(ctx context.Context) ([]T, error) {
	items, err := c.lists.GetOrSet(ctx, "active", func() ([]T, error) {
		return c.repo.ListActive(ctx)
	})
	return items, storeErr(c.label, err)
}

// GetByID returns the record or ErrNotFound.
func (c *Collection[T, P]) GetByID(ctx context.Context, id int64) (*T, error) {
	v, err := c.repo.Get(ctx, id)
	if err != nil {
		return nil, storeErr(c.label, err)
	}
	return &v, nil
}

// GetByKey looks a record up by its natural key regardless of visibility.
// Absence is reported as (nil, nil).
func (c *Collection[T, P]) GetByKey(ctx context.Context, key string) (*T, error) {
	v, err := c.repo.GetByKey(ctx, key)
	if store.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(c.label, err)
	}
	return &v, nil
}

// GetActiveByKey is GetByKey restricted to publicly visible records.
func (c *Collection[T, P]) GetActiveByKey(ctx context.Context, key string) (*T, error) {
	v, err := c.items.GetOrSet(ctx, "key:"+key, func() (T, error) {
		v, err := c.repo.GetActiveByKey(ctx, key)
		if store.IsNotFound(err) {
			return v, errAbsent
		}
		return v, err
	})
	if errors.Is(err, errAbsent) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(c.label, err)
	}
	return &v, nil
}

// Create applies p on top of the entity defaults, validates, and inserts.
func (c *Collection[T, P]) Create(ctx context.Context, p P) (*T, error) {
	v := c.newT()
	p.apply(&v)
	if err := c.prepare(ctx, &v, 0); err != nil {
		return nil, err
	}

	created, err := c.repo.Create(ctx, v)
	if err != nil {
		return nil, storeErr(c.label, err)
	}
	c.invalidate(ctx)
	return &created, nil
}

// Update applies p to the stored record. Fields p leaves nil keep their
// stored values. Returns ErrNotFound for an unknown id.
func (c *Collection[T, P]) Update(ctx context.Context, id int64, p P) (*T, error) {
	prev, err := c.repo.Get(ctx, id)
	if err != nil {
		return nil, storeErr(c.label, err)
	}
	v := prev
	p.apply(&v)
	return c.save(ctx, id, prev, v)
}

// save validates v and writes the fields where it differs from prev, the
// stored record it was derived from.
func (c *Collection[T, P]) save(ctx context.Context, id int64, prev, v T) (*T, error) {
	if err := c.prepare(ctx, &v, id); err != nil {
		return nil, err
	}
	updated, err := c.repo.Update(ctx, id, prev, v)
	if err != nil {
		return nil, storeErr(c.label, err)
	}
	c.invalidate(ctx)
	return &updated, nil
}

func (c *Collection[T, P]) prepare(ctx context.Context, v *T, id int64) error {
	if c.before != nil {
		if err := c.before(ctx, v, id); err != nil {
			return err
		}
	}
	return validateStruct(v)
}

// Delete removes the record or returns ErrNotFound.
func (c *Collection[T, P]) Delete(ctx context.Context, id int64) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return storeErr(c.label, err)
	}
	c.invalidate(ctx)
	return nil
}

// ToggleActive flips public visibility and returns the updated record.
func (c *Collection[T, P]) ToggleActive(ctx context.Context, id int64) (*T, error) {
	v, err := c.repo.ToggleActive(ctx, id)
	if err != nil {
		return nil, storeErr(c.label, err)
	}
	c.invalidate(ctx)
	return &v, nil
}

// Count returns the number of records.
func (c *Collection[T, P]) Count(ctx context.Context) (int64, error) {
	n, err := c.repo.Count(ctx)
	return n, storeErr(c.label, err)
}

// invalidate drops the cached public reads. Failures are logged; stale
// entries still expire with the TTL.
func (c *Collection[T, P]) invalidate(ctx context.Context) {
	if err := c.lists.Invalidate(ctx); err != nil {
		slog.Warn("content cache invalidation failed", "entity", c.label, "error", err)
	}
}
