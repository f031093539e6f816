// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/ccms-go/internal/cache"
	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/store"
)

const maxSettingKeyLength = 100

// Settings manages the site-wide key/value settings.
type Settings struct {
	q     *store.Queries
	items *cache.TypedCache[map[string]string]
}

func newSettings(q *store.Queries, c cache.Cache, ttl time.Duration) *Settings {
	return &Settings{
		q:     q,
		items: cache.NewTypedCache[map[string]string](c, q.SiteSettings().Name()+":", ttl),
	}
}

// List returns every setting ordered by key.
func (s *Settings) List(ctx context.Context) ([]model.SiteSetting, error) {
	items, err := s.q.SiteSettings().List(ctx)
	return items, storeErr("settings", err)
}

// Get returns the setting or (nil, nil) when the key is not set.
func (s *Settings) Get(ctx context.Context, key string) (*model.SiteSetting, error) {
	v, err := s.q.SiteSettings().GetByKey(ctx, key)
	if store.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("setting "+key, err)
	}
	return &v, nil
}

// Set creates or replaces a setting. An empty description keeps the stored one.
func (s *Settings) Set(ctx context.Context, key, value, description string) (*model.SiteSetting, error) {
	key = strings.TrimSpace(key)
	if err := checkSettingKey(key); err != nil {
		return nil, err
	}
	if len(description) > 500 {
		return nil, invalid("description", "must be at most 500 characters")
	}

	v, err := s.q.UpsertSetting(ctx, key, value, description)
	if err != nil {
		return nil, storeErr("setting "+key, err)
	}
	s.invalidate(ctx)
	return &v, nil
}

// SetMany upserts every pair concurrently. Like Services.Reorder the batch
// is not atomic; the first failure is returned and the other writes stay.
func (s *Settings) SetMany(ctx context.Context, values map[string]string) error {
	fields := map[string]string{}
	for k := range values {
		if err := checkSettingKey(strings.TrimSpace(k)); err != nil {
			fields[k] = "invalid setting key"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	var g errgroup.Group
	for k, v := range values {
		g.Go(func() error {
			if _, err := s.q.UpsertSetting(ctx, strings.TrimSpace(k), v, ""); err != nil {
				return storeErr("setting "+k, err)
			}
			return nil
		})
	}
	err := g.Wait()
	s.invalidate(ctx)
	return err
}

// Delete removes a setting or returns ErrNotFound.
func (s *Settings) Delete(ctx context.Context, key string) error {
	if err := s.q.DeleteSetting(ctx, key); err != nil {
		return storeErr("setting "+key, err)
	}
	s.invalidate(ctx)
	return nil
}

// Map returns every setting as key → value for the public site.
func (s *Settings) Map(ctx context.Context) (map[string]string, error) {
	m, err := s.items.GetOrSet(ctx, "map", func() (map[string]string, error) {
		items, err := s.q.SiteSettings().List(ctx)
		if err != nil {
			return nil, err
		}
		m := make(map[string]string, len(items))
		for _, it := range items {
			m[it.Key] = it.Value
		}
		return m, nil
	})
	return m, storeErr("settings", err)
}

func (s *Settings) invalidate(ctx context.Context) {
	if err := s.items.Invalidate(ctx); err != nil {
		slog.Warn("settings cache invalidation failed", "error", err)
	}
}

func checkSettingKey(key string) error {
	switch {
	case key == "":
		return invalid("key", "is required")
	case len(key) > maxSettingKeyLength:
		return invalid("key", fmt.Sprintf("must be at most %d characters", maxSettingKeyLength))
	}
	return nil
}
