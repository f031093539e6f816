// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/ccms-go/internal/cache"
	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/store"
)

// Services manages the service offerings.
type Services struct {
	*Collection[model.Service, ServicePatch]
}

func newServices(q *store.Queries, c cache.Cache, ttl time.Duration) *Services {
	repo := q.Services()
	return &Services{newCollection[model.Service, ServicePatch](repo, c, ttl, collectionOpts[model.Service]{
		label:    "service",
		defaults: func() model.Service { return model.Service{IsActive: true} },
		beforeSave: slugHook(repo,
			func(s *model.Service) *string { return &s.Slug },
			func(s *model.Service) string { return s.Title }),
	})}
}

// OrderUpdate moves one record to a new display position.
type OrderUpdate struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}

// Reorder writes every position concurrently as independent updates. The
// batch is not atomic: when one write fails the first error is returned and
// the writes that succeeded stay applied. Concurrent reorders of the same
// ids may interleave.
func (s *Services) Reorder(ctx context.Context, updates []OrderUpdate) error {
	fields := map[string]string{}
	for i, u := range updates {
		if u.ID <= 0 {
			fields[fmt.Sprintf("items[%d].id", i)] = "is required"
		}
		if u.Order < 0 {
			fields[fmt.Sprintf("items[%d].order", i)] = "must be 0 or greater"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	var g errgroup.Group
	for _, u := range updates {
		g.Go(func() error {
			if err := s.repo.SetOrder(ctx, u.ID, u.Order); err != nil {
				return storeErr(fmt.Sprintf("service %d", u.ID), err)
			}
			return nil
		})
	}
	err := g.Wait()

	// Some positions may have changed even when err != nil.
	s.invalidate(ctx)
	return err
}
