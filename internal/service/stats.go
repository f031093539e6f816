// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/ccms-go/internal/cache"
	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/store"
)

// DashboardStats are the counts shown on the admin dashboard.
type DashboardStats struct {
	Services            int64       `json:"services"`
	ActiveServices      int64       `json:"activeServices"`
	Testimonials        int64       `json:"testimonials"`
	TeamMembers         int64       `json:"teamMembers"`
	BlogPosts           int64       `json:"blogPosts"`
	PublishedPosts      int64       `json:"publishedPosts"`
	JobPositions        int64       `json:"jobPositions"`
	OpenPositions       int64       `json:"openPositions"`
	ContactRequests     int64       `json:"contactRequests"`
	PendingContacts     int64       `json:"pendingContacts"`
	Subscribers         int64       `json:"subscribers"`
	ActiveSubscribers   int64       `json:"activeSubscribers"`
	Applications        int64       `json:"applications"`
	PendingApplications int64       `json:"pendingApplications"`
	Cache               cache.Stats `json:"cache"`
}

// Stats computes dashboard counts.
type Stats struct {
	q     *store.Queries
	cache cache.Cache
}

// GetStats runs every count concurrently and fails on the first error.
func (s *Stats) GetStats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	count := func(dst *int64, name string, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(ctx)
			if err != nil {
				return fmt.Errorf("counting %s: %w", name, err)
			}
			*dst = n
			return nil
		})
	}
	byStatus := func(status string, fn func(context.Context, string) (int64, error)) func(context.Context) (int64, error) {
		return func(ctx context.Context) (int64, error) { return fn(ctx, status) }
	}

	q := s.q
	count(&out.Services, "services", q.Services().Count)
	count(&out.ActiveServices, "active services", q.Services().CountActive)
	count(&out.Testimonials, "testimonials", q.Testimonials().Count)
	count(&out.TeamMembers, "team members", q.TeamMembers().Count)
	count(&out.BlogPosts, "blog posts", q.BlogPosts().Count)
	count(&out.PublishedPosts, "published posts", q.BlogPosts().CountActive)
	count(&out.JobPositions, "job positions", q.JobPositions().Count)
	count(&out.OpenPositions, "open positions", q.JobPositions().CountActive)
	count(&out.ContactRequests, "contact requests", q.ContactRequests().Count)
	count(&out.PendingContacts, "pending contacts",
		byStatus(model.ContactPending, q.ContactRequests().CountByStatus))
	count(&out.Subscribers, "subscribers", q.NewsletterSubscriptions().Count)
	count(&out.ActiveSubscribers, "active subscribers", q.NewsletterSubscriptions().CountActive)
	count(&out.Applications, "applications", q.CareerApplications().Count)
	count(&out.PendingApplications, "pending applications",
		byStatus(model.ApplicationPending, q.CareerApplications().CountByStatus))

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if s.cache != nil {
		out.Cache = s.cache.Stats()
	}
	return &out, nil
}
