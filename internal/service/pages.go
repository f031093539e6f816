// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/ccms-go/internal/cache"
	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/store"
)

// Pages manages free-form markdown pages.
type Pages struct {
	*Collection[model.Page, PagePatch]
	rendered *cache.TypedCache[model.RenderedPage]
}

func newPages(q *store.Queries, c cache.Cache, ttl time.Duration) *Pages {
	repo := q.Pages()
	return &Pages{
		Collection: newCollection[model.Page, PagePatch](repo, c, ttl, collectionOpts[model.Page]{
			label:    "page",
			defaults: func() model.Page { return model.Page{IsActive: true} },
			beforeSave: slugHook(repo,
				func(p *model.Page) *string { return &p.Slug },
				func(p *model.Page) string { return p.Title }),
		}),
		rendered: cache.NewTypedCache[model.RenderedPage](c, repo.Name()+":", ttl),
	}
}

// GetPublishedBySlug returns an active page with rendered HTML, or
// (nil, nil) when there is none.
func (p *Pages) GetPublishedBySlug(ctx context.Context, slug string) (*model.RenderedPage, error) {
	page, err := p.rendered.GetOrSet(ctx, "html:"+slug, func() (model.RenderedPage, error) {
		pg, err := p.repo.GetActiveByKey(ctx, slug)
		if store.IsNotFound(err) {
			return model.RenderedPage{}, errAbsent
		}
		if err != nil {
			return model.RenderedPage{}, err
		}
		html, err := RenderMarkdown(pg.Content)
		if err != nil {
			return model.RenderedPage{}, fmt.Errorf("rendering page %s: %w", slug, err)
		}
		return model.RenderedPage{Page: pg, ContentHTML: html}, nil
	})
	if errors.Is(err, errAbsent) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(p.label, err)
	}
	return &page, nil
}
