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

// BlogPosts manages blog articles. For posts, the public visibility flag is
// IsPublished, so ListActive and ToggleActive operate on it.
type BlogPosts struct {
	*Collection[model.BlogPost, BlogPostPatch]
	rendered *cache.TypedCache[model.RenderedPost]
}

func newBlogPosts(q *store.Queries, c cache.Cache, ttl time.Duration) *BlogPosts {
	repo := q.BlogPosts()
	slug := slugHook(repo,
		func(b *model.BlogPost) *string { return &b.Slug },
		func(b *model.BlogPost) string { return b.Title })

	return &BlogPosts{
		Collection: newCollection[model.BlogPost, BlogPostPatch](repo, c, ttl, collectionOpts[model.BlogPost]{
			label: "blog post",
			beforeSave: func(ctx context.Context, b *model.BlogPost, id int64) error {
				stampPublished(b, time.Now())
				return slug(ctx, b, id)
			},
		}),
		rendered: cache.NewTypedCache[model.RenderedPost](c, repo.Name()+":", ttl),
	}
}

// stampPublished sets PublishedAt the first time a post is published.
// Unpublishing and publishing again keeps the original date.
func stampPublished(b *model.BlogPost, now time.Time) {
	if b.IsPublished && b.PublishedAt == nil {
		t := now.UTC()
		b.PublishedAt = &t
	}
}

// ListPublished returns published posts, newest first.
func (b *BlogPosts) ListPublished(ctx context.Context) ([]model.BlogPost, error) {
	return b.ListActive(ctx)
}

// GetPublishedBySlug returns a published post with its rendered HTML, or
// (nil, nil) when no published post has that slug.
func (b *BlogPosts) GetPublishedBySlug(ctx context.Context, slug string) (*model.RenderedPost, error) {
	post, err := b.rendered.GetOrSet(ctx, "html:"+slug, func() (model.RenderedPost, error) {
		p, err := b.repo.GetActiveByKey(ctx, slug)
		if store.IsNotFound(err) {
			return model.RenderedPost{}, errAbsent
		}
		if err != nil {
			return model.RenderedPost{}, err
		}
		html, err := RenderMarkdown(p.Content)
		if err != nil {
			return model.RenderedPost{}, fmt.Errorf("rendering post %s: %w", slug, err)
		}
		return model.RenderedPost{BlogPost: p, ContentHTML: html}, nil
	})
	if errors.Is(err, errAbsent) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(b.label, err)
	}
	return &post, nil
}

// TogglePublished flips IsPublished. The first publish stamps PublishedAt.
func (b *BlogPosts) TogglePublished(ctx context.Context, id int64) (*model.BlogPost, error) {
	cur, err := b.repo.Get(ctx, id)
	if err != nil {
		return nil, storeErr(b.label, err)
	}
	next := cur
	next.IsPublished = !cur.IsPublished
	return b.save(ctx, id, cur, next)
}

// ToggleActive is TogglePublished; the generic flag flip would skip the
// PublishedAt stamp.
func (b *BlogPosts) ToggleActive(ctx context.Context, id int64) (*model.BlogPost, error) {
	return b.TogglePublished(ctx, id)
}
