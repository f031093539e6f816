// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"strings"

	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/store"
)

// SubscribeInput is the public newsletter form.
type SubscribeInput struct {
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Interests []string `json:"interests"`
}

// Newsletter manages newsletter subscriptions.
type Newsletter struct {
	q *store.Queries
}

// Subscribe stores a subscription with status pending. Subscribing an
// address that is already known succeeds and only reactivates it; the
// stored name and interests belong to the subscriber and are not replaced
// by an anonymous form post.
func (n *Newsletter) Subscribe(ctx context.Context, in SubscribeInput) (*model.NewsletterSubscription, error) {
	sub := model.NewsletterSubscription{
		Email:     normalizeEmail(in.Email),
		Name:      strings.TrimSpace(in.Name),
		Interests: cleanList(in.Interests),
		IsActive:  true,
		Status:    model.NewsletterPending,
	}
	if err := validateStruct(&sub); err != nil {
		return nil, err
	}

	repo := n.q.NewsletterSubscriptions()
	existing, err := repo.GetByKey(ctx, sub.Email)
	if store.IsNotFound(err) {
		created, cerr := repo.Create(ctx, sub)
		if cerr == nil {
			return &created, nil
		}
		if !store.IsUniqueViolation(cerr) {
			return nil, storeErr("newsletter subscription", cerr)
		}
		// A concurrent subscribe of the same address won.
		existing, err = repo.GetByKey(ctx, sub.Email)
	}
	if err != nil {
		return nil, storeErr("newsletter subscription", err)
	}

	if existing.IsActive && existing.Status != model.NewsletterUnsubscribed {
		return &existing, nil
	}
	next := existing
	next.IsActive = true
	if next.Status == model.NewsletterUnsubscribed {
		next.Status = model.NewsletterPending
	}
	updated, err := repo.Update(ctx, existing.ID, existing, next)
	if err != nil {
		return nil, storeErr("newsletter subscription", err)
	}
	return &updated, nil
}

// Unsubscribe deactivates the address. Unknown addresses succeed silently
// so the endpoint does not reveal who is subscribed.
func (n *Newsletter) Unsubscribe(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return invalid("email", "is required")
	}

	repo := n.q.NewsletterSubscriptions()
	sub, err := repo.GetByKey(ctx, email)
	if store.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return storeErr("newsletter subscription", err)
	}
	if !sub.IsActive && sub.Status == model.NewsletterUnsubscribed {
		return nil
	}
	next := sub
	next.IsActive = false
	next.Status = model.NewsletterUnsubscribed
	_, err = repo.Update(ctx, sub.ID, sub, next)
	return storeErr("newsletter subscription", err)
}

// List returns every subscription, newest first.
func (n *Newsletter) List(ctx context.Context) ([]model.NewsletterSubscription, error) {
	items, err := n.q.NewsletterSubscriptions().List(ctx)
	return items, storeErr("newsletter subscription", err)
}

// ListActive returns the subscriptions that still receive mail.
func (n *Newsletter) ListActive(ctx context.Context) ([]model.NewsletterSubscription, error) {
	items, err := n.q.NewsletterSubscriptions().ListActive(ctx)
	return items, storeErr("newsletter subscription", err)
}

// UpdateStatus moves a subscription to pending, confirmed, or unsubscribed.
// Unsubscribed also clears IsActive.
func (n *Newsletter) UpdateStatus(ctx context.Context, id int64, status string) (*model.NewsletterSubscription, error) {
	if err := checkStatus(status, model.NewsletterPending, model.NewsletterConfirmed, model.NewsletterUnsubscribed); err != nil {
		return nil, err
	}
	repo := n.q.NewsletterSubscriptions()
	sub, err := repo.Get(ctx, id)
	if err != nil {
		return nil, storeErr("newsletter subscription", err)
	}
	next := sub
	next.Status = status
	next.IsActive = status != model.NewsletterUnsubscribed
	updated, err := repo.Update(ctx, id, sub, next)
	if err != nil {
		return nil, storeErr("newsletter subscription", err)
	}
	return &updated, nil
}

// Delete removes the subscription or returns ErrNotFound.
func (n *Newsletter) Delete(ctx context.Context, id int64) error {
	return storeErr("newsletter subscription", n.q.NewsletterSubscriptions().Delete(ctx, id))
}

// cleanList trims entries and drops empty ones.
func cleanList(in []string) model.StringList {
	out := make(model.StringList, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
