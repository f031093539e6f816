// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"strings"

	"github.com/mileusna/useragent"

	"github.com/olegiv/ccms-go/internal/geoip"
	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/store"
)

// Origin describes who sent a public form.
type Origin struct {
	IP        string
	UserAgent string
}

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// ContactRequests handles the public contact form and its admin inbox.
type ContactRequests struct {
	q   *store.Queries
	geo *geoip.Resolver
}

// Submit validates and stores a contact request with status pending.
func (c *ContactRequests) Submit(ctx context.Context, in ContactInput, from Origin) (*model.ContactRequest, error) {
	req := model.ContactRequest{
		Name:       strings.TrimSpace(in.Name),
		Email:      normalizeEmail(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Company:    strings.TrimSpace(in.Company),
		Service:    strings.TrimSpace(in.Service),
		Message:    strings.TrimSpace(in.Message),
		Status:     model.ContactPending,
		Country:    c.geo.Country(from.IP),
		ClientInfo: describeClient(from.UserAgent),
	}
	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	created, err := c.q.ContactRequests().Create(ctx, req)
	if err != nil {
		return nil, storeErr("contact request", err)
	}
	return &created, nil
}

// List returns every request, newest first.
func (c *ContactRequests) List(ctx context.Context) ([]model.ContactRequest, error) {
	items, err := c.q.ContactRequests().List(ctx)
	return items, storeErr("contact request", err)
}

// GetByID returns the request or ErrNotFound.
func (c *ContactRequests) GetByID(ctx context.Context, id int64) (*model.ContactRequest, error) {
	v, err := c.q.ContactRequests().Get(ctx, id)
	if err != nil {
		return nil, storeErr("contact request", err)
	}
	return &v, nil
}

// UpdateStatus moves a request to pending, contacted, or closed.
func (c *ContactRequests) UpdateStatus(ctx context.Context, id int64, status string) (*model.ContactRequest, error) {
	if err := checkStatus(status, model.ContactPending, model.ContactContacted, model.ContactClosed); err != nil {
		return nil, err
	}
	v, err := c.q.ContactRequests().SetStatus(ctx, id, status)
	if err != nil {
		return nil, storeErr("contact request", err)
	}
	return &v, nil
}

// Delete removes the request or returns ErrNotFound.
func (c *ContactRequests) Delete(ctx context.Context, id int64) error {
	return storeErr("contact request", c.q.ContactRequests().Delete(ctx, id))
}

// CountPending returns the number of unanswered requests.
func (c *ContactRequests) CountPending(ctx context.Context) (int64, error) {
	n, err := c.q.ContactRequests().CountByStatus(ctx, model.ContactPending)
	return n, storeErr("contact request", err)
}

// describeClient renders a user agent as "Browser/OS device".
func describeClient(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	ua := useragent.Parse(raw)

	browser := ua.Name
	if browser == "" {
		browser = "Unknown"
	}
	os := ua.OS
	if os == "" {
		os = "Unknown"
	}

	device := "desktop"
	switch {
	case ua.Bot:
		device = "bot"
	case ua.Tablet:
		device = "tablet"
	case ua.Mobile:
		device = "mobile"
	}
	return browser + "/" + os + " " + device
}

func checkStatus(status string, allowed ...string) error {
	for _, s := range allowed {
		if status == s {
			return nil
		}
	}
	return invalid("status", "must be one of: "+strings.Join(allowed, ", "))
}
