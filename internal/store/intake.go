// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"time"

	"github.com/olegiv/ccms-go/internal/model"
)

var contactRequestsTable = &table[model.ContactRequest]{
	name: "contact_requests",
	columns: []string{"name", "email", "phone", "company", "service", "message", "status",
		"country", "client_info"},
	fields: func(c *model.ContactRequest) []any {
		return []any{&c.Name, &c.Email, &c.Phone, &c.Company, &c.Service, &c.Message, &c.Status,
			&c.Country, &c.ClientInfo}
	},
	meta: func(c *model.ContactRequest) (*int64, *time.Time, *time.Time) {
		return &c.ID, &c.CreatedAt, &c.UpdatedAt
	},
	orderBy: byNewest,
}

var newsletterTable = &table[model.NewsletterSubscription]{
	name:    "newsletter_subscriptions",
	columns: []string{"email", "name", "interests", "is_active", "status"},
	fields: func(n *model.NewsletterSubscription) []any {
		return []any{&n.Email, &n.Name, &n.Interests, &n.IsActive, &n.Status}
	},
	meta: func(n *model.NewsletterSubscription) (*int64, *time.Time, *time.Time) {
		return &n.ID, &n.CreatedAt, &n.UpdatedAt
	},
	orderBy: byNewest,
	key:     "email",
	active:  "is_active",
}

var careerApplicationsTable = &table[model.CareerApplication]{
	name: "career_applications",
	columns: []string{"position_id", "position_title", "full_name", "email", "phone", "linkedin_url",
		"cover_letter", "cv_object_key", "cv_file_name", "status"},
	fields: func(a *model.CareerApplication) []any {
		return []any{&a.PositionID, &a.PositionTitle, &a.FullName, &a.Email, &a.Phone, &a.LinkedInURL,
			&a.CoverLetter, &a.CVObjectKey, &a.CVFileName, &a.Status}
	},
	meta: func(a *model.CareerApplication) (*int64, *time.Time, *time.Time) {
		return &a.ID, &a.CreatedAt, &a.UpdatedAt
	},
	orderBy: byNewest,
}

// ContactRequests returns the contact requests table.
func (q *Queries) ContactRequests() *Repo[model.ContactRequest] {
	return newRepo(q.db, contactRequestsTable)
}

// NewsletterSubscriptions returns the newsletter table, keyed by email.
func (q *Queries) NewsletterSubscriptions() *Repo[model.NewsletterSubscription] {
	return newRepo(q.db, newsletterTable)
}

// CareerApplications returns the career applications table.
func (q *Queries) CareerApplications() *Repo[model.CareerApplication] {
	return newRepo(q.db, careerApplicationsTable)
}
