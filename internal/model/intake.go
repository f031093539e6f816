// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Contact request statuses.
const (
	ContactPending   = "pending"
	ContactContacted = "contacted"
	ContactClosed    = "closed"
)

// ContactRequest is a lead submitted through the public contact form.
type ContactRequest struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name" validate:"required,min=2,max=200"`
	Email      string    `json:"email" validate:"required,email"`
	Phone      string    `json:"phone" validate:"max=50"`
	Company    string    `json:"company" validate:"max=200"`
	Service    string    `json:"service" validate:"max=200"`
	Message    string    `json:"message" validate:"required,min=10,max=5000"`
	Status     string    `json:"status" validate:"oneof=pending contacted closed"`
	Country    string    `json:"country"`
	ClientInfo string    `json:"clientInfo"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Newsletter subscription statuses.
const (
	NewsletterPending      = "pending"
	NewsletterConfirmed    = "confirmed"
	NewsletterUnsubscribed = "unsubscribed"
)

// NewsletterSubscription is an email address signed up for the newsletter.
type NewsletterSubscription struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email" validate:"required,email"`
	Name      string     `json:"name" validate:"max=200"`
	Interests StringList `json:"interests"`
	IsActive  bool       `json:"isActive"`
	Status    string     `json:"status" validate:"oneof=pending confirmed unsubscribed"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Career application statuses.
const (
	ApplicationPending   = "pending"
	ApplicationReviewing = "reviewing"
	ApplicationInterview = "interview"
	ApplicationRejected  = "rejected"
	ApplicationHired     = "hired"
)

// CareerApplication is a job application with an uploaded CV.
type CareerApplication struct {
	ID            int64     `json:"id"`
	PositionID    *int64    `json:"positionId"`
	PositionTitle string    `json:"positionTitle" validate:"required,max=200"`
	FullName      string    `json:"fullName" validate:"required,min=2,max=200"`
	Email         string    `json:"email" validate:"required,email"`
	Phone         string    `json:"phone" validate:"max=50"`
	LinkedInURL   string    `json:"linkedinUrl" validate:"omitempty,url"`
	CoverLetter   string    `json:"coverLetter" validate:"max=10000"`
	CVObjectKey   string    `json:"cvObjectKey" validate:"required,max=500"`
	CVFileName    string    `json:"cvFileName" validate:"max=255"`
	Status        string    `json:"status" validate:"oneof=pending reviewing interview rejected hired"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
