// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the records of the marketing site: content entities
// managed from the admin panel and submissions received from the public forms.
package model

import "time"

// Admin roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// AdminUser is an account allowed into the admin panel.
type AdminUser struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email" validate:"required,email"`
	PasswordHash string     `json:"-"` // Never expose in JSON
	Name         string     `json:"name" validate:"required,max=200"`
	Role         string     `json:"role" validate:"oneof=admin editor"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsAdmin returns true if the user has admin role.
func (u *AdminUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SiteSetting is a key/value pair of site-wide configuration (phone, address, social links).
type SiteSetting struct {
	ID          int64     `json:"id"`
	Key         string    `json:"key" validate:"required,max=100"`
	Value       string    `json:"value"`
	Description string    `json:"description" validate:"max=500"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
