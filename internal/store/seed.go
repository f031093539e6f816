// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/olegiv/ccms-go/internal/model"
)

// DefaultAdminName is the display name of the bootstrap admin account.
const DefaultAdminName = "Administrator"

// AdminSeed describes the bootstrap admin account.
type AdminSeed struct {
	Email        string
	Name         string
	PasswordHash string
}

// defaultSettings are created once so the public site has something to show.
var defaultSettings = []model.SiteSetting{
	{Key: "company_name", Value: "Contact Center", Description: "Company name shown in the header and footer"},
	{Key: "contact_email", Value: "info@example.com", Description: "Public contact email"},
	{Key: "contact_phone", Value: "", Description: "Public contact phone"},
	{Key: "address", Value: "", Description: "Head office address"},
}

// Seed creates the bootstrap admin when no admin account exists yet and the
// default site settings that are missing. It is safe to run on every start.
// Returns true when the admin account was created.
func Seed(ctx context.Context, db *sql.DB, admin AdminSeed) (bool, error) {
	queries := New(db)

	created, err := seedAdmin(ctx, queries, admin)
	if err != nil {
		return false, err
	}

	for _, s := range defaultSettings {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO site_settings (key, value, description, created_at, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO NOTHING`,
			s.Key, s.Value, s.Description,
		); err != nil {
			return created, fmt.Errorf("seeding setting %s: %w", s.Key, err)
		}
	}

	return created, nil
}

func seedAdmin(ctx context.Context, queries *Queries, admin AdminSeed) (bool, error) {
	users := queries.AdminUsers()

	n, err := users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("counting admin users: %w", err)
	}
	if n > 0 {
		slog.Debug("admin users exist, skipping bootstrap admin", "count", n)
		return false, nil
	}

	name := admin.Name
	if name == "" {
		name = DefaultAdminName
	}

	user, err := users.Create(ctx, model.AdminUser{
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		Name:         name,
		Role:         model.RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		return false, fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created bootstrap admin user", "id", user.ID, "email", user.Email)
	return true, nil
}
