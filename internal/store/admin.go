// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/ccms-go/internal/model"
)

var adminUsersTable = &table[model.AdminUser]{
	name:    "admin_users",
	columns: []string{"email", "password_hash", "name", "role", "is_active", "last_login_at"},
	fields: func(u *model.AdminUser) []any {
		return []any{&u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.IsActive, &u.LastLoginAt}
	},
	meta: func(u *model.AdminUser) (*int64, *time.Time, *time.Time) {
		return &u.ID, &u.CreatedAt, &u.UpdatedAt
	},
	orderBy: "email ASC",
	key:     "email",
	active:  "is_active",
}

var siteSettingsTable = &table[model.SiteSetting]{
	name:    "site_settings",
	columns: []string{"key", "value", "description"},
	fields: func(s *model.SiteSetting) []any {
		return []any{&s.Key, &s.Value, &s.Description}
	},
	meta: func(s *model.SiteSetting) (*int64, *time.Time, *time.Time) {
		return &s.ID, &s.CreatedAt, &s.UpdatedAt
	},
	orderBy: "key ASC",
	key:     "key",
}

// AdminUsers returns the admin users table, keyed by email.
func (q *Queries) AdminUsers() *Repo[model.AdminUser] { return newRepo(q.db, adminUsersTable) }

// SiteSettings returns the site settings table, keyed by setting key.
func (q *Queries) SiteSettings() *Repo[model.SiteSetting] { return newRepo(q.db, siteSettingsTable) }

// TouchLastLogin records a successful login of user id.
func (q *Queries) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	res, err := q.db.ExecContext(ctx,
		"UPDATE admin_users SET last_login_at = ? WHERE id = ?", at.UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ReplacePasswordHash swaps the password hash of user id from old to hash.
// Returns sql.ErrNoRows when the stored hash is no longer old.
func (q *Queries) ReplacePasswordHash(ctx context.Context, id int64, old, hash string) error {
	res, err := q.db.ExecContext(ctx,
		"UPDATE admin_users SET password_hash = ?, updated_at = ? WHERE id = ? AND password_hash = ?",
		hash, time.Now().UTC(), id, old)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// UpsertSetting creates the setting or replaces its value. The description of
// an existing setting is kept unless a new one is given.
func (q *Queries) UpsertSetting(ctx context.Context, key, value, description string) (model.SiteSetting, error) {
	now := time.Now().UTC()
	return siteSettingsTable.scan(q.db.QueryRowContext(ctx, `
		INSERT INTO site_settings (key, value, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			description = CASE WHEN excluded.description = '' THEN site_settings.description ELSE excluded.description END,
			updated_at = excluded.updated_at
		RETURNING `+siteSettingsTable.selectColumns(),
		key, value, description, now, now,
	))
}

// DeleteSetting removes the setting with the given key.
func (q *Queries) DeleteSetting(ctx context.Context, key string) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM site_settings WHERE key = ?", key)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
