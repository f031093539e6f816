// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/ccms-go/internal/auth"
	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/store"
)

// AdminUserPatch creates or changes an admin account. Password is plain text
// and is hashed before it reaches the store.
type AdminUserPatch struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

func (p AdminUserPatch) apply(u *model.AdminUser) {
	if p.Email != nil {
		u.Email = normalizeEmail(*p.Email)
	}
	set(&u.Name, p.Name)
	set(&u.Role, p.Role)
	set(&u.IsActive, p.IsActive)
}

// AdminUsers manages admin accounts and the login check.
type AdminUsers struct {
	db  *sql.DB
	q   *store.Queries
	now func() time.Time
}

// List returns every account ordered by email.
func (a *AdminUsers) List(ctx context.Context) ([]model.AdminUser, error) {
	users, err := a.q.AdminUsers().List(ctx)
	return users, storeErr("admin user", err)
}

// GetByID returns the account or ErrNotFound.
func (a *AdminUsers) GetByID(ctx context.Context, id int64) (*model.AdminUser, error) {
	u, err := a.q.AdminUsers().Get(ctx, id)
	if err != nil {
		return nil, storeErr("admin user", err)
	}
	return &u, nil
}

// Create adds an account. Email and password are required; a duplicate
// email fails with ErrConflict.
func (a *AdminUsers) Create(ctx context.Context, p AdminUserPatch) (*model.AdminUser, error) {
	if p.Password == nil {
		return nil, invalid("password", "is required")
	}
	u := model.AdminUser{Role: model.RoleEditor, IsActive: true}
	p.apply(&u)
	if err := a.prepare(ctx, &u, 0, p.Password); err != nil {
		return nil, err
	}

	created, err := a.q.AdminUsers().Create(ctx, u)
	if err != nil {
		return nil, storeErr("admin user", err)
	}
	return &created, nil
}

// Update applies p to account id. A non-nil Password replaces the hash.
func (a *AdminUsers) Update(ctx context.Context, id int64, p AdminUserPatch) (*model.AdminUser, error) {
	repo := a.q.AdminUsers()
	prev, err := repo.Get(ctx, id)
	if err != nil {
		return nil, storeErr("admin user", err)
	}
	u := prev
	p.apply(&u)
	if err := a.prepare(ctx, &u, id, p.Password); err != nil {
		return nil, err
	}

	updated, err := repo.Update(ctx, id, prev, u)
	if err != nil {
		return nil, storeErr("admin user", err)
	}
	return &updated, nil
}

func (a *AdminUsers) prepare(ctx context.Context, u *model.AdminUser, id int64, password *string) error {
	if err := validateStruct(u); err != nil {
		return err
	}
	if password != nil {
		if len(*password) < auth.MinPasswordLength {
			return invalid("password", fmt.Sprintf("must be at least %d characters", auth.MinPasswordLength))
		}
		hash, err := auth.HashPassword(*password)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		u.PasswordHash = hash
	}
	exists, err := a.q.AdminUsers().KeyExists(ctx, u.Email, id)
	if err != nil {
		return storeErr("admin user", err)
	}
	if exists {
		return fmt.Errorf("email %q already registered: %w", u.Email, ErrConflict)
	}
	return nil
}

// Delete removes account id or returns ErrNotFound.
func (a *AdminUsers) Delete(ctx context.Context, id int64) error {
	return storeErr("admin user", a.q.AdminUsers().Delete(ctx, id))
}

// Login checks the credentials of an active account. Unknown email, inactive
// account, and wrong password all return ErrUnauthorized after the same
// amount of hashing work.
func (a *AdminUsers) Login(ctx context.Context, email, password string) (*model.AdminUser, error) {
	u, err := a.q.AdminUsers().GetByKey(ctx, normalizeEmail(email))
	if err != nil && !store.IsNotFound(err) {
		return nil, storeErr("admin user", err)
	}
	if err != nil || !u.IsActive {
		auth.BurnCheck(password)
		return nil, ErrUnauthorized
	}

	ok, err := auth.CheckPassword(password, u.PasswordHash)
	if err != nil {
		slog.Error("stored password hash is unreadable", "user_id", u.ID, "error", err)
		return nil, ErrUnauthorized
	}
	if !ok {
		return nil, ErrUnauthorized
	}

	now := time.Now
	if a.now != nil {
		now = a.now
	}
	at := now().UTC()
	if err := a.q.TouchLastLogin(ctx, u.ID, at); err != nil {
		slog.Warn("failed to record last login", "user_id", u.ID, "error", err)
	} else {
		u.LastLoginAt = &at
	}

	if auth.NeedsRehash(u.PasswordHash) {
		a.rehash(ctx, u, password)
	}
	return &u, nil
}

// rehash replaces only the password hash of u, and only while the stored
// hash is still the one that was just verified.
func (a *AdminUsers) rehash(ctx context.Context, u model.AdminUser, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		slog.Warn("password rehash failed", "user_id", u.ID, "error", err)
		return
	}
	if err := a.q.ReplacePasswordHash(ctx, u.ID, u.PasswordHash, hash); err != nil && !store.IsNotFound(err) {
		slog.Warn("password rehash failed", "user_id", u.ID, "error", err)
	}
}

// EnsureBootstrapAdmin creates the first admin account when there is none.
// Returns true when an account was created.
func (a *AdminUsers) EnsureBootstrapAdmin(ctx context.Context, email, password string) (bool, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hashing bootstrap password: %w", err)
	}
	return store.Seed(ctx, a.db, store.AdminSeed{
		Email:        normalizeEmail(email),
		Name:         store.DefaultAdminName,
		PasswordHash: hash,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
