// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ccms-go/internal/auth"
	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/store"
)

func TestEnsureBootstrapAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.p.AdminUsers.EnsureBootstrapAdmin(ctx, " Admin@Example.com ", "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = env.p.AdminUsers.EnsureBootstrapAdmin(ctx, "other@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.False(t, created)

	users, err := env.p.AdminUsers.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, model.RoleAdmin, users[0].Role)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.p.AdminUsers.Create(ctx, AdminUserPatch{
		Email:    ptr("editor@example.com"),
		Name:     ptr("Editor"),
		Password: ptr("correct-horse"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleEditor, user.Role)
	assert.Nil(t, user.LastLoginAt)

	got, err := env.p.AdminUsers.Login(ctx, "EDITOR@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotNil(t, got.LastLoginAt)

	_, wrongPassword := env.p.AdminUsers.Login(ctx, "editor@example.com", "wrong-horse")
	_, unknown := env.p.AdminUsers.Login(ctx, "nobody@example.com", "correct-horse")

	_, err = env.p.AdminUsers.Update(ctx, user.ID, AdminUserPatch{IsActive: ptr(false)})
	require.NoError(t, err)
	_, inactive := env.p.AdminUsers.Login(ctx, "editor@example.com", "correct-horse")

	for name, err := range map[string]error{"wrong password": wrongPassword, "unknown": unknown, "inactive": inactive} {
		assert.ErrorIs(t, err, ErrUnauthorized, name)
		assert.Equal(t, ErrUnauthorized.Error(), err.Error(), name)
	}
}

func TestLoginRehashesWeakHash(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	weak := auth.Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}
	hash, err := weak.Hash("correct-horse")
	require.NoError(t, err)

	users := store.New(env.db).AdminUsers()
	u, err := users.Create(ctx, model.AdminUser{
		Email: "old@example.com", PasswordHash: hash, Name: "Old", Role: model.RoleAdmin, IsActive: true,
	})
	require.NoError(t, err)
	require.True(t, auth.NeedsRehash(u.PasswordHash))

	_, err = env.p.AdminUsers.Login(ctx, "old@example.com", "correct-horse")
	require.NoError(t, err)

	stored, err := users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, auth.NeedsRehash(stored.PasswordHash))

	ok, err := auth.CheckPassword("correct-horse", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAdminCreateRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	base := AdminUserPatch{Email: ptr("a@example.com"), Name: ptr("A"), Password: ptr("long-enough")}
	_, err := env.p.AdminUsers.Create(ctx, base)
	require.NoError(t, err)

	_, err = env.p.AdminUsers.Create(ctx, base)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = env.p.AdminUsers.Create(ctx, AdminUserPatch{Email: ptr("b@example.com"), Name: ptr("B"), Password: ptr("short")})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "password")

	_, err = env.p.AdminUsers.Create(ctx, AdminUserPatch{Email: ptr("c@example.com"), Name: ptr("C")})
	require.ErrorAs(t, err, &ve)

	_, err = env.p.AdminUsers.Create(ctx, AdminUserPatch{
		Email: ptr("d@example.com"), Name: ptr("D"), Password: ptr("long-enough"), Role: ptr("owner"),
	})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "role")
}

func TestAdminPasswordChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.p.AdminUsers.Create(ctx, AdminUserPatch{Email: ptr("a@example.com"), Name: ptr("A"), Password: ptr("first-password")})
	require.NoError(t, err)

	_, err = env.p.AdminUsers.Update(ctx, u.ID, AdminUserPatch{Password: ptr("second-password")})
	require.NoError(t, err)

	_, err = env.p.AdminUsers.Login(ctx, "a@example.com", "first-password")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = env.p.AdminUsers.Login(ctx, "a@example.com", "second-password")
	assert.NoError(t, err)
}

func TestRehashKeepsDeactivation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.p.AdminUsers.Create(ctx, AdminUserPatch{
		Email:    ptr("editor@example.com"),
		Name:     ptr("Editor"),
		Password: ptr("correct-horse"),
	})
	require.NoError(t, err)
	stale, err := env.p.AdminUsers.GetByID(ctx, user.ID)
	require.NoError(t, err)

	// Deactivated while a login holding the stale record was in flight.
	_, err = env.p.AdminUsers.Update(ctx, user.ID, AdminUserPatch{IsActive: ptr(false)})
	require.NoError(t, err)
	env.p.AdminUsers.rehash(ctx, *stale, "correct-horse")

	got, err := env.p.AdminUsers.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.NotEqual(t, stale.PasswordHash, got.PasswordHash)

	_, err = env.p.AdminUsers.Login(ctx, "editor@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRehashSkipsChangedPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.p.AdminUsers.Create(ctx, AdminUserPatch{
		Email:    ptr("editor@example.com"),
		Name:     ptr("Editor"),
		Password: ptr("correct-horse"),
	})
	require.NoError(t, err)
	stale, err := env.p.AdminUsers.GetByID(ctx, user.ID)
	require.NoError(t, err)

	_, err = env.p.AdminUsers.Update(ctx, user.ID, AdminUserPatch{Password: ptr("battery-staple")})
	require.NoError(t, err)
	env.p.AdminUsers.rehash(ctx, *stale, "correct-horse")

	_, err = env.p.AdminUsers.Login(ctx, "editor@example.com", "battery-staple")
	assert.NoError(t, err)
}
