// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.p.Services.Create(ctx, ServicePatch{Title: ptr("A"), Order: ptr(0)})
	require.NoError(t, err)
	b, err := env.p.Services.Create(ctx, ServicePatch{Title: ptr("B"), Order: ptr(1)})
	require.NoError(t, err)

	// Prime the cache so the reorder has to invalidate it.
	_, err = env.p.Services.ListActive(ctx)
	require.NoError(t, err)

	require.NoError(t, env.p.Services.Reorder(ctx, []OrderUpdate{{ID: a.ID, Order: 1}, {ID: b.ID, Order: 0}}))

	active, err := env.p.Services.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, b.ID, active[0].ID)
	assert.Equal(t, a.ID, active[1].ID)
}

// A failing item does not roll back the others: the batch is deliberately
// non-atomic.
func TestReorderPartialFailureKeepsAppliedWrites(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.p.Services.Create(ctx, ServicePatch{Title: ptr("A")})
	require.NoError(t, err)
	b, err := env.p.Services.Create(ctx, ServicePatch{Title: ptr("B")})
	require.NoError(t, err)

	err = env.p.Services.Reorder(ctx, []OrderUpdate{
		{ID: a.ID, Order: 7},
		{ID: 9999, Order: 1},
		{ID: b.ID, Order: 8},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	gotA, err := env.p.Services.GetByID(ctx, a.ID)
	require.NoError(t, err)
	gotB, err := env.p.Services.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, gotA.Order)
	assert.Equal(t, 8, gotB.Order)
}

func TestReorderValidatesBeforeWriting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.p.Services.Create(ctx, ServicePatch{Title: ptr("A"), Order: ptr(2)})
	require.NoError(t, err)

	err = env.p.Services.Reorder(ctx, []OrderUpdate{{ID: a.ID, Order: 5}, {ID: a.ID, Order: -1}})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "items[1].order")

	got, err := env.p.Services.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Order)
}
