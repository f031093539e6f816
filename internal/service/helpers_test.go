// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/ccms-go/internal/storage"
	"github.com/olegiv/ccms-go/internal/store"
)

type testEnv struct {
	db      *sql.DB
	p       *Procedures
	objects *storage.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "service-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(context.Background(), db))

	objects := storage.NewMemoryStore()
	p := New(Deps{DB: db, Objects: objects})
	require.NoError(t, p.Media.EnsureBuckets(context.Background()))

	return &testEnv{db: db, p: p, objects: objects}
}

func ptr[T any](v T) *T { return &v }
