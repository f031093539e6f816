// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ccms-go/internal/config"
	"github.com/olegiv/ccms-go/internal/middleware"
	"github.com/olegiv/ccms-go/internal/scheduler"
	"github.com/olegiv/ccms-go/internal/service"
	"github.com/olegiv/ccms-go/internal/session"
	"github.com/olegiv/ccms-go/internal/storage"
	"github.com/olegiv/ccms-go/internal/store"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "router.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(ctx, db))

	objects := storage.NewMemoryStore()
	procs := service.New(service.Deps{DB: db, Objects: objects})
	require.NoError(t, procs.Media.EnsureBuckets(ctx))
	require.NoError(t, objects.PutObject(ctx, service.AssetsBucket, "logos/x.png", strings.NewReader("PNG"), 3, "image/png"))

	lp := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	t.Cleanup(lp.Stop)

	return newRouter(routerDeps{
		cfg:       &config.Config{Env: "development"},
		version:   "test",
		db:        db,
		objects:   objects,
		procs:     procs,
		sm:        session.New(db, true),
		login:     lp,
		intake:    middleware.NewGlobalRateLimiter(100, 100),
		scheduler: scheduler.New(slog.New(slog.NewTextHandler(io.Discard, nil))),
		csrf:      middleware.CSRF(middleware.DefaultCSRFConfig(make([]byte, 32), true, "")),
	})
}

func TestRouter(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"readiness", http.MethodGet, "/health/ready", http.StatusOK},
		{"api status", http.MethodGet, "/api/v1/", http.StatusOK},
		{"public list", http.MethodGet, "/api/v1/services", http.StatusOK},
		{"admin without session", http.MethodGet, "/api/v1/admin/services", http.StatusUnauthorized},
		{"upload without session", http.MethodPost, "/api/upload", http.StatusUnauthorized},
		{"image", http.MethodGet, "/api/images/company-assets/logos/x.png", http.StatusOK},
		{"missing image", http.MethodGet, "/api/images/company-assets/logos/nope.png", http.StatusNotFound},
		{"unknown route", http.MethodGet, "/wp-login.php", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}
}

func TestRouterSecurityHeaders(t *testing.T) {
	r := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}
