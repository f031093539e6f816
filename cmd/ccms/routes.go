// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/ccms-go/internal/config"
	"github.com/olegiv/ccms-go/internal/handler"
	"github.com/olegiv/ccms-go/internal/handler/api"
	"github.com/olegiv/ccms-go/internal/middleware"
	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/scheduler"
	"github.com/olegiv/ccms-go/internal/service"
	"github.com/olegiv/ccms-go/internal/storage"
)

// apiTimeout bounds JSON API requests. Uploads and the image proxy stream
// and rely on the server write timeout instead.
const apiTimeout = 30 * time.Second

type routerDeps struct {
	cfg       *config.Config
	version   string
	db        *sql.DB
	objects   storage.ObjectStore
	procs     *service.Procedures
	sm        *scs.SessionManager
	login     *middleware.LoginProtection
	intake    *middleware.GlobalRateLimiter
	scheduler *scheduler.Scheduler
	csrf      func(http.Handler) http.Handler
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(d.cfg.IsDevelopment())))
	r.Use(middleware.RequestPath)

	health := handler.NewHealthHandler(d.db, d.objects, d.version)
	r.Get("/health", health.Health)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	apiHandler := api.NewHandler(d.procs, d.sm, d.login, d.scheduler)
	r.With(middleware.Timeout(apiTimeout)).
		Mount("/api/v1", apiHandler.Routes(d.intake.Middleware(), d.csrf))

	media := handler.NewMediaHandler(d.procs.Media, d.cfg.PublicURL, d.cfg.BasePath)
	r.Group(func(r chi.Router) {
		r.Use(d.sm.LoadAndSave, d.csrf)
		r.Use(middleware.RequireAuth(d.sm, d.procs.AdminUsers), middleware.RequireRole(model.RoleEditor))
		r.HandleFunc("/api/upload", media.Upload)
	})
	r.Get("/api/images/*", media.Image)
	r.Head("/api/images/*", media.Image)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteNotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	return r
}
