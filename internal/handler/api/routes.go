// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ccms-go/internal/middleware"
	"github.com/olegiv/ccms-go/internal/model"
)

// Routes returns the /api/v1 router. intakeLimit throttles the public forms;
// csrf guards every route that acts on an admin session.
func (h *Handler) Routes(intakeLimit, csrf func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(h.sm.LoadAndSave)

	r.Get("/", h.Status)

	resources := h.resources()

	// Public content reads (active records only).
	for _, res := range resources {
		res.mountPublic(r)
	}
	r.Get("/hero/{page}", h.HeroByPage)
	r.Get("/settings", h.PublicSettings)

	// Public intake.
	r.Group(func(r chi.Router) {
		r.Use(intakeLimit)
		r.Post("/contact", h.SubmitContact)
		r.Post("/newsletter/subscribe", h.Subscribe)
		r.Post("/newsletter/unsubscribe", h.Unsubscribe)
		r.Post("/careers/cv-upload-url", h.CVUploadURL)
		r.Post("/careers/applications", h.SubmitApplication)
	})

	requireAuth := middleware.RequireAuth(h.sm, h.p.AdminUsers)

	r.Route("/auth", func(r chi.Router) {
		r.Use(csrf)
		r.With(h.login.Middleware()).Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.With(requireAuth).Get("/me", h.Me)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(csrf, requireAuth, middleware.RequireRole(model.RoleEditor))

		for _, res := range resources {
			res.mountAdmin(r)
		}

		r.Get("/stats", h.Stats)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.ListSettings)
			r.Put("/", h.SetSettings)
			r.Get("/{key}", h.GetSetting)
			r.Put("/{key}", h.SetSetting)
			r.Delete("/{key}", h.DeleteSetting)
		})

		r.Route("/contact-requests", h.contactInbox().mount)
		r.Route("/career-applications", func(r chi.Router) {
			h.applicationInbox().mount(r)
			r.Get("/{id}/cv-url", h.CVDownloadURL)
		})
		r.Route("/newsletter", func(r chi.Router) {
			r.Get("/", h.ListSubscriptions)
			h.newsletterInbox().mount(r)
		})

		r.Get("/events", h.ListEvents)

		// Account management and maintenance are admin-only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin())

			r.Route("/admin-users", func(r chi.Router) {
				r.Get("/", h.ListAdminUsers)
				r.Post("/", h.CreateAdminUser)
				r.Get("/{id}", h.GetAdminUser)
				r.Put("/{id}", h.UpdateAdminUser)
				r.Patch("/{id}", h.UpdateAdminUser)
				r.Delete("/{id}", h.DeleteAdminUser)
			})

			r.Delete("/events", h.PurgeEvents)
			r.Get("/jobs", h.ListJobs)
			r.Post("/jobs/{name}/run", h.RunJob)
		})
	})

	return r
}
