// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ccms-go/internal/middleware"
	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/scheduler"
	"github.com/olegiv/ccms-go/internal/service"
)

// Stats handles GET /api/v1/admin/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.p.Stats.GetStats(r.Context())
	if err != nil {
		writeServiceError(w, r, "stats", err)
		return
	}
	WriteSuccess(w, stats, nil)
}

// =============================================================================
// ADMIN USERS
// =============================================================================

// ListAdminUsers handles GET /api/v1/admin/admin-users.
func (h *Handler) ListAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.p.AdminUsers.List(r.Context())
	if err != nil {
		writeServiceError(w, r, "admin user", err)
		return
	}
	WriteList(w, users)
}

// GetAdminUser handles GET /api/v1/admin/admin-users/{id}.
func (h *Handler) GetAdminUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "admin user")
	if !ok {
		return
	}
	u, err := h.p.AdminUsers.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "admin user", err)
		return
	}
	WriteSuccess(w, u, nil)
}

// CreateAdminUser handles POST /api/v1/admin/admin-users.
func (h *Handler) CreateAdminUser(w http.ResponseWriter, r *http.Request) {
	var p service.AdminUserPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	u, err := h.p.AdminUsers.Create(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, "admin user", err)
		return
	}
	WriteCreated(w, u)
}

// UpdateAdminUser handles PUT|PATCH /api/v1/admin/admin-users/{id}.
func (h *Handler) UpdateAdminUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "admin user")
	if !ok {
		return
	}
	var p service.AdminUserPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	if id == middleware.GetUserID(r) && p.IsActive != nil && !*p.IsActive {
		WriteValidationError(w, map[string]string{"isActive": "cannot deactivate your own account"})
		return
	}
	u, err := h.p.AdminUsers.Update(r.Context(), id, p)
	if err != nil {
		writeServiceError(w, r, "admin user", err)
		return
	}
	WriteSuccess(w, u, nil)
}

// DeleteAdminUser handles DELETE /api/v1/admin/admin-users/{id}.
func (h *Handler) DeleteAdminUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "admin user")
	if !ok {
		return
	}
	if id == middleware.GetUserID(r) {
		WriteBadRequest(w, "Cannot delete your own account", nil)
		return
	}
	if err := h.p.AdminUsers.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, "admin user", err)
		return
	}
	WriteNoContent(w)
}

// =============================================================================
// SETTINGS
// =============================================================================

// PublicSettings handles GET /api/v1/settings.
func (h *Handler) PublicSettings(w http.ResponseWriter, r *http.Request) {
	m, err := h.p.Settings.Map(r.Context())
	if err != nil {
		writeServiceError(w, r, "setting", err)
		return
	}
	WriteSuccess(w, m, nil)
}

// ListSettings handles GET /api/v1/admin/settings.
func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.p.Settings.List(r.Context())
	if err != nil {
		writeServiceError(w, r, "setting", err)
		return
	}
	WriteList(w, settings)
}

// GetSetting handles GET /api/v1/admin/settings/{key}.
func (h *Handler) GetSetting(w http.ResponseWriter, r *http.Request) {
	s, err := h.p.Settings.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeServiceError(w, r, "setting", err)
		return
	}
	if s == nil {
		WriteNotFound(w, "Setting not found")
		return
	}
	WriteSuccess(w, s, nil)
}

// settingRequest is the body of PUT /api/v1/admin/settings/{key}.
type settingRequest struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

// SetSetting handles PUT /api/v1/admin/settings/{key}.
func (h *Handler) SetSetting(w http.ResponseWriter, r *http.Request) {
	var req settingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.p.Settings.Set(r.Context(), chi.URLParam(r, "key"), req.Value, req.Description)
	if err != nil {
		writeServiceError(w, r, "setting", err)
		return
	}
	WriteSuccess(w, s, nil)
}

// SetSettings handles PUT /api/v1/admin/settings with a key to value object.
func (h *Handler) SetSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if !decodeJSON(w, r, &values) {
		return
	}
	if err := h.p.Settings.SetMany(r.Context(), values); err != nil {
		writeServiceError(w, r, "setting", err)
		return
	}
	h.PublicSettings(w, r)
}

// DeleteSetting handles DELETE /api/v1/admin/settings/{key}.
func (h *Handler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	if err := h.p.Settings.Delete(r.Context(), chi.URLParam(r, "key")); err != nil {
		writeServiceError(w, r, "setting", err)
		return
	}
	WriteNoContent(w)
}

// =============================================================================
// INTAKE INBOXES
// =============================================================================

// statusRequest is the body of the PUT .../{id}/status routes.
type statusRequest struct {
	Status string `json:"status"`
}

// inbox serves an intake record type to admins.
type inbox[T any] struct {
	label        string
	list         func(ctx context.Context) ([]T, error)
	get          func(ctx context.Context, id int64) (*T, error)
	updateStatus func(ctx context.Context, id int64, status string) (*T, error)
	remove       func(ctx context.Context, id int64) error
}

// mount registers the inbox routes; nil procedures get no route.
func (ib inbox[T]) mount(r chi.Router) {
	if ib.list != nil {
		r.Get("/", ib.handleList)
	}
	if ib.get != nil {
		r.Get("/{id}", ib.handleGet)
	}
	r.Put("/{id}/status", ib.handleStatus)
	r.Delete("/{id}", ib.handleDelete)
}

func (ib inbox[T]) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := ib.list(r.Context())
	if err != nil {
		writeServiceError(w, r, ib.label, err)
		return
	}
	WriteList(w, items)
}

func (ib inbox[T]) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, ib.label)
	if !ok {
		return
	}
	v, err := ib.get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, ib.label, err)
		return
	}
	WriteSuccess(w, v, nil)
}

func (ib inbox[T]) handleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, ib.label)
	if !ok {
		return
	}
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v, err := ib.updateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, r, ib.label, err)
		return
	}
	WriteSuccess(w, v, nil)
}

func (ib inbox[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, ib.label)
	if !ok {
		return
	}
	if err := ib.remove(r.Context(), id); err != nil {
		writeServiceError(w, r, ib.label, err)
		return
	}
	WriteNoContent(w)
}

func (h *Handler) contactInbox() inbox[model.ContactRequest] {
	c := h.p.ContactRequests
	return inbox[model.ContactRequest]{
		label: "contact request", list: c.List, get: c.GetByID, updateStatus: c.UpdateStatus, remove: c.Delete,
	}
}

func (h *Handler) applicationInbox() inbox[model.CareerApplication] {
	c := h.p.CareerApplications
	return inbox[model.CareerApplication]{
		label: "application", list: c.List, get: c.GetByID, updateStatus: c.UpdateStatus, remove: c.Delete,
	}
}

func (h *Handler) newsletterInbox() inbox[model.NewsletterSubscription] {
	n := h.p.Newsletter
	return inbox[model.NewsletterSubscription]{
		label: "subscription", updateStatus: n.UpdateStatus, remove: n.Delete,
	}
}

// ListSubscriptions handles GET /api/v1/admin/newsletter; ?active=true
// limits the list to active subscribers.
func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	list := h.p.Newsletter.List
	if r.URL.Query().Get("active") == "true" {
		list = h.p.Newsletter.ListActive
	}
	subs, err := list(r.Context())
	if err != nil {
		writeServiceError(w, r, "subscription", err)
		return
	}
	WriteList(w, subs)
}

// CVDownloadURL handles GET /api/v1/admin/career-applications/{id}/cv-url.
func (h *Handler) CVDownloadURL(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "application")
	if !ok {
		return
	}
	url, err := h.p.CareerApplications.CVDownloadURL(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "application", err)
		return
	}
	WriteSuccess(w, map[string]any{
		"url":       url,
		"expiresIn": int(service.CVDownloadExpiry.Seconds()),
	}, nil)
}

// =============================================================================
// EVENTS AND JOBS
// =============================================================================

// ListEvents handles GET /api/v1/admin/events?limit=N.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteBadRequest(w, "Invalid limit", nil)
			return
		}
		limit = n
	}
	events, err := h.p.Events.List(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, "event", err)
		return
	}
	WriteList(w, events)
}

// PurgeEvents handles DELETE /api/v1/admin/events?olderThanDays=N.
func (h *Handler) PurgeEvents(w http.ResponseWriter, r *http.Request) {
	days, err := strconv.Atoi(r.URL.Query().Get("olderThanDays"))
	if err != nil || days < 1 {
		WriteValidationError(w, map[string]string{"olderThanDays": "must be a positive number of days"})
		return
	}
	n, err := h.p.Events.Purge(r.Context(), time.Duration(days)*24*time.Hour)
	if err != nil {
		writeServiceError(w, r, "event", err)
		return
	}
	WriteSuccess(w, map[string]int64{"deleted": n}, nil)
}

// ListJobs handles GET /api/v1/admin/jobs.
func (h *Handler) ListJobs(w http.ResponseWriter, _ *http.Request) {
	var jobs []scheduler.JobInfo
	if h.scheduler != nil {
		jobs = h.scheduler.List()
	}
	WriteList(w, jobs)
}

// RunJob handles POST /api/v1/admin/jobs/{name}/run.
func (h *Handler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if h.scheduler == nil {
		WriteNotFound(w, "Job not found")
		return
	}
	err := h.scheduler.TriggerNow(r.Context(), name)
	switch {
	case errors.Is(err, scheduler.ErrJobNotFound):
		WriteNotFound(w, "Job not found")
	case err != nil:
		WriteError(w, http.StatusInternalServerError, "job_failed", err.Error(), nil)
	default:
		WriteSuccess(w, map[string]string{"job": name, "status": "completed"}, nil)
	}
}
