// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/ccms-go/internal/middleware"
	"github.com/olegiv/ccms-go/internal/service"
)

// SubmitContact handles POST /api/v1/contact.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var in service.ContactInput
	if !decodeJSON(w, r, &in) {
		return
	}
	req, err := h.p.ContactRequests.Submit(r.Context(), in, service.Origin{
		IP:        middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		writeServiceError(w, r, "contact request", err)
		return
	}
	WriteCreated(w, req)
}

// Subscribe handles POST /api/v1/newsletter/subscribe.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var in service.SubscribeInput
	if !decodeJSON(w, r, &in) {
		return
	}
	sub, err := h.p.Newsletter.Subscribe(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, "subscription", err)
		return
	}
	WriteSuccess(w, sub, nil)
}

// unsubscribeRequest is the body of POST /api/v1/newsletter/unsubscribe.
type unsubscribeRequest struct {
	Email string `json:"email"`
}

// Unsubscribe handles POST /api/v1/newsletter/unsubscribe. Unknown
// addresses succeed too, so the endpoint does not reveal who is subscribed.
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req unsubscribeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.p.Newsletter.Unsubscribe(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, "subscription", err)
		return
	}
	WriteNoContent(w)
}

// CVUploadURL handles POST /api/v1/careers/cv-upload-url.
func (h *Handler) CVUploadURL(w http.ResponseWriter, r *http.Request) {
	var req service.CVUploadRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	up, err := h.p.CareerApplications.UploadURL(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "cv upload", err)
		return
	}
	WriteSuccess(w, up, nil)
}

// SubmitApplication handles POST /api/v1/careers/applications.
func (h *Handler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var in service.ApplicationInput
	if !decodeJSON(w, r, &in) {
		return
	}
	app, err := h.p.CareerApplications.Submit(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, "application", err)
		return
	}
	WriteCreated(w, app)
}
