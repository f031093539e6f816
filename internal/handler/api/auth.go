// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/ccms-go/internal/middleware"
	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/service"
)

// loginRequest is the body of POST /api/v1/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	fields := map[string]string{}
	if email == "" {
		fields["email"] = "is required"
	}
	if req.Password == "" {
		fields["password"] = "is required"
	}
	if len(fields) > 0 {
		WriteValidationError(w, fields)
		return
	}

	if locked, remaining := h.login.IsAccountLocked(email); locked {
		middleware.WriteLocked(w, remaining)
		return
	}

	user, err := h.p.AdminUsers.Login(r.Context(), email, req.Password)
	if errors.Is(err, service.ErrUnauthorized) {
		nowLocked, lockDuration := h.login.RecordFailedAttempt(email)
		slog.Warn("failed login attempt",
			"email", email,
			"ip", middleware.ClientIP(r),
			"remaining_attempts", h.login.GetRemainingAttempts(email),
			"category", model.EventCategoryAuth,
		)
		if nowLocked {
			middleware.WriteLocked(w, lockDuration)
			return
		}
		WriteUnauthorized(w, "Invalid email or password")
		return
	}
	if err != nil {
		writeServiceError(w, r, "admin user", err)
		return
	}

	h.login.RecordSuccessfulLogin(email)

	// New token on privilege change prevents session fixation.
	if err := h.sm.RenewToken(r.Context()); err != nil {
		slog.Error("failed to renew session token", "error", err)
		WriteInternalError(w, "Internal server error")
		return
	}
	h.sm.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("admin logged in", "user_id", user.ID, "ip", middleware.ClientIP(r))
	WriteSuccess(w, user, nil)
}

// Logout handles POST /api/v1/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sm.Destroy(r.Context()); err != nil {
		slog.Error("failed to destroy session", "error", err)
		WriteInternalError(w, "Internal server error")
		return
	}
	WriteNoContent(w)
}

// Me handles GET /api/v1/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, middleware.GetUser(r), nil)
}
