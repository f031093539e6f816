// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ccms-go/internal/middleware"
	"github.com/olegiv/ccms-go/internal/service"
)

// maxBodySize caps JSON request bodies.
const maxBodySize = 1 << 20

// writeServiceError maps a procedure error onto an HTTP response. label names
// the entity in 404 messages. Unclassified errors are logged and reported as
// a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, label string, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		WriteValidationError(w, ve.Fields)
	case errors.Is(err, service.ErrNotFound):
		WriteNotFound(w, capitalizeFirst(label)+" not found")
	case errors.Is(err, service.ErrConflict):
		WriteError(w, http.StatusConflict, "conflict", capitalizeFirst(label)+" already exists", nil)
	case errors.Is(err, service.ErrUnauthorized):
		WriteUnauthorized(w, "Invalid email or password")
	case errors.Is(err, service.ErrPayloadTooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, "payload_too_large", err.Error(), nil)
	case errors.Is(err, service.ErrUnsupportedMediaType):
		WriteError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", err.Error(), nil)
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", middleware.GetRequestPath(r.Context()),
			"entity", label,
		)
		WriteInternalError(w, "Internal server error")
	}
}

// decodeJSON reads a JSON body into dst. On failure it writes a 400 and
// returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			WriteError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large", nil)
		case errors.Is(err, io.EOF):
			WriteBadRequest(w, "Request body is required", nil)
		default:
			WriteBadRequest(w, "Invalid JSON body", nil)
		}
		return false
	}
	return true
}

// parseID reads the {id} URL parameter. On failure it writes a 400.
func parseID(w http.ResponseWriter, r *http.Request, label string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "Invalid "+label+" ID", nil)
		return 0, false
	}
	return id, true
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
