// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/ccms-go/internal/service"
)

// assertErrorResponse unmarshals and validates an error response.
func assertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error.Code != expectedCode {
		t.Errorf("expected code '%s', got %s", expectedCode, resp.Error.Code)
	}
	return resp
}

func TestWriteList(t *testing.T) {
	w := httptest.NewRecorder()
	WriteList[string](w, nil)

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got %s", ct)
	}
	if body := strings.TrimSpace(w.Body.String()); body != `{"data":[],"meta":{"total":0}}` {
		t.Errorf("body = %s", body)
	}
}

func TestWriteValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteValidationError(w, map[string]string{"title": "is required"})

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
	resp := assertErrorResponse(t, w, "validation_error")
	if resp.Error.Details["title"] != "is required" {
		t.Errorf("details = %v", resp.Error.Details)
	}
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &service.ValidationError{Fields: map[string]string{"email": "is required"}}, http.StatusUnprocessableEntity, "validation_error"},
		{"wrapped not found", fmt.Errorf("service 4: %w", service.ErrNotFound), http.StatusNotFound, "not_found"},
		{"conflict", fmt.Errorf("service: %w", service.ErrConflict), http.StatusConflict, "conflict"},
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"too large", service.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, "payload_too_large"},
		{"unsupported", service.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, "unsupported_media_type"},
		{"unknown", errors.New("disk I/O error"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			writeServiceError(w, r, "service", tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := assertErrorResponse(t, w, tt.wantCode)
			if tt.wantCode == "internal_error" && strings.Contains(resp.Error.Message, "disk") {
				t.Errorf("internal error leaked: %q", resp.Error.Message)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantOK   bool
		wantCode int
	}{
		{"valid", `{"email":"a@example.com"}`, true, http.StatusOK},
		{"empty", ``, false, http.StatusBadRequest},
		{"malformed", `{"email":`, false, http.StatusBadRequest},
		{"too large", `{"email":"` + strings.Repeat("a", maxBodySize) + `"}`, false, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst struct {
				Email string `json:"email"`
			}
			if ok := decodeJSON(w, r, &dst); ok != tt.wantOK {
				t.Fatalf("decodeJSON() = %v, want %v", ok, tt.wantOK)
			}
			if w.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, w.Code)
			}
		})
	}
}
