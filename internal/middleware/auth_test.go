// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/service"
)

type fakeUsers map[int64]*model.AdminUser

func (f fakeUsers) GetByID(_ context.Context, id int64) (*model.AdminUser, error) {
	if id < 0 {
		return nil, errors.New("database is locked")
	}
	u, ok := f[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return u, nil
}

// sessionRequest runs h inside a loaded session that holds userID.
func sessionRequest(t *testing.T, sm *scs.SessionManager, userID int64, h http.Handler) *httptest.ResponseRecorder {
	t.Helper()

	wrapped := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID != 0 {
			sm.Put(r.Context(), SessionKeyUserID, userID)
		}
		h.ServeHTTP(w, r)
	}))

	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/admin/services", nil))
	return rr
}

func TestRequireAuth(t *testing.T) {
	users := fakeUsers{
		1: {ID: 1, Email: "admin@example.com", Role: model.RoleAdmin, IsActive: true},
		2: {ID: 2, Email: "gone@example.com", Role: model.RoleEditor, IsActive: false},
	}

	tests := []struct {
		name   string
		userID int64
		want   int
	}{
		{"no session", 0, http.StatusUnauthorized},
		{"active admin", 1, http.StatusOK},
		{"inactive admin", 2, http.StatusUnauthorized},
		{"deleted admin", 99, http.StatusUnauthorized},
		{"lookup failure", -1, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := scs.New()
			var seen *model.AdminUser
			h := RequireAuth(sm, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetUser(r)
				w.WriteHeader(http.StatusOK)
			}))

			rr := sessionRequest(t, sm, tt.userID, h)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.want, rr.Body.String())
			}
			if tt.want == http.StatusOK && (seen == nil || seen.ID != tt.userID) {
				t.Errorf("user in context = %+v, want id %d", seen, tt.userID)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		user    *model.AdminUser
		minRole string
		want    int
	}{
		{"no user", nil, model.RoleEditor, http.StatusUnauthorized},
		{"editor on editor route", &model.AdminUser{ID: 1, Role: model.RoleEditor}, model.RoleEditor, http.StatusOK},
		{"editor on admin route", &model.AdminUser{ID: 1, Role: model.RoleEditor}, model.RoleAdmin, http.StatusForbidden},
		{"admin on admin route", &model.AdminUser{ID: 2, Role: model.RoleAdmin}, model.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RequireRole(tt.minRole)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), ContextKeyUser, tt.user))
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := GetUserID(req); id != 0 {
		t.Errorf("GetUserID() = %d, want 0", id)
	}

	ctx := context.WithValue(req.Context(), ContextKeyUser, &model.AdminUser{ID: 456})
	if id := GetUserID(req.WithContext(ctx)); id != 456 {
		t.Errorf("GetUserID() = %d, want 456", id)
	}
}

func TestRequestPath(t *testing.T) {
	var got string
	h := RequestPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestPath(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	if got != "/api/v1/services" {
		t.Errorf("GetRequestPath() = %q, want /api/v1/services", got)
	}
	if p := GetRequestPath(context.Background()); p != "" {
		t.Errorf("GetRequestPath(empty) = %q", p)
	}
}
