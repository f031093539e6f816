// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "logging-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func events(t *testing.T, db *sql.DB) []model.Event {
	t.Helper()
	evs, err := store.New(db).ListEvents(context.Background(), 100)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	return evs
}

func TestEventLogHandlerLevels(t *testing.T) {
	tests := []struct {
		name      string
		log       func(*slog.Logger)
		wantLevel string
	}{
		{"error", func(l *slog.Logger) { l.Error("database connection failed") }, model.EventLevelError},
		{"warn", func(l *slog.Logger) { l.Warn("disk almost full") }, model.EventLevelWarning},
		{"info", func(l *slog.Logger) { l.Info("server started") }, ""},
		{"debug", func(l *slog.Logger) { l.Debug("tick") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDB(t)
			tt.log(slog.New(NewEventLogHandler(discardHandler{}, db)))

			got := events(t, db)
			if tt.wantLevel == "" {
				if len(got) != 0 {
					t.Fatalf("got %d events, want none", len(got))
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("got %d events, want 1", len(got))
			}
			if got[0].Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", got[0].Level, tt.wantLevel)
			}
		})
	}
}

func TestEventLogHandlerCustomLevel(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandlerWithLevel(discardHandler{}, db, slog.LevelInfo))

	logger.Info("server started")

	got := events(t, db)
	if len(got) != 1 || got[0].Level != model.EventLevelInfo {
		t.Fatalf("events = %+v, want one info event", got)
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"failed login attempt", model.EventCategoryAuth},
		{"CSRF token mismatch", model.EventCategoryAuth},
		{"contact request rejected", model.EventCategoryIntake},
		{"newsletter subscribe failed", model.EventCategoryIntake},
		{"setting public bucket policy failed", model.EventCategoryStorage},
		{"thumbnail generation failed", model.EventCategoryStorage},
		{"content cache invalidation failed", model.EventCategoryContent},
		{"something else entirely", model.EventCategorySystem},
	}
	for _, tt := range tests {
		if got := category(tt.msg, nil); got != tt.want {
			t.Errorf("category(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}

	explicit := []slog.Attr{slog.String("category", "custom")}
	if got := category("failed login", explicit); got != "custom" {
		t.Errorf("explicit category = %q, want custom", got)
	}
}

func TestEventLogHandlerMetadata(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db)).
		With("request_id", "abc").
		WithGroup("upload")

	logger.Warn("upload failed", "bucket", "company-assets", "note", "quote \" and\nnewline", "category", "storage")

	got := events(t, db)
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if got[0].Category != model.EventCategoryStorage {
		t.Errorf("Category = %q", got[0].Category)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(got[0].Metadata), &meta); err != nil {
		t.Fatalf("metadata is not JSON: %v (%s)", err, got[0].Metadata)
	}
	want := map[string]string{
		"request_id":    "abc",
		"upload.bucket": "company-assets",
		"upload.note":   "quote \" and\nnewline",
	}
	for k, v := range want {
		if meta[k] != v {
			t.Errorf("metadata[%q] = %q, want %q", k, meta[k], v)
		}
	}
}
