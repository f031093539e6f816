// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/olegiv/ccms-go/internal/model"
)

// testDB creates a migrated database in a temporary directory.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "ccms-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := testDB(t)
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestServiceCreateAndGet(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	services := New(db).Services()

	created, err := services.Create(ctx, model.Service{
		Slug:     "inbound-support",
		Title:    "Inbound Support",
		Features: model.StringList{"24/7", "Omnichannel"},
		Order:    2,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Error("ID should not be 0")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}

	got, err := services.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Inbound Support" {
		t.Errorf("Title = %q, want %q", got.Title, "Inbound Support")
	}
	if !reflect.DeepEqual(got.Features, model.StringList{"24/7", "Omnichannel"}) {
		t.Errorf("Features = %v", got.Features)
	}

	bySlug, err := services.GetByKey(ctx, "inbound-support")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if bySlug.ID != created.ID {
		t.Errorf("GetByKey ID = %d, want %d", bySlug.ID, created.ID)
	}

	_, err = services.GetByKey(ctx, "missing")
	if !IsNotFound(err) {
		t.Errorf("GetByKey(missing) error = %v, want ErrNoRows", err)
	}
}

func TestListOrderingAndActiveSubset(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	metrics := New(db).Metrics()

	for _, m := range []model.Metric{
		{Label: "c", Value: "3", Order: 3, IsActive: true},
		{Label: "a", Value: "1", Order: 1, IsActive: false},
		{Label: "b", Value: "2", Order: 2, IsActive: true},
		{Label: "a2", Value: "1", Order: 1, IsActive: true},
	} {
		if _, err := metrics.Create(ctx, m); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := metrics.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len(List) = %d, want 4", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Order < all[i-1].Order {
			t.Errorf("List not ordered: %d before %d", all[i-1].Order, all[i].Order)
		}
	}

	active, err := metrics.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 3 {
		t.Fatalf("len(ListActive) = %d, want 3", len(active))
	}
	ids := make(map[int64]bool, len(all))
	for _, m := range all {
		ids[m.ID] = true
	}
	for _, m := range active {
		if !m.IsActive {
			t.Errorf("inactive metric %q in ListActive", m.Label)
		}
		if !ids[m.ID] {
			t.Errorf("metric %d in ListActive but not in List", m.ID)
		}
	}

	n, err := metrics.CountActive(ctx)
	if err != nil {
		t.Fatalf("CountActive: %v", err)
	}
	if n != 3 {
		t.Errorf("CountActive = %d, want 3", n)
	}
}

func TestBlogPostTagsRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	posts := New(db).BlogPosts()

	tests := []struct {
		name string
		tags model.StringList
		want model.StringList
	}{
		{name: "two tags", tags: model.StringList{"a", "b"}, want: model.StringList{"a", "b"}},
		{name: "empty", tags: model.StringList{}, want: model.StringList{}},
		{name: "absent", tags: nil, want: model.StringList{}},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := posts.Create(ctx, model.BlogPost{
				Slug:    "post-" + string(rune('a'+i)),
				Title:   "Post",
				Content: "body",
				Tags:    tt.tags,
			})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			got, err := posts.Get(ctx, created.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if !reflect.DeepEqual(got.Tags, tt.want) {
				t.Errorf("Tags = %#v, want %#v", got.Tags, tt.want)
			}
			if got.PublishedAt != nil {
				t.Errorf("PublishedAt = %v, want nil", got.PublishedAt)
			}
		})
	}
}

func TestCorruptStringListIsAnError(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	posts := New(db).BlogPosts()

	created, err := posts.Create(ctx, model.BlogPost{Slug: "corrupt", Title: "x", Content: "x"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := db.Exec("UPDATE blog_posts SET tags = 'a,b' WHERE id = ?", created.ID); err != nil {
		t.Fatalf("corrupting tags: %v", err)
	}

	if _, err := posts.Get(ctx, created.ID); err == nil {
		t.Fatal("Get should fail on a corrupt tag list")
	}
}

func TestPublishedAtRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	posts := New(db).BlogPosts()

	when := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	created, err := posts.Create(ctx, model.BlogPost{
		Slug: "published", Title: "x", Content: "x", IsPublished: true, PublishedAt: &when,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.PublishedAt == nil || !created.PublishedAt.Equal(when) {
		t.Errorf("PublishedAt = %v, want %v", created.PublishedAt, when)
	}

	published, err := posts.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(published) != 1 {
		t.Errorf("len(published) = %d, want 1", len(published))
	}
}

func TestNewestFirstOrdering(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	requests := New(db).ContactRequests()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := requests.Create(ctx, model.ContactRequest{
			Name: name, Email: name + "@example.com", Message: "hello there", Status: model.ContactPending,
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := requests.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 || list[0].Name != "third" || list[2].Name != "first" {
		names := make([]string, len(list))
		for i, r := range list {
			names[i] = r.Name
		}
		t.Errorf("List order = %v, want newest first", names)
	}
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	clients := New(db).Clients()

	_, err := clients.Update(ctx, 999, model.Client{}, model.Client{Name: "ghost"})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Update(missing) error = %v, want ErrNoRows", err)
	}
	if err := clients.Delete(ctx, 999); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Delete(missing) error = %v, want ErrNoRows", err)
	}
	if err := clients.SetOrder(ctx, 999, 1); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("SetOrder(missing) error = %v, want ErrNoRows", err)
	}
}

func TestUpdateWritesOnlyChangedColumns(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	offices := New(db).Offices()

	o, err := offices.Create(ctx, model.Office{City: "Lisbon", Country: "Portugal", IsActive: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := offices.ToggleActive(ctx, o.ID); err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}

	// o still says active; only Phone differs from it.
	next := o
	next.Phone = "+351 000"
	updated, err := offices.Update(ctx, o.ID, o, next)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.IsActive {
		t.Error("Update reverted a column it did not change")
	}
	if updated.Phone != "+351 000" {
		t.Errorf("Phone = %q, want +351 000", updated.Phone)
	}

	same, err := offices.Update(ctx, o.ID, updated, updated)
	if err != nil {
		t.Fatalf("Update(no changes): %v", err)
	}
	if same.City != "Lisbon" || same.IsActive {
		t.Errorf("Update(no changes) = %+v", same)
	}
}

func TestSameValue(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"equal strings", "a", "a", true},
		{"different strings", "a", "b", false},
		{"equal lists", model.StringList{"x", "y"}, model.StringList{"x", "y"}, true},
		{"different lists", model.StringList{"x"}, model.StringList{"y"}, false},
		{"same instant other zone", at, at.In(time.FixedZone("x", 3600)), true},
		{"nil and time", nil, at, false},
		{"both nil", nil, nil, true},
		{"bool", true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameValue(tt.a, tt.b); got != tt.want {
				t.Errorf("sameValue(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestReplacePasswordHash(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	u, err := q.AdminUsers().Create(ctx, model.AdminUser{Email: "a@example.com", Name: "A", PasswordHash: "old", Role: model.RoleEditor})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := q.ReplacePasswordHash(ctx, u.ID, "stale", "new"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("ReplacePasswordHash(stale) error = %v, want ErrNoRows", err)
	}
	if err := q.ReplacePasswordHash(ctx, u.ID, "old", "new"); err != nil {
		t.Fatalf("ReplacePasswordHash: %v", err)
	}
	got, err := q.AdminUsers().Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PasswordHash != "new" || got.IsActive {
		t.Errorf("after replace = %+v", got)
	}
}

func TestUpdateToggleAndDelete(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	offices := New(db).Offices()

	o, err := offices.Create(ctx, model.Office{City: "Lisbon", Country: "Portugal", IsActive: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	next := o
	next.Phone = "+351 000"
	updated, err := offices.Update(ctx, o.ID, o, next)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Phone != "+351 000" || updated.City != "Lisbon" {
		t.Errorf("Update result = %+v", updated)
	}

	toggled, err := offices.ToggleActive(ctx, o.ID)
	if err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}
	if toggled.IsActive {
		t.Error("ToggleActive should deactivate")
	}

	if err := offices.Delete(ctx, o.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := offices.Get(ctx, o.ID); !IsNotFound(err) {
		t.Errorf("Get after Delete error = %v, want ErrNoRows", err)
	}
}

func TestKeyExistsAndUniqueViolation(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	jobs := New(db).JobPositions()

	job := model.JobPosition{
		Slug: "agent", Title: "Agent", Department: "Ops", Location: "Remote",
		EmploymentType: model.EmploymentFullTime, Description: "Answer calls",
	}
	created, err := jobs.Create(ctx, job)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	exists, err := jobs.KeyExists(ctx, "agent", 0)
	if err != nil {
		t.Fatalf("KeyExists: %v", err)
	}
	if !exists {
		t.Error("KeyExists(agent) = false, want true")
	}

	exists, err = jobs.KeyExists(ctx, "agent", created.ID)
	if err != nil {
		t.Fatalf("KeyExists excluding self: %v", err)
	}
	if exists {
		t.Error("KeyExists excluding own id = true, want false")
	}

	_, err = jobs.Create(ctx, job)
	if !IsUniqueViolation(err) {
		t.Errorf("duplicate Create error = %v, want unique violation", err)
	}
	if !IsUniqueViolation(fmt.Errorf("creating job: %w", err)) {
		t.Error("wrapped unique violation not recognised")
	}
	if IsUniqueViolation(errors.New("UNIQUE constraint failed: job_positions.slug")) {
		t.Error("plain error text matched as unique violation")
	}
	if IsUniqueViolation(nil) {
		t.Error("IsUniqueViolation(nil) = true")
	}
}

func TestUpsertSetting(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	first, err := q.UpsertSetting(ctx, "hotline", "123", "Hotline number")
	if err != nil {
		t.Fatalf("UpsertSetting: %v", err)
	}
	second, err := q.UpsertSetting(ctx, "hotline", "456", "")
	if err != nil {
		t.Fatalf("UpsertSetting again: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created a new row: %d != %d", second.ID, first.ID)
	}
	if second.Value != "456" {
		t.Errorf("Value = %q, want %q", second.Value, "456")
	}
	if second.Description != "Hotline number" {
		t.Errorf("Description = %q, want it kept", second.Description)
	}

	if err := q.DeleteSetting(ctx, "hotline"); err != nil {
		t.Fatalf("DeleteSetting: %v", err)
	}
	if err := q.DeleteSetting(ctx, "hotline"); !IsNotFound(err) {
		t.Errorf("second DeleteSetting error = %v, want ErrNoRows", err)
	}
}

func TestSetStatus(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	apps := New(db).CareerApplications()

	app, err := apps.Create(ctx, model.CareerApplication{
		PositionTitle: "Agent", FullName: "Jane Doe", Email: "jane@example.com",
		CVObjectKey: "cvs/1-a.pdf", Status: model.ApplicationPending,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if app.PositionID != nil {
		t.Errorf("PositionID = %v, want nil", *app.PositionID)
	}

	updated, err := apps.SetStatus(ctx, app.ID, model.ApplicationInterview)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != model.ApplicationInterview {
		t.Errorf("Status = %q, want %q", updated.Status, model.ApplicationInterview)
	}

	pending, err := apps.CountByStatus(ctx, model.ApplicationPending)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if pending != 0 {
		t.Errorf("pending = %d, want 0", pending)
	}

	if _, err := New(db).Metrics().SetStatus(ctx, 1, "x"); err == nil {
		t.Error("SetStatus on a table without status should fail")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	seed := AdminSeed{Email: "admin@example.com", PasswordHash: "hash"}

	created, err := Seed(ctx, db, seed)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if !created {
		t.Error("first Seed should create the admin")
	}

	created, err = Seed(ctx, db, seed)
	if err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if created {
		t.Error("second Seed should not create the admin again")
	}

	q := New(db)
	n, err := q.AdminUsers().Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("admin count = %d, want 1", n)
	}

	admin, err := q.AdminUsers().GetByKey(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if admin.Role != model.RoleAdmin || !admin.IsActive || admin.Name != DefaultAdminName {
		t.Errorf("bootstrap admin = %+v", admin)
	}

	settings, err := q.SiteSettings().List(ctx)
	if err != nil {
		t.Fatalf("List settings: %v", err)
	}
	if len(settings) != len(defaultSettings) {
		t.Errorf("settings = %d, want %d", len(settings), len(defaultSettings))
	}
}

func TestTouchLastLogin(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	user, err := q.AdminUsers().Create(ctx, model.AdminUser{
		Email: "ed@example.com", PasswordHash: "x", Name: "Ed", Role: model.RoleEditor, IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.LastLoginAt != nil {
		t.Error("LastLoginAt should start nil")
	}

	if err := q.TouchLastLogin(ctx, user.ID, time.Now()); err != nil {
		t.Fatalf("TouchLastLogin: %v", err)
	}
	got, err := q.AdminUsers().Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.LastLoginAt == nil {
		t.Error("LastLoginAt should be set")
	}
}

func TestEvents(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	old := time.Now().Add(-48 * time.Hour)
	for i, at := range []time.Time{old, time.Now()} {
		if err := q.CreateEvent(ctx, CreateEventParams{
			Level: model.EventLevelWarning, Category: model.EventCategorySystem,
			Message: "event", Metadata: "{}", CreatedAt: at,
		}); err != nil {
			t.Fatalf("CreateEvent %d: %v", i, err)
		}
	}

	events, err := q.ListEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}

	n, err := q.DeleteEventsBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteEventsBefore: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned = %d, want 1", n)
	}
}
