// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/olegiv/ccms-go/internal/model"
)

// Common list orderings.
const (
	byPosition = "sort_order ASC, id ASC"
	byNewest   = "created_at DESC, id DESC"
)

// table describes how one entity maps onto its SQL table. Every table has
// id, created_at and updated_at columns besides the writable ones.
type table[T any] struct {
	name    string
	columns []string        // writable columns, same order as fields
	fields  func(*T) []any  // pointers to the writable fields
	meta    func(*T) (id *int64, createdAt, updatedAt *time.Time)
	orderBy string
	key     string // natural key column; empty when the entity has none
	active  string // visibility column; empty when everything is public
}

func (t *table[T]) selectColumns() string {
	return "id, " + strings.Join(t.columns, ", ") + ", created_at, updated_at"
}

func (t *table[T]) has(column string) bool {
	return slices.Contains(t.columns, column)
}

func (t *table[T]) scan(row interface{ Scan(...any) error }) (T, error) {
	var v T
	id, createdAt, updatedAt := t.meta(&v)
	dest := make([]any, 0, len(t.columns)+3)
	dest = append(dest, id)
	dest = append(dest, t.fields(&v)...)
	dest = append(dest, createdAt, updatedAt)
	err := row.Scan(dest...)
	return v, err
}

// args dereferences the field pointers into driver arguments.
func (t *table[T]) args(v *T) []any {
	ptrs := t.fields(v)
	out := make([]any, len(ptrs))
	for i, p := range ptrs {
		out[i] = argValue(p)
	}
	return out
}

func argValue(p any) any {
	switch v := p.(type) {
	case *string:
		return *v
	case *int:
		return *v
	case *int64:
		return *v
	case *bool:
		return *v
	case *time.Time:
		return *v
	case **time.Time:
		if *v == nil {
			return nil
		}
		return **v
	case **int64:
		if *v == nil {
			return nil
		}
		return **v
	case *model.StringList:
		return *v
	default:
		return p
	}
}

// Repo is the uniform accessor over one entity table.
type Repo[T any] struct {
	db DBTX
	t  *table[T]
}

func newRepo[T any](db DBTX, t *table[T]) *Repo[T] {
	return &Repo[T]{db: db, t: t}
}

// Name returns the table name.
func (r *Repo[T]) Name() string {
	return r.t.name
}

// HasKey reports whether the entity has a natural key column.
func (r *Repo[T]) HasKey() bool {
	return r.t.key != ""
}

func (r *Repo[T]) query(ctx context.Context, where string, args ...any) ([]T, error) {
	q := "SELECT " + r.t.selectColumns() + " FROM " + r.t.name
	if where != "" {
		q += " WHERE " + where
	}
	if r.t.orderBy != "" {
		q += " ORDER BY " + r.t.orderBy
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []T{}
	for rows.Next() {
		v, err := r.t.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repo[T]) one(ctx context.Context, where string, args ...any) (T, error) {
	q := "SELECT " + r.t.selectColumns() + " FROM " + r.t.name + " WHERE " + where + " LIMIT 1"
	return r.t.scan(r.db.QueryRowContext(ctx, q, args...))
}

// List returns every record in the table's display order.
func (r *Repo[T]) List(ctx context.Context) ([]T, error) {
	return r.query(ctx, "")
}

// ListActive returns the publicly visible records in display order.
func (r *Repo[T]) ListActive(ctx context.Context) ([]T, error) {
	if r.t.active == "" {
		return r.List(ctx)
	}
	return r.query(ctx, r.t.active+" = 1")
}

// ListWhere returns the records with column equal to value.
func (r *Repo[T]) ListWhere(ctx context.Context, column string, value any) ([]T, error) {
	if column != r.t.key && column != r.t.active && !r.t.has(column) {
		return nil, fmt.Errorf("%s has no column %q", r.t.name, column)
	}
	return r.query(ctx, column+" = ?", value)
}

// Get returns the record with the given id or sql.ErrNoRows.
func (r *Repo[T]) Get(ctx context.Context, id int64) (T, error) {
	return r.one(ctx, "id = ?", id)
}

// GetByKey returns the record with the given natural key or sql.ErrNoRows.
func (r *Repo[T]) GetByKey(ctx context.Context, key string) (T, error) {
	if r.t.key == "" {
		var zero T
		return zero, fmt.Errorf("%s has no natural key", r.t.name)
	}
	return r.one(ctx, r.t.key+" = ?", key)
}

// GetActiveByKey is GetByKey restricted to publicly visible records.
func (r *Repo[T]) GetActiveByKey(ctx context.Context, key string) (T, error) {
	if r.t.active == "" {
		return r.GetByKey(ctx, key)
	}
	if r.t.key == "" {
		var zero T
		return zero, fmt.Errorf("%s has no natural key", r.t.name)
	}
	return r.one(ctx, r.t.key+" = ? AND "+r.t.active+" = 1", key)
}

// KeyExists reports whether another record (id != excludeID) already uses key.
func (r *Repo[T]) KeyExists(ctx context.Context, key string, excludeID int64) (bool, error) {
	if r.t.key == "" {
		return false, nil
	}
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+r.t.name+" WHERE "+r.t.key+" = ? AND id != ?",
		key, excludeID,
	).Scan(&n)
	return n > 0, err
}

// Create inserts v and returns the stored record with id and timestamps.
func (r *Repo[T]) Create(ctx context.Context, v T) (T, error) {
	now := time.Now().UTC()
	args := append(r.t.args(&v), now, now)
	placeholders := strings.Repeat("?, ", len(r.t.columns)+1) + "?"

	q := "INSERT INTO " + r.t.name + " (" + strings.Join(r.t.columns, ", ") + ", created_at, updated_at)" +
		" VALUES (" + placeholders + ") RETURNING " + r.t.selectColumns()
	return r.t.scan(r.db.QueryRowContext(ctx, q, args...))
}

// Update writes the writable columns whose value differs between prev, the
// record as it was read, and next. Columns the caller left alone are not
// part of the statement, so concurrent writes to them survive. Returns
// sql.ErrNoRows when the record does not exist.
func (r *Repo[T]) Update(ctx context.Context, id int64, prev, next T) (T, error) {
	before := r.t.args(&prev)
	after := r.t.args(&next)

	sets := make([]string, 0, len(r.t.columns)+1)
	args := make([]any, 0, len(r.t.columns)+2)
	for i, c := range r.t.columns {
		if sameValue(before[i], after[i]) {
			continue
		}
		sets = append(sets, c+" = ?")
		args = append(args, after[i])
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	q := "UPDATE " + r.t.name + " SET " + strings.Join(sets, ", ") +
		" WHERE id = ? RETURNING " + r.t.selectColumns()
	return r.t.scan(r.db.QueryRowContext(ctx, q, args...))
}

func sameValue(a, b any) bool {
	switch x := a.(type) {
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case model.StringList:
		y, ok := b.(model.StringList)
		return ok && slices.Equal(x, y)
	case string, int, int64, bool, nil:
		return a == b
	default:
		return false
	}
}

// Delete removes record id. Returns sql.ErrNoRows when nothing was deleted.
func (r *Repo[T]) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM "+r.t.name+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ToggleActive flips the visibility flag of record id and returns the result.
func (r *Repo[T]) ToggleActive(ctx context.Context, id int64) (T, error) {
	if r.t.active == "" {
		var zero T
		return zero, fmt.Errorf("%s has no visibility flag", r.t.name)
	}
	q := "UPDATE " + r.t.name + " SET " + r.t.active + " = NOT " + r.t.active +
		", updated_at = ? WHERE id = ? RETURNING " + r.t.selectColumns()
	return r.t.scan(r.db.QueryRowContext(ctx, q, time.Now().UTC(), id))
}

// SetOrder changes the display position of record id.
func (r *Repo[T]) SetOrder(ctx context.Context, id int64, order int) error {
	return r.setColumn(ctx, id, "sort_order", order)
}

// SetStatus changes the lifecycle status of record id.
func (r *Repo[T]) SetStatus(ctx context.Context, id int64, status string) (T, error) {
	if !r.t.has("status") {
		var zero T
		return zero, fmt.Errorf("%s has no status column", r.t.name)
	}
	q := "UPDATE " + r.t.name + " SET status = ?, updated_at = ? WHERE id = ? RETURNING " + r.t.selectColumns()
	return r.t.scan(r.db.QueryRowContext(ctx, q, status, time.Now().UTC(), id))
}

func (r *Repo[T]) setColumn(ctx context.Context, id int64, column string, value any) error {
	if !r.t.has(column) {
		return fmt.Errorf("%s has no column %q", r.t.name, column)
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE "+r.t.name+" SET "+column+" = ?, updated_at = ? WHERE id = ?",
		value, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Count returns the number of records.
func (r *Repo[T]) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, "")
}

// CountActive returns the number of publicly visible records.
func (r *Repo[T]) CountActive(ctx context.Context) (int64, error) {
	if r.t.active == "" {
		return r.Count(ctx)
	}
	return r.count(ctx, r.t.active+" = 1")
}

// CountByStatus returns the number of records in the given lifecycle status.
func (r *Repo[T]) CountByStatus(ctx context.Context, status string) (int64, error) {
	if !r.t.has("status") {
		return 0, fmt.Errorf("%s has no status column", r.t.name)
	}
	return r.count(ctx, "status = ?", status)
}

func (r *Repo[T]) count(ctx context.Context, where string, args ...any) (int64, error) {
	q := "SELECT COUNT(*) FROM " + r.t.name
	if where != "" {
		q += " WHERE " + where
	}
	var n int64
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&n)
	return n, err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
