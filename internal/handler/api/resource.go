// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// contentProcedures is the procedure set shared by every content entity.
type contentProcedures[T any, P any] interface {
	List(ctx context.Context) ([]T, error)
	ListActive(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, p P) (*T, error)
	Update(ctx context.Context, id int64, p P) (*T, error)
	Delete(ctx context.Context, id int64) error
	ToggleActive(ctx context.Context, id int64) (*T, error)
}

// keyLookup is a public keyed read. A nil result means absent.
type keyLookup func(ctx context.Context, key string) (any, error)

// keyed adapts a typed lookup so that a nil pointer becomes a nil any.
func keyed[V any](fn func(ctx context.Context, key string) (*V, error)) keyLookup {
	return func(ctx context.Context, key string) (any, error) {
		v, err := fn(ctx, key)
		if err != nil || v == nil {
			return nil, err
		}
		return v, nil
	}
}

// mounter registers a resource's routes.
type mounter interface {
	mountPublic(r chi.Router)
	mountAdmin(r chi.Router)
}

// resource serves one content entity: active records publicly, full CRUD
// to admins.
type resource[T any, P any] struct {
	path  string
	label string
	procs contentProcedures[T, P]

	// byKey serves GET <path>/{key} publicly; nil for unkeyed entities.
	byKey keyLookup

	// admin registers extra admin routes under path.
	admin func(r chi.Router)
}

func (res *resource[T, P]) mountPublic(r chi.Router) {
	r.Get(res.path, res.listActive)
	if res.byKey != nil {
		r.Get(res.path+"/{key}", res.getByKey)
	}
}

func (res *resource[T, P]) mountAdmin(r chi.Router) {
	r.Route(res.path, func(r chi.Router) {
		r.Get("/", res.list)
		r.Post("/", res.create)
		r.Get("/{id}", res.get)
		r.Put("/{id}", res.update)
		r.Patch("/{id}", res.update)
		r.Delete("/{id}", res.delete)
		r.Post("/{id}/toggle-active", res.toggleActive)
		if res.admin != nil {
			res.admin(r)
		}
	})
}

func (res *resource[T, P]) listActive(w http.ResponseWriter, r *http.Request) {
	items, err := res.procs.ListActive(r.Context())
	if err != nil {
		writeServiceError(w, r, res.label, err)
		return
	}
	WriteList(w, items)
}

func (res *resource[T, P]) getByKey(w http.ResponseWriter, r *http.Request) {
	v, err := res.byKey(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeServiceError(w, r, res.label, err)
		return
	}
	if v == nil {
		WriteNotFound(w, capitalizeFirst(res.label)+" not found")
		return
	}
	WriteSuccess(w, v, nil)
}

func (res *resource[T, P]) list(w http.ResponseWriter, r *http.Request) {
	items, err := res.procs.List(r.Context())
	if err != nil {
		writeServiceError(w, r, res.label, err)
		return
	}
	WriteList(w, items)
}

func (res *resource[T, P]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, res.label)
	if !ok {
		return
	}
	v, err := res.procs.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, res.label, err)
		return
	}
	WriteSuccess(w, v, nil)
}

func (res *resource[T, P]) create(w http.ResponseWriter, r *http.Request) {
	var p P
	if !decodeJSON(w, r, &p) {
		return
	}
	v, err := res.procs.Create(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, res.label, err)
		return
	}
	WriteCreated(w, v)
}

func (res *resource[T, P]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, res.label)
	if !ok {
		return
	}
	var p P
	if !decodeJSON(w, r, &p) {
		return
	}
	v, err := res.procs.Update(r.Context(), id, p)
	if err != nil {
		writeServiceError(w, r, res.label, err)
		return
	}
	WriteSuccess(w, v, nil)
}

func (res *resource[T, P]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, res.label)
	if !ok {
		return
	}
	if err := res.procs.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, res.label, err)
		return
	}
	WriteNoContent(w)
}

func (res *resource[T, P]) toggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, res.label)
	if !ok {
		return
	}
	v, err := res.procs.ToggleActive(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, res.label, err)
		return
	}
	WriteSuccess(w, v, nil)
}
