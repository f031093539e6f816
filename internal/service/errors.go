// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/olegiv/ccms-go/internal/store"
)

// Sentinel errors classified by the HTTP layer. Wrap them with context using
// fmt.Errorf("...: %w", ErrX) and test with errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrUnauthorized         = errors.New("invalid credentials")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("payload too large")
)

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// invalid builds a single-field ValidationError.
func invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// storeErr translates store failures into service errors.
func storeErr(entity string, err error) error {
	switch {
	case err == nil:
		return nil
	case store.IsNotFound(err):
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	case store.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", entity, ErrConflict)
	default:
		return fmt.Errorf("%s: %w", entity, err)
	}
}
