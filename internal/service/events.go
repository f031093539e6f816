// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/ccms-go/internal/model"
	"github.com/olegiv/ccms-go/internal/store"
)

const (
	DefaultEventLimit = 100
	MaxEventLimit     = 1000
)

// Events reads and prunes the event log.
type Events struct {
	q *store.Queries
}

// List returns the newest entries. limit is clamped to 1..MaxEventLimit;
// zero selects DefaultEventLimit.
func (e *Events) List(ctx context.Context, limit int) ([]model.Event, error) {
	switch {
	case limit <= 0:
		limit = DefaultEventLimit
	case limit > MaxEventLimit:
		limit = MaxEventLimit
	}
	events, err := e.q.ListEvents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// Purge deletes entries older than olderThan and returns how many went.
func (e *Events) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	n, err := e.q.DeleteEventsBefore(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("purging events: %w", err)
	}
	return n, nil
}
