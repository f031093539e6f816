// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Job names.
const (
	JobIntakeDigest = "intake-digest"
	JobPurgeEvents  = "purge-events"
	JobReloadGeoIP  = "reload-geoip"
)

// PendingCounter counts intake records still waiting for a reply.
type PendingCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

// EventPurger deletes old event log rows.
type EventPurger interface {
	Purge(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Reloader re-reads a file-backed resource.
type Reloader interface {
	Reload() error
}

// IntakeDigestJob logs the number of pending contact requests and career
// applications. The line is a warning when anything is waiting, so it also
// reaches the event log.
func IntakeDigestJob(schedule string, logger *slog.Logger, contacts, applications PendingCounter) Job {
	return Job{
		Name:        JobIntakeDigest,
		Description: "Log pending contact requests and career applications",
		Schedule:    schedule,
		Run: func(ctx context.Context) error {
			pendingContacts, err := contacts.CountPending(ctx)
			if err != nil {
				return fmt.Errorf("counting contact requests: %w", err)
			}
			pendingApplications, err := applications.CountPending(ctx)
			if err != nil {
				return fmt.Errorf("counting applications: %w", err)
			}

			level := slog.LevelInfo
			if pendingContacts+pendingApplications > 0 {
				level = slog.LevelWarn
			}
			logger.Log(ctx, level, "intake backlog",
				"pending_contacts", pendingContacts,
				"pending_applications", pendingApplications,
				"category", "intake",
			)
			return nil
		},
	}
}

// PurgeEventsJob removes event log rows older than retention.
func PurgeEventsJob(schedule string, retention time.Duration, logger *slog.Logger, events EventPurger) Job {
	return Job{
		Name:        JobPurgeEvents,
		Description: fmt.Sprintf("Delete event log entries older than %s", retention),
		Schedule:    schedule,
		Run: func(ctx context.Context) error {
			n, err := events.Purge(ctx, retention)
			if err != nil {
				return fmt.Errorf("purging events: %w", err)
			}
			if n > 0 {
				logger.Info("purged old events", "deleted", n)
			}
			return nil
		},
	}
}

// ReloadGeoIPJob picks up a refreshed GeoIP database file.
func ReloadGeoIPJob(schedule string, resolver Reloader) Job {
	return Job{
		Name:        JobReloadGeoIP,
		Description: "Reload the GeoIP database when the file changed",
		Schedule:    schedule,
		Run: func(ctx context.Context) error {
			return resolver.Reload()
		},
	}
}
