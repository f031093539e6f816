// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip resolves client IP addresses to ISO country codes using a
// MaxMind GeoLite2-Country database. Without a database every lookup
// returns an empty code.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"
)

// Resolver is safe for concurrent use. A nil *Resolver is valid and
// resolves nothing.
type Resolver struct {
	mu      sync.RWMutex
	db      *maxminddb.Reader
	path    string
	modTime time.Time
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// Open loads the database at path. An empty path yields a disabled Resolver.
func Open(path string) (*Resolver, error) {
	r := &Resolver{path: path}
	if path == "" {
		return r, nil
	}
	if err := r.load(); err != nil {
		return r, err
	}
	return r, nil
}

// load (re)opens the database when its modification time changed.
// Caller must hold the write lock or own r exclusively.
func (r *Resolver) load() error {
	info, err := os.Stat(r.path)
	if err != nil {
		return fmt.Errorf("geoip database: %w", err)
	}
	if r.db != nil && info.ModTime().Equal(r.modTime) {
		return nil
	}

	db, err := maxminddb.Open(r.path)
	if err != nil {
		return fmt.Errorf("opening geoip database: %w", err)
	}
	if r.db != nil {
		_ = r.db.Close()
	}
	r.db = db
	r.modTime = info.ModTime()
	return nil
}

// Reload picks up a replaced database file. It is a no-op when the file is
// unchanged or no path is configured.
func (r *Resolver) Reload() error {
	if r == nil || r.path == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Enabled reports whether a database is loaded.
func (r *Resolver) Enabled() bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.db != nil
}

// Country returns the ISO 3166-1 alpha-2 code for ip, or "" when the
// address is invalid, private, loopback, or not in the database.
func (r *Resolver) Country(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil || !isPublic(parsed) || r == nil {
		return ""
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.db == nil {
		return ""
	}

	var rec countryRecord
	if err := r.db.Lookup(parsed, &rec); err != nil {
		return ""
	}
	return rec.Country.ISOCode
}

// Close releases the database.
func (r *Resolver) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func isPublic(ip net.IP) bool {
	return !(ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified())
}
