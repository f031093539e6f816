// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// maxLockout caps the exponential lockout backoff.
const maxLockout = 24 * time.Hour

// LoginProtection throttles login requests per IP and locks admin accounts
// after repeated failed passwords. State is in memory and per process.
type LoginProtection struct {
	ipLimiters *limiterCache[string]
	cfg        LoginProtectionConfig
	now        func() time.Time

	mu       sync.Mutex
	accounts map[string]*accountState

	stop     chan struct{}
	stopOnce sync.Once
}

// accountState tracks failures for one email inside the attempt window.
type accountState struct {
	failures    int
	windowStart time.Time
	lockedUntil time.Time
	lockouts    int // drives the backoff
}

// LoginProtectionConfig holds configuration for login protection.
type LoginProtectionConfig struct {
	// IPRateLimit is login requests per second per IP.
	IPRateLimit float64
	IPBurst     int
	// MaxFailedAttempts within AttemptWindow locks the account.
	MaxFailedAttempts int
	// LockoutDuration is the first lockout; each further lockout doubles it.
	LockoutDuration time.Duration
	AttemptWindow   time.Duration
}

// DefaultLoginProtectionConfig returns the production defaults.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       0.5,
		IPBurst:           5,
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     15 * time.Minute,
	}
}

// withDefaults fills zero fields from DefaultLoginProtectionConfig.
func (c LoginProtectionConfig) withDefaults() LoginProtectionConfig {
	d := DefaultLoginProtectionConfig()
	if c.IPRateLimit <= 0 {
		c.IPRateLimit = d.IPRateLimit
	}
	if c.IPBurst <= 0 {
		c.IPBurst = d.IPBurst
	}
	if c.MaxFailedAttempts <= 0 {
		c.MaxFailedAttempts = d.MaxFailedAttempts
	}
	if c.LockoutDuration <= 0 {
		c.LockoutDuration = d.LockoutDuration
	}
	if c.AttemptWindow <= 0 {
		c.AttemptWindow = d.AttemptWindow
	}
	return c
}

// NewLoginProtection starts a LoginProtection and its sweeper goroutine.
// Call Stop to end the sweeper.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	cfg = cfg.withDefaults()
	lp := &LoginProtection{
		ipLimiters: newLimiterCache[string](cfg.IPRateLimit, cfg.IPBurst),
		cfg:        cfg,
		now:        time.Now,
		accounts:   make(map[string]*accountState),
		stop:       make(chan struct{}),
	}
	go lp.sweep(10 * time.Minute)
	return lp
}

// CheckIPRateLimit reports whether ip may attempt another login now.
func (lp *LoginProtection) CheckIPRateLimit(ip string) bool {
	return lp.ipLimiters.get(ip).Allow()
}

// IsAccountLocked reports whether email is locked and for how much longer.
func (lp *LoginProtection) IsAccountLocked(email string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	st, ok := lp.accounts[email]
	if !ok {
		return false, 0
	}
	if left := st.lockedUntil.Sub(lp.now()); left > 0 {
		return true, left
	}
	return false, 0
}

// RecordFailedAttempt counts a wrong password for email. When this failure
// reaches MaxFailedAttempts the account is locked and the lock duration is
// returned.
func (lp *LoginProtection) RecordFailedAttempt(email string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	now := lp.now()
	st, ok := lp.accounts[email]
	if !ok {
		st = &accountState{windowStart: now}
		lp.accounts[email] = st
	}
	if now.Sub(st.windowStart) > lp.cfg.AttemptWindow {
		st.failures = 0
		st.windowStart = now
	}

	st.failures++
	if st.failures < lp.cfg.MaxFailedAttempts {
		return false, 0
	}

	d := backoff(lp.cfg.LockoutDuration, st.lockouts)
	st.lockedUntil = now.Add(d)
	st.lockouts++
	st.failures = 0
	st.windowStart = now

	slog.Warn("admin account locked after failed logins", "email", email, "lockouts", st.lockouts, "duration", d)
	return true, d
}

// RecordSuccessfulLogin forgets every failure recorded for email.
func (lp *LoginProtection) RecordSuccessfulLogin(email string) {
	lp.mu.Lock()
	delete(lp.accounts, email)
	lp.mu.Unlock()
}

// GetRemainingAttempts returns how many failures email has left before a lockout.
func (lp *LoginProtection) GetRemainingAttempts(email string) int {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	st, ok := lp.accounts[email]
	if !ok || lp.now().Sub(st.windowStart) > lp.cfg.AttemptWindow {
		return lp.cfg.MaxFailedAttempts
	}
	return max(lp.cfg.MaxFailedAttempts-st.failures, 0)
}

// Stop ends the sweeper. Safe to call more than once.
func (lp *LoginProtection) Stop() {
	lp.stopOnce.Do(func() { close(lp.stop) })
}

func (lp *LoginProtection) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			lp.removeStale()
		case <-lp.stop:
			return
		}
	}
}

// removeStale drops accounts that are neither locked nor inside their
// attempt window, and resets an oversized IP limiter map.
func (lp *LoginProtection) removeStale() {
	if lp.ipLimiters.clearIfExceeds(maxLimiters) {
		slog.Info("login rate limiters reset")
	}

	lp.mu.Lock()
	defer lp.mu.Unlock()

	now := lp.now()
	for email, st := range lp.accounts {
		if now.After(st.lockedUntil) && now.Sub(st.windowStart) > lp.cfg.AttemptWindow {
			delete(lp.accounts, email)
		}
	}
}

// backoff doubles base once per previous lockout, capped at maxLockout.
func backoff(base time.Duration, previous int) time.Duration {
	d := base
	for range previous {
		d *= 2
		if d >= maxLockout {
			return maxLockout
		}
	}
	return d
}

// Middleware rate limits POST requests per IP. Apply it to the login route.
func (lp *LoginProtection) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				if ip := ClientIP(r); !lp.CheckIPRateLimit(ip) {
					slog.Warn("login rate limit exceeded", "ip", ip)
					WriteAPIError(w, http.StatusTooManyRequests, "rate_limit_exceeded",
						"Too many login attempts. Please wait a moment and try again.", nil)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteLocked writes the 429 response for a locked account.
func WriteLocked(w http.ResponseWriter, remaining time.Duration) {
	secs := max(int(remaining.Round(time.Second).Seconds()), 1)
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	WriteAPIError(w, http.StatusTooManyRequests, "account_locked",
		"Account temporarily locked after repeated failed logins.", nil)
}
