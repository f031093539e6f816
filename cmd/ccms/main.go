// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"crypto/sha256"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/ccms-go/internal/cache"
	"github.com/olegiv/ccms-go/internal/config"
	"github.com/olegiv/ccms-go/internal/geoip"
	"github.com/olegiv/ccms-go/internal/logging"
	"github.com/olegiv/ccms-go/internal/middleware"
	"github.com/olegiv/ccms-go/internal/scheduler"
	"github.com/olegiv/ccms-go/internal/service"
	"github.com/olegiv/ccms-go/internal/session"
	"github.com/olegiv/ccms-go/internal/storage"
	"github.com/olegiv/ccms-go/internal/store"
	"github.com/olegiv/ccms-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// Retention of the event log and the schedule of its purge.
const (
	eventRetention      = 30 * 24 * time.Hour
	eventPurgeSchedule  = "@daily"
	geoIPReloadSchedule = "@weekly"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	setupOnly := flag.Bool("setup", false, "Migrate the database, create the admin account and object store buckets, then exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "ccms - contact center marketing site backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CCMS_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CCMS_DB_PATH           SQLite database path (default: ./data/ccms.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CCMS_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CCMS_SESSION_SECRET    Session and CSRF key (required in production, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CCMS_S3_ENDPOINT       Object store host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CCMS_PUBLIC_URL        Origin used in uploaded image URLs (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CCMS_REDIS_URL         Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CCMS_GEOIP_DB_PATH     GeoLite2 country database (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
	if *showVersion {
		_, _ = fmt.Printf("ccms %s\n", info)
		os.Exit(0)
	}

	if err := run(*setupOnly, info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(setupOnly bool, info version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLevel(cfg.LogLevel)
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(textHandler))

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	ctx := context.Background()
	if err := store.Migrate(ctx, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// WARN and ERROR records are mirrored into the event log from here on.
	slog.SetDefault(slog.New(logging.NewEventLogHandler(textHandler, db)))
	slog.Info("database ready", "version", info.Version)

	appCache := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	})
	defer func() { _ = appCache.Close() }()

	objects, err := storage.NewS3Store(ctx, storage.S3Config{
		Endpoint:  cfg.ObjectStoreEndpoint(),
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		return fmt.Errorf("initializing object store: %w", err)
	}

	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("geoip lookups disabled", "path", cfg.GeoIPDBPath, "error", err)
	}
	defer func() { _ = resolver.Close() }()

	procs := service.New(service.Deps{
		DB:       db,
		Cache:    appCache,
		CacheTTL: time.Duration(cfg.CacheTTL) * time.Second,
		Objects:  objects,
		GeoIP:    resolver,
	})

	created, err := procs.AdminUsers.EnsureBootstrapAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("creating bootstrap admin: %w", err)
	}
	if created {
		slog.Info("bootstrap admin created", "email", cfg.AdminEmail)
	}

	if err := procs.Media.EnsureBuckets(ctx); err != nil {
		if setupOnly {
			return fmt.Errorf("ensuring buckets: %w", err)
		}
		// Uploads fail until the object store comes up; everything else works.
		slog.Error("object store unavailable at startup", "endpoint", cfg.ObjectStoreEndpoint(), "error", err)
	}

	if setupOnly {
		slog.Info("setup complete")
		return nil
	}

	sm := session.New(db, cfg.IsDevelopment())

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Stop()

	// Public forms: 1 request per 2 seconds per IP, burst of 5.
	intakeLimiter := middleware.NewGlobalRateLimiter(0.5, 5)

	sched := scheduler.New(slog.Default())
	for _, job := range []scheduler.Job{
		scheduler.IntakeDigestJob(cfg.DigestSchedule, slog.Default(), procs.ContactRequests, procs.CareerApplications),
		scheduler.PurgeEventsJob(eventPurgeSchedule, eventRetention, slog.Default(), procs.Events),
		scheduler.ReloadGeoIPJob(geoIPReloadSchedule, resolver),
	} {
		if err := sched.Add(job); err != nil {
			return fmt.Errorf("scheduling %s: %w", job.Name, err)
		}
	}
	sched.Start()
	defer sched.Stop()

	csrfKey := sha256.Sum256([]byte(cfg.SessionSecret))
	r := newRouter(routerDeps{
		cfg:       cfg,
		version:   info.Version,
		db:        db,
		objects:   objects,
		procs:     procs,
		sm:        sm,
		login:     loginProtection,
		intake:    intakeLimiter,
		scheduler: sched,
		csrf:      middleware.CSRF(middleware.DefaultCSRFConfig(csrfKey[:], cfg.IsDevelopment(), cfg.PublicURL)),
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // uploads and image streaming
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
