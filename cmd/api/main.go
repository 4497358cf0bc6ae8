// Copyright (c) 2026 Vidora. All rights reserved.

// Command api is the entry point for the Vidora HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the JSON document collections.
//  4. Connect to object storage (optional).
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/vidora/vidora/internal/api"
	"github.com/vidora/vidora/internal/categories"
	"github.com/vidora/vidora/internal/comments"
	"github.com/vidora/vidora/internal/platform/blob"
	"github.com/vidora/vidora/internal/platform/config"
	"github.com/vidora/vidora/internal/platform/constants"
	"github.com/vidora/vidora/internal/platform/sec"
	"github.com/vidora/vidora/internal/users"
	"github.com/vidora/vidora/internal/videos"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "vidora"))
	slog.SetDefault(log)

	log.Info("[Vidora] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "vidora"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("data_dir", cfg.DataDir),
	)

	// Root context for the process. Cancelled on shutdown so background
	// goroutines (rate limiter cleanup) stop with the server.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Document Collections ───────────────────────────────────────────
	userRepository, err := users.NewUserRepository(cfg.DataDir, log)
	must(log, err, "open users collection")

	videoRepository, err := videos.NewVideoRepository(cfg.DataDir, log)
	must(log, err, "open videos collection")

	commentRepository, err := comments.NewCommentRepository(cfg.DataDir, log)
	must(log, err, "open comments collection")

	categoryRepository, err := categories.NewCategoryRepository(cfg.DataDir, log)
	must(log, err, "open categories collection")

	// ── 4. Object Storage (optional) ──────────────────────────────────────
	var blobStore *blob.Store
	if cfg.BlobEnabled() {
		blobStore, err = blob.New(rootCtx, cfg)
		must(log, err, "connect to object storage")
		log.Info("object_storage_connected", slog.String("bucket", cfg.S3Bucket))
	} else {
		log.Warn("object_storage_disabled", slog.String("reason", "no S3 endpoint configured"))
	}

	// ── 5. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDataDir: func() error {
			probe := filepath.Join(cfg.DataDir, ".ready")
			if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
				return err
			}
			return os.Remove(probe)
		},
		CheckBlobStore: func() error {
			if blobStore == nil {
				return nil
			}
			_, err := blobStore.Exists(context.Background(), "healthcheck")
			return err
		},
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	userService := users.NewService(userRepository, jwtSvc, blobStore, log)
	userHandler := users.NewHandler(userService)

	videoService := videos.NewService(videoRepository, userRepository, categoryRepository, log)
	videoHandler := videos.NewHandler(videoService)

	commentService := comments.NewService(commentRepository, videoRepository, userRepository, log)
	commentHandler := comments.NewHandler(commentService)

	categoryService := categories.NewService(categoryRepository, log)
	categoryHandler := categories.NewHandler(categoryService)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Users:      userHandler,
		Videos:     videoHandler,
		Comments:   commentHandler,
		Categories: categoryHandler,
	}

	server := api.NewServer(rootCtx, cfg, log, jwtSvc, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
