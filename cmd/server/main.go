// Package main initializes and starts the FANS registration portal server,
// setting up configuration, logging, the remote and local stores, services,
// handlers and the HTTP router.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lolocuentaps32/fanscopa/internal/config"
	"github.com/lolocuentaps32/fanscopa/internal/db"
	"github.com/lolocuentaps32/fanscopa/internal/gemini"
	"github.com/lolocuentaps32/fanscopa/internal/logger"
	"github.com/lolocuentaps32/fanscopa/internal/repository"
	"github.com/lolocuentaps32/fanscopa/internal/server/handler/http"
	"github.com/lolocuentaps32/fanscopa/internal/service"
	"github.com/lolocuentaps32/fanscopa/internal/session"
	"github.com/lolocuentaps32/fanscopa/internal/storage"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Load .env values before config parsing, if a file is present.
	_ = godotenv.Load()

	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize the remote store. An unreachable store is not fatal: the
	// portal starts in degraded mode and serves the local fallback copy.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		if postgresDB == nil {
			zapLogger.Fatal("cannot open remote store", zap.Error(err))
		}
		zapLogger.Warn("remote store unreachable, starting in degraded mode", zap.Error(err))
	}

	// Initialize the remote adapter and the local fallback store.
	remote := repository.NewPostgresRegistrationRepository(postgresDB)
	local := storage.NewLocalStore(storage.NewFileBlob(options.LocalStoreDir))

	// Keep the local shadow copy warm while the remote store is reachable.
	if options.SnapshotInterval > 0 {
		db.StartSnapshotRefresher(context.Background(), remote, local,
			options.SnapshotInterval, zapLogger)
	}

	// Initialize business-logic services.
	storageService := service.NewStorage(remote, local, zapLogger)
	authService := service.NewAuth(storageService, options.AdminEmail)
	assistantService := service.NewAssistant(
		gemini.NewClient(gemini.Config{
			APIKey:  options.GeminiAPIKey,
			BaseURL: options.GeminiBaseURL,
		}),
		storageService,
	)

	// Live session store for login/logout.
	sessions := session.NewManager()

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService, Sessions: sessions}
	registrationHandler := &http.RegistrationHandler{Storage: storageService}
	assistantHandler := &http.AssistantHandler{Assistant: assistantService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, registrationHandler, assistantHandler, sessions, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
