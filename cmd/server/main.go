// Package main implements the entry point for the REST API server: it loads
// configuration, sets up logging, connects to the database, applies
// migrations, and serves the HTTP routes until shutdown.
package main

import (
	"context"
	"log"
	"os"

	"github.com/restfold/restfold/internal/config"
	"github.com/restfold/restfold/internal/platform/logger"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		appLogger.Error("server terminated", "error", err)
		os.Exit(1)
	}
}
