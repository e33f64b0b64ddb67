package main

import (
	"database/sql"
	"log/slog"

	"github.com/restfold/restfold/internal/config"
	"github.com/restfold/restfold/internal/platform/postgres"
	"github.com/restfold/restfold/internal/service/auth"
	"github.com/restfold/restfold/internal/store"
)

// application holds the process-scoped dependencies, constructed once at
// startup and passed explicitly to handlers and middleware.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	categoryStore store.CategoryStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
}

// newApplication connects to the database, applies migrations, and wires the
// stores and services together.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := openDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		userStore:        postgres.NewUserStore(db, auth.NewBcryptHasher()),
		categoryStore:    postgres.NewCategoryStore(db),
		jwtService:       jwtService,
		passwordVerifier: auth.NewBcryptVerifier(),
	}, nil
}

// cleanup releases process-scoped resources during shutdown.
func (app *application) cleanup() {
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", err)
	}
}
