package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/restfold/restfold/internal/api"
	apimiddleware "github.com/restfold/restfold/internal/api/middleware"
	"github.com/restfold/restfold/internal/domain"
)

// routeSet declares one mounted group of routes and whether it requires an
// authenticated principal. The table is built once at startup; routes are
// never discovered at runtime.
type routeSet struct {
	mount     string
	protected bool
	register  func(chi.Router)
}

// setupRouter builds the application router from the static route table.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	redactPassword := api.RedactFilter("password")

	users := api.NewRestController[*domain.User](
		app.userStore, app.logger,
		api.ControllerOptions{ResponseFilter: redactPassword})
	categories := api.NewRestController[*domain.Category](
		app.categoryStore, app.logger,
		api.ControllerOptions{})

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier, app.logger)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService, app.userStore, app.logger)
	systemHandler := api.NewSystemHandler(app.db, version, app.logger)

	routes := []routeSet{
		{mount: "/auth", register: func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", users.Create)
		}},
		{mount: "/users", protected: true, register: users.Register},
		{mount: "/categories", protected: true, register: categories.Register},
	}

	for _, set := range routes {
		r.Route(set.mount, func(r chi.Router) {
			if set.protected {
				r.Use(authMiddleware.Authenticate)
			}
			set.register(r)
		})
	}

	r.Get("/healthcheck", systemHandler.Healthcheck)
	r.Get("/version", systemHandler.Version)

	return r
}
