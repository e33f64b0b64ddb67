package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/restfold/restfold/internal/service/auth"
	"github.com/restfold/restfold/internal/store"
)

// AuthHandler handles login requests. Registration is served by the user
// controller's create operation mounted on the public auth routes.
type AuthHandler struct {
	users      store.UserStore
	jwtService auth.JWTService
	verifier   auth.PasswordVerifier
	logger     *slog.Logger
}

// NewAuthHandler creates an AuthHandler with the given dependencies.
func NewAuthHandler(
	users store.UserStore,
	jwtService auth.JWTService,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
		verifier:   verifier,
		logger:     logger,
	}
}

// Login authenticates the supplied email and password and responds 200 with
// a signed token. Every way the credentials can be wrong collapses to the
// same 401 so callers cannot probe which emails exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	rr := NewRestRequest(w, r, h.logger, nil)
	defer rr.Respond()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rr.WithError(auth.ErrNotAuthorized)
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rr.WithError(auth.ErrNotAuthorized)
			return
		}
		rr.WithError(err)
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, req.Password); err != nil {
		rr.WithError(auth.ErrNotAuthorized)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		rr.WithError(err)
		return
	}

	rr.WithData(TokenResponse{Token: token})
}
