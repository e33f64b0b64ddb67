// Package auth provides the authentication capabilities of the server:
// issuing and verifying signed bearer tokens, and hashing and verifying
// passwords. Both are exposed as small interfaces so handlers and middleware
// depend on capabilities rather than implementations.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for issuing and verifying JWT bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed token carrying the user's ID together
	// with the configured issuer, audience, and expiry.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies the token's signature, issuer, audience, and
	// expiry, and returns the embedded claims. Failures are reported through
	// ErrInvalidToken, ErrExpiredToken, or ErrTokenNotYetValid.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of a bearer token.
type Claims struct {
	// UserID is the principal the token was issued for.
	UserID uuid.UUID

	// Standard registered JWT claims.
	Subject   string
	Issuer    string
	Audience  string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
