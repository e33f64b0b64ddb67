package auth

import "errors"

// Common authentication service errors.
var (
	// ErrNotAuthorized is the single rejection returned for every
	// authentication failure a caller may observe. It deliberately does not
	// distinguish an unknown identifier from a wrong credential.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrInvalidToken indicates the token is malformed, carries the wrong
	// issuer or audience, or its signature does not match.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token's nbf claim is in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")
)
