package auth

import "time"

// NewTestJWTService creates a JWT service with explicit parameters and an
// injectable clock, for use in tests.
func NewTestJWTService(
	secret string,
	lifetime time.Duration,
	issuer, audience string,
	timeFunc func() time.Time,
) JWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		issuer:        issuer,
		audience:      audience,
		timeFunc:      timeFunc,
		clockSkew:     0,
	}
}
