package api

// LoginRequest is the request body for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the success body for the login endpoint.
type TokenResponse struct {
	Token string `json:"token"`
}

// VersionResponse is the body for the version endpoint.
type VersionResponse struct {
	Version string `json:"version"`
}
