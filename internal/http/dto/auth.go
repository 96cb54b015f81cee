// Package dto defines the request and response bodies of the gateway API.
package dto

// TokenRequest is the password sign-in request.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the bearer token returned on every success path that
// yields a token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}
