package auth

import "errors"

// Sentinel errors for token issuance and validation.
var (
	ErrMissingSecret = errors.New("auth: signing secret is required")
	ErrMissingToken  = errors.New("auth: missing token")
	ErrInvalidToken  = errors.New("auth: invalid token")
	ErrTokenExpired  = errors.New("auth: token expired")
)
