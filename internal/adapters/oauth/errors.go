package oauth

import "errors"

// Sentinel kinds for OAuth failures.
var (
	ErrNotConfigured    = errors.New("provider not configured")
	ErrMissingCode      = errors.New("Authorization code missing") //nolint:staticcheck // surfaced verbatim to clients
	ErrInvalidState     = errors.New("invalid oauth state")
	ErrProviderRejected = errors.New("provider rejected authorization code")
	ErrExchange         = errors.New("token exchange failed")
)
