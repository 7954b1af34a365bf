package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrInvalidPagination = errors.New("invalid page or size")
	ErrMissingID         = errors.New("Missing contact id") //nolint:staticcheck // surfaced verbatim to clients
	ErrUnknownProvider   = errors.New("unknown oauth provider")
	ErrUnavailable       = errors.New("dependency not configured")
)
