package ticketmaster

import "errors"

// Sentinel kinds for provider errors.
var (
	ErrNotConfigured = errors.New("ticketmaster API key not configured")
	ErrProvider      = errors.New("failed to fetch events from Ticketmaster")
	ErrBadQuery      = errors.New("missing or invalid location")
)
