package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrStore       = errors.New("contacts store failure")
	ErrUnavailable = errors.New("contacts store unavailable")
)
