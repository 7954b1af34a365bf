package publisher

import "errors"

// Sentinel kinds for publisher errors.
var (
	ErrClosed  = errors.New("publisher closed")
	ErrPublish = errors.New("publish failed")
	ErrConnect = errors.New("amqp connection failed")
)
