package publisher

import "github.com/okian/eventdesk/pkg/logger"

// Default configuration constants.
const (
	defaultExchange = "contacts"
)

// Option applies a configuration option to the AMQP publisher.
type Option func(*AMQP)

// WithExchange sets the topic exchange name.
func WithExchange(name string) Option {
	return func(p *AMQP) {
		if name != "" {
			p.exchange = name
		}
	}
}

// WithLogger sets the publisher logger.
func WithLogger(l logger.Logger) Option {
	return func(p *AMQP) {
		if l != nil {
			p.logger = l
		}
	}
}
