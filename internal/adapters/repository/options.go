package repository

import (
	"time"

	"github.com/okian/eventdesk/pkg/logger"
)

// Option applies a configuration option to the GormStore.
type Option func(*GormStore)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *GormStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides contact id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *GormStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithLogger sets the logger used for SQL tracing.
func WithLogger(l logger.Logger) Option {
	return func(s *GormStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxOpenConns bounds the connection pool when opening by DSN.
func WithMaxOpenConns(n int) Option {
	return func(s *GormStore) {
		if n > 0 {
			s.maxOpenConns = n
		}
	}
}

// WithSlowThreshold sets the duration above which queries are logged as slow.
func WithSlowThreshold(d time.Duration) Option {
	return func(s *GormStore) {
		if d > 0 {
			s.slowThreshold = d
		}
	}
}
