package service

import (
	"time"

	"github.com/okian/eventdesk/internal/adapters/mq/publisher"
	"github.com/okian/eventdesk/internal/adapters/repository"
	"github.com/okian/eventdesk/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEventSearcher sets the events provider.
func WithEventSearcher(es EventSearcher) Option {
	return func(s *Service) {
		if es != nil {
			s.events = es
		}
	}
}

// WithContactStore sets the contacts datastore.
func WithContactStore(cs repository.ContactStore) Option {
	return func(s *Service) {
		if cs != nil {
			s.contacts = cs
		}
	}
}

// WithPublisher sets the contact change publisher.
func WithPublisher(p publisher.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithOAuthProvider registers p under its name.
func WithOAuthProvider(p OAuthProvider) Option {
	return func(s *Service) {
		if p != nil {
			s.providers[p.Name()] = p
		}
	}
}

// WithClock overrides the notification timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPublishTimeout bounds each notification publish.
func WithPublishTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.publishTimeout = d
		}
	}
}
