// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/okian/eventdesk/internal/adapters/mq/publisher"
	"github.com/okian/eventdesk/internal/adapters/repository"
	"github.com/okian/eventdesk/internal/domain/model"
	"github.com/okian/eventdesk/pkg/logger"
	"github.com/okian/eventdesk/pkg/metrics"
)

// MaxPageSize bounds the caller-selected page size.
const MaxPageSize = 1000

const defaultPublishTimeout = 5 * time.Second

// EventSearcher finds events for a location and day.
type EventSearcher interface {
	Search(ctx context.Context, q model.SearchQuery) (model.SearchResult, error)
	Configured() bool
}

// OAuthProvider runs one authorization code flow.
type OAuthProvider interface {
	Name() string
	Configured() bool
	AuthURL() (string, error)
	Exchange(ctx context.Context, code, state string) (model.Token, error)
}

// Service implements the API dependencies for events, contacts and OAuth.
type Service struct {
	mu sync.RWMutex

	events    EventSearcher
	contacts  repository.ContactStore
	publisher publisher.Publisher
	providers map[string]OAuthProvider

	now            func() time.Time
	publishTimeout time.Duration

	started bool
	logger  logger.Logger
}

// New constructs a new Service. Missing dependencies make the matching
// operations fail with ErrUnavailable.
func New(opts ...Option) *Service {
	s := &Service{
		publisher:      publisher.Noop{},
		providers:      make(map[string]OAuthProvider),
		now:            func() time.Time { return time.Now().UTC() },
		publishTimeout: defaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start marks the service ready to serve requests.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.started = true
	s.logger.Info(ctx, "eventdesk service started",
		logger.Bool("events", s.events != nil && s.events.Configured()),
		logger.Bool("contacts", s.contacts != nil),
		logger.String("providers", strings.Join(s.providerNames(), ",")),
	)
	return nil
}

// Stop releases the publisher and the contacts store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping eventdesk service...")

	if err := s.publisher.Close(); err != nil {
		s.logger.Warn(ctx, "failed to close publisher", logger.Error(err))
	}
	if closer, ok := s.contacts.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			s.logger.Warn(ctx, "failed to close contacts store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "eventdesk service stopped")
}

// SearchEvents runs an events search and, when size > 0, returns only the
// requested page of the accumulated results.
func (s *Service) SearchEvents(ctx context.Context, q model.SearchQuery, page, size int) (model.SearchResult, error) {
	if page < 0 || size < 0 || size > MaxPageSize {
		return model.SearchResult{}, fmt.Errorf("%w: page=%d size=%d", ErrInvalidPagination, page, size)
	}
	if s.events == nil {
		return model.SearchResult{}, fmt.Errorf("%w: events provider", ErrUnavailable)
	}

	res, err := s.events.Search(ctx, q)
	if err != nil {
		return model.SearchResult{}, err
	}
	return res.Paginate(page, size), nil
}

// ListContacts returns every stored contact.
func (s *Service) ListContacts(ctx context.Context) ([]model.Contact, error) {
	if s.contacts == nil {
		return nil, fmt.Errorf("%w: contacts store", ErrUnavailable)
	}
	return s.contacts.List(ctx)
}

// CreateContact validates and stores a contact, then announces it.
func (s *Service) CreateContact(ctx context.Context, in model.NewContact) (model.Contact, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return model.Contact{}, err
	}
	if s.contacts == nil {
		return model.Contact{}, fmt.Errorf("%w: contacts store", ErrUnavailable)
	}

	c, err := s.contacts.Create(ctx, in)
	if err != nil {
		return model.Contact{}, err
	}
	metrics.RecordContactCreated()
	s.notify(ctx, model.ContactCreated, c)
	return c, nil
}

// DeleteContact removes the contact with id. Unknown ids succeed without
// being counted or announced.
func (s *Service) DeleteContact(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMissingID
	}
	if s.contacts == nil {
		return fmt.Errorf("%w: contacts store", ErrUnavailable)
	}

	deleted, err := s.contacts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return nil
	}
	metrics.RecordContactDeleted()
	s.notify(ctx, model.ContactDeleted, model.Contact{ID: id})
	return nil
}

// notify publishes a contact change. Failures are logged only.
func (s *Service) notify(ctx context.Context, kind string, c model.Contact) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	err := s.publisher.Publish(pctx, model.ContactEvent{Type: kind, Contact: c, At: s.now()})
	if err != nil {
		s.log().Warn(ctx, "failed to publish contact change",
			logger.String("type", kind),
			logger.String("id", c.ID),
			logger.Error(err),
		)
	}
}

// AuthURL returns the authorize URL of the named provider.
func (s *Service) AuthURL(provider string) (string, error) {
	p, err := s.provider(provider)
	if err != nil {
		return "", err
	}
	return p.AuthURL()
}

// ExchangeCode trades an authorization code for a token at the named provider.
func (s *Service) ExchangeCode(ctx context.Context, provider, code, state string) (model.Token, error) {
	p, err := s.provider(provider)
	if err != nil {
		return model.Token{}, err
	}
	return p.Exchange(ctx, code, state)
}

func (s *Service) provider(name string) (OAuthProvider, error) {
	p, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

// Ready reports whether the contacts store answers.
func (s *Service) Ready(ctx context.Context) error {
	if s.contacts == nil {
		return fmt.Errorf("%w: contacts store", ErrUnavailable)
	}
	return s.contacts.Ping(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":          s.started,
		"eventsConfigured": s.events != nil && s.events.Configured(),
		"contactsStore":    s.contacts != nil,
		"oauthProviders":   s.providerNames(),
	}
}

func (s *Service) providerNames() []string {
	names := make([]string, 0, len(s.providers))
	for name, p := range s.providers {
		if p.Configured() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	if l == nil {
		return logger.Get()
	}
	return l
}
