// Package oauth implements the Eventbrite and Meetup authorization code flows.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/okian/eventdesk/internal/domain/model"
	"github.com/okian/eventdesk/pkg/logger"
	"github.com/okian/eventdesk/pkg/metrics"
)

// Provider names.
const (
	Eventbrite = "eventbrite"
	Meetup     = "meetup"
)

// EventbriteEndpoint is Eventbrite's OAuth endpoint.
var EventbriteEndpoint = oauth2.Endpoint{ //nolint:gochecknoglobals // static endpoint
	AuthURL:   "https://www.eventbrite.com/oauth/authorize",
	TokenURL:  "https://www.eventbrite.com/oauth/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// MeetupEndpoint is Meetup's OAuth endpoint.
var MeetupEndpoint = oauth2.Endpoint{ //nolint:gochecknoglobals // static endpoint
	AuthURL:   "https://secure.meetup.com/oauth2/authorize",
	TokenURL:  "https://secure.meetup.com/oauth2/access",
	AuthStyle: oauth2.AuthStyleInParams,
}

const defaultExchangeTimeout = 15 * time.Second

// Provider runs one authorization code flow.
type Provider struct {
	name       string
	conf       *oauth2.Config
	state      *StateSigner
	httpClient *http.Client
	logger     logger.Logger
}

// New creates a provider for endpoint. Without WithStateSigner a signer with
// a random secret is created.
func New(name string, endpoint oauth2.Endpoint, opts ...Option) (*Provider, error) {
	p := &Provider{
		name:       name,
		conf:       &oauth2.Config{Endpoint: endpoint},
		httpClient: &http.Client{Timeout: defaultExchangeTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.state == nil {
		s, err := NewStateSigner("")
		if err != nil {
			return nil, err
		}
		p.state = s
	}
	if p.logger == nil {
		p.logger = logger.Named("oauth").With(logger.String("provider", name))
	}
	return p, nil
}

// NewEventbrite creates the Eventbrite provider.
func NewEventbrite(opts ...Option) (*Provider, error) {
	return New(Eventbrite, EventbriteEndpoint, opts...)
}

// NewMeetup creates the Meetup provider.
func NewMeetup(opts ...Option) (*Provider, error) {
	return New(Meetup, MeetupEndpoint, opts...)
}

// Name returns the provider name.
func (p *Provider) Name() string { return p.name }

// Configured reports whether a client id is set.
func (p *Provider) Configured() bool { return strings.TrimSpace(p.conf.ClientID) != "" }

// AuthURL returns the authorize URL the user agent should be redirected to.
func (p *Provider) AuthURL() (string, error) {
	if !p.Configured() {
		return "", fmt.Errorf("%w: %s", ErrNotConfigured, p.name)
	}
	state, err := p.state.Sign(p.name)
	if err != nil {
		return "", err
	}
	return p.conf.AuthCodeURL(state), nil
}

// Exchange trades an authorization code for a token.
func (p *Provider) Exchange(ctx context.Context, code, state string) (model.Token, error) {
	if !p.Configured() {
		return model.Token{}, fmt.Errorf("%w: %s", ErrNotConfigured, p.name)
	}
	if strings.TrimSpace(code) == "" {
		return model.Token{}, ErrMissingCode
	}
	if err := p.state.Verify(state, p.name); err != nil {
		metrics.RecordOAuthExchange(p.name, "invalid_state")
		return model.Token{}, err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	tok, err := p.conf.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			metrics.RecordOAuthExchange(p.name, "rejected")
			p.logger.Warn(ctx, "token exchange rejected",
				logger.Int("status", statusOf(re)),
				logger.String("error_code", re.ErrorCode),
				logger.String("body", string(re.Body)),
			)
			reason := re.ErrorCode
			if reason == "" {
				reason = fmt.Sprintf("status %d", statusOf(re))
			}
			return model.Token{}, fmt.Errorf("%w: %s", ErrProviderRejected, reason)
		}
		metrics.RecordOAuthExchange(p.name, "error")
		p.logger.Error(ctx, "token exchange failed", logger.Error(err))
		return model.Token{}, fmt.Errorf("%w: %w", ErrExchange, err)
	}

	metrics.RecordOAuthExchange(p.name, "success")
	return toModel(tok), nil
}

func statusOf(re *oauth2.RetrieveError) int {
	if re.Response == nil {
		return 0
	}
	return re.Response.StatusCode
}

func toModel(tok *oauth2.Token) model.Token {
	expiresIn := tok.ExpiresIn
	if expiresIn == 0 && !tok.Expiry.IsZero() {
		expiresIn = int64(time.Until(tok.Expiry).Round(time.Second).Seconds())
	}
	return model.Token{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		ExpiresIn:    expiresIn,
	}
}
