package oauth

import (
	"net/http"

	"golang.org/x/oauth2"

	"github.com/okian/eventdesk/pkg/logger"
)

// Option applies a configuration option to a Provider.
type Option func(*Provider)

// WithCredentials sets the client id and secret issued by the provider.
func WithCredentials(clientID, clientSecret string) Option {
	return func(p *Provider) {
		p.conf.ClientID = clientID
		p.conf.ClientSecret = clientSecret
	}
}

// WithRedirectURI sets the callback URL registered with the provider.
func WithRedirectURI(uri string) Option {
	return func(p *Provider) {
		p.conf.RedirectURL = uri
	}
}

// WithEndpoint overrides the provider's authorize and token URLs.
func WithEndpoint(authURL, tokenURL string) Option {
	return func(p *Provider) {
		if authURL != "" {
			p.conf.Endpoint.AuthURL = authURL
		}
		if tokenURL != "" {
			p.conf.Endpoint.TokenURL = tokenURL
		}
		p.conf.Endpoint.AuthStyle = oauth2.AuthStyleInParams
	}
}

// WithStateSigner shares a state signer between providers.
func WithStateSigner(s *StateSigner) Option {
	return func(p *Provider) {
		if s != nil {
			p.state = s
		}
	}
}

// WithHTTPClient sets the client used for token exchanges.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// WithLogger sets the provider logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}
