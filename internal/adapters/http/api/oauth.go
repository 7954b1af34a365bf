package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/okian/eventdesk/internal/adapters/oauth"
	"github.com/okian/eventdesk/internal/domain/model"
)

// OAuthDependencies defines the OAuth operations the handler needs.
type OAuthDependencies interface {
	AuthURL(provider string) (string, error)
	ExchangeCode(ctx context.Context, provider, code, state string) (model.Token, error)
}

// OAuthHandler serves the login redirects and callbacks.
type OAuthHandler struct {
	deps OAuthDependencies
}

// NewOAuthHandler creates a new OAuth handler.
func NewOAuthHandler(deps OAuthDependencies) *OAuthHandler {
	return &OAuthHandler{deps: deps}
}

// meetupTokenResponse is the reduced token shape returned by the Meetup callback.
type meetupTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}

// HandleLogin redirects the user agent to provider's authorize URL.
func (h *OAuthHandler) HandleLogin(provider string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowMethods(w, r, http.MethodGet) {
			return
		}
		u, err := h.deps.AuthURL(provider)
		if err != nil {
			writeFailure(w, err)
			return
		}
		http.Redirect(w, r, u, http.StatusFound)
	}
}

// HandleCallback exchanges the returned code and answers with the token.
func (h *OAuthHandler) HandleCallback(provider string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowMethods(w, r, http.MethodGet) {
			return
		}
		q := r.URL.Query()
		if denied := q.Get("error"); denied != "" {
			writeError(w, http.StatusBadRequest, "access_denied", fmt.Errorf("%w: authorization denied: %s", ErrBadRequest, denied))
			return
		}
		code := q.Get("code")
		if code == "" {
			writeFailure(w, oauth.ErrMissingCode)
			return
		}

		tok, err := h.deps.ExchangeCode(r.Context(), provider, code, q.Get("state"))
		if err != nil {
			writeFailure(w, err)
			return
		}
		if provider == oauth.Meetup {
			writeJSON(w, http.StatusOK, meetupTokenResponse{
				AccessToken:  tok.AccessToken,
				RefreshToken: tok.RefreshToken,
				ExpiresIn:    tok.ExpiresIn,
			})
			return
		}
		writeJSON(w, http.StatusOK, tok)
	}
}
