package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/eventdesk/pkg/logger"
)

type tokenServer struct {
	mu     sync.Mutex
	form   url.Values
	status int
	body   string
}

func (s *tokenServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	s.mu.Lock()
	s.form = r.PostForm
	status, body := s.status, s.body
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (s *tokenServer) respond(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status, s.body = status, body
}

func newTestProvider(t *testing.T, tokenURL string, opts ...Option) *Provider {
	t.Helper()
	if err := logger.Init(); err != nil {
		t.Fatalf("logger init: %v", err)
	}
	signer, err := NewStateSigner("test-secret")
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	base := []Option{
		WithCredentials("client-1", "secret-1"),
		WithRedirectURI("http://localhost:8080/api/auth/meetup/callback"),
		WithEndpoint("https://auth.example.com/authorize", tokenURL),
		WithStateSigner(signer),
	}
	p, err := NewMeetup(append(base, opts...)...)
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	return p
}

func TestAuthURL(t *testing.T) {
	Convey("Given a configured provider", t, func() {
		p := newTestProvider(t, "https://auth.example.com/token")

		Convey("When building the authorize URL", func() {
			raw, err := p.AuthURL()
			So(err, ShouldBeNil)
			u, err := url.Parse(raw)
			So(err, ShouldBeNil)
			q := u.Query()

			Convey("Then it should carry the code flow parameters", func() {
				So(u.Host, ShouldEqual, "auth.example.com")
				So(q.Get("response_type"), ShouldEqual, "code")
				So(q.Get("client_id"), ShouldEqual, "client-1")
				So(q.Get("redirect_uri"), ShouldEqual, "http://localhost:8080/api/auth/meetup/callback")
				So(q.Get("state"), ShouldNotBeEmpty)
			})

			Convey("And the state should verify for this provider only", func() {
				So(p.state.Verify(q.Get("state"), Meetup), ShouldBeNil)
				So(errors.Is(p.state.Verify(q.Get("state"), Eventbrite), ErrInvalidState), ShouldBeTrue)
			})
		})
	})

	Convey("Given a provider without a client id", t, func() {
		So(logger.Init(), ShouldBeNil)
		p, err := NewEventbrite()
		So(err, ShouldBeNil)

		Convey("Then AuthURL should report it as not configured", func() {
			_, err := p.AuthURL()
			So(errors.Is(err, ErrNotConfigured), ShouldBeTrue)
			So(p.Configured(), ShouldBeFalse)
			So(p.Name(), ShouldEqual, Eventbrite)
		})
	})
}

func TestExchange(t *testing.T) {
	Convey("Given a provider pointed at a stub token endpoint", t, func() {
		stub := &tokenServer{status: http.StatusOK}
		srv := httptest.NewServer(stub)
		defer srv.Close()
		p := newTestProvider(t, srv.URL)
		state, err := p.state.Sign(Meetup)
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("When the provider issues a token", func() {
			stub.respond(http.StatusOK, `{"access_token":"at-1","token_type":"bearer","refresh_token":"rt-1","expires_in":3600}`)
			tok, err := p.Exchange(ctx, "code-1", state)

			Convey("Then the token should be returned", func() {
				So(err, ShouldBeNil)
				So(tok.AccessToken, ShouldEqual, "at-1")
				So(tok.RefreshToken, ShouldEqual, "rt-1")
				So(tok.ExpiresIn, ShouldBeBetweenOrEqual, 3590, 3600)
			})

			Convey("And the credentials should be posted in the form body", func() {
				stub.mu.Lock()
				defer stub.mu.Unlock()
				So(stub.form.Get("grant_type"), ShouldEqual, "authorization_code")
				So(stub.form.Get("code"), ShouldEqual, "code-1")
				So(stub.form.Get("client_id"), ShouldEqual, "client-1")
				So(stub.form.Get("client_secret"), ShouldEqual, "secret-1")
				So(stub.form.Get("redirect_uri"), ShouldEqual, "http://localhost:8080/api/auth/meetup/callback")
			})
		})

		Convey("When the provider rejects the code", func() {
			stub.respond(http.StatusBadRequest, `{"error":"invalid_grant"}`)
			_, err := p.Exchange(ctx, "code-1", state)

			Convey("Then the provider error code should surface", func() {
				So(errors.Is(err, ErrProviderRejected), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "invalid_grant")
			})
		})

		Convey("When the code is missing", func() {
			_, err := p.Exchange(ctx, " ", state)

			Convey("Then ErrMissingCode should be returned", func() {
				So(errors.Is(err, ErrMissingCode), ShouldBeTrue)
			})
		})

		Convey("When the state is missing or forged", func() {
			_, errMissing := p.Exchange(ctx, "code-1", "")
			other, _ := NewStateSigner("other-secret")
			forged, _ := other.Sign(Meetup)
			_, errForged := p.Exchange(ctx, "code-1", forged)

			Convey("Then ErrInvalidState should be returned", func() {
				So(errors.Is(errMissing, ErrInvalidState), ShouldBeTrue)
				So(errors.Is(errForged, ErrInvalidState), ShouldBeTrue)
			})
		})
	})
}

func TestStateExpiry(t *testing.T) {
	Convey("Given a signer with a controllable clock", t, func() {
		s, err := NewStateSigner("")
		So(err, ShouldBeNil)
		now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return now }
		state, err := s.Sign(Eventbrite)
		So(err, ShouldBeNil)

		Convey("When verified within the ttl", func() {
			now = now.Add(DefaultStateTTL - time.Minute)

			Convey("Then it should be accepted", func() {
				So(s.Verify(state, Eventbrite), ShouldBeNil)
			})
		})

		Convey("When verified after the ttl", func() {
			now = now.Add(DefaultStateTTL + time.Minute)

			Convey("Then it should be rejected", func() {
				So(errors.Is(s.Verify(state, Eventbrite), ErrInvalidState), ShouldBeTrue)
			})
		})
	})
}
