// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/eventdesk/internal/adapters/oauth"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	EventDependencies
	ContactDependencies
	OAuthDependencies

	// Ready reports whether backing stores answer.
	Ready(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	eventsHandler   *EventsHandler
	contactsHandler *ContactsHandler
	oauthHandler    *OAuthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(deps),
		statsHandler:    NewStatsHandler(statsProvider),
		eventsHandler:   NewEventsHandler(deps),
		contactsHandler: NewContactsHandler(deps),
		oauthHandler:    NewOAuthHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.healthHandler.HandleHealth)
	mux.HandleFunc("/readyz", MetricsMiddleware(s.healthHandler.HandleReady, "readyz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("/api/contacts", MetricsMiddleware(s.contactsHandler.HandleContacts, "contacts"))
	mux.HandleFunc("/api/events", MetricsMiddleware(s.eventsHandler.HandleSearch, "events"))
	mux.HandleFunc("/api/events/calendar", MetricsMiddleware(s.eventsHandler.HandleCalendar, "events_calendar"))

	mux.HandleFunc("/api/eventbrite/auth", MetricsMiddleware(s.oauthHandler.HandleLogin(oauth.Eventbrite), "eventbrite_auth"))
	mux.HandleFunc("/api/eventbrite/callback", MetricsMiddleware(s.oauthHandler.HandleCallback(oauth.Eventbrite), "eventbrite_callback"))
	mux.HandleFunc("/api/auth/meetup/login", MetricsMiddleware(s.oauthHandler.HandleLogin(oauth.Meetup), "meetup_login"))
	mux.HandleFunc("/api/auth/meetup/callback", MetricsMiddleware(s.oauthHandler.HandleCallback(oauth.Meetup), "meetup_callback"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps err to its status and writes it.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}

// allowMethods answers 405 unless r uses one of methods.
func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", methodNotAllowed(r.Method))
	return false
}
