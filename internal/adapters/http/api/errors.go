package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/eventdesk/internal/adapters/oauth"
	"github.com/okian/eventdesk/internal/adapters/repository"
	"github.com/okian/eventdesk/internal/adapters/ticketmaster"
	service "github.com/okian/eventdesk/internal/app"
	"github.com/okian/eventdesk/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrMissingLocation = errors.New("Missing or invalid location query param.") //nolint:staticcheck // surfaced verbatim to clients
)

func methodNotAllowed(method string) error {
	return fmt.Errorf("Method %s Not Allowed", method) //nolint:staticcheck // surfaced verbatim to clients
}

// statusFor maps error kinds to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrMissingLocation),
		errors.Is(err, model.ErrMissingFields),
		errors.Is(err, service.ErrMissingID),
		errors.Is(err, service.ErrInvalidPagination),
		errors.Is(err, ticketmaster.ErrBadQuery),
		errors.Is(err, oauth.ErrMissingCode),
		errors.Is(err, oauth.ErrInvalidState):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrUnknownProvider):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, oauth.ErrNotConfigured),
		errors.Is(err, ticketmaster.ErrNotConfigured),
		errors.Is(err, service.ErrUnavailable),
		errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, ticketmaster.ErrProvider),
		errors.Is(err, oauth.ErrProviderRejected),
		errors.Is(err, oauth.ErrExchange):
		return http.StatusInternalServerError, "provider_error"
	case errors.Is(err, repository.ErrStore):
		return http.StatusInternalServerError, "store_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
