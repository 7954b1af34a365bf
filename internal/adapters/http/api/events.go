package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okian/eventdesk/internal/adapters/calendar"
	"github.com/okian/eventdesk/internal/domain/model"
)

const dateLayout = "2006-01-02"

// EventDependencies defines the events search the handler needs.
type EventDependencies interface {
	SearchEvents(ctx context.Context, q model.SearchQuery, page, size int) (model.SearchResult, error)
}

// EventsHandler handles event search and export requests.
type EventsHandler struct {
	deps EventDependencies
	now  func() time.Time
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps, now: time.Now}
}

// HandleSearch handles GET /api/events?location=&date=&page=&size=.
func (h *EventsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	q, err := parseSearchQuery(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	page, err := intParam(r, "page")
	if err != nil {
		writeFailure(w, err)
		return
	}
	size, err := intParam(r, "size")
	if err != nil {
		writeFailure(w, err)
		return
	}

	res, err := h.deps.SearchEvents(r.Context(), q, page, size)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleCalendar handles GET /api/events/calendar?location=&date=.
func (h *EventsHandler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	q, err := parseSearchQuery(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	res, err := h.deps.SearchEvents(r.Context(), q, 0, 0)
	if err != nil {
		writeFailure(w, err)
		return
	}

	name := "Events in " + strings.TrimSpace(q.Location)
	if q.Date != "" {
		name += " on " + q.Date
	}
	w.Header().Set("Content-Type", calendar.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="events.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(calendar.Export(name, res.Events, h.now())))
}

// parseSearchQuery requires exactly one non-blank location and an optional date.
func parseSearchQuery(r *http.Request) (model.SearchQuery, error) {
	values := r.URL.Query()
	locs := values["location"]
	if len(locs) != 1 || strings.TrimSpace(locs[0]) == "" {
		return model.SearchQuery{}, ErrMissingLocation
	}
	date := strings.TrimSpace(values.Get("date"))
	if date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return model.SearchQuery{}, fmt.Errorf("%w: invalid date; must be YYYY-MM-DD", ErrBadRequest)
		}
	}
	return model.SearchQuery{Location: locs[0], Date: date}, nil
}

// intParam parses an optional non-negative integer query parameter.
func intParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid %s", ErrBadRequest, name)
	}
	return n, nil
}
