package ticketmaster_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/okian/eventdesk/internal/adapters/ticketmaster"
	"github.com/okian/eventdesk/internal/domain/model"
	"github.com/okian/eventdesk/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// stubProvider serves pages of fake events and records every query.
type stubProvider struct {
	mu         sync.Mutex
	queries    []url.Values
	totalPages int
	perPage    int
	status     int
	omitPage   bool
}

func (s *stubProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.queries = append(s.queries, r.URL.Query())
	s.mu.Unlock()

	if r.URL.Path != "/discovery/v2/events.json" {
		http.NotFound(w, r)
		return
	}
	if s.status != 0 {
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(`{"fault":"rate limited"}`))
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	events := make([]map[string]any, 0, s.perPage)
	for i := 0; i < s.perPage; i++ {
		events = append(events, map[string]any{
			"id":    fmt.Sprintf("p%d-e%d", page, i),
			"name":  fmt.Sprintf("Show %d/%d", page, i),
			"url":   "https://tm.example/e",
			"dates": map[string]any{"start": map[string]any{"localDate": "2025-05-20"}},
			"images": []map[string]any{
				{"url": "https://img.example/1.jpg"},
				{"url": "https://img.example/2.jpg"},
			},
			"_embedded": map[string]any{"venues": []map[string]any{{
				"name":    "Red Rocks",
				"city":    map[string]any{"name": "Morrison"},
				"state":   map[string]any{"name": "Colorado"},
				"country": map[string]any{"name": "United States Of America"},
			}}},
		})
	}
	body := map[string]any{"_embedded": map[string]any{"events": events}}
	if !s.omitPage {
		body["page"] = map[string]any{"size": 100, "totalElements": s.totalPages * s.perPage, "totalPages": s.totalPages, "number": page}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func (s *stubProvider) requests() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.queries...)
}

func TestClientSearch(t *testing.T) {
	Convey("Given a ticketmaster client against a stub provider", t, func() {
		stub := &stubProvider{totalPages: 3, perPage: 2}
		srv := httptest.NewServer(stub)
		defer srv.Close()

		client := ticketmaster.NewClient(
			ticketmaster.WithAPIKey("secret"),
			ticketmaster.WithBaseURL(srv.URL),
		)
		ctx := context.Background()

		Convey("When searching a city with a date", func() {
			res, err := client.Search(ctx, model.SearchQuery{Location: "Denver", Date: "2025-05-20"})

			Convey("Then every provider page should be fetched in order", func() {
				So(err, ShouldBeNil)
				reqs := stub.requests()
				So(len(reqs), ShouldEqual, 3)
				for i, q := range reqs {
					So(q.Get("page"), ShouldEqual, strconv.Itoa(i))
				}
				So(res.ProviderPages, ShouldEqual, 3)
			})

			Convey("And the query should carry the city and day window", func() {
				q := stub.requests()[0]
				So(q.Get("apikey"), ShouldEqual, "secret")
				So(q.Get("sort"), ShouldEqual, "date,asc")
				So(q.Get("size"), ShouldEqual, "100")
				So(q.Get("countryCode"), ShouldEqual, "US")
				So(q.Get("city"), ShouldEqual, "Denver")
				So(q.Get("startDateTime"), ShouldEqual, "2025-05-20T00:00:00Z")
				So(q.Get("endDateTime"), ShouldEqual, "2025-05-20T23:59:59Z")
				So(q.Has("dmaId"), ShouldBeFalse)
			})

			Convey("And events should be mapped from the payload", func() {
				So(len(res.Events), ShouldEqual, 6)
				So(res.TotalPages, ShouldEqual, 3)
				So(res.TotalElements, ShouldEqual, 6)
				So(res.Events[0], ShouldResemble, model.Event{
					ID:      "p0-e0",
					Name:    "Show 0/0",
					Start:   "2025-05-20",
					URL:     "https://tm.example/e",
					Image:   "https://img.example/1.jpg",
					Venue:   "Red Rocks",
					City:    "Morrison",
					State:   "Colorado",
					Country: "United States Of America",
				})
				So(res.Events[5].ID, ShouldEqual, "p2-e1")
			})
		})

		Convey("When searching Los Angeles without a date", func() {
			stub.totalPages = 1
			_, err := client.Search(ctx, model.SearchQuery{Location: "  Los Angeles "})

			Convey("Then the market query should be used", func() {
				So(err, ShouldBeNil)
				q := stub.requests()[0]
				So(q.Get("dmaId"), ShouldEqual, "324")
				So(q.Get("latlong"), ShouldEqual, "34.0522,-118.2437")
				So(q.Get("radius"), ShouldEqual, "50")
				So(q.Get("includeTBA"), ShouldEqual, "no")
				So(q.Get("includeTBD"), ShouldEqual, "no")
				So(q.Has("city"), ShouldBeFalse)
				So(q.Has("countryCode"), ShouldBeFalse)
				So(q.Has("startDateTime"), ShouldBeFalse)
			})
		})

		Convey("When the provider reports more pages than the cap", func() {
			stub.totalPages = 50
			stub.perPage = 100
			res, err := client.Search(ctx, model.SearchQuery{Location: "Chicago"})

			Convey("Then at most 10 pages and 1000 events should be collected", func() {
				So(err, ShouldBeNil)
				So(len(stub.requests()), ShouldEqual, ticketmaster.MaxPages)
				So(len(res.Events), ShouldEqual, ticketmaster.MaxPages*ticketmaster.PageSize)
				So(res.TotalPages, ShouldEqual, 50)
				So(res.TotalElements, ShouldEqual, 5000)
			})
		})

		Convey("When the provider returns more events per page than requested", func() {
			stub.totalPages = 50
			stub.perPage = 150
			res, err := client.Search(ctx, model.SearchQuery{Location: "Chicago"})

			Convey("Then accumulation should stop at the event cap", func() {
				So(err, ShouldBeNil)
				So(len(res.Events), ShouldEqual, ticketmaster.MaxEvents)
				So(res.Events[len(res.Events)-1].ID, ShouldEqual, "p6-e99")
				So(len(stub.requests()), ShouldEqual, 7)
				So(res.ProviderPages, ShouldEqual, 7)
			})
		})

		Convey("When the provider omits the page object", func() {
			stub.omitPage = true
			res, err := client.Search(ctx, model.SearchQuery{Location: "Boise"})

			Convey("Then the loop should stop after one request", func() {
				So(err, ShouldBeNil)
				So(len(stub.requests()), ShouldEqual, 1)
				So(res.TotalPages, ShouldEqual, 0)
				So(res.TotalElements, ShouldEqual, 0)
				So(len(res.Events), ShouldEqual, 2)
			})
		})

		Convey("When the provider answers with an error status", func() {
			stub.status = http.StatusTooManyRequests
			_, err := client.Search(ctx, model.SearchQuery{Location: "Denver"})

			Convey("Then ErrProvider should be returned without the provider body", func() {
				So(errors.Is(err, ticketmaster.ErrProvider), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "failed to fetch events from Ticketmaster")
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := client.Search(cctx, model.SearchQuery{Location: "Denver"})

			Convey("Then the search should fail", func() {
				So(errors.Is(err, ticketmaster.ErrProvider), ShouldBeTrue)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})

		Convey("When the location is blank", func() {
			_, err := client.Search(ctx, model.SearchQuery{Location: "  "})

			Convey("Then ErrBadQuery should be returned", func() {
				So(errors.Is(err, ticketmaster.ErrBadQuery), ShouldBeTrue)
				So(stub.requests(), ShouldBeEmpty)
			})
		})
	})
}

func TestClientNotConfigured(t *testing.T) {
	Convey("Given a client without an API key", t, func() {
		client := ticketmaster.NewClient(ticketmaster.WithAPIKey("  "))

		Convey("When searching", func() {
			_, err := client.Search(context.Background(), model.SearchQuery{Location: "Denver"})

			Convey("Then ErrNotConfigured should be returned", func() {
				So(client.Configured(), ShouldBeFalse)
				So(errors.Is(err, ticketmaster.ErrNotConfigured), ShouldBeTrue)
			})
		})
	})
}

func TestProviderEventDefaults(t *testing.T) {
	Convey("Given a provider event without images or venues", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"_embedded":{"events":[{"id":"x1","name":"Bare"}]},"page":{"totalPages":1,"totalElements":1}}`))
		}))
		defer srv.Close()
		client := ticketmaster.NewClient(ticketmaster.WithAPIKey("k"), ticketmaster.WithBaseURL(srv.URL))

		Convey("When searching", func() {
			res, err := client.Search(context.Background(), model.SearchQuery{Location: "Denver"})

			Convey("Then missing fields should default to empty strings", func() {
				So(err, ShouldBeNil)
				So(res.Events, ShouldResemble, []model.Event{{ID: "x1", Name: "Bare"}})
			})
		})
	})
}
