// Package ticketmaster is a minimal client for the Ticketmaster Discovery API.
package ticketmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/eventdesk/internal/domain/model"
	"github.com/okian/eventdesk/pkg/logger"
	"github.com/okian/eventdesk/pkg/metrics"
)

const (
	// MaxPages caps provider requests per search.
	MaxPages = 10
	// PageSize is the provider page size; MaxPages*PageSize bounds accumulated events.
	PageSize = 100
	// MaxEvents bounds accumulated events even when the provider over-delivers.
	MaxEvents = MaxPages * PageSize

	defaultBaseURL = "https://app.ticketmaster.com"
	eventsPath     = "/discovery/v2/events.json"
	defaultTimeout = 15 * time.Second
	providerName   = "ticketmaster"
	maxErrorBody   = 4 << 10
)

// Client searches events by location and day.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient constructs a Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Named(providerName)
	}
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

// Search walks provider pages until the provider reports no more pages or
// MaxPages requests were made, accumulating at most MaxEvents events.
func (c *Client) Search(ctx context.Context, q model.SearchQuery) (model.SearchResult, error) {
	if !c.Configured() {
		return model.SearchResult{}, ErrNotConfigured
	}
	if strings.TrimSpace(q.Location) == "" {
		return model.SearchResult{}, ErrBadQuery
	}

	res := model.SearchResult{Events: []model.Event{}}
	totalPages := 1
	page := 0
	for page < totalPages && page < MaxPages && len(res.Events) < MaxEvents {
		body, err := c.fetchPage(ctx, q, page)
		if err != nil {
			return model.SearchResult{}, err
		}
		page++

		totalPages, res.TotalElements = 0, 0
		if body.Page != nil {
			totalPages = body.Page.TotalPages
			res.TotalElements = body.Page.TotalElements
		}
		if body.Embedded != nil {
			for _, ev := range body.Embedded.Events {
				if len(res.Events) == MaxEvents {
					break
				}
				res.Events = append(res.Events, ev.toModel())
			}
		}
	}

	res.TotalPages = totalPages
	res.PageSize = len(res.Events)
	res.ProviderPages = page
	metrics.RecordSearch(page, len(res.Events))
	c.logger.Debug(ctx, "events search finished",
		logger.String("location", q.Location),
		logger.String("date", q.Date),
		logger.Int("pages", page),
		logger.Int("events", len(res.Events)),
		logger.Int("totalElements", res.TotalElements),
	)
	return res, nil
}

func (c *Client) fetchPage(ctx context.Context, q model.SearchQuery, page int) (*searchResponse, error) {
	u := c.baseURL + eventsPath + "?" + c.buildParams(q, page).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug(ctx, "ticketmaster request", logger.String("url", redact(u)), logger.Int("page", page))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := float64(time.Since(start).Milliseconds())
	if err != nil {
		metrics.RecordProviderRequest(providerName, "transport_error", latency)
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordProviderRequest(providerName, "http_"+strconv.Itoa(resp.StatusCode), latency)
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error(ctx, "ticketmaster API error response",
			logger.Int("status", resp.StatusCode),
			logger.String("body", string(errBody)),
		)
		return nil, ErrProvider
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.RecordProviderRequest(providerName, "decode_error", latency)
		return nil, fmt.Errorf("%w: decode response: %w", ErrProvider, err)
	}
	metrics.RecordProviderRequest(providerName, "ok", latency)
	return &body, nil
}

// buildParams applies the location and date policy for one page request.
func (c *Client) buildParams(q model.SearchQuery, page int) url.Values {
	params := url.Values{}
	params.Set("sort", "date,asc")
	params.Set("apikey", c.apiKey)
	params.Set("size", strconv.Itoa(PageSize))
	params.Set("page", strconv.Itoa(page))

	// Los Angeles mirrors the ticketmaster.com market search.
	if strings.ToLower(strings.TrimSpace(q.Location)) == "los angeles" {
		params.Set("dmaId", "324")
		params.Set("latlong", "34.0522,-118.2437")
		params.Set("radius", "50")
		params.Set("includeTBA", "no")
		params.Set("includeTBD", "no")
	} else {
		params.Set("countryCode", "US")
		params.Set("city", q.Location)
	}
	if q.Date != "" {
		params.Set("startDateTime", q.Date+"T00:00:00Z")
		params.Set("endDateTime", q.Date+"T23:59:59Z")
	}
	return params
}

func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	qs := u.Query()
	if qs.Has("apikey") {
		qs.Set("apikey", "REDACTED")
	}
	u.RawQuery = qs.Encode()
	return u.String()
}
