package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/eventdesk/internal/domain/model"
	"github.com/okian/eventdesk/pkg/logger"
)

// HTTPClient wraps http.Client with the service base URL
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// do sends a request and decodes a JSON answer into out when out is non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil || resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// createContacts submits contacts concurrently using a worker pool and
// returns the ones the service stored.
func createContacts(ctx context.Context, config *Config, client *HTTPClient, contacts []model.NewContact, stats *Stats) []created {
	log := logger.Named("seed")
	log.Info(ctx, "creating contacts", logger.Int("contacts", len(contacts)), logger.Int("workers", config.Workers))

	var (
		mu        sync.Mutex
		stored    = make([]created, 0, len(contacts))
		submitted int64
		failed    int64
	)

	jobs := make(chan model.NewContact, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for in := range jobs {
				c, res := createSingleContact(ctx, client, in)
				atomic.AddInt64(&submitted, 1)
				if res != outcomeSuccess {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Warn(ctx, "failed to create contact", logger.String("email", in.Email))
					}
					continue
				}
				mu.Lock()
				stored = append(stored, created{input: in, contact: c})
				mu.Unlock()
			}
		}()
	}

	done := make(chan struct{})
	go reportProgress(ctx, done, &submitted, &failed, len(contacts))

	func() {
		defer close(jobs)
		for _, in := range contacts {
			select {
			case <-ctx.Done():
				return
			case jobs <- in:
			}
		}
	}()
	wg.Wait()
	close(done)

	stats.Created = len(stored)
	stats.Failed = int(atomic.LoadInt64(&failed))
	log.Info(ctx, "contact creation completed", logger.Int("created", stats.Created), logger.Int("failed", stats.Failed))
	return stored
}

// createSingleContact posts one contact.
func createSingleContact(ctx context.Context, client *HTTPClient, in model.NewContact) (model.Contact, outcome) {
	var c model.Contact
	status, err := client.do(ctx, http.MethodPost, contactsPath, in, &c)
	if err != nil || status != http.StatusCreated || c.ID == "" {
		return model.Contact{}, outcomeFailed
	}
	return c, outcomeSuccess
}

// listContacts fetches every stored contact.
func listContacts(ctx context.Context, client *HTTPClient) ([]model.Contact, error) {
	var contacts []model.Contact
	status, err := client.do(ctx, http.MethodGet, contactsPath, nil, &contacts)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list contacts failed with status: %d", status)
	}
	return contacts, nil
}

// deleteContacts removes the given contacts concurrently.
func deleteContacts(ctx context.Context, config *Config, client *HTTPClient, contacts []created, stats *Stats) {
	var deleted int64
	ids := make(chan string, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range ids {
				status, err := client.do(ctx, http.MethodDelete, contactsPath+"?id="+url.QueryEscape(id), nil, nil)
				if err == nil && status == http.StatusOK {
					atomic.AddInt64(&deleted, 1)
				}
			}
		}()
	}

	func() {
		defer close(ids)
		for _, c := range contacts {
			select {
			case <-ctx.Done():
				return
			case ids <- c.contact.ID:
			}
		}
	}()
	wg.Wait()

	stats.Deleted = int(atomic.LoadInt64(&deleted))
	logger.Named("seed").Info(ctx, "cleanup completed", logger.Int("deleted", stats.Deleted))
}

// reportProgress logs submission progress until done is closed.
func reportProgress(ctx context.Context, done <-chan struct{}, submitted, failed *int64, total int) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			logger.Named("seed").Info(ctx, "progress",
				logger.Int64("submitted", atomic.LoadInt64(submitted)),
				logger.Int64("failed", atomic.LoadInt64(failed)),
				logger.Int("total", total))
		}
	}
}
