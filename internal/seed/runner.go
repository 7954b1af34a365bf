package seed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/eventdesk/pkg/logger"
)

// ErrInvalidConfig is returned by Run for unusable settings.
var ErrInvalidConfig = errors.New("invalid seed config")

// Run executes a complete seeding run.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if config.Contacts <= 0 || config.Workers <= 0 || config.BaseURL == "" {
		return nil, fmt.Errorf("%w: contacts=%d workers=%d url=%q", ErrInvalidConfig, config.Contacts, config.Workers, config.BaseURL)
	}

	stats := &Stats{StartTime: time.Now()}
	log := logger.Named("seed")
	log.Info(ctx, "starting eventdesk contacts seed",
		logger.String("baseURL", config.BaseURL),
		logger.Int("contacts", config.Contacts),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Bool("cleanup", config.Cleanup))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate contacts
	contacts := generateContacts(config.Contacts)
	stats.Generated = len(contacts)

	// Step 3: Create contacts concurrently
	stored := createContacts(ctx, config, client, contacts, stats)

	// Step 4: List and verify
	listed, err := listContacts(ctx, client)
	if err != nil {
		return stats, fmt.Errorf("contact listing failed: %w", err)
	}
	verifyErr := verifyContacts(ctx, stored, listed, stats)

	// Step 5: Optional cleanup
	if config.Cleanup {
		deleteContacts(ctx, config, client, stored, stats)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if verifyErr != nil {
		return stats, fmt.Errorf("result verification failed: %w", verifyErr)
	}
	if stats.Failed > 0 {
		return stats, fmt.Errorf("%d contacts could not be created", stats.Failed)
	}
	log.Info(ctx, "seed completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	status, err := client.do(ctx, http.MethodGet, healthPath, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	// Any 200 is healthy; the body is the Prometheus exposition.
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", status)
	}
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, perSecond float64
	if stats.Generated > 0 {
		successRate = float64(stats.Created) / float64(stats.Generated) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Created) / stats.Duration.Seconds()
	}

	logger.Named("seed").Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("created", stats.Created),
		logger.Int("failed", stats.Failed),
		logger.Int("listed", stats.Listed),
		logger.Int("missing", stats.Missing),
		logger.Int("deleted", stats.Deleted),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("contactsPerSecond", perSecond))
}
