// Package seed drives a running eventdesk instance through its contacts API:
// it creates synthetic contacts concurrently, verifies they are listed and
// optionally deletes them again.
package seed

import (
	"time"

	"github.com/okian/eventdesk/internal/domain/model"
)

// Config holds configuration for a seeding run
type Config struct {
	BaseURL  string        // Base URL of the service
	Contacts int           // Number of contacts to create
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	Cleanup  bool          // Delete created contacts at the end
	Verbose  bool          // Log every failed request
}

// Stats holds run statistics
type Stats struct {
	Generated int
	Created   int
	Failed    int
	Listed    int
	Missing   int
	Deleted   int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// result of a single API call.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailed
)

// created pairs a generated contact with the stored record.
type created struct {
	input   model.NewContact
	contact model.Contact
}
