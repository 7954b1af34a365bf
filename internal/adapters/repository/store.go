// Package repository defines the contacts store interface and its Postgres implementation.
package repository

import (
	"context"

	"github.com/okian/eventdesk/internal/domain/model"
)

// ContactStore provides read/write access to the contacts table.
type ContactStore interface {
	// List returns every contact ordered by creation time.
	List(ctx context.Context) ([]model.Contact, error)

	// Create inserts a contact and returns the stored row.
	Create(ctx context.Context, in model.NewContact) (model.Contact, error)

	// Delete removes the contact with id and reports whether a row matched.
	// Unknown ids are not an error.
	Delete(ctx context.Context, id string) (bool, error)

	// Ping reports whether the datastore is reachable.
	Ping(ctx context.Context) error
}
