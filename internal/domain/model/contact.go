package model

import (
	"errors"
	"strings"
	"time"
)

// ErrMissingFields is returned when a new contact has a blank field.
var ErrMissingFields = errors.New("Missing required fields") //nolint:staticcheck // surfaced verbatim to clients

// Contact is a stored person record.
type Contact struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Phone     string    `json:"phone" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
}

// TableName pins the table to the existing "contacts" table.
func (Contact) TableName() string { return "contacts" }

// NewContact carries the user-supplied fields of a contact.
type NewContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Normalize trims surrounding whitespace from every field.
func (n NewContact) Normalize() NewContact {
	return NewContact{
		Name:  strings.TrimSpace(n.Name),
		Email: strings.TrimSpace(n.Email),
		Phone: strings.TrimSpace(n.Phone),
	}
}

// Validate rejects blank fields.
func (n NewContact) Validate() error {
	if strings.TrimSpace(n.Name) == "" || strings.TrimSpace(n.Email) == "" || strings.TrimSpace(n.Phone) == "" {
		return ErrMissingFields
	}
	return nil
}

// ContactEvent describes a change to the contacts table.
type ContactEvent struct {
	Type    string    `json:"type"`
	Contact Contact   `json:"contact"`
	At      time.Time `json:"at"`
}

// Contact change types, also used as routing keys.
const (
	ContactCreated = "contact.created"
	ContactDeleted = "contact.deleted"
)
