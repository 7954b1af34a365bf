// Package publisher announces contact changes to interested consumers.
//
// The AMQP implementation publishes to a RabbitMQ topic exchange. Noop is
// used when no broker is configured.
package publisher

import (
	"context"

	"github.com/okian/eventdesk/internal/domain/model"
)

// Event is the payload published for every contact change.
type Event = model.ContactEvent

// Publisher delivers contact change events.
type Publisher interface {
	// Publish sends e. Implementations must be safe for concurrent use.
	Publish(ctx context.Context, e Event) error

	// Close releases any underlying connection.
	Close() error
}

// Noop discards every event.
type Noop struct{}

var _ Publisher = Noop{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
