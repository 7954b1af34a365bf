package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/okian/eventdesk/pkg/logger"
	"github.com/okian/eventdesk/pkg/metrics"
)

const exchangeTypeTopic = "topic"

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQP publishes contact events as JSON to a durable topic exchange.
type AMQP struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
	closed   bool
	logger   logger.Logger
}

var _ Publisher = (*AMQP)(nil)

// Dial connects to RabbitMQ at url and declares the exchange.
func Dial(url string, opts ...Option) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %w", ErrConnect, err)
	}
	p, err := newAMQP(ch, opts...)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newAMQP(ch channel, opts ...Option) (*AMQP, error) {
	p := &AMQP{ch: ch, exchange: defaultExchange}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Named("publisher")
	}
	if err := ch.ExchangeDeclare(p.exchange, exchangeTypeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("%w: declare exchange %s: %w", ErrConnect, p.exchange, err)
	}
	return p, nil
}

// Publish sends e with its type as routing key.
func (p *AMQP) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		metrics.RecordNotification(e.Type, "error")
		return fmt.Errorf("%w: encode: %w", ErrPublish, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		metrics.RecordNotification(e.Type, "closed")
		return ErrClosed
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, e.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    e.At,
		Type:         e.Type,
		Body:         body,
	})
	if err != nil {
		metrics.RecordNotification(e.Type, "error")
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}
	metrics.RecordNotification(e.Type, "published")
	return nil
}

// Close closes the channel and connection.
func (p *AMQP) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
