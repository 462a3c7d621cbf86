// Package events publishes domain events for downstream consumers
// (fulfillment, notifications). Publishing is best effort; the storefront
// never fails a request because a consumer is unreachable.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// OrderCreated is emitted after an order transaction commits.
type OrderCreated struct {
	OrderID     int64     `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      int64     `json:"user_id,omitempty"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// Publisher emits domain events.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, evt OrderCreated) error
	Close()
}

// SubjectOrderCreated is the NATS subject for order creation events.
const SubjectOrderCreated = "eliteshop.orders.created"

// NATSPublisher publishes events to a NATS server.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to the given NATS URL.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: conn}, nil
}

// PublishOrderCreated publishes the event as JSON.
func (p *NATSPublisher) PublishOrderCreated(_ context.Context, evt OrderCreated) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.conn.Publish(SubjectOrderCreated, payload); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Close drains the connection.
func (p *NATSPublisher) Close() {
	_ = p.conn.Drain()
}

// NoopPublisher discards events. Used when no NATS URL is configured and in
// tests.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, OrderCreated) error { return nil }
func (NoopPublisher) Close()                                                  {}
