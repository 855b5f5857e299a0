// Package events publishes domain events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Event types.
const (
	DonationAccepted = "donation.accepted"
	OrderStarted     = "order.started"
	OrderItemAdded   = "order.item_added"
	OrderPrepared    = "order.prepared"
)

// Event is the JSON payload of a published message.
type Event struct {
	Type     string    `json:"type"`
	At       time.Time `json:"at"`
	Actor    string    `json:"actor"`
	OrderID  int64     `json:"order_id,omitempty"`
	ItemID   int64     `json:"item_id,omitempty"`
	Username string    `json:"username,omitempty"`
	Count    int64     `json:"count,omitempty"`
}

// Publisher sends events somewhere.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Conn is the subset of *nats.Conn used for publishing.
type Conn interface {
	Publish(subject string, data []byte) error
}

// NATS publishes events on subject.<type>.
type NATS struct {
	conn    Conn
	subject string
}

// NewNATS wraps an existing connection.
func NewNATS(conn Conn, subject string) *NATS {
	return &NATS{conn: conn, subject: subject}
}

// Connect dials url and returns a publisher with its connection.
func Connect(url, subject string) (*NATS, *nats.Conn, error) {
	nc, err := nats.Connect(url, nats.Name("welcomehome"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to nats: %w", err)
	}
	return NewNATS(nc, subject), nc, nil
}

// Subject returns the subject an event type is published on.
func (n *NATS) Subject(eventType string) string {
	return n.subject + "." + eventType
}

// Publish encodes e and sends it.
func (n *NATS) Publish(_ context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	if err := n.conn.Publish(n.Subject(e.Type), data); err != nil {
		return fmt.Errorf("publishing %s: %w", e.Type, err)
	}
	return nil
}

// Discard drops every event.
type Discard struct{}

// Publish implements Publisher.
func (Discard) Publish(context.Context, Event) error { return nil }
