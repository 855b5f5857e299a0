package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject = subject
	f.data = data
	return f.err
}

func TestPublish(t *testing.T) {
	conn := &fakeConn{}
	p := NewNATS(conn, "welcomehome.events")
	at := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), Event{Type: OrderPrepared, At: at, Actor: "sam", OrderID: 4, Count: 2})
	require.NoError(t, err)

	assert.Equal(t, "welcomehome.events.order.prepared", conn.subject)

	var got Event
	require.NoError(t, json.Unmarshal(conn.data, &got))
	assert.Equal(t, int64(4), got.OrderID)
	assert.Equal(t, "sam", got.Actor)
	assert.NotContains(t, string(conn.data), "item_id")
}

func TestPublishError(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	p := NewNATS(conn, "x")

	err := p.Publish(context.Background(), Event{Type: DonationAccepted})
	assert.ErrorContains(t, err, "publishing donation.accepted")
}

func TestDiscard(t *testing.T) {
	var p Publisher = Discard{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: OrderStarted}))
}
