package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDecodeEvent(t *testing.T) {
	payload, err := json.Marshal(BookingEvent{Type: EventBookingPaid, BookingID: "BK600123", Amount: 110})
	require.NoError(t, err)

	event, ok := decodeEvent(payload)
	require.True(t, ok)
	assert.Equal(t, "BK600123", event.BookingID)
	assert.Equal(t, 110.0, event.Amount)

	_, ok = decodeEvent([]byte("not json"))
	assert.False(t, ok)

	_, ok = decodeEvent([]byte(`{"bookingId":"BK1"}`))
	assert.False(t, ok, "events without a type are rejected")
}

func TestProducer_CheckConnection(t *testing.T) {
	p := NewProducer(nil, zap.NewNop())
	defer p.Close()

	assert.Error(t, p.CheckConnection(context.Background()))

	p = NewProducer([]string{"127.0.0.1:1"}, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	assert.Error(t, p.CheckConnection(ctx))
}

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}
