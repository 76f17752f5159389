package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/fightshop/internal/domain"
)

type fakeWriter struct{ msgs []kafka.Message }

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestPublisherWritesKeyedEvent(t *testing.T) {
	fw := &fakeWriter{}
	p := &Publisher{w: fw}
	o := &domain.Order{Number: "ORD-1", OwnerID: "v1", Status: domain.OrderStatusPending, Total: 2300}

	require.NoError(t, p.OrderPlaced(context.Background(), o))
	require.Len(t, fw.msgs, 1)
	assert.Equal(t, "ORD-1", string(fw.msgs[0].Key))

	var ev OrderPlacedEvent
	require.NoError(t, json.Unmarshal(fw.msgs[0].Value, &ev))
	assert.Equal(t, "order.placed", ev.Type)
	assert.Equal(t, int64(2300), ev.Total)
	assert.Equal(t, domain.OrderStatusPending, ev.Status)
}
