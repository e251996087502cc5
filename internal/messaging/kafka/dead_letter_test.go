package kafka

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func deadLetterValue(t *testing.T, inner map[string]any) []byte {
	t.Helper()
	payload, err := json.Marshal(inner)
	require.NoError(t, err)

	envelope := NewEnvelope(domain.OutboxMessage{
		ID:            "outbox-1",
		AggregateType: domain.OutboxAggregateOrder,
		AggregateID:   "order-1",
		EventType:     domain.EventTypeOrderCreated,
		Payload:       payload,
		CreatedAt:     time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}, time.Now())
	value, err := json.Marshal(envelope)
	require.NoError(t, err)
	return value
}

func TestDecodeDeadLetter(t *testing.T) {
	value := deadLetterValue(t, map[string]any{
		"outbox_id":        "outbox-1",
		"aggregate_type":   "order",
		"aggregate_id":     "order-1",
		"event_type":       "order.created",
		"payload":          map[string]any{"id": "order-1", "status": "Pending"},
		"publish_error":    "kafka: client has run out of available brokers",
		"attempts":         3,
		"dlq_published_at": "2024-06-01T10:00:05Z",
	})

	msg, dl, err := DecodeDeadLetter(value)
	require.NoError(t, err)
	require.Equal(t, "outbox-1", msg.ID)
	require.Equal(t, "order-1", msg.AggregateID)
	require.Equal(t, domain.EventTypeOrderCreated, msg.EventType)
	require.Equal(t, 3, msg.Attempts)
	require.JSONEq(t, `{"id":"order-1","status":"Pending"}`, string(msg.Payload))
	require.Equal(t, "kafka: client has run out of available brokers", dl.PublishError)
	require.False(t, dl.DLQPublished.IsZero())
	require.False(t, msg.CreatedAt.IsZero())
}

func TestDecodeDeadLetter_FallsBackToEnvelopeFields(t *testing.T) {
	value := deadLetterValue(t, map[string]any{
		"payload": map[string]any{"id": "order-1"},
	})

	msg, _, err := DecodeDeadLetter(value)
	require.NoError(t, err)
	require.Equal(t, "outbox-1", msg.ID)
	require.Equal(t, domain.OutboxAggregateOrder, msg.AggregateType)
	require.Equal(t, "order-1", msg.AggregateID)
}

func TestDecodeDeadLetter_Rejects(t *testing.T) {
	_, _, err := DecodeDeadLetter([]byte("not json"))
	require.True(t, errors.Is(err, ErrNotDeadLetter))

	_, _, err = DecodeDeadLetter([]byte(`{"id":"x"}`))
	require.True(t, errors.Is(err, ErrNotDeadLetter))

	value := deadLetterValue(t, map[string]any{"outbox_id": "outbox-1"})
	_, _, err = DecodeDeadLetter(value)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotDeadLetter))
}

func TestNewDeadLetter_RoundTrip(t *testing.T) {
	original := domain.OutboxMessage{
		ID:            "outbox-9",
		AggregateType: domain.OutboxAggregateOrder,
		AggregateID:   "order-9",
		EventType:     domain.EventTypeOrderStatusChanged,
		Payload:       []byte(`{"to":"Shipped"}`),
	}
	now := time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)

	dlq, err := NewDeadLetter(original, errors.New("broker down"), 3, now)
	require.NoError(t, err)
	require.Equal(t, original.ID, dlq.ID)
	require.Equal(t, original.AggregateID, dlq.AggregateID)

	value, err := json.Marshal(NewEnvelope(dlq, now))
	require.NoError(t, err)

	restored, dl, err := DecodeDeadLetter(value)
	require.NoError(t, err)
	require.Equal(t, original.ID, restored.ID)
	require.Equal(t, original.EventType, restored.EventType)
	require.JSONEq(t, `{"to":"Shipped"}`, string(restored.Payload))
	require.Equal(t, "broker down", dl.PublishError)
	require.Equal(t, 3, dl.Attempts)
	require.True(t, dl.DLQPublished.Equal(now))
}

func TestNewDeadLetter_InvalidPayloadIsRejectedOnReplay(t *testing.T) {
	dlq, err := NewDeadLetter(domain.OutboxMessage{ID: "outbox-1", Payload: []byte("{broken")}, nil, 1, time.Now())
	require.NoError(t, err)

	value, err := json.Marshal(NewEnvelope(dlq, time.Now()))
	require.NoError(t, err)

	_, _, err = DecodeDeadLetter(value)
	require.Error(t, err)
}
