package kafka

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestProducer_Send(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicOrderEvents {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil || string(key) != "order-123" {
			return errors.New("unexpected key")
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var body map[string]string
		if err := json.Unmarshal(value, &body); err != nil || body["order_id"] != "order-123" {
			return errors.New("unexpected value")
		}
		if len(msg.Headers) != 2 || string(msg.Headers[0].Key) != HeaderAggregateType {
			return errors.New("headers must be sorted by name")
		}
		return nil
	})

	_, err := newProducer(mock).Send(Message{
		Topic: TopicOrderEvents,
		Key:   "order-123",
		Value: map[string]string{"order_id": "order-123"},
		Headers: map[string]string{
			HeaderEventType:     domain.EventTypeOrderCreated,
			HeaderAggregateType: domain.OutboxAggregateOrder,
		},
	})
	require.NoError(t, err)
	require.NoError(t, mock.Close())
}

func TestProducer_SendBrokerError(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	_, err := newProducer(mock).Send(Message{Topic: TopicOrderEvents, Key: "order-123", Value: struct{}{}})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, mock.Close())
}

func TestProducer_SendUnencodableValue(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)

	_, err := newProducer(mock).Send(Message{Topic: TopicOrderEvents, Value: make(chan int)})
	require.Error(t, err)
	require.NoError(t, mock.Close())
}

func TestProducer_NilIsClosed(t *testing.T) {
	var p *Producer
	_, err := p.Send(Message{Topic: TopicOrderEvents})
	require.ErrorIs(t, err, ErrProducerClosed)
	require.NoError(t, p.Close())
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(nil, "storefront")
	require.Error(t, err)
}

func TestProducerConfig(t *testing.T) {
	cfg := producerConfig("storefront-api")

	assert.Equal(t, "storefront-api", cfg.ClientID)
	assert.True(t, cfg.Producer.Idempotent)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
	assert.True(t, cfg.Producer.Return.Successes)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, sarama.NewConfig().ClientID, producerConfig("").ClientID)
}

func TestRecordHeaders(t *testing.T) {
	assert.Nil(t, recordHeaders(nil))

	got := recordHeaders(map[string]string{"b": "2", "a": "1"})
	require.Len(t, got, 2)
	assert.Equal(t, "a", string(got[0].Key))
	assert.Equal(t, "2", string(got[1].Value))
}

func TestNewEnvelope(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	published := created.Add(time.Minute)

	env := NewEnvelope(domain.OutboxMessage{
		ID:            "outbox-1",
		AggregateType: domain.OutboxAggregateOrder,
		AggregateID:   "order-1",
		EventType:     domain.EventTypeOrderCreated,
		Payload:       []byte(`{"status":"Pending"}`),
		CreatedAt:     created,
	}, published)

	assert.Equal(t, "order-1", env.AggregateID)
	assert.Equal(t, domain.EventTypeOrderCreated, env.EventType)
	assert.JSONEq(t, `{"status":"Pending"}`, string(env.Payload))
	assert.True(t, env.PublishedAt.Equal(published))

	broken := NewEnvelope(domain.OutboxMessage{ID: "outbox-2", Payload: []byte("{not json")}, published)
	assert.Equal(t, "null", string(broken.Payload))
}

func TestMessageKey(t *testing.T) {
	assert.Equal(t, "order-1", messageKey(domain.OutboxMessage{ID: "o-1", AggregateID: "order-1"}))
	assert.Equal(t, "o-1", messageKey(domain.OutboxMessage{ID: "o-1"}))
}
