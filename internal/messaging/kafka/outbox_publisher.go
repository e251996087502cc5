package kafka

import (
	"strconv"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// OutboxTopicPublisher публикует outbox-сообщения в заданный Kafka topic.
type OutboxTopicPublisher struct {
	producer *Producer
	topic    string
	now      func() time.Time
}

// NewOutboxPublisher создаёт Kafka-паблишер для transactional outbox.
// Пустой topic означает поток событий заказов.
func NewOutboxPublisher(producer *Producer, topic string) *OutboxTopicPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OutboxTopicPublisher{
		producer: producer,
		topic:    topic,
		now:      time.Now,
	}
}

// Topic возвращает topic, в который пишет паблишер.
func (p *OutboxTopicPublisher) Topic() string { return p.topic }

func (p *OutboxTopicPublisher) Publish(event domain.OutboxMessage) error {
	if p == nil || p.producer == nil {
		return ErrProducerClosed
	}

	_, err := p.producer.Send(Message{
		Topic: p.topic,
		Key:   messageKey(event),
		Value: NewEnvelope(event, p.now()),
		Headers: map[string]string{
			HeaderEventType:     event.EventType,
			HeaderAggregateType: event.AggregateType,
			HeaderOutboxID:      event.ID,
			HeaderAttempts:      strconv.Itoa(event.Attempts),
		},
	})
	return err
}

var _ domain.OutboxPublisher = (*OutboxTopicPublisher)(nil)
