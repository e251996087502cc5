package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// ErrNotDeadLetter — сообщение в DLQ не похоже на событие outbox.
var ErrNotDeadLetter = errors.New("message is not an outbox dead letter")

// DeadLetter — payload конверта в DLQ: исходное событие и причина, по которой его не опубликовали.
type DeadLetter struct {
	OutboxID      string          `json:"outbox_id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	PublishError  string          `json:"publish_error"`
	Attempts      int             `json:"attempts"`
	DLQPublished  time.Time       `json:"dlq_published_at"`
}

// DecodeDeadLetter разбирает value из DLQ и восстанавливает исходное outbox-сообщение для повторной публикации.
func DecodeDeadLetter(value []byte) (domain.OutboxMessage, DeadLetter, error) {
	var envelope Envelope
	if err := json.Unmarshal(value, &envelope); err != nil {
		return domain.OutboxMessage{}, DeadLetter{}, fmt.Errorf("%w: %v", ErrNotDeadLetter, err)
	}
	if len(envelope.Payload) == 0 || string(envelope.Payload) == "null" {
		return domain.OutboxMessage{}, DeadLetter{}, ErrNotDeadLetter
	}

	var dl DeadLetter
	if err := json.Unmarshal(envelope.Payload, &dl); err != nil {
		return domain.OutboxMessage{}, DeadLetter{}, fmt.Errorf("decode dead letter: %w", err)
	}
	if len(dl.Payload) == 0 || string(dl.Payload) == "null" {
		return domain.OutboxMessage{}, DeadLetter{}, errors.New("dead letter does not contain original event payload")
	}

	msg := domain.OutboxMessage{
		ID:            firstNonEmpty(dl.OutboxID, envelope.ID),
		AggregateType: firstNonEmpty(dl.AggregateType, envelope.AggregateType),
		AggregateID:   firstNonEmpty(dl.AggregateID, envelope.AggregateID),
		EventType:     firstNonEmpty(dl.EventType, envelope.EventType),
		Payload:       []byte(dl.Payload),
		Attempts:      dl.Attempts,
		CreatedAt:     envelope.CreatedAt,
	}
	return msg, dl, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// NewDeadLetter упаковывает неопубликованное событие для DLQ topic.
// ID и агрегат сохраняются, поэтому ключ партиционирования в DLQ тот же.
func NewDeadLetter(event domain.OutboxMessage, publishErr error, attempts int, now time.Time) (domain.OutboxMessage, error) {
	payload := json.RawMessage(event.Payload)
	if len(payload) == 0 || !json.Valid(payload) {
		payload = json.RawMessage("null")
	}
	reason := ""
	if publishErr != nil {
		reason = publishErr.Error()
	}

	body, err := json.Marshal(DeadLetter{
		OutboxID:      event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       payload,
		PublishError:  reason,
		Attempts:      attempts,
		DLQPublished:  now.UTC(),
	})
	if err != nil {
		return domain.OutboxMessage{}, fmt.Errorf("marshal dead letter: %w", err)
	}

	return domain.OutboxMessage{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       body,
		CreatedAt:     event.CreatedAt,
	}, nil
}
