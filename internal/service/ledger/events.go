package ledger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type orderCreatedPayload struct {
	OrderID        string          `json:"orderId"`
	UserID         string          `json:"userId"`
	OrderNo        string          `json:"orderNo"`
	TrackingNumber string          `json:"trackingNumber"`
	Status         string          `json:"status"`
	SaleAmount     decimal.Decimal `json:"saleAmount"`
	Items          int             `json:"items"`
	OccurredAt     time.Time       `json:"occurredAt"`
}

type orderStatusChangedPayload struct {
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Version    int64     `json:"version"`
	OccurredAt time.Time `json:"occurredAt"`
}

// recordEvent пишет запись в историю заказа и событие в outbox.
// Заказ к этому моменту уже сохранён, поэтому ошибки только логируются.
func (s *Service) recordEvent(ctx context.Context, order domain.Order, timelineType, eventType string, payload interface{}) {
	logger := s.logger.WithFields(log.Fields{
		"order_id":   order.ID,
		"event_type": eventType,
	})

	if s.timeline != nil {
		event := domain.TimelineEvent{
			OrderID:  order.ID,
			Type:     timelineType,
			Status:   order.Status,
			Occurred: order.UpdatedAt,
		}
		if err := s.timeline.Append(ctx, event); err != nil {
			logger.WithError(err).Warn("failed to append timeline event")
		} else {
			s.metrics.RecordTimelineEvent()
		}
	}

	if s.outbox == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		logger.WithError(err).Warn("failed to marshal outbox payload")
		return
	}
	msg := domain.OutboxMessage{
		ID:            uuid.NewString(),
		AggregateType: domain.OutboxAggregateOrder,
		AggregateID:   order.ID,
		EventType:     eventType,
		Payload:       body,
		CreatedAt:     order.UpdatedAt,
	}
	if _, err := s.outbox.Enqueue(ctx, msg); err != nil {
		logger.WithError(err).Warn("failed to enqueue outbox event")
		return
	}
	s.metrics.RecordOutboxEvent()
}
