package domain

import "time"

// TimelineEvent описывает событие в жизненном цикле заказа.
// Status — статус заказа после события, из таких записей собирается история статусов.
type TimelineEvent struct {
	OrderID  string      `json:"orderId"`
	Type     string      `json:"type"`
	Status   OrderStatus `json:"status"`
	Reason   string      `json:"reason,omitempty"`
	Occurred time.Time   `json:"occurred"`
}
