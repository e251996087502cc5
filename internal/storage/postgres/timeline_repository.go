package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const (
	appendTimelineSQL = `
		INSERT INTO timeline_events (order_id, type, status, reason, occurred)
		VALUES ($1, $2, $3, $4, $5)`

	// id сохраняет порядок вставки для событий с одинаковым occurred.
	listTimelineSQL = `
		SELECT order_id, type, status, reason, occurred
		FROM timeline_events
		WHERE order_id = $1
		ORDER BY occurred, id`
)

// TimelineRepository хранит историю статусов заказа в timeline_events.
type TimelineRepository struct {
	db *sql.DB
}

func NewTimelineRepository(store *Store) *TimelineRepository {
	return &TimelineRepository{db: store.DB()}
}

func (r *TimelineRepository) Append(ctx context.Context, event domain.TimelineEvent) error {
	if event.OrderID == "" {
		return domain.Validation("timeline event requires order id")
	}
	occurred := event.Occurred
	if occurred.IsZero() {
		occurred = time.Now()
	}

	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx, appendTimelineSQL,
		event.OrderID, event.Type, string(event.Status), event.Reason, occurred.UTC())
	if err != nil {
		return fmt.Errorf("append timeline event for order %s: %w", event.OrderID, err)
	}
	return nil
}

func (r *TimelineRepository) List(ctx context.Context, orderID string) ([]domain.TimelineEvent, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listTimelineSQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("query timeline of order %s: %w", orderID, err)
	}
	defer rows.Close()

	history := []domain.TimelineEvent{}
	for rows.Next() {
		ev, err := scanTimelineEvent(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read timeline of order %s: %w", orderID, err)
	}
	return history, nil
}

func scanTimelineEvent(row rowScanner) (domain.TimelineEvent, error) {
	var (
		ev     domain.TimelineEvent
		status string
	)
	if err := row.Scan(&ev.OrderID, &ev.Type, &status, &ev.Reason, &ev.Occurred); err != nil {
		return domain.TimelineEvent{}, fmt.Errorf("scan timeline event: %w", err)
	}
	ev.Status = domain.OrderStatus(status)
	ev.Occurred = ev.Occurred.UTC()
	return ev, nil
}

var _ domain.TimelineRepository = (*TimelineRepository)(nil)
