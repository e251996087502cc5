package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// TimelineRepository держит историю статусов по заказам, отсортированную по времени.
type TimelineRepository struct {
	mu      sync.RWMutex
	byOrder map[string][]domain.TimelineEvent
}

func NewTimelineRepository() *TimelineRepository {
	return &TimelineRepository{byOrder: make(map[string][]domain.TimelineEvent)}
}

// Append вставляет событие после всех событий с тем же или более ранним временем.
func (r *TimelineRepository) Append(_ context.Context, event domain.TimelineEvent) error {
	if event.OrderID == "" {
		return domain.Validation("timeline event requires order id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	history := r.byOrder[event.OrderID]
	pos := len(history)
	for pos > 0 && history[pos-1].Occurred.After(event.Occurred) {
		pos--
	}
	r.byOrder[event.OrderID] = slices.Insert(history, pos, event)
	return nil
}

func (r *TimelineRepository) List(_ context.Context, orderID string) ([]domain.TimelineEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := slices.Clone(r.byOrder[orderID])
	if out == nil {
		out = []domain.TimelineEvent{}
	}
	return out, nil
}

var _ domain.TimelineRepository = (*TimelineRepository)(nil)
