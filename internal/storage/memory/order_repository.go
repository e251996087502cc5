package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// OrderRepository хранит журнал заказов в памяти процесса.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]domain.Order)}
}

// Create отвечает конфликтом версии, если заказ с таким ID уже записан.
func (r *OrderRepository) Create(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.orders[order.ID]; taken {
		return domain.ErrOrderVersionConflict
	}
	r.orders[order.ID] = detachOrder(order)
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	order, found := r.orders[id]
	r.mu.RUnlock()

	if !found {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return detachOrder(order), nil
}

// List отдаёт заказы от ранних к поздним; при равной дате порядок по ID.
func (r *OrderRepository) List(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	r.mu.RLock()
	matched := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if filter.UserID == "" || order.UserID == filter.UserID {
			matched = append(matched, detachOrder(order))
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(matched, func(a, b domain.Order) int {
		if c := a.OrderDate.Compare(b.OrderDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if filter.Limit > 0 {
		matched = matched[:min(filter.Limit, len(matched))]
	}
	return matched, nil
}

func (r *OrderRepository) Count(context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders), nil
}

// Save принимает заказ только с той версией, что лежит в журнале, и увеличивает её.
func (r *OrderRepository) Save(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, found := r.orders[order.ID]
	switch {
	case !found:
		return domain.ErrOrderNotFound
	case stored.Version != order.Version:
		return domain.ErrOrderVersionConflict
	}
	order.Version = stored.Version + 1
	r.orders[order.ID] = detachOrder(order)
	return nil
}

func detachOrder(order domain.Order) domain.Order {
	order.LineItems = slices.Clone(order.LineItems)
	return order
}

var _ domain.OrderRepository = (*OrderRepository)(nil)
