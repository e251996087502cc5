package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// OrderDetail — заказ с пересчитанной суммой позиций и историей статусов.
type OrderDetail struct {
	Order              domain.Order
	TotalProductsPrice decimal.Decimal
	History            []domain.TimelineEvent
}

// ListOrders возвращает заказы по возрастанию даты оформления.
// Пустой filter.UserID означает все заказы (административная выборка).
func (s *Service) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if filter.Limit < 0 || filter.Limit > MaxOrdersLimit {
		return nil, domain.Validation("limit must be between 0 and %d", MaxOrdersLimit)
	}
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, s.fail("list", err, log.Fields{"user_id": filter.UserID})
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// GetOrder возвращает заказ без проверки владельца.
func (s *Service) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, s.fail("get", err, log.Fields{"order_id": orderID})
	}
	return order, nil
}

// GetOrderDetail возвращает заказ владельца. Чужой заказ неотличим от отсутствующего.
func (s *Service) GetOrderDetail(ctx context.Context, userID, orderID string) (OrderDetail, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return OrderDetail{}, err
	}
	if order.UserID != userID {
		return OrderDetail{}, domain.ErrOrderNotFound
	}

	total := domain.SumLineItems(order.LineItems)
	if !total.Equal(order.SaleAmount) {
		s.logger.WithFields(log.Fields{
			"order_id":             order.ID,
			"sale_amount":          order.SaleAmount.StringFixed(2),
			"total_products_price": total.StringFixed(2),
		}).Error("order sale amount does not match line items")
		return OrderDetail{}, domain.Internal(errSaleAmountMismatch)
	}

	history := []domain.TimelineEvent{}
	if s.timeline != nil {
		events, err := s.timeline.List(ctx, order.ID)
		if err != nil {
			return OrderDetail{}, s.fail("get", err, log.Fields{"order_id": orderID})
		}
		if events != nil {
			history = events
		}
	}

	return OrderDetail{Order: order, TotalProductsPrice: total, History: history}, nil
}

// CountOrders возвращает общее число заказов.
func (s *Service) CountOrders(ctx context.Context) (int, error) {
	count, err := s.orders.Count(ctx)
	if err != nil {
		return 0, s.fail("count", err, nil)
	}
	return count, nil
}

// FirstOrders возвращает самые ранние заказы. limit == 0 означает DefaultFirstOrdersLimit.
func (s *Service) FirstOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit == 0 {
		limit = DefaultFirstOrdersLimit
	}
	return s.ListOrders(ctx, domain.OrderFilter{Limit: limit})
}
