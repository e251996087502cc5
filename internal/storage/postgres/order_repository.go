package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const orderColumns = `id, user_id, sale_amount, payment_method, order_no, tracking_number, status, order_date, version, updated_at`

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) error {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO orders (`+orderColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`,
			order.ID, order.UserID, order.SaleAmount, order.PaymentMethod, order.OrderNo,
			order.TrackingNumber, string(order.Status), order.OrderDate, order.Version, order.UpdatedAt,
		); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrOrderVersionConflict
			}
			return fmt.Errorf("insert order: %w", err)
		}

		for idx, item := range order.LineItems {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO order_items (order_id, position, product_id, quantity, price)
				VALUES ($1,$2,$3,$4,$5)
			`, order.ID, idx, item.ProductID, item.Quantity, item.Price); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}
		return nil
	})
}

func (r *orderRepository) Get(ctx context.Context, id string) (domain.Order, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	order, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	if order.LineItems, err = r.loadItems(ctx, order.ID); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders`
	args := make([]any, 0, 2)
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" WHERE user_id = $%d", len(args))
	}
	query += " ORDER BY order_date ASC, id ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

// Save меняет статус заказа при совпадении версии (optimistic locking).
// Состав заказа после создания не меняется.
func (r *orderRepository) Save(ctx context.Context, order domain.Order) error {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	var version int64
	err := r.db.QueryRowContext(ctx, `
		UPDATE orders SET status = $3, updated_at = $4, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version`,
		order.ID, order.Version, string(order.Status), order.UpdatedAt,
	).Scan(&version)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update order %s: %w", order.ID, err)
	}

	// Ноль строк: либо заказа нет, либо версия устарела.
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, order.ID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check order %s: %w", order.ID, err)
	}
	if !exists {
		return domain.ErrOrderNotFound
	}
	return domain.ErrOrderVersionConflict
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		order  domain.Order
		status string
	)
	if err := row.Scan(
		&order.ID, &order.UserID, &order.SaleAmount, &order.PaymentMethod, &order.OrderNo,
		&order.TrackingNumber, &status, &order.OrderDate, &order.Version, &order.UpdatedAt,
	); err != nil {
		return domain.Order{}, err
	}
	order.Status = domain.OrderStatus(status)
	order.OrderDate = order.OrderDate.UTC()
	order.UpdatedAt = order.UpdatedAt.UTC()
	return order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID string) ([]domain.LineItem, error) {
	byOrder, err := r.itemsFor(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}
	return byOrder[orderID], nil
}

// attachItems подгружает позиции всех заказов одним запросом.
func (r *orderRepository) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	byOrder, err := r.itemsFor(ctx, ids)
	if err != nil {
		return err
	}
	for i := range orders {
		orders[i].LineItems = byOrder[orders[i].ID]
	}
	return nil
}

func (r *orderRepository) itemsFor(ctx context.Context, orderIDs []string) (map[string][]domain.LineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	byOrder := make(map[string][]domain.LineItem, len(orderIDs))
	for rows.Next() {
		var (
			orderID string
			item    domain.LineItem
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		byOrder[orderID] = append(byOrder[orderID], item)
	}
	return byOrder, rows.Err()
}

var _ domain.OrderRepository = (*orderRepository)(nil)
