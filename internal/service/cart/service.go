// Package cart управляет корзиной внутри агрегата пользователя.
package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// View дополняет строку корзины текущими данными каталога.
// Если товар исчез из каталога, Available=false, а Name и Price пустые.
type View struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Name      string           `json:"name,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Available bool             `json:"available"`
}

// Option настраивает Service.
type Option func(*Service)

// WithLogger задаёт logger сервиса.
func WithLogger(logger *log.Entry) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics подключает метрики.
func WithMetrics(m *metrics.StorefrontMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// Service реализует операции с корзиной.
type Service struct {
	users   domain.UserRepository
	catalog domain.CatalogReference
	logger  *log.Entry
	metrics *metrics.StorefrontMetrics
}

// NewService создаёт сервис корзины.
func NewService(users domain.UserRepository, catalog domain.CatalogReference, options ...Option) *Service {
	s := &Service{
		users:   users,
		catalog: catalog,
		logger:  log.WithField("component", "cart"),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// AddItem добавляет товар в корзину или увеличивает количество существующей строки.
// quantity == nil означает 1.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity *int) (lines []domain.CartLine, err error) {
	defer func() { s.metrics.RecordCartOperation("add", err) }()

	qty, err := domain.ResolveCartQuantity(quantity)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, s.fail("add", err, userID, productID)
	}
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return nil, s.fail("add", err, userID, productID)
	}

	lines, err = s.users.AddCartLine(ctx, userID, productID, qty)
	if err != nil {
		return nil, s.fail("add", err, userID, productID)
	}
	return nonNil(lines), nil
}

// UpdateQuantity заменяет количество в существующей строке.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (lines []domain.CartLine, err error) {
	defer func() { s.metrics.RecordCartOperation("update", err) }()

	if err := domain.ValidateCartQuantity(quantity); err != nil {
		return nil, err
	}
	lines, err = s.users.SetCartLineQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, s.fail("update", err, userID, productID)
	}
	return nonNil(lines), nil
}

// RemoveItem удаляет строку. Повторное удаление не ошибка.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (lines []domain.CartLine, err error) {
	defer func() { s.metrics.RecordCartOperation("remove", err) }()

	lines, err = s.users.RemoveCartLine(ctx, userID, productID)
	if err != nil {
		return nil, s.fail("remove", err, userID, productID)
	}
	return nonNil(lines), nil
}

// ViewCart возвращает корзину с актуальными именем и ценой из каталога.
func (s *Service) ViewCart(ctx context.Context, userID string) (views []View, err error) {
	defer func() { s.metrics.RecordCartOperation("view", err) }()

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, s.fail("view", err, userID, "")
	}

	views = make([]View, 0, len(user.CartLines))
	for _, line := range user.CartLines {
		view := View{ProductID: line.ProductID, Quantity: line.Quantity}
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		switch {
		case err == nil:
			price := product.Price
			view.Name = product.Name
			view.Price = &price
			view.Available = true
		case errors.Is(err, domain.ErrProductNotFound):
			// товар удалён из каталога, строку оставляем
		default:
			return nil, s.fail("view", err, userID, line.ProductID)
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Service) fail(op string, err error, userID, productID string) error {
	err = domain.Internal(err)
	if domain.KindOf(err) == domain.KindInternal {
		s.logger.WithError(err).WithFields(log.Fields{
			"op":         op,
			"user_id":    userID,
			"product_id": productID,
		}).Error("cart operation failed")
	}
	return err
}

func nonNil(lines []domain.CartLine) []domain.CartLine {
	if lines == nil {
		return []domain.CartLine{}
	}
	return lines
}
