// Package favorites управляет избранным пользователя.
package favorites

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// View — товар из избранного с данными каталога.
type View struct {
	ProductID string           `json:"productId"`
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

// Service управляет множеством избранных товаров пользователя.
type Service struct {
	users   domain.UserRepository
	catalog domain.CatalogReference
	logger  *log.Entry
	metrics *metrics.StorefrontMetrics
}

// NewService создаёт сервис избранного.
func NewService(users domain.UserRepository, catalog domain.CatalogReference, options ...Option) *Service {
	s := &Service{
		users:   users,
		catalog: catalog,
		logger:  log.WithField("component", "favorites"),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// AddFavorite добавляет товар. Повтор отклоняется с ErrFavoriteExists.
func (s *Service) AddFavorite(ctx context.Context, userID, productID string) (favs []string, err error) {
	defer func() { s.metrics.RecordFavoriteOperation("add", err) }()

	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, s.fail("add", err, userID, productID)
	}
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return nil, s.fail("add", err, userID, productID)
	}

	favs, err = s.users.AddFavorite(ctx, userID, productID)
	if err != nil {
		return nil, s.fail("add", err, userID, productID)
	}
	return nonNil(favs), nil
}

// ListFavorites возвращает идентификаторы в порядке добавления.
func (s *Service) ListFavorites(ctx context.Context, userID string) (favs []string, err error) {
	defer func() { s.metrics.RecordFavoriteOperation("list", err) }()

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, s.fail("list", err, userID, "")
	}
	return nonNil(user.Favorites), nil
}

// ListFavoritesExpanded возвращает избранное с именем и ценой из каталога.
func (s *Service) ListFavoritesExpanded(ctx context.Context, userID string) (views []View, err error) {
	ids, err := s.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	views = make([]View, 0, len(ids))
	for _, id := range ids {
		view := View{ProductID: id}
		product, err := s.catalog.GetProduct(ctx, id)
		switch {
		case err == nil:
			price := product.Price
			view.Name = product.Name
			view.Price = &price
			view.Available = true
		case errors.Is(err, domain.ErrProductNotFound):
		default:
			return nil, s.fail("list", err, userID, id)
		}
		views = append(views, view)
	}
	return views, nil
}

// RemoveFavorite удаляет товар по точному совпадению идентификатора.
func (s *Service) RemoveFavorite(ctx context.Context, userID, productID string) (favs []string, err error) {
	defer func() { s.metrics.RecordFavoriteOperation("remove", err) }()

	favs, err = s.users.RemoveFavorite(ctx, userID, productID)
	if err != nil {
		return nil, s.fail("remove", err, userID, productID)
	}
	return nonNil(favs), nil
}

func (s *Service) fail(op string, err error, userID, productID string) error {
	err = domain.Internal(err)
	if domain.KindOf(err) == domain.KindInternal {
		s.logger.WithError(err).WithFields(log.Fields{
			"op":         op,
			"user_id":    userID,
			"product_id": productID,
		}).Error("favorites operation failed")
	}
	return err
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
