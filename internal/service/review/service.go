// Package review ведёт журнал отзывов о товарах.
package review

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

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

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service добавляет и читает отзывы.
type Service struct {
	reviews domain.ReviewRepository
	logger  *log.Entry
	metrics *metrics.StorefrontMetrics
	now     func() time.Time
}

// NewService создаёт сервис отзывов.
func NewService(reviews domain.ReviewRepository, options ...Option) *Service {
	s := &Service{
		reviews: reviews,
		logger:  log.WithField("component", "review"),
		now:     time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// AddReview дописывает отзыв и возвращает всю коллекцию отзывов товара.
func (s *Service) AddReview(ctx context.Context, productID, userID string, rating *int, comment string) ([]domain.Review, error) {
	rv, err := domain.NewReview(userID, rating, comment, s.now())
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.AppendReview(ctx, productID, rv)
	if err != nil {
		return nil, s.fail("add", err, productID)
	}
	s.metrics.RecordReviewAdded()
	return nonNil(reviews), nil
}

// ListReviews возвращает отзывы в порядке добавления.
func (s *Service) ListReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	reviews, err := s.reviews.ListReviews(ctx, productID)
	if err != nil {
		return nil, s.fail("list", err, productID)
	}
	return nonNil(reviews), nil
}

func (s *Service) fail(op string, err error, productID string) error {
	err = domain.Internal(err)
	if domain.KindOf(err) == domain.KindInternal {
		s.logger.WithError(err).WithFields(log.Fields{
			"op":         op,
			"product_id": productID,
		}).Error("review operation failed")
	}
	return err
}

func nonNil(reviews []domain.Review) []domain.Review {
	if reviews == nil {
		return []domain.Review{}
	}
	return reviews
}
