// Package ledger оформляет заказы и ведёт их жизненный цикл.
//
// Заказ является неизменяемым снимком: цены позиций фиксируются при создании,
// дальше меняется только статус по цепочке Pending -> Processing -> Shipped -> Delivered.
package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

const (
	// FirstOrders без явного лимита отдаёт DefaultFirstOrdersLimit заказов.
	DefaultFirstOrdersLimit = 4
	// MaxOrdersLimit ограничивает размер выборки.
	MaxOrdersLimit = 100
)

var errSaleAmountMismatch = errors.New("sale amount does not match line items")

// CreateOrderInput — данные, присланные клиентом при оформлении заказа.
type CreateOrderInput struct {
	PaymentMethod string
	LineItems     []domain.LineItem
	Status        string
	OrderNo       string
}

// Options содержит зависимости сервиса, которые можно не задавать.
type Options struct {
	Timeline        domain.TimelineRepository
	Outbox          domain.OutboxRepository
	Logger          *log.Entry
	Metrics         *metrics.StorefrontMetrics
	PriceValidation PriceValidation
	Now             func() time.Time
	TrackingNumber  func() (string, error)
}

// Option настраивает Service.
type Option func(*Options)

// WithTimeline включает запись истории статусов.
func WithTimeline(repo domain.TimelineRepository) Option {
	return func(opts *Options) { opts.Timeline = repo }
}

// WithOutbox включает публикацию событий заказа через outbox.
func WithOutbox(repo domain.OutboxRepository) Option {
	return func(opts *Options) { opts.Outbox = repo }
}

// WithLogger задаёт logger сервиса.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) { opts.Logger = logger }
}

// WithMetrics подключает метрики.
func WithMetrics(m *metrics.StorefrontMetrics) Option {
	return func(opts *Options) { opts.Metrics = m }
}

// WithPriceValidation задаёт режим сверки цен с каталогом.
func WithPriceValidation(mode PriceValidation) Option {
	return func(opts *Options) { opts.PriceValidation = mode }
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(opts *Options) { opts.Now = now }
}

// WithTrackingNumberGenerator подменяет генератор трек-номеров.
func WithTrackingNumberGenerator(gen func() (string, error)) Option {
	return func(opts *Options) { opts.TrackingNumber = gen }
}

// Service ведёт журнал заказов: оформление, выборки и переходы статусов.
// Сверку цен с каталогом задаёт PriceValidation.
type Service struct {
	orders   domain.OrderRepository
	catalog  domain.CatalogReference
	timeline domain.TimelineRepository
	outbox   domain.OutboxRepository
	logger   *log.Entry
	metrics  *metrics.StorefrontMetrics
	prices   PriceValidation
	now      func() time.Time
	tracking func() (string, error)
}

// NewService создаёт журнал заказов.
func NewService(orders domain.OrderRepository, catalog domain.CatalogReference, options ...Option) *Service {
	opts := Options{
		PriceValidation: PriceReject,
		Now:             time.Now,
		TrackingNumber:  domain.NewTrackingNumber,
	}
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "ledger")
	}
	if opts.PriceValidation == "" {
		opts.PriceValidation = PriceReject
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TrackingNumber == nil {
		opts.TrackingNumber = domain.NewTrackingNumber
	}

	return &Service{
		orders:   orders,
		catalog:  catalog,
		timeline: opts.Timeline,
		outbox:   opts.Outbox,
		logger:   logger,
		metrics:  opts.Metrics,
		prices:   opts.PriceValidation,
		now:      opts.Now,
		tracking: opts.TrackingNumber,
	}
}

// CreateOrder проверяет вход, фиксирует цены и сохраняет новый заказ в статусе Pending.
func (s *Service) CreateOrder(ctx context.Context, userID string, in CreateOrderInput) (domain.Order, error) {
	start := time.Now()

	order, err := s.createOrder(ctx, userID, in)
	if err != nil {
		s.metrics.RecordOrderRejected(string(domain.KindOf(err)))
		return domain.Order{}, err
	}
	s.metrics.RecordOrderCreated(time.Since(start))

	s.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"user_id":     order.UserID,
		"sale_amount": order.SaleAmount.StringFixed(2),
	}).Info("order created")
	return order, nil
}

func (s *Service) createOrder(ctx context.Context, userID string, in CreateOrderInput) (domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Order{}, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return domain.Order{}, domain.Validation("paymentMethod is required")
	}
	if strings.TrimSpace(in.OrderNo) == "" {
		return domain.Order{}, domain.Validation("orderNo is required")
	}
	if err := domain.ValidateLineItems(in.LineItems); err != nil {
		return domain.Order{}, err
	}
	if in.Status != "" {
		status, err := domain.ParseOrderStatus(in.Status)
		if err != nil {
			return domain.Order{}, err
		}
		if status != domain.OrderStatusPending {
			return domain.Order{}, domain.InvalidTransition(domain.OrderStatusPending, status)
		}
	}

	items, err := s.checkPrices(ctx, in.LineItems)
	if err != nil {
		return domain.Order{}, s.fail("create", err, log.Fields{"user_id": userID})
	}
	// В режиме clamp цены заменены каталожными, сумму проверяем заново.
	if err := domain.ValidateLineItems(items); err != nil {
		return domain.Order{}, err
	}

	tracking, err := s.tracking()
	if err != nil {
		return domain.Order{}, s.fail("create", err, log.Fields{"user_id": userID})
	}

	now := s.now().UTC()
	order := domain.Order{
		ID:             uuid.NewString(),
		UserID:         userID,
		LineItems:      items,
		SaleAmount:     domain.SumLineItems(items),
		PaymentMethod:  strings.TrimSpace(in.PaymentMethod),
		OrderNo:        strings.TrimSpace(in.OrderNo),
		TrackingNumber: tracking,
		Status:         domain.OrderStatusPending,
		OrderDate:      now,
		UpdatedAt:      now,
	}
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, errs[0]
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return domain.Order{}, s.fail("create", err, log.Fields{"order_id": order.ID})
	}

	s.recordEvent(ctx, order, domain.TimelineTypeOrderCreated, domain.EventTypeOrderCreated, orderCreatedPayload{
		OrderID:        order.ID,
		UserID:         order.UserID,
		OrderNo:        order.OrderNo,
		TrackingNumber: order.TrackingNumber,
		Status:         string(order.Status),
		SaleAmount:     order.SaleAmount,
		Items:          len(order.LineItems),
		OccurredAt:     now,
	})
	return order, nil
}

// AdvanceStatus переводит заказ в следующий статус.
// Разрешён только ближайший следующий статус; гонка за версию даёт Conflict.
func (s *Service) AdvanceStatus(ctx context.Context, orderID string, target domain.OrderStatus) (order domain.Order, err error) {
	defer func() { s.metrics.RecordOrderTransition(string(target), err) }()

	order, err = s.orders.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, s.fail("advance", err, log.Fields{"order_id": orderID})
	}

	from := order.Status
	if err := domain.Transition(from, target); err != nil {
		return domain.Order{}, err
	}

	order.Status = target
	order.UpdatedAt = s.now().UTC()
	if err := s.orders.Save(ctx, order); err != nil {
		if domain.IsVersionConflict(err) {
			s.logger.WithFields(log.Fields{
				"order_id": orderID,
				"to":       target,
			}).Warn("order status changed concurrently")
			return domain.Order{}, domain.ErrOrderVersionConflict
		}
		return domain.Order{}, s.fail("advance", err, log.Fields{"order_id": orderID})
	}
	order.Version++

	s.recordEvent(ctx, order, domain.TimelineTypeOrderStatusChange, domain.EventTypeOrderStatusChanged, orderStatusChangedPayload{
		OrderID:    order.ID,
		UserID:     order.UserID,
		From:       string(from),
		To:         string(target),
		Version:    order.Version,
		OccurredAt: order.UpdatedAt,
	})

	s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"from":     from,
		"to":       target,
		"terminal": target.Terminal(),
	}).Info("order status advanced")
	return order, nil
}

func (s *Service) fail(op string, err error, fields log.Fields) error {
	err = domain.Internal(err)
	if domain.KindOf(err) == domain.KindInternal {
		s.logger.WithError(err).WithFields(fields).WithField("op", op).Error("ledger operation failed")
	}
	return err
}
