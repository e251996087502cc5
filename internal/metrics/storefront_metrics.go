package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics содержит бизнес-метрики корзины, избранного, заказов и отзывов.
type StorefrontMetrics struct {
	// Мутации агрегатов пользователя
	cartOperations     *prometheus.CounterVec
	favoriteOperations *prometheus.CounterVec

	// Заказы
	ordersCreated       prometheus.Counter
	orderRejected       *prometheus.CounterVec
	orderTransitions    *prometheus.CounterVec
	orderCreateDuration prometheus.Histogram

	reviewsAdded prometheus.Counter

	// Счётчики событий timeline/outbox
	timelineEvents prometheus.Counter
	outboxEvents   prometheus.Counter

	// Фоновые воркеры
	outboxPublish        *prometheus.CounterVec
	outboxPending        prometheus.Gauge
	outboxOldestPending  prometheus.Gauge
	idempotencyCleanups  *prometheus.CounterVec
	idempotencyDeleted   prometheus.Counter
	idempotencyLastBatch prometheus.Gauge

	// HTTP
	httpRequestDuration *prometheus.HistogramVec
}

// NewStorefrontMetrics регистрирует метрики в глобальном реестре.
func NewStorefrontMetrics() *StorefrontMetrics {
	return NewStorefrontMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewStorefrontMetricsWithRegisterer регистрирует метрики в переданном реестре (удобно в тестах).
func NewStorefrontMetricsWithRegisterer(registerer prometheus.Registerer) *StorefrontMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StorefrontMetrics{
		cartOperations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_cart_operations_total",
			Help: "Total number of cart operations grouped by operation and result",
		}, []string{"op", "result"}),
		favoriteOperations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_favorite_operations_total",
			Help: "Total number of favorites operations grouped by operation and result",
		}, []string{"op", "result"}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_orders_created_total",
			Help: "Total number of orders created",
		}),
		orderRejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_orders_rejected_total",
			Help: "Total number of rejected order creations grouped by error kind",
		}, []string{"kind"}),
		orderTransitions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_order_status_transitions_total",
			Help: "Total number of order status transitions grouped by target status and result",
		}, []string{"to", "result"}),
		orderCreateDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "storefront_order_create_duration_seconds",
			Help:    "Duration of order creation in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
		reviewsAdded: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_reviews_added_total",
			Help: "Total number of product reviews added",
		}),
		timelineEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_timeline_events_total",
			Help: "Total number of timeline events recorded",
		}),
		outboxEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_outbox_events_total",
			Help: "Total number of outbox events enqueued",
		}),
		outboxPublish: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_outbox_publish_attempts_total",
			Help: "Total number of outbox publish attempts grouped by result",
		}, []string{"result"}),
		outboxPending: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "storefront_outbox_pending_records",
			Help: "Current number of pending outbox records",
		}),
		outboxOldestPending: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "storefront_outbox_oldest_pending_age_seconds",
			Help: "Age in seconds of the oldest pending outbox record",
		}),
		idempotencyCleanups: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_idempotency_cleanup_runs_total",
			Help: "Total number of idempotency cleanup runs grouped by result",
		}, []string{"result"}),
		idempotencyDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_idempotency_cleanup_deleted_total",
			Help: "Total number of deleted expired idempotency records",
		}),
		idempotencyLastBatch: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "storefront_idempotency_cleanup_last_deleted",
			Help: "Number of records deleted by the last cleanup run",
		}),
		httpRequestDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Duration of HTTP API requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordCartOperation учитывает операцию с корзиной (add/update/remove/view).
func (m *StorefrontMetrics) RecordCartOperation(op string, err error) {
	if m == nil {
		return
	}
	m.cartOperations.WithLabelValues(op, result(err)).Inc()
}

// RecordFavoriteOperation учитывает операцию с избранным.
func (m *StorefrontMetrics) RecordFavoriteOperation(op string, err error) {
	if m == nil {
		return
	}
	m.favoriteOperations.WithLabelValues(op, result(err)).Inc()
}

// RecordOrderCreated увеличивает счётчик созданных заказов и пишет длительность.
func (m *StorefrontMetrics) RecordOrderCreated(duration time.Duration) {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
	m.orderCreateDuration.Observe(duration.Seconds())
}

// RecordOrderRejected учитывает отклонённое создание заказа.
func (m *StorefrontMetrics) RecordOrderRejected(kind string) {
	if m == nil {
		return
	}
	m.orderRejected.WithLabelValues(kind).Inc()
}

// RecordOrderTransition учитывает попытку смены статуса.
func (m *StorefrontMetrics) RecordOrderTransition(to string, err error) {
	if m == nil {
		return
	}
	m.orderTransitions.WithLabelValues(to, result(err)).Inc()
}

// RecordReviewAdded увеличивает счётчик отзывов.
func (m *StorefrontMetrics) RecordReviewAdded() {
	if m == nil {
		return
	}
	m.reviewsAdded.Inc()
}

// RecordTimelineEvent увеличивает счётчик событий timeline.
func (m *StorefrontMetrics) RecordTimelineEvent() {
	if m == nil {
		return
	}
	m.timelineEvents.Inc()
}

// RecordOutboxEvent увеличивает счётчик событий outbox.
func (m *StorefrontMetrics) RecordOutboxEvent() {
	if m == nil {
		return
	}
	m.outboxEvents.Inc()
}

// RecordOutboxPublish учитывает попытку публикации: sent, retry_error, failed, dlq_failed.
func (m *StorefrontMetrics) RecordOutboxPublish(result string) {
	if m == nil {
		return
	}
	m.outboxPublish.WithLabelValues(result).Inc()
}

// SetOutboxBacklog выставляет размер очереди outbox и возраст самой старой записи.
func (m *StorefrontMetrics) SetOutboxBacklog(pending int, oldest time.Duration) {
	if m == nil {
		return
	}
	if oldest < 0 {
		oldest = 0
	}
	m.outboxPending.Set(float64(pending))
	m.outboxOldestPending.Set(oldest.Seconds())
}

// RecordIdempotencyCleanup учитывает прогон очистки просроченных ключей.
func (m *StorefrontMetrics) RecordIdempotencyCleanup(deleted int, err error) {
	if m == nil {
		return
	}
	m.idempotencyCleanups.WithLabelValues(result(err)).Inc()
	if err != nil {
		return
	}
	m.idempotencyDeleted.Add(float64(deleted))
	m.idempotencyLastBatch.Set(float64(deleted))
}

// ObserveHTTPRequest пишет длительность HTTP-запроса.
func (m *StorefrontMetrics) ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestDuration.WithLabelValues(method, route, fmt.Sprintf("%d", code)).Observe(duration.Seconds())
}
