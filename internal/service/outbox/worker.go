package outbox

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

const (
	defaultPollInterval   = time.Second
	defaultBatchSize      = 100
	defaultMaxAttempts    = 3
	defaultRetryBaseDelay = 50 * time.Millisecond
	maxRetryDelay         = 5 * time.Second
)

// Результаты попыток публикации для метрик.
const (
	resultSent       = "sent"
	resultRetryError = "retry_error"
	resultFailed     = "failed"
	resultDLQFailed  = "dlq_failed"
)

// Worker переносит события заказов (order.created, order.status_changed) из outbox в брокер.
// Событие, которое не удалось опубликовать за maxAttempts попыток, уходит в DLQ и помечается failed.
type Worker struct {
	repo      domain.OutboxRepository
	publisher domain.OutboxPublisher
	dlq       domain.OutboxPublisher
	metrics   *metrics.StorefrontMetrics
	logger    *log.Entry
	now       func() time.Time

	pollInterval time.Duration
	batchSize    int
	maxAttempts  int
	baseDelay    time.Duration
}

// Option настраивает Worker.
type Option func(*Worker)

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(w *Worker) { w.logger = logger }
}

// WithDLQPublisher задаёт publisher для событий, исчерпавших попытки.
func WithDLQPublisher(publisher domain.OutboxPublisher) Option {
	return func(w *Worker) { w.dlq = publisher }
}

// WithMetrics подключает метрики публикации и размера очереди.
func WithMetrics(m *metrics.StorefrontMetrics) Option {
	return func(w *Worker) { w.metrics = m }
}

// WithPollInterval задаёт период опроса outbox.
func WithPollInterval(interval time.Duration) Option {
	return func(w *Worker) { w.pollInterval = interval }
}

// WithBatchSize задаёт число событий за один проход.
func WithBatchSize(size int) Option {
	return func(w *Worker) { w.batchSize = size }
}

// WithMaxAttempts задаёт число попыток публикации одного события.
func WithMaxAttempts(attempts int) Option {
	return func(w *Worker) { w.maxAttempts = attempts }
}

// WithRetryBaseDelay задаёт начальную паузу между попытками; дальше она удваивается.
func WithRetryBaseDelay(delay time.Duration) Option {
	return func(w *Worker) { w.baseDelay = delay }
}

// NewWorker создаёт outbox worker.
func NewWorker(repo domain.OutboxRepository, publisher domain.OutboxPublisher, options ...Option) *Worker {
	w := &Worker{
		repo:         repo,
		publisher:    publisher,
		now:          time.Now,
		pollInterval: defaultPollInterval,
		batchSize:    defaultBatchSize,
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultRetryBaseDelay,
	}
	for _, option := range options {
		option(w)
	}

	if w.logger == nil {
		w.logger = log.WithField("component", "outbox-worker")
	}
	if w.pollInterval <= 0 {
		w.pollInterval = defaultPollInterval
	}
	if w.batchSize <= 0 {
		w.batchSize = defaultBatchSize
	}
	if w.maxAttempts <= 0 {
		w.maxAttempts = defaultMaxAttempts
	}
	if w.baseDelay < 0 {
		w.baseDelay = 0
	}
	return w
}

// BatchResult считает итог одного прохода по outbox.
type BatchResult struct {
	Sent   int
	Failed int
}

// Run опрашивает outbox до отмены ctx.
func (w *Worker) Run(ctx context.Context) {
	if w.repo == nil || w.publisher == nil {
		w.logger.Warn("outbox worker is disabled: repo or publisher is nil")
		return
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		w.ProcessOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// ProcessOnce забирает пачку pending-событий и публикует их по порядку.
func (w *Worker) ProcessOnce(ctx context.Context) BatchResult {
	var res BatchResult
	if ctx.Err() != nil {
		return res
	}
	defer w.observeBacklog(ctx)

	events, err := w.repo.PullPending(ctx, w.batchSize)
	if err != nil {
		w.logger.WithError(err).Warn("failed to pull pending outbox messages")
		return res
	}

	for _, event := range events {
		if ctx.Err() != nil {
			break
		}
		logger := w.logger.WithFields(log.Fields{
			"outbox_id":  event.ID,
			"order_id":   event.AggregateID,
			"event_type": event.EventType,
		})

		if err := w.publish(ctx, event); err != nil {
			if ctx.Err() != nil {
				break
			}
			res.Failed++
			w.deadLetter(ctx, logger, event, err)
			continue
		}

		res.Sent++
		if err := w.repo.MarkSent(ctx, event.ID); err != nil {
			logger.WithError(err).Warn("failed to mark outbox message as sent")
		}
	}

	if res.Sent+res.Failed > 0 {
		w.logger.WithFields(log.Fields{"sent": res.Sent, "failed": res.Failed}).Debug("outbox batch processed")
	}
	return res
}

// publish делает до maxAttempts попыток с экспоненциальной паузой между ними.
func (w *Worker) publish(ctx context.Context, event domain.OutboxMessage) error {
	var err error
	for attempt := 1; ; attempt++ {
		if err = w.publisher.Publish(event); err == nil {
			w.metrics.RecordOutboxPublish(resultSent)
			return nil
		}
		w.metrics.RecordOutboxPublish(resultRetryError)

		if attempt == w.maxAttempts {
			return fmt.Errorf("publish failed after %d attempts: %w", attempt, err)
		}
		if delay := w.retryBackoff(attempt); delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
}

func (w *Worker) deadLetter(ctx context.Context, logger *log.Entry, event domain.OutboxMessage, publishErr error) {
	logger.WithError(publishErr).Error("outbox publish failed after retries")
	w.metrics.RecordOutboxPublish(resultFailed)

	if w.dlq != nil {
		msg, err := kafka.NewDeadLetter(event, publishErr, w.maxAttempts, w.now())
		if err == nil {
			err = w.dlq.Publish(msg)
		}
		if err != nil {
			logger.WithError(err).Warn("failed to publish to DLQ")
			w.metrics.RecordOutboxPublish(resultDLQFailed)
		}
	}

	if err := w.repo.MarkFailed(ctx, event.ID); err != nil {
		logger.WithError(err).Warn("failed to mark outbox message as failed")
	}
}

func (w *Worker) observeBacklog(ctx context.Context) {
	if w.metrics == nil {
		return
	}
	stats, err := w.repo.Stats(ctx)
	if err != nil {
		w.logger.WithError(err).Warn("failed to collect outbox backlog stats")
		return
	}
	var age time.Duration
	if stats.PendingCount > 0 && !stats.OldestPendingAt.IsZero() {
		age = w.now().Sub(stats.OldestPendingAt)
	}
	w.metrics.SetOutboxBacklog(stats.PendingCount, age)
}

// retryBackoff возвращает паузу после попытки attempt: base, 2*base, 4*base... не больше maxRetryDelay.
func (w *Worker) retryBackoff(attempt int) time.Duration {
	if w.baseDelay <= 0 || attempt < 1 {
		return 0
	}
	delay := w.baseDelay
	for i := 1; i < attempt; i++ {
		if delay >= maxRetryDelay/2 {
			return maxRetryDelay
		}
		delay *= 2
	}
	if delay > maxRetryDelay {
		return maxRetryDelay
	}
	return delay
}
