// Package idempotency обслуживает хранилище ключей Idempotency-Key вне HTTP-запросов.
package idempotency

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

const (
	defaultCleanupInterval  = 10 * time.Minute
	defaultCleanupBatchSize = 500
)

// Option настраивает CleanupWorker.
type Option func(*CleanupWorker)

// WithLogger задаёт логгер воркера.
func WithLogger(logger *log.Entry) Option {
	return func(w *CleanupWorker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithInterval задаёт паузу между прогонами; значения <= 0 игнорируются.
func WithInterval(interval time.Duration) Option {
	return func(w *CleanupWorker) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

// WithBatchSize ограничивает число ключей, удаляемых одним запросом.
func WithBatchSize(size int) Option {
	return func(w *CleanupWorker) {
		if size > 0 {
			w.batchSize = size
		}
	}
}

// WithMetrics подключает учёт прогонов очистки.
func WithMetrics(m *metrics.StorefrontMetrics) Option {
	return func(w *CleanupWorker) {
		w.metrics = m
	}
}

// CleanupWorker периодически удаляет ключи с истёкшим TTL.
type CleanupWorker struct {
	repo      domain.IdempotencyRepository
	logger    *log.Entry
	metrics   *metrics.StorefrontMetrics
	interval  time.Duration
	batchSize int
	now       func() time.Time
}

func NewCleanupWorker(repo domain.IdempotencyRepository, opts ...Option) *CleanupWorker {
	w := &CleanupWorker{
		repo:      repo,
		logger:    log.WithField("component", "idempotency-cleanup-worker"),
		interval:  defaultCleanupInterval,
		batchSize: defaultCleanupBatchSize,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run чистит ключи сразу и затем каждые interval, пока не отменён ctx.
func (w *CleanupWorker) Run(ctx context.Context) {
	if w.repo == nil {
		w.logger.Warn("idempotency cleanup disabled: no repository")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.sweep(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *CleanupWorker) sweep(ctx context.Context) {
	deleted, err := w.DeleteExpired(ctx, w.now())
	if errors.Is(err, context.Canceled) {
		return
	}
	w.metrics.RecordIdempotencyCleanup(deleted, err)

	entry := w.logger.WithField("deleted", deleted)
	switch {
	case err != nil:
		entry.WithError(err).Warn("idempotency cleanup failed")
	case deleted > 0:
		entry.Info("expired idempotency keys removed")
	}
}

// DeleteExpired удаляет все ключи с TTL <= before, пачками по batchSize.
// При ошибке возвращает число уже удалённых ключей.
func (w *CleanupWorker) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	if before.IsZero() {
		before = w.now()
	}

	total := 0
	for ctx.Err() == nil {
		n, err := w.repo.DeleteExpired(ctx, before, w.batchSize)
		total += n
		if err != nil {
			return total, err
		}
		if n < w.batchSize {
			return total, nil
		}
	}
	return total, ctx.Err()
}
