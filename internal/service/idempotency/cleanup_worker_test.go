package idempotency

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

// batchRepo отдаёт заранее заданные ответы DeleteExpired по очереди.
type batchRepo struct {
	domain.IdempotencyRepository

	mu      sync.Mutex
	batches []int
	errs    []error
	limits  []int
}

func (r *batchRepo) DeleteExpired(_ context.Context, _ time.Time, limit int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.limits = append(r.limits, limit)
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		if err != nil {
			return 0, err
		}
	}
	if len(r.batches) == 0 {
		return 0, nil
	}
	n := r.batches[0]
	r.batches = r.batches[1:]
	return n, nil
}

func (r *batchRepo) calls() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.limits...)
}

func TestCleanupWorker_DeleteExpired(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	tests := []struct {
		name      string
		repo      *batchRepo
		batchSize int
		want      int
		wantErr   error
		wantCalls int
	}{
		{name: "drains full batches", repo: &batchRepo{batches: []int{2, 2, 1}}, batchSize: 2, want: 5, wantCalls: 3},
		{name: "single short batch", repo: &batchRepo{batches: []int{3}}, batchSize: 10, want: 3, wantCalls: 1},
		{name: "exact multiple needs empty probe", repo: &batchRepo{batches: []int{4, 4}}, batchSize: 4, want: 8, wantCalls: 3},
		{name: "error after progress", repo: &batchRepo{batches: []int{2}, errs: []error{nil, boom}}, batchSize: 2, want: 2, wantErr: boom, wantCalls: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			worker := NewCleanupWorker(tt.repo, WithBatchSize(tt.batchSize))
			got, err := worker.DeleteExpired(context.Background(), time.Now().UTC())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)

			calls := tt.repo.calls()
			assert.Len(t, calls, tt.wantCalls)
			for _, limit := range calls {
				assert.Equal(t, tt.batchSize, limit)
			}
		})
	}
}

func TestCleanupWorker_DeleteExpiredCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &batchRepo{batches: []int{5}}
	_, err := NewCleanupWorker(repo).DeleteExpired(ctx, time.Time{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, repo.calls())
}

func TestCleanupWorker_MemoryRepositoryKeepsLiveKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()
	now := time.Now().UTC()

	keys := map[string]time.Duration{
		"checkout-1":    -time.Hour,
		"checkout-2":    -time.Minute,
		"checkout-3":    -time.Second,
		"checkout-live": time.Hour,
	}
	for key, offset := range keys {
		_, err := repo.CreateProcessing(ctx, key, "hash", now.Add(offset))
		require.NoError(t, err)
	}

	deleted, err := NewCleanupWorker(repo, WithBatchSize(2)).DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	_, err = repo.Get(ctx, "checkout-live")
	require.NoError(t, err)
	_, err = repo.Get(ctx, "checkout-1")
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyNotFound)
}

func TestCleanupWorker_RunRecordsMetricsAndStops(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	repo := &batchRepo{batches: []int{3}}
	worker := NewCleanupWorker(repo,
		WithInterval(time.Hour),
		WithBatchSize(10),
		WithMetrics(metrics.NewStorefrontMetricsWithRegisterer(reg)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(ctx)
	}()

	// Первый прогон выполняется сразу после старта.
	require.Eventually(t, func() bool { return len(repo.calls()) == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup worker did not stop after cancel")
	}

	require.Eventually(t, func() bool {
		return testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP storefront_idempotency_cleanup_deleted_total Total number of deleted expired idempotency records
# TYPE storefront_idempotency_cleanup_deleted_total counter
storefront_idempotency_cleanup_deleted_total 3
`), "storefront_idempotency_cleanup_deleted_total") == nil
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP storefront_idempotency_cleanup_runs_total Total number of idempotency cleanup runs grouped by result
# TYPE storefront_idempotency_cleanup_runs_total counter
storefront_idempotency_cleanup_runs_total{result="ok"} 1
`), "storefront_idempotency_cleanup_runs_total"))
}

func TestCleanupWorker_SweepCountsFailures(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	repo := &batchRepo{errs: []error{errors.New("db down")}}
	worker := NewCleanupWorker(repo, WithMetrics(metrics.NewStorefrontMetricsWithRegisterer(reg)))
	worker.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	worker.sweep(context.Background())

	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP storefront_idempotency_cleanup_runs_total Total number of idempotency cleanup runs grouped by result
# TYPE storefront_idempotency_cleanup_runs_total counter
storefront_idempotency_cleanup_runs_total{result="error"} 1
`), "storefront_idempotency_cleanup_runs_total"))
}

func TestCleanupWorker_RunWithoutRepoReturns(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		NewCleanupWorker(nil).Run(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run must return immediately without repository")
	}
}

func TestNewCleanupWorker_IgnoresInvalidOptions(t *testing.T) {
	t.Parallel()

	w := NewCleanupWorker(nil, WithInterval(-time.Second), WithBatchSize(0), WithLogger(nil))
	assert.Equal(t, defaultCleanupInterval, w.interval)
	assert.Equal(t, defaultCleanupBatchSize, w.batchSize)
	assert.NotNil(t, w.logger)
}
