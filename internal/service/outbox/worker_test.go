package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func statusChanged(id, orderID, to string) domain.OutboxMessage {
	return domain.OutboxMessage{
		ID:            id,
		AggregateType: domain.OutboxAggregateOrder,
		AggregateID:   orderID,
		EventType:     domain.EventTypeOrderStatusChanged,
		Payload:       []byte(`{"to":"` + to + `"}`),
	}
}

func TestWorker_ProcessOnce(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		publishErrs []error
		defaultErr  error
		wantCalls   int
		wantResult  BatchResult
		wantSent    []string
		wantFailed  []string
		wantDLQ     int
	}{
		{
			name:       "published on first attempt",
			wantCalls:  1,
			wantResult: BatchResult{Sent: 1},
			wantSent:   []string{"msg-1"},
		},
		{
			name:        "published after retries",
			publishErrs: []error{errors.New("attempt 1"), errors.New("attempt 2")},
			wantCalls:   3,
			wantResult:  BatchResult{Sent: 1},
			wantSent:    []string{"msg-1"},
		},
		{
			name:       "dead lettered after max attempts",
			defaultErr: errors.New("broker down"),
			wantCalls:  3,
			wantResult: BatchResult{Failed: 1},
			wantFailed: []string{"msg-1"},
			wantDLQ:    1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubOutboxRepo{pending: []domain.OutboxMessage{statusChanged("msg-1", "order-1", "Shipped")}}
			publisher := &stubPublisher{err: tc.defaultErr, sequenceErrors: tc.publishErrs}
			dlq := &stubPublisher{}

			worker := NewWorker(repo, publisher,
				WithDLQPublisher(dlq),
				WithRetryBaseDelay(0),
				WithMaxAttempts(3),
				WithMetrics(metrics.NewStorefrontMetricsWithRegisterer(prometheus.NewRegistry())),
			)

			require.Equal(t, tc.wantResult, worker.ProcessOnce(context.Background()))
			require.Equal(t, tc.wantCalls, publisher.calls())
			require.Equal(t, tc.wantSent, repo.sentIDs)
			require.Equal(t, tc.wantFailed, repo.failedIDs)
			require.Equal(t, tc.wantDLQ, dlq.calls())
		})
	}
}

func TestWorker_DeadLetterCarriesOriginalEvent(t *testing.T) {
	t.Parallel()

	repo := &stubOutboxRepo{pending: []domain.OutboxMessage{statusChanged("msg-7", "order-7", "Delivered")}}
	dlq := &stubPublisher{}
	worker := NewWorker(repo, &stubPublisher{err: errors.New("broker down")},
		WithDLQPublisher(dlq),
		WithRetryBaseDelay(0),
		WithMaxAttempts(2),
	)
	worker.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	worker.ProcessOnce(context.Background())

	require.Len(t, dlq.published, 1)
	msg := dlq.published[0]
	require.Equal(t, "msg-7", msg.ID)
	require.Equal(t, "order-7", msg.AggregateID)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Payload, &body))
	require.Equal(t, "msg-7", body["outbox_id"])
	require.Equal(t, float64(2), body["attempts"])
	require.Contains(t, body["publish_error"], "broker down")
	require.Equal(t, map[string]any{"to": "Delivered"}, body["payload"])
	require.Equal(t, "2024-06-01T12:00:00Z", body["dlq_published_at"])
}

func TestWorker_ProcessOnce_DLQFailureStillMarksFailed(t *testing.T) {
	t.Parallel()

	repo := &stubOutboxRepo{pending: []domain.OutboxMessage{statusChanged("msg-1", "order-1", "Shipped")}}
	worker := NewWorker(repo, &stubPublisher{err: errors.New("down")},
		WithDLQPublisher(&stubPublisher{err: errors.New("dlq down")}),
		WithRetryBaseDelay(0),
		WithMaxAttempts(1),
	)

	res := worker.ProcessOnce(context.Background())
	require.Equal(t, 1, res.Failed)
	require.Equal(t, []string{"msg-1"}, repo.failedIDs)
}

func TestWorker_ProcessOnce_PullErrorAndCanceledContext(t *testing.T) {
	t.Parallel()

	repo := &stubOutboxRepo{pullErr: errors.New("db down")}
	publisher := &stubPublisher{}
	require.Equal(t, BatchResult{}, NewWorker(repo, publisher).ProcessOnce(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo = &stubOutboxRepo{pending: []domain.OutboxMessage{statusChanged("msg-1", "order-1", "Shipped")}}
	require.Equal(t, BatchResult{}, NewWorker(repo, publisher).ProcessOnce(ctx))
	require.Zero(t, publisher.calls())
}

func TestWorker_RetryWaitHonoursContext(t *testing.T) {
	t.Parallel()

	repo := &stubOutboxRepo{pending: []domain.OutboxMessage{statusChanged("msg-1", "order-1", "Shipped")}}
	publisher := &stubPublisher{err: errors.New("down")}
	worker := NewWorker(repo, publisher, WithRetryBaseDelay(time.Minute), WithMaxAttempts(5))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	worker.ProcessOnce(ctx)
	require.Less(t, time.Since(start), 5*time.Second)
	require.Equal(t, 1, publisher.calls())
	// Прерванная публикация остаётся pending до следующего прохода.
	require.Empty(t, repo.failedIDs)
}

func TestWorker_Run_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	worker := NewWorker(&stubOutboxRepo{}, &stubPublisher{}, WithPollInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(ctx)
	}()

	time.Sleep(15 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
}

func TestWorker_Run_DisabledWithoutPublisher(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		NewWorker(&stubOutboxRepo{}, nil).Run(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker without publisher must return immediately")
	}
}

func TestWorker_ProcessOnce_WithMemoryRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewOutboxRepository()
	for _, id := range []string{"order-a", "order-b"} {
		_, err := repo.Enqueue(ctx, domain.OutboxMessage{
			AggregateType: domain.OutboxAggregateOrder,
			AggregateID:   id,
			EventType:     domain.EventTypeOrderCreated,
			Payload:       []byte(`{}`),
		})
		require.NoError(t, err)
	}

	publisher := &stubPublisher{}
	res := NewWorker(repo, publisher, WithRetryBaseDelay(0)).ProcessOnce(ctx)

	require.Equal(t, BatchResult{Sent: 2}, res)
	require.Equal(t, "order-a", publisher.published[0].AggregateID)
	require.Empty(t, repo.AllPending())
}

func TestWorker_RetryBackoff(t *testing.T) {
	t.Parallel()

	worker := NewWorker(&stubOutboxRepo{}, &stubPublisher{}, WithRetryBaseDelay(10*time.Millisecond))
	require.Equal(t, 10*time.Millisecond, worker.retryBackoff(1))
	require.Equal(t, 40*time.Millisecond, worker.retryBackoff(3))
	require.Equal(t, maxRetryDelay, worker.retryBackoff(64))
	require.Zero(t, worker.retryBackoff(0))

	require.Zero(t, NewWorker(&stubOutboxRepo{}, &stubPublisher{}, WithRetryBaseDelay(0)).retryBackoff(3))
}

func TestNewWorker_NormalizesOptions(t *testing.T) {
	t.Parallel()

	worker := NewWorker(&stubOutboxRepo{}, &stubPublisher{},
		WithPollInterval(-1),
		WithBatchSize(0),
		WithMaxAttempts(-3),
		WithRetryBaseDelay(-time.Second),
	)
	require.Equal(t, defaultPollInterval, worker.pollInterval)
	require.Equal(t, defaultBatchSize, worker.batchSize)
	require.Equal(t, defaultMaxAttempts, worker.maxAttempts)
	require.Zero(t, worker.baseDelay)
	require.NotNil(t, worker.logger)
}

type stubOutboxRepo struct {
	mu        sync.Mutex
	pending   []domain.OutboxMessage
	pullErr   error
	sentIDs   []string
	failedIDs []string
}

func (s *stubOutboxRepo) Enqueue(_ context.Context, msg domain.OutboxMessage) (domain.OutboxMessage, error) {
	return msg, nil
}

func (s *stubOutboxRepo) PullPending(_ context.Context, limit int) ([]domain.OutboxMessage, error) {
	if s.pullErr != nil {
		return nil, s.pullErr
	}
	if limit <= 0 || limit >= len(s.pending) {
		return append([]domain.OutboxMessage(nil), s.pending...), nil
	}
	return append([]domain.OutboxMessage(nil), s.pending[:limit]...), nil
}

func (s *stubOutboxRepo) Stats(_ context.Context) (domain.OutboxStats, error) {
	stats := domain.OutboxStats{PendingCount: len(s.pending)}
	if len(s.pending) > 0 {
		stats.OldestPendingAt = time.Now().UTC().Add(-time.Second)
	}
	return stats, nil
}

func (s *stubOutboxRepo) MarkSent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sentIDs = append(s.sentIDs, id)
	return nil
}

func (s *stubOutboxRepo) MarkFailed(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failedIDs = append(s.failedIDs, id)
	return nil
}

type stubPublisher struct {
	mu             sync.Mutex
	err            error
	sequenceErrors []error
	callCount      int
	published      []domain.OutboxMessage
}

func (s *stubPublisher) Publish(event domain.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.callCount++
	err := s.err
	if len(s.sequenceErrors) > 0 {
		err, s.sequenceErrors = s.sequenceErrors[0], s.sequenceErrors[1:]
	}
	if err == nil {
		s.published = append(s.published, event)
	}
	return err
}

func (s *stubPublisher) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

var (
	_ domain.OutboxRepository = (*stubOutboxRepo)(nil)
	_ domain.OutboxPublisher  = (*stubPublisher)(nil)
)
