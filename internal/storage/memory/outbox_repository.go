package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type outboxState uint8

const (
	outboxPending outboxState = iota
	outboxSent
	outboxFailed
)

type outboxRecord struct {
	seq   uint64
	msg   domain.OutboxMessage
	state outboxState
}

// OutboxRepository — outbox в памяти. События отдаются строго в порядке Enqueue.
type OutboxRepository struct {
	mu      sync.RWMutex
	seq     uint64
	records map[string]*outboxRecord
}

// NewOutboxRepository создаёт пустой outbox.
func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{records: make(map[string]*outboxRecord)}
}

// Enqueue ставит событие в очередь; пустой ID заменяется на UUID.
func (r *OutboxRepository) Enqueue(_ context.Context, msg domain.OutboxMessage) (domain.OutboxMessage, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	msg.Payload = append([]byte(nil), msg.Payload...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.records[msg.ID] = &outboxRecord{seq: r.seq, msg: msg}
	return msg, nil
}

// PullPending возвращает до limit самых ранних pending-событий.
func (r *OutboxRepository) PullPending(_ context.Context, limit int) ([]domain.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	pending := r.pending()
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

// Stats возвращает размер очереди и время создания самого раннего pending-события.
func (r *OutboxRepository) Stats(_ context.Context) (domain.OutboxStats, error) {
	pending := r.pending()
	stats := domain.OutboxStats{PendingCount: len(pending)}
	for _, msg := range pending {
		if stats.OldestPendingAt.IsZero() || msg.CreatedAt.Before(stats.OldestPendingAt) {
			stats.OldestPendingAt = msg.CreatedAt
		}
	}
	return stats, nil
}

// MarkSent снимает событие с очереди после публикации.
func (r *OutboxRepository) MarkSent(_ context.Context, id string) error {
	return r.transition(id, outboxSent)
}

// MarkFailed снимает событие с очереди после исчерпания попыток.
func (r *OutboxRepository) MarkFailed(_ context.Context, id string) error {
	return r.transition(id, outboxFailed)
}

// AllPending отдаёт снимок очереди для тестов.
func (r *OutboxRepository) AllPending() []domain.OutboxMessage {
	return r.pending()
}

func (r *OutboxRepository) transition(id string, to outboxState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return domain.ErrOutboxMessageNotFound
	}
	rec.state = to
	rec.msg.Attempts++
	return nil
}

func (r *OutboxRepository) pending() []domain.OutboxMessage {
	r.mu.RLock()
	recs := make([]outboxRecord, 0, len(r.records))
	for _, rec := range r.records {
		if rec.state == outboxPending {
			recs = append(recs, *rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]domain.OutboxMessage, len(recs))
	for i, rec := range recs {
		out[i] = rec.msg
		out[i].Payload = append([]byte(nil), rec.msg.Payload...)
	}
	return out
}

var _ domain.OutboxRepository = (*OutboxRepository)(nil)
