package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func TestIdempotencyRepository_ClaimFinishAndRead(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()
	ttl := time.Now().UTC().Add(2 * time.Hour)

	claimed, err := repo.CreateProcessing(ctx, " checkout-1 ", "hash-1", ttl)
	require.NoError(t, err)
	assert.Equal(t, "checkout-1", claimed.Key)
	assert.Equal(t, domain.IdempotencyStatusProcessing, claimed.Status)
	assert.True(t, claimed.TTLAt.Equal(ttl))
	assert.False(t, claimed.Finished())

	body := []byte(`{"id":"o-1"}`)
	require.NoError(t, repo.MarkDone(ctx, "checkout-1", body, 201))
	body[0] = 'X'

	got, err := repo.Get(ctx, "checkout-1")
	require.NoError(t, err)
	assert.Equal(t, domain.IdempotencyStatusDone, got.Status)
	assert.Equal(t, 201, got.HTTPStatus)
	assert.JSONEq(t, `{"id":"o-1"}`, string(got.ResponseBody))

	got.ResponseBody[0] = 'Y'
	again, err := repo.Get(ctx, "checkout-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"o-1"}`, string(again.ResponseBody))

	require.NoError(t, repo.MarkFailed(ctx, "checkout-1", nil, 500))
	got, err = repo.Get(ctx, "checkout-1")
	require.NoError(t, err)
	assert.Equal(t, domain.IdempotencyStatusFailed, got.Status)
}

func TestIdempotencyRepository_LiveKeyConflicts(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()
	ttl := time.Now().UTC().Add(time.Hour)

	_, err := repo.CreateProcessing(ctx, "checkout-2", "hash-a", ttl)
	require.NoError(t, err)

	existing, err := repo.CreateProcessing(ctx, "checkout-2", "hash-a", ttl)
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyAlreadyExists)
	assert.Equal(t, "hash-a", existing.RequestHash)

	_, err = repo.CreateProcessing(ctx, "checkout-2", "hash-b", ttl)
	require.ErrorIs(t, err, domain.ErrIdempotencyHashMismatch)
}

func TestIdempotencyRepository_ExpiredKeyIsReclaimed(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()

	_, err := repo.CreateProcessing(ctx, "checkout-3", "hash-old", time.Now().UTC().Add(-time.Second))
	require.NoError(t, err)

	rec, err := repo.CreateProcessing(ctx, "checkout-3", "hash-new", time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "hash-new", rec.RequestHash)
}

func TestIdempotencyRepository_DeleteExpiredOldestFirst(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()
	now := time.Now().UTC()

	for key, offset := range map[string]time.Duration{
		"oldest": -3 * time.Hour,
		"older":  -2 * time.Hour,
		"old":    -time.Hour,
		"live":   time.Hour,
	} {
		_, err := repo.CreateProcessing(ctx, key, "h", now.Add(offset))
		require.NoError(t, err)
	}

	removed, err := repo.DeleteExpired(ctx, now, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = repo.Get(ctx, "oldest")
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyNotFound)
	_, err = repo.Get(ctx, "older")
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyNotFound)
	_, err = repo.Get(ctx, "old")
	require.NoError(t, err)

	removed, err = repo.DeleteExpired(ctx, now, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = repo.Get(ctx, "live")
	require.NoError(t, err)
}

func TestIdempotencyRepository_Validation(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()

	_, err := repo.CreateProcessing(ctx, "", "h", time.Time{})
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyRequired)
	_, err = repo.CreateProcessing(ctx, "k", "  ", time.Time{})
	require.ErrorIs(t, err, domain.ErrIdempotencyRequestHashRequired)
	_, err = repo.Get(ctx, " ")
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyRequired)
	require.ErrorIs(t, repo.MarkDone(ctx, "missing", nil, 200), domain.ErrIdempotencyKeyNotFound)

	rec, err := repo.CreateProcessing(ctx, "default-ttl", "h", time.Time{})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), rec.TTLAt, time.Minute)
}
