package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const defaultIdempotencyTTL = 24 * time.Hour

const idempotencyColumns = `key, request_hash, response_body, http_status, status, ttl_at, created_at, updated_at`

// Живую запись не трогаем: WHERE в DO UPDATE пропускает только истёкшие ключи,
// поэтому пустой RETURNING означает конфликт.
const claimIdempotencyKeySQL = `
	INSERT INTO idempotency_keys AS ik (` + idempotencyColumns + `)
	VALUES ($1, $2, NULL, NULL, $3, $4, $5, $5)
	ON CONFLICT (key) DO UPDATE SET
		request_hash  = EXCLUDED.request_hash,
		response_body = NULL,
		http_status   = NULL,
		status        = EXCLUDED.status,
		ttl_at        = EXCLUDED.ttl_at,
		created_at    = EXCLUDED.created_at,
		updated_at    = EXCLUDED.updated_at
	WHERE ik.ttl_at <= $5
	RETURNING ` + idempotencyColumns

// LIMIT NULL в PostgreSQL равносилен отсутствию лимита.
const deleteExpiredIdempotencySQL = `
	DELETE FROM idempotency_keys
	WHERE key IN (
		SELECT key FROM idempotency_keys
		WHERE ttl_at <= $1
		ORDER BY ttl_at
		LIMIT $2
	)`

type idempotencyRepository struct {
	db *sql.DB
}

// NewIdempotencyRepository создаёт PostgreSQL-реализацию IdempotencyRepository.
func NewIdempotencyRepository(store *Store) domain.IdempotencyRepository {
	return &idempotencyRepository{db: store.DB()}
}

// CreateProcessing занимает ключ. Истёкшая запись, до которой ещё не добрался
// cleanup-воркер, перезаписывается тем же запросом.
func (r *idempotencyRepository) CreateProcessing(ctx context.Context, key, requestHash string, ttlAt time.Time) (domain.IdempotencyRecord, error) {
	key, err := normalizeIdempotencyKey(key)
	if err != nil {
		return domain.IdempotencyRecord{}, err
	}
	requestHash = strings.TrimSpace(requestHash)
	if requestHash == "" {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyRequestHashRequired
	}

	now := time.Now().UTC()
	if ttlAt.IsZero() {
		ttlAt = now.Add(defaultIdempotencyTTL)
	}

	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	row := r.db.QueryRowContext(ctx, claimIdempotencyKeySQL,
		key, requestHash, string(domain.IdempotencyStatusProcessing), ttlAt, now)
	record, err := scanIdempotencyRecord(row)
	switch {
	case err == nil:
		return record, nil
	case !errors.Is(err, sql.ErrNoRows):
		return domain.IdempotencyRecord{}, fmt.Errorf("claim idempotency key %s: %w", key, err)
	}

	existing, err := r.lookup(ctx, key)
	if err != nil {
		// Запись могли удалить между INSERT и SELECT; для клиента это всё равно конфликт.
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyAlreadyExists
	}
	if existing.RequestHash != requestHash {
		return existing, domain.ErrIdempotencyHashMismatch
	}
	return existing, domain.ErrIdempotencyKeyAlreadyExists
}

func (r *idempotencyRepository) Get(ctx context.Context, key string) (domain.IdempotencyRecord, error) {
	key, err := normalizeIdempotencyKey(key)
	if err != nil {
		return domain.IdempotencyRecord{}, err
	}

	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	return r.lookup(ctx, key)
}

func (r *idempotencyRepository) MarkDone(ctx context.Context, key string, responseBody []byte, httpStatus int) error {
	return r.finish(ctx, key, domain.IdempotencyStatusDone, responseBody, httpStatus)
}

func (r *idempotencyRepository) MarkFailed(ctx context.Context, key string, responseBody []byte, httpStatus int) error {
	return r.finish(ctx, key, domain.IdempotencyStatusFailed, responseBody, httpStatus)
}

// DeleteExpired удаляет не больше limit записей с ttl_at <= before; limit<=0 снимает ограничение.
func (r *idempotencyRepository) DeleteExpired(ctx context.Context, before time.Time, limit int) (int, error) {
	if before.IsZero() {
		before = time.Now().UTC()
	}
	batch := sql.NullInt64{Int64: int64(limit), Valid: limit > 0}

	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, deleteExpiredIdempotencySQL, before, batch)
	if err != nil {
		return 0, fmt.Errorf("delete expired idempotency keys: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired idempotency keys: %w", err)
	}
	return int(n), nil
}

func (r *idempotencyRepository) lookup(ctx context.Context, key string) (domain.IdempotencyRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+idempotencyColumns+` FROM idempotency_keys WHERE key = $1`, key)
	record, err := scanIdempotencyRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyNotFound
	}
	if err != nil {
		return domain.IdempotencyRecord{}, fmt.Errorf("get idempotency key %s: %w", key, err)
	}
	return record, nil
}

func (r *idempotencyRepository) finish(ctx context.Context, key string, status domain.IdempotencyStatus, responseBody []byte, httpStatus int) error {
	key, err := normalizeIdempotencyKey(key)
	if err != nil {
		return err
	}

	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE idempotency_keys
		SET status = $2, response_body = $3, http_status = $4, updated_at = $5
		WHERE key = $1`,
		key, string(status), responseBody, httpStatus, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark idempotency key %s as %s: %w", key, status, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark idempotency key %s as %s: %w", key, status, err)
	}
	if n == 0 {
		return domain.ErrIdempotencyKeyNotFound
	}
	return nil
}

func normalizeIdempotencyKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", domain.ErrIdempotencyKeyRequired
	}
	return key, nil
}

func scanIdempotencyRecord(row rowScanner) (domain.IdempotencyRecord, error) {
	var (
		record     domain.IdempotencyRecord
		status     string
		body       []byte
		httpStatus sql.NullInt64
	)
	if err := row.Scan(
		&record.Key,
		&record.RequestHash,
		&body,
		&httpStatus,
		&status,
		&record.TTLAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return domain.IdempotencyRecord{}, err
	}

	record.Status = domain.IdempotencyStatus(status)
	if !record.Status.Valid() {
		return domain.IdempotencyRecord{}, fmt.Errorf("unknown idempotency status %q for key %s", status, record.Key)
	}
	if len(body) > 0 {
		record.ResponseBody = append([]byte(nil), body...)
	}
	record.HTTPStatus = int(httpStatus.Int64)
	return record, nil
}

var _ domain.IdempotencyRepository = (*idempotencyRepository)(nil)
