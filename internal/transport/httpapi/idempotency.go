package httpapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// requestHash привязывает ключ идемпотентности к конкретному запросу.
func requestHash(method, path, userID string, body []byte) string {
	h := sha256.New()
	for _, part := range []string{method, path, userID} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// idempotent выполняет run не больше одного раза на ключ и повторяет сохранённый ответ.
// Ключ занимается до выполнения, результат (успех или ошибка) сохраняется после.
func (a *api) idempotent(ctx context.Context, key, hash string, run func() (int, []byte)) (int, []byte, bool) {
	logger := a.logger.WithField("idempotency_key", key)

	record, err := a.Idempotency.CreateProcessing(ctx, key, hash, time.Now().UTC().Add(a.IdempotencyTTL))
	if err != nil {
		return a.replay(logger, err, record)
	}

	status, body := run()

	if status < http.StatusBadRequest {
		err = a.Idempotency.MarkDone(ctx, key, body, status)
	} else {
		err = a.Idempotency.MarkFailed(ctx, key, body, status)
	}
	if err != nil {
		logger.WithError(err).Warn("failed to store idempotent response")
	}
	return status, body, false
}

func (a *api) replay(logger *log.Entry, createErr error, record domain.IdempotencyRecord) (int, []byte, bool) {
	switch {
	case !domain.IsIdempotencyConflict(createErr):
		logger.WithError(createErr).Warn("failed to create idempotency record")
		status, body := encodeError(domain.Internal(createErr))
		return status, body, false
	case errors.Is(createErr, domain.ErrIdempotencyHashMismatch):
		status, body := encodeConflict(http.StatusUnprocessableEntity, "Idempotency-Key is already used with a different request")
		return status, body, false
	default:
		if record.Status == domain.IdempotencyStatusProcessing {
			status, body := encodeConflict(http.StatusConflict, "request with the same Idempotency-Key is still processing")
			return status, body, false
		}
		if record.Finished() && record.HTTPStatus > 0 && len(record.ResponseBody) > 0 {
			return record.HTTPStatus, record.ResponseBody, true
		}
		logger.WithField("status", record.Status).Warn("idempotency record has no stored response")
		status, body := encodeError(domain.Internal(errors.New("idempotency record has no stored response")))
		return status, body, false
	}
}

func encodeConflict(status int, message string) (int, []byte) {
	_, body := encode(status, errorBody{Message: message, Kind: domain.KindConflict})
	return status, body
}
