package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Message string      `json:"message"`
	Kind    domain.Kind `json:"kind"`
}

// statusFor сопоставляет класс доменной ошибки с HTTP-статусом.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict, domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindInvalidTransition:
		return http.StatusConflict
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func errorPayload(err error) (int, errorBody) {
	kind := domain.KindOf(err)
	return statusFor(kind), errorBody{Message: domain.MessageOf(err), Kind: kind}
}

func (a *api) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorPayload(err)
	if status >= http.StatusInternalServerError {
		a.logger.WithError(err).WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
	}
	writeJSON(w, status, body)
}

// decodeJSON читает тело запроса. Пустое тело допустимо и оставляет dst нетронутым.
func decodeJSON(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return domain.Validation("failed to read request body")
	}
	return decodeBytes(body, dst)
}

func decodeBytes(body []byte, dst interface{}) error {
	if len(body) > maxBodyBytes {
		return domain.Validation("request body is too large")
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.Validation("invalid value for field %s", typeErr.Field)
		}
		return domain.Validation("malformed JSON body")
	}
	return nil
}
