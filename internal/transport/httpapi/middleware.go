package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type ctxKey int

const userIDKey ctxKey = iota

// В authTokenHeader клиенты исторически присылают токен.
const authTokenHeader = "auth-token"

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func userIDFrom(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

func (a *api) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.Verifier == nil {
			a.writeError(w, r, domain.ErrUnauthenticated)
			return
		}
		token := auth.TokenFromHeaders(r.Header.Get(authTokenHeader), r.Header.Get("Authorization"))
		userID, err := a.Verifier.Verify(token)
		if err != nil {
			a.logger.WithError(err).WithField("path", r.URL.Path).Debug("rejected identity token")
			a.writeError(w, r, domain.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// instrument пишет access-лог и длительность запроса с маршрутом в виде шаблона.
func (a *api) instrument(pattern string, next http.Handler) http.Handler {
	route := pattern
	if idx := strings.IndexByte(pattern, ' '); idx >= 0 {
		route = pattern[idx+1:]
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		duration := time.Since(start)

		a.Metrics.ObserveHTTPRequest(r.Method, route, rec.status, duration)

		entry := a.logger.WithFields(log.Fields{
			"method":      r.Method,
			"route":       route,
			"status":      rec.status,
			"duration_ms": duration.Milliseconds(),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Warn("http request")
		} else {
			entry.Debug("http request")
		}
	})
}

func (a *api) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				a.logger.WithFields(log.Fields{
					"panic": rec,
					"path":  r.URL.Path,
				}).Error("panic while handling request")
				writeJSON(w, http.StatusInternalServerError, errorBody{
					Message: "Internal Server Error",
					Kind:    domain.KindInternal,
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
