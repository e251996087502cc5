package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func up(context.Context) error { return nil }

func down(context.Context) error { return errors.New("connection refused") }

func TestHandler_Run(t *testing.T) {
	tests := []struct {
		name       string
		register   func(h *Handler)
		wantStatus Status
		wantCode   int
	}{
		{
			name:       "no checks",
			register:   func(*Handler) {},
			wantStatus: StatusHealthy,
			wantCode:   http.StatusOK,
		},
		{
			name: "all up",
			register: func(h *Handler) {
				h.Register("postgres", true, up)
				h.Register("redis", false, up)
			},
			wantStatus: StatusHealthy,
			wantCode:   http.StatusOK,
		},
		{
			name: "optional dependency down",
			register: func(h *Handler) {
				h.Register("postgres", true, up)
				h.Register("kafka", false, down)
			},
			wantStatus: StatusDegraded,
			wantCode:   http.StatusOK,
		},
		{
			name: "critical dependency down",
			register: func(h *Handler) {
				h.Register("postgres", true, down)
				h.Register("kafka", false, down)
			},
			wantStatus: StatusUnhealthy,
			wantCode:   http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler("v1.0.0")
			tt.register(h)

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "v1.0.0", resp.Version)
		})
	}
}

func TestHandler_CheckDetails(t *testing.T) {
	h := NewHandler("dev")
	h.Register("postgres", true, down)
	h.Register("redis", false, down)

	resp := h.Run(context.Background())
	require.Len(t, resp.Checks, 2)

	pg := resp.Checks["postgres"]
	assert.Equal(t, "postgres", pg.Name)
	assert.True(t, pg.Critical)
	assert.Equal(t, StatusUnhealthy, pg.Status)
	assert.Equal(t, "connection refused", pg.Message)

	assert.Equal(t, StatusDegraded, resp.Checks["redis"].Status)
	assert.False(t, resp.Ready())
}

func TestHandler_TimeoutBoundsSlowCheck(t *testing.T) {
	h := NewHandler("dev")
	h.SetTimeout(20 * time.Millisecond)
	h.SetTimeout(0)
	h.Register("slow", true, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	start := time.Now()
	resp := h.Run(context.Background())

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, StatusUnhealthy, resp.Status)
	assert.Equal(t, context.DeadlineExceeded.Error(), resp.Checks["slow"].Message)
}

func TestHandler_ChecksRunConcurrently(t *testing.T) {
	h := NewHandler("dev")
	var started sync.WaitGroup
	started.Add(3)
	for _, name := range []string{"a", "b", "c"} {
		h.Register(name, false, func(ctx context.Context) error {
			started.Done()
			started.Wait()
			return nil
		})
	}

	done := make(chan Response, 1)
	go func() { done <- h.Run(context.Background()) }()

	select {
	case resp := <-done:
		assert.Equal(t, StatusHealthy, resp.Status)
	case <-time.After(time.Second):
		t.Fatal("checks did not run in parallel")
	}
}

func TestReadinessHandler(t *testing.T) {
	h := NewHandler("dev")
	h.Register("redis", false, down)

	w := httptest.NewRecorder()
	h.ReadinessHandler(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", w.Body.String())

	h.Register("postgres", true, down)
	h.Register("catalog", true, down)

	w = httptest.NewRecorder()
	h.ReadinessHandler(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "not ready: catalog,postgres", w.Body.String())
}

func TestLivenessHandler(t *testing.T) {
	w := httptest.NewRecorder()
	LivenessHandler(w, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestHandler_WatchReportsTransitions(t *testing.T) {
	var failing atomic.Bool
	h := NewHandler("dev")
	h.Register("postgres", true, func(context.Context) error {
		if failing.Load() {
			return errors.New("down")
		}
		return nil
	})

	var (
		mu   sync.Mutex
		seen []Status
	)
	snapshot := func() []Status {
		mu.Lock()
		defer mu.Unlock()
		return append([]Status(nil), seen...)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.Watch(ctx, 5*time.Millisecond, func(s Status) {
			mu.Lock()
			seen = append(seen, s)
			mu.Unlock()
		})
	}()

	require.Eventually(t, func() bool { return len(snapshot()) == 1 }, time.Second, time.Millisecond)
	failing.Store(true)
	require.Eventually(t, func() bool { return len(snapshot()) == 2 }, time.Second, time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, []Status{StatusHealthy, StatusUnhealthy}, snapshot())
}
