// Package health отдаёт liveness/readiness и сводный статус зависимостей.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Status — итог проверки компонента или всего сервиса.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

const defaultCheckTimeout = 2 * time.Second

type Check struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Critical   bool   `json:"critical"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Response отдаётся на /healthz.
type Response struct {
	Status        Status           `json:"status"`
	Timestamp     time.Time        `json:"timestamp"`
	Checks        map[string]Check `json:"checks,omitempty"`
	Version       string           `json:"version,omitempty"`
	UptimeSeconds int64            `json:"uptime_seconds"`
}

// Ready сообщает, что ни одна критичная зависимость не упала.
func (r Response) Ready() bool { return r.Status != StatusUnhealthy }

// PingFunc проверяет доступность зависимости.
type PingFunc func(ctx context.Context) error

type probe struct {
	name     string
	ping     PingFunc
	critical bool
}

// Handler собирает проверки зависимостей. Упавшая критичная зависимость
// делает сервис unhealthy, некритичная (кэш, брокер) только degraded.
type Handler struct {
	mu      sync.RWMutex
	probes  map[string]probe
	timeout time.Duration

	version string
	started time.Time
}

func NewHandler(version string) *Handler {
	return &Handler{
		probes:  make(map[string]probe),
		timeout: defaultCheckTimeout,
		version: version,
		started: time.Now(),
	}
}

// SetTimeout ограничивает время одной проверки.
func (h *Handler) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	h.mu.Lock()
	h.timeout = timeout
	h.mu.Unlock()
}

// Register добавляет проверку; повторная регистрация имени заменяет прежнюю.
func (h *Handler) Register(name string, critical bool, ping PingFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probes[name] = probe{name: name, ping: ping, critical: critical}
}

// Run выполняет все проверки параллельно.
func (h *Handler) Run(ctx context.Context) Response {
	h.mu.RLock()
	probes := make([]probe, 0, len(h.probes))
	for _, p := range h.probes {
		probes = append(probes, p)
	}
	timeout := h.timeout
	h.mu.RUnlock()

	results := make([]Check, len(probes))
	var g errgroup.Group
	for i, p := range probes {
		g.Go(func() error {
			results[i] = p.run(ctx, timeout)
			return nil
		})
	}
	_ = g.Wait()

	resp := Response{
		Status:        StatusHealthy,
		Timestamp:     time.Now().UTC(),
		Checks:        make(map[string]Check, len(results)),
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	}
	for _, c := range results {
		resp.Checks[c.Name] = c
		resp.Status = worse(resp.Status, c.Status)
	}
	return resp
}

// Watch периодически прогоняет проверки и вызывает onChange при смене
// сводного статуса. Первый вызов происходит сразу.
func (h *Handler) Watch(ctx context.Context, interval time.Duration, onChange func(Status)) {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last Status
	for {
		if current := h.Run(ctx).Status; current != last {
			last = current
			onChange(current)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p probe) run(ctx context.Context, timeout time.Duration) Check {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	err := p.ping(ctx)
	c := Check{
		Name:       p.name,
		Status:     StatusHealthy,
		Critical:   p.critical,
		DurationMs: time.Since(started).Milliseconds(),
	}
	switch {
	case err == nil:
	case p.critical:
		c.Status, c.Message = StatusUnhealthy, err.Error()
	default:
		c.Status, c.Message = StatusDegraded, err.Error()
	}
	return c
}

func severity(s Status) int {
	switch s {
	case StatusUnhealthy:
		return 2
	case StatusDegraded:
		return 1
	default:
		return 0
	}
}

func worse(a, b Status) Status {
	if severity(b) > severity(a) {
		return b
	}
	return a
}

// ServeHTTP отдаёт подробный отчёт; 503, если сервис unhealthy.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := h.Run(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if resp.Ready() {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// LivenessHandler отвечает 200, пока процесс жив.
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ReadinessHandler перечисляет упавшие критичные зависимости в теле 503.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	resp := h.Run(r.Context())
	if resp.Ready() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}

	var down []string
	for name, c := range resp.Checks {
		if c.Status == StatusUnhealthy {
			down = append(down, name)
		}
	}
	sort.Strings(down)

	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("not ready: " + strings.Join(down, ",")))
}
