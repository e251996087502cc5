package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Под scenarioOp пишется сквозная длительность сценария.
const scenarioOp = "scenario"

type latencyStats struct {
	Min  float64 `json:"min_ms" yaml:"min_ms"`
	Mean float64 `json:"mean_ms" yaml:"mean_ms"`
	P50  float64 `json:"p50_ms" yaml:"p50_ms"`
	P90  float64 `json:"p90_ms" yaml:"p90_ms"`
	P99  float64 `json:"p99_ms" yaml:"p99_ms"`
	Max  float64 `json:"max_ms" yaml:"max_ms"`
}

type opStats struct {
	Requests  int64            `json:"requests" yaml:"requests"`
	OK        int64            `json:"ok" yaml:"ok"`
	Errors    int64            `json:"errors" yaml:"errors"`
	ErrorRate float64          `json:"error_rate" yaml:"error_rate"`
	Codes     map[string]int64 `json:"codes" yaml:"codes"`
	Latency   latencyStats     `json:"latency" yaml:"latency"`
}

type runReport struct {
	Mode           string             `json:"mode" yaml:"mode"`
	Target         string             `json:"target" yaml:"target"`
	StartedAt      time.Time          `json:"started_at" yaml:"started_at"`
	ElapsedSeconds float64            `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Throughput     float64            `json:"scenarios_per_second" yaml:"scenarios_per_second"`
	Scenarios      opStats            `json:"scenarios" yaml:"scenarios"`
	Operations     map[string]opStats `json:"operations" yaml:"operations"`
}

type sample struct {
	ms   float64
	code string
	ok   bool
}

// collector копит замеры по операциям; code хранит HTTP-статус или код gRPC.
type collector struct {
	mu      sync.Mutex
	samples map[string][]sample
}

func newCollector() *collector {
	return &collector{samples: make(map[string][]sample)}
}

func (c *collector) observe(op string, d time.Duration, code string, ok bool) {
	s := sample{ms: float64(d.Microseconds()) / 1000, code: code, ok: ok}

	c.mu.Lock()
	c.samples[op] = append(c.samples[op], s)
	c.mu.Unlock()
}

func (c *collector) snapshot(cfg config, startedAt time.Time, elapsed time.Duration) runReport {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := runReport{
		Mode:           string(cfg.mode),
		Target:         runTarget(cfg),
		StartedAt:      startedAt.UTC(),
		ElapsedSeconds: elapsed.Seconds(),
		Scenarios:      summarize(c.samples[scenarioOp]),
		Operations:     make(map[string]opStats, len(c.samples)),
	}
	if elapsed > 0 {
		r.Throughput = float64(r.Scenarios.Requests) / elapsed.Seconds()
	}
	for op, samples := range c.samples {
		if op != scenarioOp {
			r.Operations[op] = summarize(samples)
		}
	}
	return r
}

func summarize(samples []sample) opStats {
	st := opStats{Codes: make(map[string]int64)}
	if len(samples) == 0 {
		return st
	}

	latencies := make([]float64, len(samples))
	for i, s := range samples {
		latencies[i] = s.ms
		st.Codes[s.code]++
		if s.ok {
			st.OK++
		} else {
			st.Errors++
		}
	}
	st.Requests = int64(len(samples))
	st.ErrorRate = float64(st.Errors) / float64(st.Requests)
	st.Latency = describe(latencies)
	return st
}

func describe(ms []float64) latencyStats {
	if len(ms) == 0 {
		return latencyStats{}
	}
	sorted := append([]float64(nil), ms...)
	sort.Float64s(sorted)

	total := 0.0
	for _, v := range sorted {
		total += v
	}
	return latencyStats{
		Min:  sorted[0],
		Mean: total / float64(len(sorted)),
		P50:  quantile(sorted, 0.50),
		P90:  quantile(sorted, 0.90),
		P99:  quantile(sorted, 0.99),
		Max:  sorted[len(sorted)-1],
	}
}

// quantile по nearest-rank; sorted уже отсортирован.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(q*float64(len(sorted)))) - 1
	idx = max(0, min(idx, len(sorted)-1))
	return sorted[idx]
}

func runTarget(cfg config) string {
	switch {
	case cfg.duration <= 0:
		return fmt.Sprintf("count:%d", cfg.total)
	case cfg.totalSet:
		return fmt.Sprintf("duration:%s,max-total:%d", cfg.duration, cfg.total)
	default:
		return fmt.Sprintf("duration:%s", cfg.duration)
	}
}

func printReport(w io.Writer, r runReport) {
	s := r.Scenarios
	fmt.Fprintf(w, "storefront load test: mode=%s target=%s\n", r.Mode, r.Target)
	fmt.Fprintf(w, "scenarios=%d ok=%d errors=%d error_rate=%.4f elapsed=%.2fs throughput=%.2f/s\n",
		s.Requests, s.OK, s.Errors, s.ErrorRate, r.ElapsedSeconds, r.Throughput)
	fmt.Fprintf(w, "scenario latency: p50=%.2fms p90=%.2fms p99=%.2fms max=%.2fms\n",
		s.Latency.P50, s.Latency.P90, s.Latency.P99, s.Latency.Max)

	ops := make([]string, 0, len(r.Operations))
	for op := range r.Operations {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	for _, op := range ops {
		st := r.Operations[op]
		fmt.Fprintf(w, "  %-20s requests=%d errors=%d p90=%.2fms codes=%v\n",
			op, st.Requests, st.Errors, st.Latency.P90, st.Codes)
	}
}

// writeReport пишет отчёт в файл внутри рабочего каталога; .yaml/.yml пишется в YAML, остальное в JSON.
func writeReport(path string, r runReport) error {
	clean := filepath.Clean(path)
	switch {
	case clean == "." || clean == string(filepath.Separator):
		return errors.New("output path must point to a file")
	case filepath.IsAbs(clean), clean == "..", strings.HasPrefix(clean, ".."+string(filepath.Separator)):
		return fmt.Errorf("output path must be inside current directory: %s", path)
	}

	// #nosec G304 -- путь задаётся флагом CLI и ограничен рабочим каталогом.
	f, err := os.Create(clean)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(clean)) {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
}
