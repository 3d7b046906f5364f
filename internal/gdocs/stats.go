package gdocs

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	op         string
	durationMs int64
}

// StatsSnapshot is a point-in-time aggregate of remote call latencies.
type StatsSnapshot struct {
	Count   int            `json:"count"`
	ByOp    map[string]int `json:"by_op,omitempty"`
	MinMs   int64          `json:"min_ms"`
	MaxMs   int64          `json:"max_ms"`
	AvgMs   float64        `json:"avg_ms"`
	P50Ms   float64        `json:"p50_ms"`
	P95Ms   float64        `json:"p95_ms"`
	Retries int            `json:"retries"`
}

// CallStats tracks recent Docs/Drive call latencies within a rolling
// window.
type CallStats struct {
	mu      sync.Mutex
	samples []sample
	retries int
	maxAge  time.Duration
}

func NewCallStats(maxAge time.Duration) *CallStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &CallStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (s *CallStats) Record(op string, durationMs int64) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp:  now,
		op:         op,
		durationMs: durationMs,
	})
}

func (s *CallStats) RecordRetry() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retries++
}

func (s *CallStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{Retries: s.retries}
	}

	values := make([]int64, 0, len(s.samples))
	byOp := make(map[string]int)
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationMs)
		byOp[sm.op]++
		sum += sm.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return StatsSnapshot{
		Count:   len(values),
		ByOp:    byOp,
		MinMs:   values[0],
		MaxMs:   values[len(values)-1],
		AvgMs:   float64(sum) / float64(len(values)),
		P50Ms:   percentile(values, 50),
		P95Ms:   percentile(values, 95),
		Retries: s.retries,
	}
}

func (s *CallStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
