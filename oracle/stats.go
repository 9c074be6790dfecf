package oracle

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stats tracks per-adapter counters. Counters are monotonic and only an
// explicit Reset clears them. All mutation is atomic so concurrent
// logical queries may record outcomes without coordination.
type Stats struct {
	requests       atomic.Int64
	errors         atomic.Int64
	totalLatencyMs atomic.Int64

	mu        sync.Mutex
	lastError string
}

func (s *Stats) recordSuccess(latency time.Duration) {
	s.requests.Add(1)
	s.totalLatencyMs.Add(latency.Milliseconds())
}

func (s *Stats) recordFailure(latency time.Duration, err error) {
	s.requests.Add(1)
	s.errors.Add(1)
	s.totalLatencyMs.Add(latency.Milliseconds())

	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
	}
}

// Reset clears all counters.
func (s *Stats) Reset() {
	s.requests.Store(0)
	s.errors.Store(0)
	s.totalLatencyMs.Store(0)

	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the counters with derived
// rates.
func (s *Stats) Snapshot() StatsSnapshot {
	requests := s.requests.Load()
	errs := s.errors.Load()
	total := s.totalLatencyMs.Load()

	s.mu.Lock()
	lastError := s.lastError
	s.mu.Unlock()

	snap := StatsSnapshot{
		Requests:       requests,
		Errors:         errs,
		TotalLatencyMs: total,
		LastError:      lastError,
	}
	if requests > 0 {
		snap.SuccessRate = float64(requests-errs) / float64(requests) * 100
		snap.AvgLatencyMs = float64(total) / float64(requests)
	} else {
		// An untried adapter ranks as fully healthy.
		snap.SuccessRate = 100
	}
	return snap
}

// StatsSnapshot is a point-in-time view of adapter counters.
type StatsSnapshot struct {
	Requests       int64   `json:"requests"`
	Errors         int64   `json:"errors"`
	TotalLatencyMs int64   `json:"total_latency_ms"`
	LastError      string  `json:"last_error,omitempty"`
	SuccessRate    float64 `json:"success_rate"`
	AvgLatencyMs   float64 `json:"avg_latency_ms"`
}

// Descriptor describes a registered adapter.
type Descriptor struct {
	Name               string        `json:"name"`
	Version            string        `json:"version"`
	SupportedDataTypes []DataType    `json:"supported_data_types"`
	Stats              StatsSnapshot `json:"stats"`
}

// HealthStatus is the on-demand health view of one adapter. It is
// computed per call, never persisted.
type HealthStatus struct {
	Healthy          bool    `json:"healthy"`
	ResponseTimeMs   int64   `json:"response_time_ms"`
	ErrorRate        float64 `json:"error_rate"`
	UptimePercentage float64 `json:"uptime_percentage"`
	LastError        string  `json:"last_error,omitempty"`
}
