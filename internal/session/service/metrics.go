package service

import (
	"sync/atomic"
	"time"
)

// Metrics tracks save activity counters.
type Metrics struct {
	saves         int64
	saveErrors    int64
	saveSkips     int64
	autosaveTicks int64
	saveLatency   int64 // Total latency in nanoseconds
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot.
func GetMetrics() MetricsSnapshot {
	saves := atomic.LoadInt64(&globalMetrics.saves)
	latency := atomic.LoadInt64(&globalMetrics.saveLatency)

	avgMs := 0.0
	if saves > 0 {
		avgMs = float64(latency) / float64(saves) / 1e6
	}

	return MetricsSnapshot{
		Saves:            saves,
		SaveErrors:       atomic.LoadInt64(&globalMetrics.saveErrors),
		SaveSkips:        atomic.LoadInt64(&globalMetrics.saveSkips),
		AutosaveTicks:    atomic.LoadInt64(&globalMetrics.autosaveTicks),
		AvgSaveLatencyMs: avgMs,
	}
}

// ResetMetrics resets all metrics (useful for testing).
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.saves, 0)
	atomic.StoreInt64(&globalMetrics.saveErrors, 0)
	atomic.StoreInt64(&globalMetrics.saveSkips, 0)
	atomic.StoreInt64(&globalMetrics.autosaveTicks, 0)
	atomic.StoreInt64(&globalMetrics.saveLatency, 0)
}

// MetricsSnapshot is the exported view served on the debug endpoint.
type MetricsSnapshot struct {
	Saves            int64   `json:"saves"`
	SaveErrors       int64   `json:"save_errors"`
	SaveSkips        int64   `json:"save_skips"`
	AutosaveTicks    int64   `json:"autosave_ticks"`
	AvgSaveLatencyMs float64 `json:"avg_save_latency_ms"`
}

func recordSave(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.saves, 1)
	atomic.AddInt64(&globalMetrics.saveLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.saveErrors, 1)
	}
}

func recordSaveSkip() {
	atomic.AddInt64(&globalMetrics.saveSkips, 1)
}

func recordAutosaveTick() {
	atomic.AddInt64(&globalMetrics.autosaveTicks, 1)
}
