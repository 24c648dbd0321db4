package observability

import (
	"maps"
	"slices"
	"strings"
	"sync"
	"time"
)

// Metrics records counters, gauges and durations.
type Metrics interface {
	Counter(name string, value int64, tags ...Tag)
	Gauge(name string, value float64, tags ...Tag)
	Timing(name string, duration time.Duration, tags ...Tag)
}

// Tag represents a key-value pair for metric labeling.
type Tag struct {
	Key   string
	Value string
}

// T creates a new Tag.
func T(key, value string) Tag {
	return Tag{Key: key, Value: value}
}

// TimingStats summarizes the durations recorded under one key.
type TimingStats struct {
	Count int
	Total time.Duration
	Max   time.Duration
}

// Mean returns the average duration, or zero when nothing was recorded.
func (s TimingStats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// InMemoryMetrics keeps metrics for the lifetime of the process. Timings
// are folded into running totals so a long-lived worker stays bounded.
type InMemoryMetrics struct {
	mu       sync.RWMutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string]TimingStats
}

// NewInMemoryMetrics creates a new in-memory metrics collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string]TimingStats),
	}
}

func (m *InMemoryMetrics) Counter(name string, value int64, tags ...Tag) {
	key := formatKey(name, tags)
	m.mu.Lock()
	m.counters[key] += value
	m.mu.Unlock()
}

func (m *InMemoryMetrics) Gauge(name string, value float64, tags ...Tag) {
	key := formatKey(name, tags)
	m.mu.Lock()
	m.gauges[key] = value
	m.mu.Unlock()
}

func (m *InMemoryMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	key := formatKey(name, tags)
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.timings[key]
	s.Count++
	s.Total += duration
	s.Max = max(s.Max, duration)
	m.timings[key] = s
}

// GetCounter returns the current value of a counter.
func (m *InMemoryMetrics) GetCounter(name string, tags ...Tag) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[formatKey(name, tags)]
}

// GetGauge returns the current value of a gauge.
func (m *InMemoryMetrics) GetGauge(name string, tags ...Tag) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gauges[formatKey(name, tags)]
}

// GetTiming returns the summary of a timing.
func (m *InMemoryMetrics) GetTiming(name string, tags ...Tag) TimingStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.timings[formatKey(name, tags)]
}

// Counters returns a copy of every counter keyed by name and tags.
func (m *InMemoryMetrics) Counters() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.counters)
}

// formatKey renders name:k=v:k=v with tags sorted by key, so the order
// tags are passed in does not matter.
func formatKey(name string, tags []Tag) string {
	if len(tags) == 0 {
		return name
	}
	sorted := slices.Clone(tags)
	slices.SortStableFunc(sorted, func(a, b Tag) int { return strings.Compare(a.Key, b.Key) })

	var b strings.Builder
	b.WriteString(name)
	for _, t := range sorted {
		b.WriteString(":" + t.Key + "=" + t.Value)
	}
	return b.String()
}

// Standard metric names used throughout Pulse.
const (
	// CLI and worker operations
	MetricOperationTotal    = "pulse.operation.total"
	MetricOperationDuration = "pulse.operation.duration"
	MetricOperationErrors   = "pulse.operation.errors"

	// Outbox relay
	MetricEventsPublished = "pulse.events.published"
	MetricEventsConsumed  = "pulse.events.consumed"
	MetricOutboxPending   = "pulse.outbox.pending"
	MetricOutboxDead      = "pulse.outbox.dead"
)
