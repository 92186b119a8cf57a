package mqttcodec

import (
	"maps"
	"math"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryMetrics is an in-memory implementation of Metrics. It is safe for
// concurrent use and is meant for tests and simple diagnostics.
type MemoryMetrics struct {
	mu         sync.RWMutex
	counters   map[string]*memoryCounter
	gauges     map[string]*memoryGauge
	histograms map[string]*memoryHistogram
}

// NewMemoryMetrics creates a new in-memory metrics instance.
func NewMemoryMetrics() *MemoryMetrics {
	return &MemoryMetrics{
		counters:   make(map[string]*memoryCounter),
		gauges:     make(map[string]*memoryGauge),
		histograms: make(map[string]*memoryHistogram),
	}
}

// labelsKey builds a lookup key that does not depend on map iteration order.
func labelsKey(name string, labels MetricLabels) string {
	if len(labels) == 0 {
		return name
	}

	var b strings.Builder
	b.WriteString(name)
	for _, k := range slices.Sorted(maps.Keys(labels)) {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(labels[k])
	}

	return b.String()
}

func getOrCreate[T any](mu *sync.RWMutex, m map[string]*T, key string, create func() *T) *T {
	mu.RLock()
	v, ok := m[key]
	mu.RUnlock()
	if ok {
		return v
	}

	mu.Lock()
	defer mu.Unlock()

	if v, ok := m[key]; ok {
		return v
	}
	v = create()
	m[key] = v

	return v
}

// Counter returns a counter metric.
func (m *MemoryMetrics) Counter(name string, labels MetricLabels) Counter {
	return getOrCreate(&m.mu, m.counters, labelsKey(name, labels), func() *memoryCounter {
		return &memoryCounter{name: name, labels: maps.Clone(labels)}
	})
}

// Gauge returns a gauge metric.
func (m *MemoryMetrics) Gauge(name string, labels MetricLabels) Gauge {
	return getOrCreate(&m.mu, m.gauges, labelsKey(name, labels), func() *memoryGauge {
		return &memoryGauge{name: name, labels: maps.Clone(labels)}
	})
}

// Histogram returns a histogram metric.
func (m *MemoryMetrics) Histogram(name string, labels MetricLabels) Histogram {
	return getOrCreate(&m.mu, m.histograms, labelsKey(name, labels), func() *memoryHistogram {
		return &memoryHistogram{name: name, labels: maps.Clone(labels)}
	})
}

// CounterValue returns the value of a counter, or 0 if it was never created.
func (m *MemoryMetrics) CounterValue(name string, labels MetricLabels) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if c, ok := m.counters[labelsKey(name, labels)]; ok {
		return c.Value()
	}
	return 0
}

// GetHistogram returns a histogram without creating it, or nil.
func (m *MemoryMetrics) GetHistogram(name string, labels MetricLabels) Histogram {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if h, ok := m.histograms[labelsKey(name, labels)]; ok {
		return h
	}
	return nil
}

// Reset drops every recorded metric.
func (m *MemoryMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.counters)
	clear(m.gauges)
	clear(m.histograms)
}

type memoryCounter struct {
	name   string
	labels MetricLabels
	value  atomicFloat
}

func (c *memoryCounter) Inc()              { c.value.add(1) }
func (c *memoryCounter) Add(delta float64) { c.value.add(delta) }
func (c *memoryCounter) Value() float64    { return c.value.load() }

type memoryGauge struct {
	name   string
	labels MetricLabels
	value  atomicFloat
}

func (g *memoryGauge) Set(value float64) { g.value.store(value) }
func (g *memoryGauge) Inc()              { g.value.add(1) }
func (g *memoryGauge) Dec()              { g.value.add(-1) }
func (g *memoryGauge) Add(delta float64) { g.value.add(delta) }
func (g *memoryGauge) Sub(delta float64) { g.value.add(-delta) }
func (g *memoryGauge) Value() float64    { return g.value.load() }

type memoryHistogram struct {
	name   string
	labels MetricLabels
	count  atomic.Uint64
	sum    atomicFloat
}

func (h *memoryHistogram) Observe(value float64) {
	h.count.Add(1)
	h.sum.add(value)
}

func (h *memoryHistogram) ObserveDuration(d time.Duration) {
	h.Observe(d.Seconds())
}

func (h *memoryHistogram) Count() uint64 { return h.count.Load() }
func (h *memoryHistogram) Sum() float64  { return h.sum.load() }

// atomicFloat is a float64 stored as its IEEE 754 bits.
type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) load() float64 {
	return math.Float64frombits(f.bits.Load())
}

func (f *atomicFloat) store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

func (f *atomicFloat) add(delta float64) {
	for {
		old := f.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if f.bits.CompareAndSwap(old, next) {
			return
		}
	}
}
