package core

import "sync/atomic"

// Metrics accumulates loader counters across every batch of a coordinator.
type Metrics struct {
	batches      atomic.Uint64
	itemsLoaded  atomic.Uint64
	itemsFailed  atomic.Uint64
	itemsSkipped atomic.Uint64
	bytesFetched atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Batches      uint64
	ItemsLoaded  uint64
	ItemsFailed  uint64
	ItemsSkipped uint64
	BytesFetched uint64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) BatchStarted() {
	m.batches.Add(1)
}

func (m *Metrics) ItemLoaded(bytes int) {
	m.itemsLoaded.Add(1)
	if bytes > 0 {
		m.bytesFetched.Add(uint64(bytes))
	}
}

func (m *Metrics) ItemFailed() {
	m.itemsFailed.Add(1)
}

func (m *Metrics) ItemSkipped() {
	m.itemsSkipped.Add(1)
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Batches:      m.batches.Load(),
		ItemsLoaded:  m.itemsLoaded.Load(),
		ItemsFailed:  m.itemsFailed.Load(),
		ItemsSkipped: m.itemsSkipped.Load(),
		BytesFetched: m.bytesFetched.Load(),
	}
}
