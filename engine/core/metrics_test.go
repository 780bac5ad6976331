package core

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsConcurrentUpdates(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.ItemLoaded(10)
			m.ItemFailed()
		}()
	}
	wg.Wait()
	m.BatchStarted()
	m.ItemSkipped()

	s := m.Snapshot()
	assert.Equal(t, uint64(1), s.Batches)
	assert.Equal(t, uint64(50), s.ItemsLoaded)
	assert.Equal(t, uint64(50), s.ItemsFailed)
	assert.Equal(t, uint64(1), s.ItemsSkipped)
	assert.Equal(t, uint64(500), s.BytesFetched)
}

func TestClockMeasuresElapsed(t *testing.T) {
	c := NewClock()
	c.Update()
	assert.Zero(t, c.Elapsed())

	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Stop()
	elapsed := c.Elapsed()
	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)

	// stopped clocks keep their value
	c.Update()
	assert.Equal(t, elapsed, c.Elapsed())
}

func TestNewIdentifierIsUnique(t *testing.T) {
	a, b := NewIdentifier(), NewIdentifier()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
