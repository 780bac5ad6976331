package assets

import (
	"context"
	"errors"
	"sync"

	"github.com/spaghettifunk/sketchbook/engine/core"
)

// Batch tracks one Register call. Counters are private to the batch, so
// overlapping batches never disturb each other's progress.
type Batch struct {
	id          string
	total       int
	descriptors []Descriptor

	mu       sync.Mutex
	loaded   int
	failures []Failure

	// notifyMu serializes increment, compare and notify across items.
	notifyMu sync.Mutex
	clock    *core.Clock
	done     chan struct{}

	onProgress func(Progress)
	onComplete func(Completion)
}

func newBatch(descriptors []Descriptor, onProgress func(Progress), onComplete func(Completion)) *Batch {
	b := &Batch{
		id:          core.NewIdentifier(),
		total:       len(descriptors),
		descriptors: append([]Descriptor(nil), descriptors...),
		clock:       core.NewClock(),
		done:        make(chan struct{}),
		onProgress:  onProgress,
		onComplete:  onComplete,
	}
	b.clock.Start()
	return b
}

func (b *Batch) ID() string {
	return b.id
}

func (b *Batch) Total() int {
	return b.total
}

// Descriptors returns a copy of the descriptors the batch was created with.
func (b *Batch) Descriptors() []Descriptor {
	return append([]Descriptor(nil), b.descriptors...)
}

func (b *Batch) Loaded() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// Progress returns Loaded/Total. An empty batch reports 0.
func (b *Batch) Progress() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fraction(b.loaded, b.total)
}

// Done is closed after the completion observers have run.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the batch completes or ctx is done. It returns the batch
// error when the batch completed.
func (b *Batch) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return b.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Failures returns the items that finished without a result so far.
func (b *Batch) Failures() []Failure {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Failure(nil), b.failures...)
}

// Err joins the item failures. Nil when none failed.
func (b *Batch) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.failures) == 0 {
		return nil
	}
	errs := make([]error, len(b.failures))
	for i, f := range b.failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

func (b *Batch) addFailure(f Failure) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = append(b.failures, f)
}

// itemDone counts one finished item and notifies observers.
func (b *Batch) itemDone() {
	b.notifyMu.Lock()
	defer b.notifyMu.Unlock()

	b.mu.Lock()
	if b.loaded >= b.total {
		b.mu.Unlock()
		core.LogError("batch %s: completion past total %d ignored", b.id, b.total)
		return
	}
	b.loaded++
	p := Progress{
		BatchID:  b.id,
		Loaded:   b.loaded,
		Total:    b.total,
		Fraction: fraction(b.loaded, b.total),
	}
	b.mu.Unlock()

	if b.onProgress != nil {
		b.onProgress(p)
	}
	if p.Loaded == p.Total {
		b.finish()
	}
}

// finish runs the completion observers and closes Done. Callers hold notifyMu
// or own the batch exclusively.
func (b *Batch) finish() {
	b.clock.Stop()
	c := Completion{
		BatchID: b.id,
		Total:   b.total,
		Elapsed: b.clock.Elapsed(),
		Err:     b.Err(),
	}
	c.Failed = len(b.Failures())
	if b.onComplete != nil {
		b.onComplete(c)
	}
	close(b.done)
}

func fraction(loaded, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(loaded) / float64(total)
}
