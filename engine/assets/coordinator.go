package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/sketchbook/engine/assets/loaders"
	"github.com/spaghettifunk/sketchbook/engine/containers"
	"github.com/spaghettifunk/sketchbook/engine/core"
	"github.com/spaghettifunk/sketchbook/engine/systems"
)

// Stats summarizes the coordinator's lifetime activity.
type Stats struct {
	core.MetricsSnapshot
	Stored int
}

// Coordinator preloads batches of assets concurrently and reports progress.
type Coordinator struct {
	fetcher     loaders.Fetcher
	decoder     loaders.ImageDecoder
	jobSystem   *systems.JobSystem
	loaders     map[Kind]Loader
	store       *Store
	metrics     *core.Metrics
	itemTimeout time.Duration
	baseDir     string

	progress   *core.Dispatcher[Progress]
	completion *core.Dispatcher[Completion]

	mu       sync.Mutex
	current  *Batch
	registry map[string]Descriptor
	failures *containers.RingQueue[Failure]
	watcher  *watcher
	isClosed bool
}

type Option func(*Coordinator)

// WithFetcher replaces the default file/HTTP fetcher.
func WithFetcher(f loaders.Fetcher) Option {
	return func(c *Coordinator) {
		c.fetcher = f
	}
}

// WithDecoder replaces the default image decoder.
func WithDecoder(d loaders.ImageDecoder) Option {
	return func(c *Coordinator) {
		c.decoder = d
	}
}

func NewCoordinator(cfg core.PreloaderConfig, opts ...Option) (*Coordinator, error) {
	full := core.Config{Preloader: cfg}
	full.ApplyDefaults()
	cfg = full.Preloader

	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	js, err := systems.NewJobSystem(cfg.Workers, cfg.QueueSize)
	if err != nil {
		return nil, err
	}

	listenerIDs := new(atomic.Uint64)
	c := &Coordinator{
		jobSystem:   js,
		loaders:     make(map[Kind]Loader),
		store:       NewStore(),
		metrics:     core.NewMetrics(),
		itemTimeout: timeout,
		baseDir:     cfg.BaseDir,
		progress:    core.NewDispatcherWithIDs[Progress](listenerIDs),
		completion:  core.NewDispatcherWithIDs[Completion](listenerIDs),
		registry:    make(map[string]Descriptor),
		failures:    containers.NewRingQueue[Failure](cfg.FailureHistory),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fetcher == nil {
		c.fetcher = loaders.NewDefaultFetcher(cfg.BaseDir)
	}
	if c.decoder == nil {
		c.decoder = loaders.DefaultDecoder{}
	}

	// Register loaders
	c.registerLoader(KindImage, &ImageLoader{Fetcher: c.fetcher, Decoder: c.decoder})
	c.registerLoader(KindJSON, &JSONLoader{Fetcher: c.fetcher})

	core.LogDebug("coordinator ready: workers=%d queue=%d timeout=%s base='%s'", cfg.Workers, cfg.QueueSize, timeout, cfg.BaseDir)
	return c, nil
}

// Register loaders for each asset kind
func (c *Coordinator) registerLoader(kind Kind, loader Loader) {
	c.loaders[kind] = loader
}

// OnProgress adds an observer called once per finished item of any batch.
func (c *Coordinator) OnProgress(fn func(Progress)) core.ListenerID {
	return c.progress.Register(fn)
}

// OnComplete adds an observer called once per batch when every item finished.
func (c *Coordinator) OnComplete(fn func(Completion)) core.ListenerID {
	return c.completion.Register(fn)
}

// RemoveListener unregisters a progress or completion observer. Ids are unique
// across both kinds.
func (c *Coordinator) RemoveListener(id core.ListenerID) bool {
	if c.progress.Unregister(id) {
		return true
	}
	return c.completion.Unregister(id)
}

// Register starts a new batch and returns immediately. Every descriptor is
// classified and loaded on the job system; unsupported kinds complete at once
// without storing anything. Observers must not block on the batch they are
// being notified about.
func (c *Coordinator) Register(ctx context.Context, descriptors []Descriptor) (*Batch, error) {
	if err := validateDescriptors(descriptors); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.isClosed {
		c.mu.Unlock()
		return nil, core.ErrClosed
	}
	b := newBatch(descriptors, c.progress.Fire, c.completion.Fire)
	c.current = b
	for _, d := range descriptors {
		c.registry[d.ID] = d
	}
	c.mu.Unlock()

	c.metrics.BatchStarted()
	core.LogDebug("batch %s registered with %d assets", b.id, b.total)

	if b.total == 0 {
		b.finish()
		return b, nil
	}

	for _, d := range descriptors {
		kind := Classify(d.Src)
		loader, ok := c.loaders[kind]
		if !ok {
			core.LogDebug("batch %s: skipping '%s': %s", b.id, d.Src, core.ErrUnsupportedKind)
			c.metrics.ItemSkipped()
			b.itemDone()
			continue
		}
		c.dispatch(ctx, b, d, kind, loader)
	}
	return b, nil
}

func (c *Coordinator) dispatch(ctx context.Context, b *Batch, d Descriptor, kind Kind, loader Loader) {
	var asset Asset
	job := systems.JobTask{
		Name: d.ID,
		OnStart: func() error {
			itemCtx, cancel := c.itemContext(ctx)
			defer cancel()
			a, err := loadWithDeadline(itemCtx, loader, d)
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					return fmt.Errorf("%w after %s: %w", core.ErrTimeout, c.itemTimeout, err)
				}
				return err
			}
			asset = a
			return nil
		},
		OnComplete: func() {
			c.store.Put(asset)
			c.metrics.ItemLoaded(asset.Size)
		},
		OnFailure: func(err error) {
			c.fail(b, d, kind, err)
		},
		OnCompletionCallback: b.itemDone,
	}

	if err := c.jobSystem.AddWorkNonBlocking(job); err != nil {
		c.fail(b, d, kind, err)
		b.itemDone()
	}
}

func (c *Coordinator) itemContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.itemTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.itemTimeout)
}

func (c *Coordinator) fail(b *Batch, d Descriptor, kind Kind, err error) {
	f := Failure{
		BatchID: b.id,
		ID:      d.ID,
		Src:     d.Src,
		Kind:    kind,
		Err:     err,
		At:      time.Now(),
	}
	core.LogWarn("batch %s: %s", b.id, f.Error())
	c.metrics.ItemFailed()
	b.addFailure(f)

	c.mu.Lock()
	c.failures.Push(f)
	c.mu.Unlock()
}

func validateDescriptors(descriptors []Descriptor) error {
	seen := make(map[string]struct{}, len(descriptors))
	for _, d := range descriptors {
		if d.ID == "" {
			return fmt.Errorf("%w (src '%s')", core.ErrEmptyID, d.Src)
		}
		if _, ok := seen[d.ID]; ok {
			return fmt.Errorf("%w: '%s'", core.ErrDuplicateID, d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return nil
}

// Result returns the stored asset for id. It is absent until the item loaded,
// and forever for unsupported kinds and failed items.
func (c *Coordinator) Result(id string) (Asset, bool) {
	return c.store.Get(id)
}

// LoadingProgress reports the progress of the most recently registered batch.
func (c *Coordinator) LoadingProgress() float64 {
	c.mu.Lock()
	b := c.current
	c.mu.Unlock()
	if b == nil {
		return 0
	}
	return b.Progress()
}

// CurrentBatch returns the most recently registered batch, or nil.
func (c *Coordinator) CurrentBatch() *Batch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Forget drops the stored result for id.
func (c *Coordinator) Forget(id string) bool {
	return c.store.Delete(id)
}

// Clear drops every stored result.
func (c *Coordinator) Clear() {
	c.store.Clear()
}

// IDs lists the stored asset ids.
func (c *Coordinator) IDs() []string {
	return c.store.IDs()
}

// RecentFailures returns the latest failures, oldest first.
func (c *Coordinator) RecentFailures() []Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures.Items()
}

func (c *Coordinator) Stats() Stats {
	return Stats{
		MetricsSnapshot: c.metrics.Snapshot(),
		Stored:          c.store.Len(),
	}
}

// descriptorsForSource returns every registered descriptor whose Src is src.
func (c *Coordinator) descriptorsForSource(src string) []Descriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Descriptor
	for _, d := range c.registry {
		if d.Src == src {
			out = append(out, d)
		}
	}
	return out
}

// Close stops the watcher and drains the job system. Batches still in flight
// finish before Close returns.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	if c.isClosed {
		c.mu.Unlock()
		return nil
	}
	c.isClosed = true
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	var errs []error
	if w != nil {
		errs = append(errs, w.close())
	}
	errs = append(errs, c.jobSystem.Shutdown())
	c.progress.Clear()
	c.completion.Clear()
	return errors.Join(errs...)
}
