package systems

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/sketchbook/engine/core"
)

/** @brief Describes a job to be run by the job system. */
type JobTask struct {
	/** @brief A short label used in logs. */
	Name string
	/** @brief Invoked on a worker goroutine. Required. */
	OnStart func() error
	/** @brief Invoked when OnStart returns nil. Optional. */
	OnComplete func()
	/** @brief Invoked when OnStart returns an error. Optional. */
	OnFailure func(err error)
	/** @brief Invoked after OnComplete/OnFailure, whatever the outcome. Optional. */
	OnCompletionCallback func()
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup

	mu      sync.RWMutex
	closed  bool
	pending sync.WaitGroup
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")
var ErrJobSystemClosed = errors.New("job system is shut down")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	jq := make(chan JobTask, channelSize)
	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   jq,
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

func (js *JobSystem) run(job JobTask) {
	// Call the completion callback if set, even when the job panics.
	defer func() {
		if job.OnCompletionCallback != nil {
			job.OnCompletionCallback()
		}
	}()

	err := runStart(job)
	if err != nil {
		core.LogDebug("job '%s' failed: %s", job.Name, err.Error())
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
		return
	}
	if job.OnComplete != nil {
		job.OnComplete()
	}
}

func runStart(job JobTask) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job '%s' panicked: %v", job.Name, r)
		}
	}()
	if job.OnStart == nil {
		return fmt.Errorf("job '%s' has no entry point", job.Name)
	}
	return job.OnStart()
}

/**
 * @brief Shuts the job system down. Jobs already accepted are drained first.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return nil
	}
	js.closed = true
	js.mu.Unlock()

	js.pending.Wait()
	close(js.jobQueue)
	js.wg.Wait()
	return nil
}

// AddWorkNonBlocking queues the job from a separate goroutine and returns
// immediately. It fails only when the job system is shut down.
func (js *JobSystem) AddWorkNonBlocking(jt JobTask) error {
	js.mu.RLock()
	defer js.mu.RUnlock()
	if js.closed {
		return ErrJobSystemClosed
	}
	js.pending.Add(1)
	go func() {
		defer js.pending.Done()
		js.jobQueue <- jt
	}()
	return nil
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while the queue is full.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	js.mu.RLock()
	if js.closed {
		js.mu.RUnlock()
		return ErrJobSystemClosed
	}
	js.pending.Add(1)
	js.mu.RUnlock()

	defer js.pending.Done()
	js.jobQueue <- jt
	return nil
}
