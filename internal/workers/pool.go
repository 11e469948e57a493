// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gammazero/workerpool"

	"github.com/mailmahee/nifty/internal/logger"
	"github.com/mailmahee/nifty/internal/metrics"
)

// Stats is a point-in-time view of a pool.
type Stats struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Running  int    `json:"running"`
	Queued   int    `json:"queued"`
	Stopped  bool   `json:"stopped"`
}

// Pool is a fixed-size goroutine pool.
type Pool struct {
	name string
	size int
	wp   *workerpool.WorkerPool

	mu       sync.RWMutex
	stopped  bool
	drained  chan struct{}
	shutdown sync.Once

	running atomic.Int64
	queued  atomic.Int64

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewPool creates a pool running at most size tasks concurrently.
func NewPool(name string, size int, m *metrics.Metrics, logger *logger.Logger) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %s pool got %d", ErrInvalidSize, name, size)
	}

	return &Pool{
		name:    name,
		size:    size,
		wp:      workerpool.New(size),
		drained: make(chan struct{}),
		metrics: m,
		logger:  logger.WithComponent(name + "-pool"),
	}, nil
}

func (p *Pool) Name() string {
	return p.name
}

// Capacity returns the maximum number of concurrently running tasks.
func (p *Pool) Capacity() int {
	return p.size
}

// Submit implements [Executor].
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return fmt.Errorf("%w: %s", ErrPoolStopped, p.name)
	}

	p.queued.Add(1)
	p.record()
	p.wp.Submit(p.wrap(task))

	return nil
}

// SubmitWait implements [Executor].
func (p *Pool) SubmitWait(ctx context.Context, task func()) error {
	const (
		pending int32 = iota
		running
		abandoned
	)

	var state atomic.Int32
	done := make(chan struct{})

	err := p.Submit(func() {
		if !state.CompareAndSwap(pending, running) {
			return
		}
		defer close(done)
		task()
	})
	if err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		if state.CompareAndSwap(pending, abandoned) {
			return ctx.Err()
		}
		// already running, the caller must not outlive it
		<-done
		return nil
	}
}

func (p *Pool) wrap(task func()) func() {
	return func() {
		p.queued.Add(-1)
		p.running.Add(1)
		p.record()

		defer func() {
			if r := recover(); r != nil {
				const size = 64 << 10
				buf := make([]byte, size)
				buf = buf[:runtime.Stack(buf, false)]
				p.logger.Error().Interface("panic", r).Str("stack", string(buf)).Msg("task panicked")
			}
			p.running.Add(-1)
			p.record()
		}()

		task()
	}
}

func (p *Pool) record() {
	p.metrics.SetPoolTasks(p.name, int(p.running.Load()), int(p.queued.Load()))
}

// Stats returns the current pool statistics.
func (p *Pool) Stats() Stats {
	p.mu.RLock()
	stopped := p.stopped
	p.mu.RUnlock()

	return Stats{
		Name:     p.name,
		Capacity: p.size,
		Running:  int(p.running.Load()),
		Queued:   int(p.queued.Load()),
		Stopped:  stopped,
	}
}

func (p *Pool) Stopped() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stopped
}

// Shutdown rejects new tasks, lets queued and running tasks finish and waits
// for that until ctx is done. It is safe to call more than once; later calls
// wait for the same drain.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.shutdown.Do(func() {
		p.mu.Lock()
		p.stopped = true
		p.mu.Unlock()

		p.logger.Debug().Int64("running", p.running.Load()).Int64("queued", p.queued.Load()).Msg("draining pool")

		go func() {
			p.wp.StopWait()
			close(p.drained)
		}()
	})

	select {
	case <-p.drained:
		p.logger.Debug().Msg("pool drained")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %s: %w", ErrDrainTimeout, p.name, ctx.Err())
	}
}
