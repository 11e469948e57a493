// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package timer schedules one-shot timeouts shared by all transports
// (idle-connection reaping, read deadlines).
//
// Time is read through github.com/benbjohnson/clock so tests can drive the
// timer with clock.NewMock.
package timer

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/mailmahee/nifty/internal/metrics"
)

var ErrTimerStopped = errors.New("timer is stopped")

const (
	statePending int32 = iota
	stateExpired
	stateCancelled
)

// Timeout is a task scheduled on a [Timer].
type Timeout struct {
	id    uint64
	owner *Timer
	task  func()
	timer *clock.Timer
	state atomic.Int32
}

// Cancel prevents the task from running. It reports false if the timeout has
// already expired or been cancelled.
func (t *Timeout) Cancel() bool {
	if !t.state.CompareAndSwap(statePending, stateCancelled) {
		return false
	}
	t.timer.Stop()
	t.owner.forget(t.id)
	return true
}

func (t *Timeout) Expired() bool {
	return t.state.Load() == stateExpired
}

func (t *Timeout) Cancelled() bool {
	return t.state.Load() == stateCancelled
}

// Timer owns every pending timeout so that they can be cancelled together.
type Timer struct {
	clock clock.Clock

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]*Timeout
	stopped bool

	metrics *metrics.Metrics
}

// New creates a timer reading time from c. A nil c uses the wall clock.
func New(c clock.Clock, m *metrics.Metrics) *Timer {
	if c == nil {
		c = clock.New()
	}
	return &Timer{
		clock:   c,
		pending: make(map[uint64]*Timeout),
		metrics: m,
	}
}

// Clock returns the clock the timer reads time from.
func (t *Timer) Clock() clock.Clock {
	return t.clock
}

// NewTimeout schedules task to run once after d.
func (t *Timer) NewTimeout(d time.Duration, task func()) (*Timeout, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return nil, ErrTimerStopped
	}

	t.nextID++
	to := &Timeout{id: t.nextID, owner: t, task: task}
	t.pending[to.id] = to
	to.timer = t.clock.AfterFunc(d, func() { t.expire(to) })
	t.metrics.SetTimeoutsPending(len(t.pending))

	return to, nil
}

func (t *Timer) expire(to *Timeout) {
	if !to.state.CompareAndSwap(statePending, stateExpired) {
		return
	}
	t.forget(to.id)
	to.task()
}

func (t *Timer) forget(id uint64) {
	t.mu.Lock()
	delete(t.pending, id)
	t.metrics.SetTimeoutsPending(len(t.pending))
	t.mu.Unlock()
}

// Pending returns the number of timeouts that have neither expired nor been
// cancelled.
func (t *Timer) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// Stop cancels every pending timeout and returns them. New timeouts are
// refused afterwards. Calling Stop again returns nil.
func (t *Timer) Stop() []*Timeout {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return nil
	}
	t.stopped = true
	pending := make([]*Timeout, 0, len(t.pending))
	for _, to := range t.pending {
		pending = append(pending, to)
	}
	t.mu.Unlock()

	unprocessed := pending[:0]
	for _, to := range pending {
		if to.Cancel() {
			unprocessed = append(unprocessed, to)
		}
	}

	return unprocessed
}
