// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mailmahee/nifty/internal/logger"
	"github.com/mailmahee/nifty/internal/netio"
)

// lifecycle enforces start-once / stop-once for the concrete transports.
// The zero value is ready to use.
type lifecycle struct {
	mu      sync.Mutex
	started bool
	running bool
	stopped bool
}

// start runs fn once. A failed fn leaves the transport not running, so a
// later stop is a no-op; fn must clean up after itself.
func (l *lifecycle) start(factory *netio.ServerChannelFactory, fn func() error) error {
	if factory == nil {
		return ErrNoFactory
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return ErrAlreadyStarted
	}
	l.started = true

	if err := fn(); err != nil {
		return err
	}
	l.running = true

	return nil
}

// stop runs fn once, and only after a successful start.
func (l *lifecycle) stop(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running || l.stopped {
		return nil
	}
	l.stopped = true

	return fn()
}

func bindOptions(def Definition) netio.BindOptions {
	return netio.BindOptions{MaxConnections: def.MaxConnections}
}

// interrupted wraps a context error from a stop so the caller can classify it.
func interrupted(name string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %w", ErrInterrupted, name, err)
	}
	return err
}

func transportLogger(l *logger.Logger, component string, def Definition) *logger.Logger {
	return &logger.Logger{Logger: l.WithComponent(component).With().Str("transport", def.Name).Logger()}
}
