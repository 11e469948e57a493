// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/mailmahee/nifty/internal/transport"
)

// Outcome is the result of stopping a single transport.
type Outcome int

const (
	// OutcomeStopped means the transport stopped cleanly.
	OutcomeStopped Outcome = iota
	// OutcomeFailed means the transport returned an error while stopping.
	OutcomeFailed
	// OutcomeDisrupted means the stop was cut short before the transport
	// released everything.
	OutcomeDisrupted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStopped:
		return "stopped"
	case OutcomeFailed:
		return "failed"
	case OutcomeDisrupted:
		return "disrupted"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// classify maps the error of a transport stop to its outcome.
func classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeStopped
	case errors.Is(err, transport.ErrInterrupted),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return OutcomeDisrupted
	default:
		return OutcomeFailed
	}
}

// TransportOutcome records how one transport stopped.
type TransportOutcome struct {
	Name    string
	Outcome Outcome
	Err     error
}

// StopReport is the aggregate result of [Bootstrap.Stop].
type StopReport struct {
	// Outcomes holds one entry per transport in construction order.
	Outcomes []TransportOutcome

	// Teardown is the error from releasing the shared resources, if any.
	Teardown error

	// AlreadyStopped is set when Stop was called on a stopped coordinator
	// and did nothing.
	AlreadyStopped bool
}

// Interrupted reports whether any transport stop was disrupted.
func (r StopReport) Interrupted() bool {
	for _, o := range r.Outcomes {
		if o.Outcome == OutcomeDisrupted {
			return true
		}
	}
	return false
}

// Failed returns the names of transports whose stop did not end cleanly.
func (r StopReport) Failed() []string {
	var names []string
	for _, o := range r.Outcomes {
		if o.Outcome != OutcomeStopped {
			names = append(names, o.Name)
		}
	}
	return names
}

// Err aggregates every transport and teardown error. It wraps
// ErrInterrupted when any stop was disrupted.
func (r StopReport) Err() error {
	var err error
	for _, o := range r.Outcomes {
		if o.Outcome == OutcomeStopped {
			continue
		}
		err = multierr.Append(err, fmt.Errorf("transport %s %s: %w", o.Name, o.Outcome, o.Err))
	}
	if r.Teardown != nil {
		err = multierr.Append(err, fmt.Errorf("teardown: %w", r.Teardown))
	}

	if r.Interrupted() && !errors.Is(err, ErrInterrupted) {
		return fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	return err
}

// StartError is returned by [Bootstrap.Start] when a transport fails to
// start. Transports started before it have been stopped and the shared
// resources released by the time it is returned.
type StartError struct {
	// Index is the position of the failing transport in construction order.
	Index int
	Name  string
	Err   error

	// Rollback aggregates errors from stopping the transports started before
	// the failing one and from releasing the shared resources.
	Rollback error
}

func (e *StartError) Error() string {
	msg := fmt.Sprintf("failed to start transport %d (%s): %v", e.Index, e.Name, e.Err)
	if e.Rollback != nil {
		msg += fmt.Sprintf("; rollback: %v", e.Rollback)
	}
	return msg
}

func (e *StartError) Unwrap() []error {
	if e.Rollback == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Rollback}
}
