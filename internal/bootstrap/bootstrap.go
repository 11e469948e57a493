// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bootstrap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"

	"github.com/mailmahee/nifty/internal/channel"
	"github.com/mailmahee/nifty/internal/config"
	"github.com/mailmahee/nifty/internal/logger"
	"github.com/mailmahee/nifty/internal/metrics"
	"github.com/mailmahee/nifty/internal/netio"
	"github.com/mailmahee/nifty/internal/transport"
)

// State is the lifecycle state of a [Bootstrap].
type State int

const (
	StateConstructed State = iota
	StateStarted
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateStarted:
		return "started"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Option configures a [Bootstrap].
type Option func(*Bootstrap)

// WithClock sets the clock driving the shared timer.
func WithClock(c clock.Clock) Option {
	return func(b *Bootstrap) {
		b.clock = c
	}
}

// WithMetrics records lifecycle, pool and connection metrics into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Bootstrap) {
		b.metrics = m
	}
}

// Bootstrap starts and stops a fixed set of transports sharing one set of
// resources. Its methods are safe for concurrent use; lifecycle calls are
// serialized.
type Bootstrap struct {
	mu sync.Mutex

	state      State
	names      []string
	transports []transport.Transport
	resources  *resources

	cfg     config.Bootstrap
	group   *channel.Group
	clock   clock.Clock
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// New builds one transport per definition, in order, through builder. It
// fails when a definition cannot be built or two definitions share a name;
// no transport is kept in that case. group is the channel registry handed to
// the connection factory; nil creates a private one.
func New(
	defs []transport.Definition,
	builder transport.Builder,
	cfg config.Bootstrap,
	group *channel.Group,
	logger *logger.Logger,
	opts ...Option,
) (*Bootstrap, error) {
	b := &Bootstrap{
		state:  StateConstructed,
		cfg:    cfg,
		group:  group,
		clock:  clock.New(),
		logger: logger.WithComponent("bootstrap"),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.group == nil {
		b.group = channel.NewGroup("nifty")
	}

	// every transport holds one boss thread for as long as it accepts
	if cfg.BossThreadCount > 0 && cfg.BossThreadCount < len(defs) {
		return nil, fmt.Errorf("%w: %w: %d boss threads for %d transports",
			ErrConstruction, ErrBossPoolTooSmall, cfg.BossThreadCount, len(defs))
	}

	seen := make(map[string]struct{}, len(defs))
	for i, def := range defs {
		if _, ok := seen[def.Name]; ok {
			return nil, fmt.Errorf("%w: definition %d: %w: %q", ErrConstruction, i, ErrDuplicateTransport, def.Name)
		}
		seen[def.Name] = struct{}{}

		t, err := builder.Build(def)
		if err != nil {
			return nil, fmt.Errorf("%w: definition %d (%s): %w", ErrConstruction, i, def.Name, err)
		}

		b.names = append(b.names, def.Name)
		b.transports = append(b.transports, t)
	}

	b.metrics.SetLifecycleState(int(StateConstructed))
	b.logger.Info().Strs("transports", b.names).Msg("transports constructed")

	return b, nil
}

// State returns the current lifecycle state.
func (b *Bootstrap) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Transports returns the transport names in construction order.
func (b *Bootstrap) Transports() []string {
	return append([]string(nil), b.names...)
}

// Factory returns the shared connection factory, or nil unless started.
func (b *Bootstrap) Factory() *netio.ServerChannelFactory {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.resources == nil {
		return nil
	}
	return b.resources.factory
}

// Start allocates the shared resources and starts every transport in
// construction order with the same connection factory. ctx is checked before
// each transport start.
//
// When a transport fails to start, the transports started before it are
// stopped, the shared resources are released and a *StartError is returned.
// The coordinator is stopped afterwards either way it fails.
func (b *Bootstrap) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateConstructed {
		return fmt.Errorf("%w: cannot start from %s", ErrInvalidState, b.state)
	}

	b.logger.Info().Int("transports", len(b.transports)).Msg("starting transports")

	res, err := allocateResources(b.cfg, len(b.transports), b.group, b.clock, b.metrics, b.logger)
	if err != nil {
		b.setState(StateStopped)
		return err
	}

	for i, t := range b.transports {
		err := ctx.Err()
		if err == nil {
			err = t.Start(res.factory)
		}
		if err != nil {
			b.logger.Error().Err(err).Str("transport", b.names[i]).Int("index", i).Msg("transport failed to start, rolling back")

			startErr := &StartError{
				Index:    i,
				Name:     b.names[i],
				Err:      err,
				Rollback: b.rollback(ctx, i, res),
			}
			b.metrics.SetTransportsRunning(0)
			b.setState(StateStopped)

			return startErr
		}

		b.metrics.SetTransportsRunning(i + 1)
		b.logger.Info().Str("transport", b.names[i]).Msg("transport started")
	}

	b.resources = res
	b.setState(StateStarted)
	b.logger.Info().Msg("all transports started")

	return nil
}

// rollback stops the first n transports in construction order and releases
// res. It ignores cancellation of ctx and is bounded by the shutdown timeout.
func (b *Bootstrap) rollback(ctx context.Context, n int, res *resources) error {
	tctx, cancel := b.teardownContext(ctx)
	defer cancel()

	var err error
	for i := range n {
		if serr := b.transports[i].Stop(tctx); serr != nil {
			err = multierr.Append(err, fmt.Errorf("stop transport %s: %w", b.names[i], serr))
		}
	}
	if rerr := res.release(tctx); rerr != nil {
		err = multierr.Append(err, rerr)
	}

	return err
}

// Stop stops every transport in construction order, then releases the shared
// resources. Each transport receives ctx and bounds its own stop by it; a
// failed or disrupted stop is recorded and the remaining transports are
// still stopped. Releasing the resources ignores cancellation of ctx and is
// bounded by the shutdown timeout instead.
//
// The returned error aggregates the report and wraps ErrInterrupted when any
// transport stop was disrupted. Stop on a stopped coordinator does nothing
// and reports AlreadyStopped; Stop before Start returns ErrNotStarted.
func (b *Bootstrap) Stop(ctx context.Context) (StopReport, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateConstructed:
		return StopReport{}, ErrNotStarted
	case StateStopped:
		b.logger.Debug().Msg("already stopped")
		return StopReport{AlreadyStopped: true}, nil
	}

	b.logger.Info().Int("transports", len(b.transports)).Msg("stopping transports")

	report := StopReport{Outcomes: make([]TransportOutcome, 0, len(b.transports))}
	for i, t := range b.transports {
		err := t.Stop(ctx)
		outcome := classify(err)

		report.Outcomes = append(report.Outcomes, TransportOutcome{Name: b.names[i], Outcome: outcome, Err: err})
		b.metrics.RecordTransportStop(b.names[i], outcome.String())
		b.metrics.SetTransportsRunning(len(b.transports) - i - 1)

		switch outcome {
		case OutcomeStopped:
			b.logger.Info().Str("transport", b.names[i]).Msg("transport stopped")
		case OutcomeDisrupted:
			b.logger.Warn().Err(err).Str("transport", b.names[i]).Msg("transport stop interrupted")
		default:
			b.logger.Error().Err(err).Str("transport", b.names[i]).Msg("transport failed to stop")
		}
	}

	tctx, cancel := b.teardownContext(ctx)
	report.Teardown = b.resources.release(tctx)
	cancel()

	b.resources = nil
	b.setState(StateStopped)

	err := report.Err()
	if err != nil {
		b.logger.Warn().Err(err).Msg("stopped with errors")
	} else {
		b.logger.Info().Msg("all transports stopped")
	}

	return report, err
}

// teardownContext detaches from the caller's cancellation. The result ends
// at the earlier of the caller's deadline and the configured shutdown
// timeout; a caller deadline already passed is ignored.
func (b *Bootstrap) teardownContext(ctx context.Context) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	ctx = context.WithoutCancel(ctx)

	now := time.Now()
	if b.cfg.ShutdownTimeout > 0 {
		limit := now.Add(b.cfg.ShutdownTimeout)
		if hasDeadline && deadline.After(now) && deadline.Before(limit) {
			limit = deadline
		}
		return context.WithDeadline(ctx, limit)
	}
	if hasDeadline && deadline.After(now) {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithCancel(ctx)
}

func (b *Bootstrap) setState(s State) {
	b.state = s
	b.metrics.SetLifecycleState(int(s))
}
