// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package netio

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"sync"

	"go.uber.org/multierr"

	"github.com/mailmahee/nifty/internal/channel"
	"github.com/mailmahee/nifty/internal/logger"
	"github.com/mailmahee/nifty/internal/metrics"
	"github.com/mailmahee/nifty/internal/timer"
	"github.com/mailmahee/nifty/internal/utils"
	"github.com/mailmahee/nifty/internal/workers"
	"github.com/mailmahee/nifty/models"
)

// ServerChannelFactory binds listening sockets on behalf of transports and
// runs their accept loops and connection work on the shared pools.
//
// All methods are safe for concurrent use by multiple transports.
type ServerChannelFactory struct {
	boss   *workers.Pool
	worker *workers.Pool
	timer  *timer.Timer
	group  *channel.Group
	opts   SocketOptions

	ids     *utils.UUIDGenerator
	metrics *metrics.Metrics
	logger  *logger.Logger

	mu      sync.Mutex
	closed  bool
	servers map[*ServerChannel]struct{}
	serving int
}

// NewServerChannelFactory creates a factory bound to the given pools, timer
// and channel registry. The factory owns none of them.
func NewServerChannelFactory(
	boss, worker *workers.Pool,
	tm *timer.Timer,
	group *channel.Group,
	opts SocketOptions,
	m *metrics.Metrics,
	logger *logger.Logger,
) *ServerChannelFactory {
	return &ServerChannelFactory{
		boss:    boss,
		worker:  worker,
		timer:   tm,
		group:   group,
		opts:    opts,
		ids:     utils.NewUUIDGenerator(),
		metrics: m,
		logger:  logger.WithComponent("channel-factory"),
		servers: make(map[*ServerChannel]struct{}),
	}
}

// Bind opens a TCP listener on address and registers it in the channel
// registry. name labels the listener in logs, metrics and status.
func (f *ServerChannelFactory) Bind(ctx context.Context, name, address string, opts BindOptions) (*ServerChannel, error) {
	if f.isClosed() {
		return nil, ErrFactoryClosed
	}

	lc := f.opts.listenConfig()
	ln, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to bind %s listener on %s: %w", name, address, err)
	}

	sc := newServerChannel(f, f.ids.Generate(), name, ln, opts)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		_ = ln.Close()
		return nil, ErrFactoryClosed
	}
	f.servers[sc] = struct{}{}
	f.group.Add(sc)
	f.mu.Unlock()

	f.metrics.SetChannelsOpen(f.group.Size())
	f.logger.Info().Str("listener", name).Str("address", sc.Addr().String()).Msg("server channel bound")

	return sc, nil
}

// Serve runs serve(sc) as the accept loop of sc on the boss pool and returns
// immediately. serve should return nil once sc is closed; any other error is
// logged. sc.Done is closed when serve returns.
func (f *ServerChannelFactory) Serve(sc *ServerChannel, serve func(net.Listener) error) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFactoryClosed
	}
	if sc.serving {
		f.mu.Unlock()
		return ErrAlreadyServing
	}
	if f.serving >= f.boss.Capacity() {
		f.mu.Unlock()
		return fmt.Errorf("%w: %d accept loops already running", ErrBossPoolExhausted, f.serving)
	}
	f.serving++
	sc.serving = true
	f.mu.Unlock()

	err := f.boss.Submit(func() {
		defer func() {
			f.mu.Lock()
			f.serving--
			f.mu.Unlock()
			close(sc.done)
		}()

		f.logger.Debug().Str("listener", sc.name).Msg("accept loop started")
		if err := serve(sc); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, ErrFactoryClosed) {
			f.logger.Error().Err(err).Str("listener", sc.name).Msg("accept loop failed")
			return
		}
		f.logger.Debug().Str("listener", sc.name).Msg("accept loop finished")
	})
	if err != nil {
		f.mu.Lock()
		f.serving--
		sc.serving = false
		f.mu.Unlock()
		return fmt.Errorf("failed to start %s accept loop: %w", sc.name, err)
	}

	return nil
}

// Submit runs task on the worker pool without waiting for it.
func (f *ServerChannelFactory) Submit(task func()) error {
	return f.worker.Submit(task)
}

// SubmitWait runs task on the worker pool and waits for it or for ctx.
func (f *ServerChannelFactory) SubmitWait(ctx context.Context, task func()) error {
	return f.worker.SubmitWait(ctx, task)
}

// Timer returns the shared timer.
func (f *ServerChannelFactory) Timer() *timer.Timer {
	return f.timer
}

// Channels returns the shared channel registry.
func (f *ServerChannelFactory) Channels() *channel.Group {
	return f.group
}

// Status reports listeners, tracked channels, pools and pending timeouts.
func (f *ServerChannelFactory) Status() models.NodeStatus {
	f.mu.Lock()
	listeners := make([]models.ListenerInfo, 0, len(f.servers))
	for sc := range f.servers {
		listeners = append(listeners, models.ListenerInfo{
			Name:        sc.name,
			Address:     sc.Addr().String(),
			Connections: int(sc.active.Load()),
		})
	}
	f.mu.Unlock()
	sort.Slice(listeners, func(i, j int) bool { return listeners[i].Name < listeners[j].Name })

	snapshot := f.group.Snapshot()
	channels := make([]models.ChannelInfo, 0, len(snapshot))
	for _, info := range snapshot {
		channels = append(channels, models.ChannelInfo(info))
	}

	pools := make([]models.PoolStats, 0, 2)
	for _, p := range []*workers.Pool{f.boss, f.worker} {
		pools = append(pools, models.PoolStats(p.Stats()))
	}

	return models.NodeStatus{
		Listeners:       listeners,
		Channels:        channels,
		Pools:           pools,
		TimeoutsPending: f.timer.Pending(),
	}
}

// Close stops accepting new connections: every bound listener is closed and
// later Bind, Serve and Accept calls fail with ErrFactoryClosed. Accepted
// connections stay open; they are closed through the channel registry.
func (f *ServerChannelFactory) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	servers := make([]*ServerChannel, 0, len(f.servers))
	for sc := range f.servers {
		servers = append(servers, sc)
	}
	f.mu.Unlock()

	var err error
	for _, sc := range servers {
		if cerr := sc.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("listener %s: %w", sc.name, cerr))
		}
	}

	f.logger.Debug().Int("listeners", len(servers)).Msg("stopped accepting new connections")
	return err
}

func (f *ServerChannelFactory) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// register tracks an accepted connection. It fails once the factory is closed
// so that no connection slips past the registry sweep at shutdown.
func (f *ServerChannelFactory) register(sc *ServerChannel, raw net.Conn) (*Conn, error) {
	if err := f.opts.apply(raw); err != nil {
		f.logger.Debug().Err(err).Str("listener", sc.name).Msg("failed to apply socket options")
	}

	conn := &Conn{Conn: raw, id: f.ids.Generate(), server: sc}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrFactoryClosed
	}
	f.group.Add(conn)
	sc.active.Add(1)
	f.mu.Unlock()

	f.metrics.RecordConnectionAccepted(sc.name)
	f.metrics.SetChannelsOpen(f.group.Size())

	return conn, nil
}

func (f *ServerChannelFactory) unregister(ch channel.Channel) {
	f.group.Remove(ch)
	f.metrics.SetChannelsOpen(f.group.Size())
}

func (f *ServerChannelFactory) forget(sc *ServerChannel) {
	f.mu.Lock()
	delete(f.servers, sc)
	f.mu.Unlock()
	f.unregister(sc)
}
