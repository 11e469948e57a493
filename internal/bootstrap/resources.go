// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bootstrap

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"

	"github.com/mailmahee/nifty/internal/channel"
	"github.com/mailmahee/nifty/internal/config"
	"github.com/mailmahee/nifty/internal/logger"
	"github.com/mailmahee/nifty/internal/metrics"
	"github.com/mailmahee/nifty/internal/netio"
	"github.com/mailmahee/nifty/internal/timer"
	"github.com/mailmahee/nifty/internal/workers"
)

// resources are the process-wide objects shared by every transport.
type resources struct {
	boss    *workers.Pool
	worker  *workers.Pool
	timer   *timer.Timer
	group   *channel.Group
	factory *netio.ServerChannelFactory

	metrics *metrics.Metrics
	logger  *logger.Logger

	releaseOnce sync.Once
	releaseErr  error
}

func bossPoolSize(cfg config.Bootstrap, transports int) int {
	if cfg.BossThreadCount != 0 {
		return cfg.BossThreadCount
	}
	return max(transports, 1)
}

func workerPoolSize(cfg config.Bootstrap) int {
	if cfg.WorkerThreadCount != 0 {
		return cfg.WorkerThreadCount
	}
	return 2 * runtime.NumCPU()
}

func socketOptions(cfg config.Socket) netio.SocketOptions {
	return netio.SocketOptions{
		TCPNoDelay:    cfg.NoDelay(),
		KeepAlive:     cfg.KeepAlive,
		ReuseAddress:  cfg.ReuseAddr(),
		ReceiveBuffer: cfg.ReceiveBuffer,
		SendBuffer:    cfg.SendBuffer,
	}
}

func allocateResources(
	cfg config.Bootstrap,
	transports int,
	group *channel.Group,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *logger.Logger,
) (*resources, error) {
	boss, err := workers.NewPool("boss", bossPoolSize(cfg, transports), m, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create boss pool: %w", err)
	}

	worker, err := workers.NewPool("worker", workerPoolSize(cfg), m, logger)
	if err != nil {
		_ = boss.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	tm := timer.New(clk, m)
	factory := netio.NewServerChannelFactory(boss, worker, tm, group, socketOptions(cfg.Socket), m, logger)

	logger.Info().
		Int("boss_threads", boss.Capacity()).
		Int("worker_threads", worker.Capacity()).
		Msg("shared resources allocated")

	return &resources{
		boss:    boss,
		worker:  worker,
		timer:   tm,
		group:   group,
		factory: factory,
		metrics: m,
		logger:  logger,
	}, nil
}

// release stops accepting, closes every registered channel, drains both pools
// within ctx and stops the timer. Every step runs even when an earlier one
// fails. Only the first call does anything.
func (r *resources) release(ctx context.Context) error {
	r.releaseOnce.Do(func() {
		var err error

		if cerr := r.factory.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("close listeners: %w", cerr))
		}
		if cerr := r.group.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("close channels: %w", cerr))
		}
		if serr := r.boss.Shutdown(ctx); serr != nil {
			err = multierr.Append(err, serr)
		}
		if serr := r.worker.Shutdown(ctx); serr != nil {
			err = multierr.Append(err, serr)
		}

		if pending := r.timer.Stop(); len(pending) > 0 {
			r.logger.Debug().Int("timeouts", len(pending)).Msg("cancelled pending timeouts")
		}

		r.metrics.SetChannelsOpen(r.group.Size())
		r.metrics.SetTimeoutsPending(0)

		if err != nil {
			r.logger.Error().Err(err).Msg("shared resources released with errors")
		} else {
			r.logger.Info().Msg("shared resources released")
		}

		r.releaseErr = err
	})

	return r.releaseErr
}
