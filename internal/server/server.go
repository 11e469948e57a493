// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/mailmahee/nifty/internal/logger"
)

type server struct {
	lifecycle       Lifecycle
	shutdownTimeout time.Duration
	logger          *logger.Logger
}

func NewServer(lifecycle Lifecycle, shutdownTimeout time.Duration, logger *logger.Logger) (Server, error) {
	if lifecycle == nil {
		return nil, errNoLifecycle
	}

	logger.Info().Msg("creating new server...")

	return &server{
		lifecycle:       lifecycle,
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	// a signal during a slow start interrupts it and rolls it back
	sigCtx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.lifecycle.Start(sigCtx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	s.logger.Info().Msg("server started")

	<-sigCtx.Done()
	s.logger.Info().Msg("shutdown requested")

	// the parent ctx may already be done; the stop gets its own budget
	return s.Shutdown(context.WithoutCancel(ctx))
}

// Shutdown stops the lifecycle within one shutdown timeout that covers both
// the transport stops and the release of shared resources.
func (s *server) Shutdown(ctx context.Context) error {
	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
	}

	report, err := s.lifecycle.Stop(ctx)
	if report.AlreadyStopped {
		return nil
	}

	for _, o := range report.Outcomes {
		s.logger.Info().Str("transport", o.Name).Str("outcome", o.Outcome.String()).Send()
	}
	if err != nil {
		return fmt.Errorf("stop: %w", err)
	}

	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}
