// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build unix

package server

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailmahee/nifty/internal/logger"
)

// ── signals ───────────────────────────────────────────────────────────────────

// TestRunServer_SignalDuringStart verifies that SIGTERM arriving while the
// lifecycle is still starting cancels the start context instead of killing
// the process, and that no stop follows the failed start.
func TestRunServer_SignalDuringStart(t *testing.T) {
	entered := make(chan struct{})
	lc := &fakeLifecycle{
		startFn: func(ctx context.Context) error {
			close(entered)
			<-ctx.Done()
			return ctx.Err()
		},
	}
	s, err := NewServer(lc, time.Second, logger.Nop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.RunServer(context.Background()) }()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("Start was not called")
	}
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("RunServer did not return")
	}

	started, stopped := lc.counts()
	assert.Equal(t, 1, started)
	assert.Zero(t, stopped)
}

// TestRunServer_SignalAfterStart verifies that SIGTERM after a successful
// start triggers a bounded stop.
func TestRunServer_SignalAfterStart(t *testing.T) {
	entered := make(chan struct{})
	lc := &fakeLifecycle{
		startFn: func(context.Context) error {
			close(entered)
			return nil
		},
	}
	s, err := NewServer(lc, time.Second, logger.Nop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.RunServer(context.Background()) }()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("Start was not called")
	}
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunServer did not return")
	}

	started, stopped := lc.counts()
	assert.Equal(t, 1, started)
	assert.Equal(t, 1, stopped)
}
