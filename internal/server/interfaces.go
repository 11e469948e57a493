// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"

	"github.com/mailmahee/nifty/internal/bootstrap"
)

// Server defines the lifecycle contract of the node process.
type Server interface {
	// RunServer starts serving and blocks until a termination signal arrives
	// or ctx ends, then shuts down.
	RunServer(ctx context.Context) error

	// Shutdown stops serving within the configured shutdown timeout.
	Shutdown(ctx context.Context) error
}

// Lifecycle is the coordinator run by the server.
type Lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) (bootstrap.StopReport, error)
}
