// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bootstrap

import (
	"errors"

	"github.com/mailmahee/nifty/internal/transport"
)

var (
	// ErrInvalidState is returned by Start outside the constructed state.
	ErrInvalidState = errors.New("invalid lifecycle state")

	// ErrNotStarted is returned by Stop before Start.
	ErrNotStarted = errors.New("bootstrap not started")

	// ErrDuplicateTransport is returned by New for two definitions sharing a
	// name.
	ErrDuplicateTransport = errors.New("duplicate transport name")

	// ErrBossPoolTooSmall is returned by New when an explicit boss thread
	// count cannot host one accept loop per transport.
	ErrBossPoolTooSmall = errors.New("boss pool smaller than transport count")

	// ErrConstruction is wrapped by every error returned from New.
	ErrConstruction = errors.New("failed to construct transports")

	// ErrInterrupted is wrapped by the error returned from Stop when at least
	// one transport stop was disrupted.
	ErrInterrupted = transport.ErrInterrupted
)
