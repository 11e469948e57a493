// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package netio

import "errors"

var (
	// ErrFactoryClosed is returned by Bind, Serve and Accept once the factory
	// has stopped accepting new connections.
	ErrFactoryClosed = errors.New("server channel factory is closed")

	// ErrBossPoolExhausted is returned by Serve when every boss slot already
	// runs an accept loop.
	ErrBossPoolExhausted = errors.New("no free boss thread for accept loop")

	// ErrAlreadyServing is returned by Serve for a channel that already has
	// an accept loop.
	ErrAlreadyServing = errors.New("server channel is already serving")
)
