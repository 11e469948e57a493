// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import "errors"

var (
	// ErrInterrupted marks a stop that was cut short before the transport
	// finished releasing its connections.
	ErrInterrupted = errors.New("transport stop interrupted")

	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("transport already started")

	// ErrNoFactory is returned by Start when no connection factory is given.
	ErrNoFactory = errors.New("no connection factory")

	// ErrUnknownProtocol is returned by the registry for a protocol with no
	// registered constructor.
	ErrUnknownProtocol = errors.New("unknown transport protocol")

	// ErrInvalidDefinition is returned for a definition missing required
	// fields or carrying negative limits.
	ErrInvalidDefinition = errors.New("invalid transport definition")
)
