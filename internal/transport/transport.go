// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package transport defines the contract a network listener must satisfy to
// take part in coordinated start and stop, and ships the HTTP, gRPC and
// line-protocol listeners of a nifty node.
package transport

import (
	"context"

	"github.com/mailmahee/nifty/internal/netio"
)

//go:generate mockgen -source=transport.go -destination=../mock/transport_mock.go -package=mock

// Transport is one listener bound to one [Definition].
//
// Start is called at most once with the shared connection factory and must
// return once the transport is listening; on failure the transport cleans up
// whatever it bound. Stop is called at most once after a successful Start
// and is bounded by ctx; a stop cut short by ctx returns an error wrapping
// [ErrInterrupted].
type Transport interface {
	// Name returns the definition name of the transport.
	Name() string

	// Start binds and begins serving through factory.
	Start(factory *netio.ServerChannelFactory) error

	// Stop stops serving and releases what Start acquired.
	Stop(ctx context.Context) error
}

// Builder creates one Transport per definition.
type Builder interface {
	Build(def Definition) (Transport, error)
}
