// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of a node's admin API.
//
// The primary abstraction is [ServerAdapter], used by the status CLI to query
// health, version and runtime status of a running node. The package ships an
// HTTP implementation built on resty ([NewHTTPServerAdapter]).
//
// Non-2xx responses are mapped to the sentinel errors in errors.go by
// mapHTTPError, so callers can use [errors.Is] (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/mailmahee/nifty/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter queries the admin endpoints of a node.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to requests for protected
	// endpoints.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Health returns nil when the node answers its health check.
	Health(ctx context.Context) error

	// Version returns the version the node reports.
	Version(ctx context.Context) (string, error)

	// Status returns the node's listeners, channels, pools and pending
	// timeouts. The node may require a bearer token for it.
	Status(ctx context.Context) (models.NodeStatus, error)
}
