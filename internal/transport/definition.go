// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"fmt"
	"time"

	"github.com/mailmahee/nifty/internal/config"
)

// Definition identifies one listener. It is immutable once handed to a
// Builder.
type Definition struct {
	// Name is unique among the definitions of one bootstrap.
	Name     string
	Protocol string
	Address  string

	// MaxConnections caps concurrently open connections; zero is unlimited.
	MaxConnections int

	// IdleTimeout closes connections without traffic for this long.
	IdleTimeout time.Duration

	// RequestTimeout bounds the handling of one request.
	RequestTimeout time.Duration

	// MaxFrameSize caps the size of one inbound message; zero keeps the
	// protocol default.
	MaxFrameSize int
}

// Validate checks required fields and limits.
func (d Definition) Validate() error {
	if d.Name == "" || d.Protocol == "" || d.Address == "" {
		return fmt.Errorf("%w: name, protocol and address are required (got %q, %q, %q)",
			ErrInvalidDefinition, d.Name, d.Protocol, d.Address)
	}
	if d.MaxConnections < 0 || d.IdleTimeout < 0 || d.RequestTimeout < 0 || d.MaxFrameSize < 0 {
		return fmt.Errorf("%w: %s has negative limits", ErrInvalidDefinition, d.Name)
	}

	return nil
}

// DefinitionsFromConfig converts configured transports, preserving order.
func DefinitionsFromConfig(transports []config.Transport) []Definition {
	defs := make([]Definition, 0, len(transports))
	for _, t := range transports {
		defs = append(defs, Definition{
			Name:           t.Name,
			Protocol:       t.Protocol,
			Address:        t.Address,
			MaxConnections: t.MaxConnections,
			IdleTimeout:    t.IdleTimeout,
			RequestTimeout: t.RequestTimeout,
			MaxFrameSize:   t.MaxFrameSize,
		})
	}

	return defs
}
