// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mailmahee/nifty/internal/config"
	"github.com/mailmahee/nifty/internal/handler"
	"github.com/mailmahee/nifty/internal/logger"
)

// Constructor builds a transport for a validated definition.
type Constructor func(def Definition) (Transport, error)

// Registry is the default [Builder]: it maps protocol names to constructors.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry returns a registry with the http, grpc and line protocols.
func NewRegistry(handlers *handler.Handlers, logger *logger.Logger) *Registry {
	r := &Registry{constructors: make(map[string]Constructor)}

	r.Register(config.ProtocolHTTP, func(def Definition) (Transport, error) {
		return NewHTTPTransport(def, handlers.HTTP, logger), nil
	})
	r.Register(config.ProtocolGRPC, func(def Definition) (Transport, error) {
		return NewGRPCTransport(def, handlers.GRPC, logger), nil
	})
	r.Register(config.ProtocolLine, func(def Definition) (Transport, error) {
		return NewLineTransport(def, logger), nil
	})

	return r
}

// Register adds or replaces the constructor of protocol.
func (r *Registry) Register(protocol string, c Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[protocol] = c
}

// Protocols lists registered protocols in lexical order.
func (r *Registry) Protocols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	protocols := make([]string, 0, len(r.constructors))
	for p := range r.constructors {
		protocols = append(protocols, p)
	}
	sort.Strings(protocols)

	return protocols
}

// Build validates def and constructs its transport.
func (r *Registry) Build(def Definition) (Transport, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	c, ok := r.constructors[def.Protocol]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (transport %s)", ErrUnknownProtocol, def.Protocol, def.Name)
	}

	t, err := c(def)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s transport %s: %w", def.Protocol, def.Name, err)
	}

	return t, nil
}
