// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// node invariants before it is used at startup: non-negative pool sizes and
// bounds, and transport definitions with unique non-empty names and
// addresses. Protocol names are checked later by the transport registry.
func (cfg *StructuredConfig) validate() error {
	b := cfg.Bootstrap
	if b.BossThreadCount < 0 || b.WorkerThreadCount < 0 || b.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: negative pool size or shutdown timeout", ErrInvalidBootstrapConfigs)
	}
	if b.Socket.ReceiveBuffer < 0 || b.Socket.SendBuffer < 0 {
		return fmt.Errorf("%w: negative socket buffer size", ErrInvalidBootstrapConfigs)
	}

	seen := make(map[string]struct{})
	for i, t := range cfg.AllTransports() {
		if t.Name == "" || t.Protocol == "" || t.Address == "" {
			return fmt.Errorf("%w: transport #%d needs name, protocol and address", ErrInvalidTransportConfigs, i)
		}
		if _, ok := seen[t.Name]; ok {
			return fmt.Errorf("%w: duplicate transport name %q", ErrInvalidTransportConfigs, t.Name)
		}
		seen[t.Name] = struct{}{}

		if t.MaxConnections < 0 || t.MaxFrameSize < 0 || t.IdleTimeout < 0 || t.RequestTimeout < 0 {
			return fmt.Errorf("%w: transport %q has negative limits", ErrInvalidTransportConfigs, t.Name)
		}
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.Retries < 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
