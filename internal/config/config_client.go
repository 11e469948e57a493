// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the status client.
type ClientAdapter struct {
	// HTTPAddress is the admin endpoint address of the queried node.
	HTTPAddress string
	// RequestTimeout is the timeout for each client request.
	RequestTimeout time.Duration
	// Retries is the number of retries on transport errors and 5xx.
	Retries int
	// Token is sent as a bearer token when non-empty.
	Token string
}

// ClientConfig is the status client configuration assembled from [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Log     Log
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Retries:        cfg.Adapter.Retries,
			Token:          cfg.Adapter.Token,
		},
		Log: cfg.Log,
	}

	return clientCfg, clientCfg.validate()
}
