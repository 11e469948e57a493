// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── AllTransports ─────────────────────────────────────────────────────────────

// TestAllTransports_ExplicitThenConvenience verifies ordering: the JSON list
// first, then http, grpc and line convenience addresses.
func TestAllTransports_ExplicitThenConvenience(t *testing.T) {
	cfg := &StructuredConfig{
		Server: Server{
			HTTPAddress:    "127.0.0.1:8080",
			LineAddress:    "127.0.0.1:7000",
			RequestTimeout: time.Second,
		},
		Transports: []Transport{
			{Name: "custom", Protocol: ProtocolGRPC, Address: "127.0.0.1:9000"},
		},
	}

	all := cfg.AllTransports()
	require.Len(t, all, 3)
	assert.Equal(t, "custom", all[0].Name)
	assert.Equal(t, Transport{Name: "http", Protocol: ProtocolHTTP, Address: "127.0.0.1:8080", RequestTimeout: time.Second}, all[1])
	assert.Equal(t, "line", all[2].Name)
}

// TestAllTransports_ExplicitNameShadowsConvenience verifies that an explicit
// transport named like a protocol suppresses the convenience one.
func TestAllTransports_ExplicitNameShadowsConvenience(t *testing.T) {
	cfg := &StructuredConfig{
		Server:     Server{HTTPAddress: "127.0.0.1:8080"},
		Transports: []Transport{{Name: "http", Protocol: ProtocolHTTP, Address: "127.0.0.1:8081"}},
	}

	all := cfg.AllTransports()
	require.Len(t, all, 1)
	assert.Equal(t, "127.0.0.1:8081", all[0].Address)
}

// ── validate ──────────────────────────────────────────────────────────────────

// TestValidate verifies the structural checks of the merged config.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StructuredConfig
		wantErr error
	}{
		{
			name: "zero config",
			cfg:  StructuredConfig{},
		},
		{
			name:    "negative boss threads",
			cfg:     StructuredConfig{Bootstrap: Bootstrap{BossThreadCount: -1}},
			wantErr: ErrInvalidBootstrapConfigs,
		},
		{
			name:    "negative shutdown timeout",
			cfg:     StructuredConfig{Bootstrap: Bootstrap{ShutdownTimeout: -time.Second}},
			wantErr: ErrInvalidBootstrapConfigs,
		},
		{
			name:    "negative buffer",
			cfg:     StructuredConfig{Bootstrap: Bootstrap{Socket: Socket{SendBuffer: -1}}},
			wantErr: ErrInvalidBootstrapConfigs,
		},
		{
			name:    "transport without address",
			cfg:     StructuredConfig{Transports: []Transport{{Name: "a", Protocol: ProtocolLine}}},
			wantErr: ErrInvalidTransportConfigs,
		},
		{
			name: "duplicate names",
			cfg: StructuredConfig{Transports: []Transport{
				{Name: "a", Protocol: ProtocolLine, Address: ":1"},
				{Name: "a", Protocol: ProtocolHTTP, Address: ":2"},
			}},
			wantErr: ErrInvalidTransportConfigs,
		},
		{
			name: "negative limits",
			cfg: StructuredConfig{Transports: []Transport{
				{Name: "a", Protocol: ProtocolLine, Address: ":1", MaxConnections: -5},
			}},
			wantErr: ErrInvalidTransportConfigs,
		},
		{
			name: "valid transports",
			cfg: StructuredConfig{
				Server:     Server{GRPCAddress: ":9090"},
				Transports: []Transport{{Name: "a", Protocol: ProtocolLine, Address: ":1"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestClientConfig_Validate verifies the client config requirements.
func TestClientConfig_Validate(t *testing.T) {
	valid := ClientConfig{Adapter: ClientAdapter{HTTPAddress: "127.0.0.1:8080", RequestTimeout: time.Second}}
	assert.NoError(t, valid.validate())

	noAddress := valid
	noAddress.Adapter.HTTPAddress = ""
	assert.ErrorIs(t, noAddress.validate(), ErrInvalidAdapterConfigs)

	noTimeout := valid
	noTimeout.Adapter.RequestTimeout = 0
	assert.ErrorIs(t, noTimeout.validate(), ErrInvalidAdapterConfigs)
}
