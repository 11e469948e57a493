// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for a nifty
// node. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, an optional JSON
// file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds node-level settings: version and admin token parameters.
	App App `envPrefix:"APP_"`

	// Bootstrap holds the settings of the shared resources every transport
	// runs on: pool sizes, shutdown bound and socket options.
	Bootstrap Bootstrap `envPrefix:"BOOTSTRAP_"`

	// Log holds logging settings.
	Log Log `envPrefix:"LOG_"`

	// Server holds convenience listener addresses. Each non-empty address
	// adds one transport of the matching protocol.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the settings the status client uses to reach a node.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Transports is the explicit list of transport definitions. It can only
	// be supplied through the JSON file.
	Transports []Transport

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds node-level configuration values.
type App struct {
	// Version is the semantic version reported by /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// TokenSignKey is the HMAC key admin JWT tokens are verified with.
	// When empty, /api/status is served without authentication.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of admin tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`
}

// Bootstrap configures the shared resource pool.
type Bootstrap struct {
	// BossThreadCount is the number of accept loops that may run at once.
	// Zero sizes the pool to the number of transports. A positive value
	// below the number of transports is rejected at construction.
	// Env: BOOTSTRAP_BOSS_THREAD_COUNT
	BossThreadCount int `env:"BOSS_THREAD_COUNT"`

	// WorkerThreadCount is the size of the per-connection worker pool.
	// Zero means twice the number of CPUs.
	// Env: BOOTSTRAP_WORKER_THREAD_COUNT
	WorkerThreadCount int `env:"WORKER_THREAD_COUNT"`

	// ShutdownTimeout bounds the release of shared resources after the
	// transports have stopped. A sooner caller deadline takes precedence;
	// once the caller's deadline has passed the full timeout applies.
	// Env: BOOTSTRAP_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// Socket holds options applied to every listener and connection.
	Socket Socket `envPrefix:"SOCKET_"`
}

// Socket holds TCP socket options.
type Socket struct {
	// DisableNoDelay re-enables Nagle's algorithm on accepted connections.
	// Nil leaves TCP_NODELAY on.
	// Env: BOOTSTRAP_SOCKET_DISABLE_NO_DELAY
	DisableNoDelay *bool `env:"DISABLE_NO_DELAY"`

	// KeepAlive is the keep-alive period; negative disables keep-alives.
	// Env: BOOTSTRAP_SOCKET_KEEP_ALIVE
	KeepAlive time.Duration `env:"KEEP_ALIVE"`

	// ReuseAddress sets SO_REUSEADDR on listening sockets.
	// Env: BOOTSTRAP_SOCKET_REUSE_ADDRESS
	ReuseAddress *bool `env:"REUSE_ADDRESS"`

	// Env: BOOTSTRAP_SOCKET_RECEIVE_BUFFER
	ReceiveBuffer int `env:"RECEIVE_BUFFER"`

	// Env: BOOTSTRAP_SOCKET_SEND_BUFFER
	SendBuffer int `env:"SEND_BUFFER"`
}

// NoDelay reports whether TCP_NODELAY should be set on accepted connections.
func (s Socket) NoDelay() bool {
	return s.DisableNoDelay == nil || !*s.DisableNoDelay
}

// ReuseAddr reports whether SO_REUSEADDR should be set on listeners.
func (s Socket) ReuseAddr() bool {
	return s.ReuseAddress != nil && *s.ReuseAddress
}

// Log holds logging configuration.
type Log struct {
	// Level is a zerolog level name ("debug", "info", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// Server holds convenience listener addresses.
type Server struct {
	// HTTPAddress adds an "http" transport serving the admin API.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress adds a "grpc" transport.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// LineAddress adds a "line" transport.
	// Env: SERVER_LINE_ADDRESS
	LineAddress string `env:"LINE_ADDRESS"`

	// RequestTimeout is applied to the convenience transports.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the status client settings.
type Adapter struct {
	// HTTPAddress is the admin endpoint of the node, "host:port".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds each client request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Retries is the number of retries on transport errors and 5xx.
	// Env: ADAPTER_RETRIES
	Retries int `env:"RETRIES"`

	// Token is a bearer token sent to protected endpoints.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Transport is one listener definition.
type Transport struct {
	Name           string        `json:"name"`
	Protocol       string        `json:"protocol"`
	Address        string        `json:"address"`
	MaxConnections int           `json:"max_connections"`
	IdleTimeout    time.Duration `json:"idle_timeout"`
	RequestTimeout time.Duration `json:"request_timeout"`
	MaxFrameSize   int           `json:"max_frame_size"`
}

// Supported transport protocols.
const (
	ProtocolHTTP = "http"
	ProtocolGRPC = "grpc"
	ProtocolLine = "line"
)

// AllTransports returns the explicit transport list followed by one
// transport per non-empty convenience address in [Server]. A convenience
// transport is named after its protocol and skipped when a transport with
// that name is already defined.
func (cfg *StructuredConfig) AllTransports() []Transport {
	all := make([]Transport, 0, len(cfg.Transports)+3)
	all = append(all, cfg.Transports...)

	taken := make(map[string]struct{}, len(all))
	for _, t := range all {
		taken[t.Name] = struct{}{}
	}

	convenience := []struct{ protocol, address string }{
		{ProtocolHTTP, cfg.Server.HTTPAddress},
		{ProtocolGRPC, cfg.Server.GRPCAddress},
		{ProtocolLine, cfg.Server.LineAddress},
	}
	for _, c := range convenience {
		if c.address == "" {
			continue
		}
		if _, ok := taken[c.protocol]; ok {
			continue
		}
		all = append(all, Transport{
			Name:           c.protocol,
			Protocol:       c.protocol,
			Address:        c.address,
			RequestTimeout: cfg.Server.RequestTimeout,
		})
	}

	return all
}

// GetStructuredConfig loads, merges, and validates the node configuration
// from all available sources. Earlier sources take precedence for non-zero
// fields:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
