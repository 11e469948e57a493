// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a http transport address in format [host]:[port]
//	-grpc-address grpc transport address in format [host]:[port]
//	-line-address line transport address in format [host]:[port]
//	-c/-config json file path with configs
//	-boss-threads accept loop pool size
//	-worker-threads worker pool size
//	-shutdown-timeout pool drain bound (e.g., "10s")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-log-level zerolog level name
//	-token-sign-key admin token signing key
//	-token-issuer admin token issuer name
//	-admin target node address in format [host]:[port]
//	-token client bearer token
func ParseFlags() *StructuredConfig {
	var httpAddress, grpcAddress, lineAddress, adminAddress NetAddress
	var jsonConfigPath string
	var bossThreads, workerThreads int
	var shutdownTimeout, requestTimeout time.Duration
	var logLevel string
	var tokenSignKey, tokenIssuer, token string

	flag.Var(&httpAddress, "a", "HTTP transport address host:port")
	flag.Var(&grpcAddress, "grpc-address", "gRPC transport address host:port")
	flag.Var(&lineAddress, "line-address", "Line transport address host:port")
	flag.Var(&adminAddress, "admin", "Admin address of the node to query host:port")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.IntVar(&bossThreads, "boss-threads", 0, "Accept loop pool size")
	flag.IntVar(&workerThreads, "worker-threads", 0, "Worker pool size")
	flag.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Pool drain bound (e.g., 10s)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&logLevel, "log-level", "", "Log level")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Admin token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Admin token issuer")
	flag.StringVar(&token, "token", "", "Bearer token for the status client")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
		},
		Bootstrap: Bootstrap{
			BossThreadCount:   bossThreads,
			WorkerThreadCount: workerThreads,
			ShutdownTimeout:   shutdownTimeout,
		},
		Log: Log{
			Level: logLevel,
		},
		Server: Server{
			HTTPAddress:    httpAddress.String(),
			GRPCAddress:    grpcAddress.String(),
			LineAddress:    lineAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    adminAddress.String(),
			RequestTimeout: requestTimeout,
			Token:          token,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
