// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc provides the services and interceptors installed on the gRPC
// transport: standard health checking, server reflection, request logging
// and execution of unary handlers on the shared worker pool.
package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/mailmahee/nifty/internal/logger"
)

// Handler is the root gRPC transport handler.
//
// A handler instance is created once per gRPC transport and registers its
// services on the server the transport builds at start.
type Handler struct {
	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] logging through logger.
func NewHandler(logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		logger: logger,
	}
}

// Register installs the health and reflection services on s and returns the
// health server so the caller can flip serving status on shutdown.
func (h *Handler) Register(s *grpc.Server) *health.Server {
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)

	return hs
}
