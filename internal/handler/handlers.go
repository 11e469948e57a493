// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler groups the protocol handlers mounted on the node's HTTP
// and gRPC transports.
package handler

import (
	"github.com/mailmahee/nifty/internal/handler/grpc"
	"github.com/mailmahee/nifty/internal/handler/http"
	"github.com/mailmahee/nifty/internal/logger"
)

// Handlers holds one handler per protocol. They are shared by every
// transport of that protocol.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds the admin HTTP handler from opts and the gRPC handler.
func NewHandlers(opts http.Options, logger *logger.Logger) *Handlers {
	logger.Info().Msg("creating new handlers...")

	return &Handlers{
		HTTP: http.NewHandler(opts, logger.WithComponent("http-handler")),
		GRPC: grpc.NewHandler(logger.WithComponent("grpc-handler")),
	}
}
