// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/mailmahee/nifty/internal/logger"
	"github.com/mailmahee/nifty/internal/metrics"
	"github.com/mailmahee/nifty/models"
)

// StatusProvider reports the live state of the node's shared resources.
// The connection factory handed to transports implements it.
type StatusProvider interface {
	Status() models.NodeStatus
}

// Options configure the admin handler.
type Options struct {
	// Version is reported by /api/version and in /api/status.
	Version string

	// TokenSignKey enables bearer-token authentication of /api/status
	// when non-empty.
	TokenSignKey string
	TokenIssuer  string

	// Metrics backs /metrics. A nil value serves 404.
	Metrics *metrics.Metrics
}

// Handler serves the admin API.
type Handler struct {
	opts   Options
	logger *logger.Logger
}

func NewHandler(opts Options, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		opts:   opts,
		logger: logger,
	}
}
