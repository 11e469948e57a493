// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the admin router. status is queried on every /api/status
// request.
func (h *Handler) Init(status StatusProvider) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
		r.Get("/api/version", h.getServerVersion)
		r.Method("GET", "/metrics", h.opts.Metrics.Handler())
	})

	router.Group(func(r chi.Router) {
		if h.opts.TokenSignKey != "" {
			r.Use(h.auth)
		}
		r.Get("/api/status", h.getStatus(status))
	})

	router.MethodNotAllowed(h.hideRoute)

	return router
}
