// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mailmahee/nifty/internal/logger"
)

// unmatchedRoute labels requests no route pattern matched.
const unmatchedRoute = "unmatched"

// withLogging writes one access log line per request and counts it in the
// admin request metrics under its route pattern.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			// nothing written; net/http answers 200
			status = http.StatusOK
		}
		route := routePattern(r)

		log.Info().
			Str("uri", r.RequestURI).
			Str("route", route).
			Str("method", r.Method).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int("size", ww.BytesWritten()).
			Send()

		h.opts.Metrics.RecordAdminRequest(route, r.Method, status)
	})
}

// routePattern reads the matched pattern once routing has finished.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}

// hideRoute answers 404 for a known path requested with a method it does not
// serve, so callers cannot tell the path exists.
func (h *Handler) hideRoute(w http.ResponseWriter, r *http.Request) {
	http.NotFound(w, r)
}
