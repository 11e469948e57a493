// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	httphandler "github.com/mailmahee/nifty/internal/handler/http"
	"github.com/mailmahee/nifty/internal/logger"
	"github.com/mailmahee/nifty/internal/netio"
	"github.com/mailmahee/nifty/internal/utils"
	"github.com/mailmahee/nifty/internal/workers"
)

const readHeaderTimeout = 10 * time.Second

// HTTPTransport serves the admin API. Every request runs on the shared
// worker pool.
type HTTPTransport struct {
	lifecycle

	def     Definition
	handler *httphandler.Handler
	logger  *logger.Logger

	server  *http.Server
	channel *netio.ServerChannel
}

func NewHTTPTransport(def Definition, handler *httphandler.Handler, logger *logger.Logger) *HTTPTransport {
	return &HTTPTransport{
		def:     def,
		handler: handler,
		logger:  transportLogger(logger, "http-transport", def),
	}
}

func (t *HTTPTransport) Name() string { return t.def.Name }

// Addr returns the bound address, or nil before Start.
func (t *HTTPTransport) Addr() net.Addr {
	if t.channel == nil {
		return nil
	}
	return t.channel.Addr()
}

func (t *HTTPTransport) Start(factory *netio.ServerChannelFactory) error {
	return t.lifecycle.start(factory, func() error {
		sc, err := factory.Bind(context.Background(), t.def.Name, t.def.Address, bindOptions(t.def))
		if err != nil {
			return err
		}

		var h http.Handler = t.handler.Init(factory)
		if t.def.RequestTimeout > 0 {
			h = middleware.Timeout(t.def.RequestTimeout)(h)
		}

		server := &http.Server{
			Handler:           onPool(factory, h),
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       t.def.IdleTimeout,
		}
		if t.def.MaxFrameSize > 0 {
			server.MaxHeaderBytes = t.def.MaxFrameSize
		}

		err = factory.Serve(sc, func(l net.Listener) error {
			if err := server.Serve(l); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		if err != nil {
			_ = sc.Close()
			return err
		}

		t.server = server
		t.channel = sc
		t.logger.Info().Str("address", sc.Addr().String()).Msg("http transport started")

		return nil
	})
}

// Stop shuts the server down gracefully within ctx and then closes whatever
// connections remain.
func (t *HTTPTransport) Stop(ctx context.Context) error {
	return t.lifecycle.stop(func() error {
		err := t.server.Shutdown(ctx)
		if cerr := t.server.Close(); cerr != nil && err == nil {
			err = cerr
		}

		select {
		case <-t.channel.Done():
		case <-ctx.Done():
			if err == nil {
				err = ctx.Err()
			}
		}

		if err != nil {
			return interrupted(t.def.Name, fmt.Errorf("http shutdown: %w", err))
		}

		t.logger.Info().Msg("http transport stopped")
		return nil
	})
}

// onPool runs every request on exec. A request whose context ends before a
// worker picks it up is dropped; one refused by a stopped pool gets 503.
func onPool(exec workers.Executor, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := exec.SubmitWait(r.Context(), func() { next.ServeHTTP(w, r) })
		if err != nil && r.Context().Err() == nil {
			utils.WriteError(w, err, http.StatusServiceUnavailable)
		}
	})
}
