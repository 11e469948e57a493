// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/keepalive"

	grpchandler "github.com/mailmahee/nifty/internal/handler/grpc"
	"github.com/mailmahee/nifty/internal/logger"
	"github.com/mailmahee/nifty/internal/netio"
)

// GRPCTransport serves gRPC health and reflection. Unary calls run on the
// shared worker pool.
type GRPCTransport struct {
	lifecycle

	def     Definition
	handler *grpchandler.Handler
	logger  *logger.Logger

	server  *grpc.Server
	health  *health.Server
	channel *netio.ServerChannel
}

func NewGRPCTransport(def Definition, handler *grpchandler.Handler, logger *logger.Logger) *GRPCTransport {
	return &GRPCTransport{
		def:     def,
		handler: handler,
		logger:  transportLogger(logger, "grpc-transport", def),
	}
}

func (t *GRPCTransport) Name() string { return t.def.Name }

// Addr returns the bound address, or nil before Start.
func (t *GRPCTransport) Addr() net.Addr {
	if t.channel == nil {
		return nil
	}
	return t.channel.Addr()
}

func (t *GRPCTransport) Start(factory *netio.ServerChannelFactory) error {
	return t.lifecycle.start(factory, func() error {
		sc, err := factory.Bind(context.Background(), t.def.Name, t.def.Address, bindOptions(t.def))
		if err != nil {
			return err
		}

		opts := []grpc.ServerOption{
			grpc.ChainUnaryInterceptor(t.handler.UnaryInterceptor(factory)),
			grpc.ChainStreamInterceptor(t.handler.StreamInterceptor()),
		}
		if t.def.MaxFrameSize > 0 {
			opts = append(opts, grpc.MaxRecvMsgSize(t.def.MaxFrameSize))
		}
		if t.def.IdleTimeout > 0 {
			opts = append(opts, grpc.KeepaliveParams(keepalive.ServerParameters{MaxConnectionIdle: t.def.IdleTimeout}))
		}
		if t.def.RequestTimeout > 0 {
			opts = append(opts, grpc.ConnectionTimeout(t.def.RequestTimeout))
		}

		server := grpc.NewServer(opts...)
		hs := t.handler.Register(server)

		if err := factory.Serve(sc, server.Serve); err != nil {
			server.Stop()
			_ = sc.Close()
			return err
		}

		t.server = server
		t.health = hs
		t.channel = sc
		t.logger.Info().Str("address", sc.Addr().String()).Msg("grpc transport started")

		return nil
	})
}

// Stop marks the health service NOT_SERVING and stops gracefully; when ctx
// ends first the server is stopped hard and the stop reports interruption.
func (t *GRPCTransport) Stop(ctx context.Context) error {
	return t.lifecycle.stop(func() error {
		t.health.Shutdown()

		stopped := make(chan struct{})
		go func() {
			t.server.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopped:
			t.logger.Info().Msg("grpc transport stopped")
			return nil
		case <-ctx.Done():
			t.server.Stop()
			<-stopped
			t.logger.Warn().Err(ctx.Err()).Msg("grpc graceful stop cut short")
			return interrupted(t.def.Name, ctx.Err())
		}
	})
}
