// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mailmahee/nifty/internal/workers"
)

// UnaryInterceptor runs every unary handler on exec and logs the call.
// When exec refuses the task (pool stopped or ctx done before the task
// started) the call fails with codes.Unavailable.
func (h *Handler) UnaryInterceptor(exec workers.Executor) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		var (
			resp any
			err  error
		)
		if serr := exec.SubmitWait(ctx, func() { resp, err = handler(ctx, req) }); serr != nil {
			h.logger.Warn().Err(serr).Str("method", info.FullMethod).Msg("gRPC call rejected")
			return nil, status.Error(codes.Unavailable, serr.Error())
		}

		h.logger.Info().
			Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("duration", time.Since(start)).
			Send()

		return resp, err
	}
}

// StreamInterceptor logs stream calls. Streams stay on their own goroutine:
// a long-lived stream would otherwise pin a worker for its whole life.
func (h *Handler) StreamInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)

		h.logger.Info().
			Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("duration", time.Since(start)).
			Bool("stream", true).
			Send()

		return err
	}
}
