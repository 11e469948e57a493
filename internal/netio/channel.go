// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package netio

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"
)

// ServerChannel is a listening socket bound through a [ServerChannelFactory].
// It is both a [net.Listener], so it can be handed to http.Server or
// grpc.Server, and a channel.Channel tracked by the registry.
type ServerChannel struct {
	factory *ServerChannelFactory
	id      string
	name    string
	ln      net.Listener
	opts    BindOptions

	active atomic.Int32

	// serving and done are guarded by factory.mu / closed once by Serve.
	serving bool
	done    chan struct{}

	closeOnce sync.Once
	closeErr  error
}

func newServerChannel(f *ServerChannelFactory, id, name string, ln net.Listener, opts BindOptions) *ServerChannel {
	return &ServerChannel{
		factory: f,
		id:      id,
		name:    name,
		ln:      ln,
		opts:    opts,
		done:    make(chan struct{}),
	}
}

func (s *ServerChannel) ID() string           { return s.id }
func (s *ServerChannel) Name() string         { return s.name }
func (s *ServerChannel) Addr() net.Addr       { return s.ln.Addr() }
func (s *ServerChannel) LocalAddr() net.Addr  { return s.ln.Addr() }
func (s *ServerChannel) RemoteAddr() net.Addr { return nil }

// Connections returns the number of open connections accepted by s.
func (s *ServerChannel) Connections() int {
	return int(s.active.Load())
}

// Done is closed when the accept loop started by Serve returns.
func (s *ServerChannel) Done() <-chan struct{} {
	return s.done
}

// Accept waits for the next connection, applies socket options and registers
// it in the channel registry. Connections over MaxConnections are closed
// immediately and never returned.
func (s *ServerChannel) Accept() (net.Conn, error) {
	for {
		raw, err := s.ln.Accept()
		if err != nil {
			return nil, err
		}

		if s.opts.MaxConnections > 0 && int(s.active.Load()) >= s.opts.MaxConnections {
			s.factory.metrics.RecordConnectionRejected(s.name)
			s.factory.logger.Debug().
				Str("listener", s.name).
				Str("address", raw.RemoteAddr().String()).
				Int("max_connections", s.opts.MaxConnections).
				Msg("connection limit reached, rejecting")
			_ = raw.Close()
			continue
		}

		conn, err := s.factory.register(s, raw)
		if err != nil {
			_ = raw.Close()
			return nil, fmt.Errorf("%w: %w", net.ErrClosed, err)
		}

		return conn, nil
	}
}

// Close closes the listener and unregisters it. It is idempotent.
func (s *ServerChannel) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.ln.Close()
		s.factory.forget(s)
		s.factory.logger.Debug().Str("listener", s.name).Msg("server channel closed")
	})
	return s.closeErr
}

// Conn is an accepted connection tracked by the channel registry until it is
// closed.
type Conn struct {
	net.Conn

	id     string
	server *ServerChannel

	closeOnce sync.Once
	closeErr  error
}

func (c *Conn) ID() string { return c.id }

// Listener returns the name of the server channel that accepted c.
func (c *Conn) Listener() string { return c.server.name }

// Close closes the connection and unregisters it. It is idempotent.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.Conn.Close()
		c.server.active.Add(-1)
		c.server.factory.unregister(c)
	})
	return c.closeErr
}
