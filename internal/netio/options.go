// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package netio

import (
	"net"
	"time"
)

// SocketOptions are applied to every listener bound and every connection
// accepted through the factory.
type SocketOptions struct {
	// TCPNoDelay disables Nagle's algorithm on accepted connections.
	TCPNoDelay bool

	// KeepAlive is the TCP keep-alive period of accepted connections.
	// Zero keeps the system default, a negative value disables keep-alives.
	KeepAlive time.Duration

	// ReuseAddress sets SO_REUSEADDR on listening sockets where supported.
	ReuseAddress bool

	// ReceiveBuffer and SendBuffer set SO_RCVBUF / SO_SNDBUF when positive.
	ReceiveBuffer int
	SendBuffer    int
}

// BindOptions are per-listener settings.
type BindOptions struct {
	// MaxConnections caps concurrently open connections accepted by the
	// listener; connections over the cap are closed right after accept.
	// Zero means unlimited.
	MaxConnections int
}

func (o SocketOptions) listenConfig() net.ListenConfig {
	return net.ListenConfig{
		KeepAlive: o.KeepAlive,
		Control:   o.control(),
	}
}

func (o SocketOptions) apply(conn net.Conn) error {
	tcp, ok := conn.(*net.TCPConn)
	if !ok {
		return nil
	}

	if err := tcp.SetNoDelay(o.TCPNoDelay); err != nil {
		return err
	}
	if o.ReceiveBuffer > 0 {
		if err := tcp.SetReadBuffer(o.ReceiveBuffer); err != nil {
			return err
		}
	}
	if o.SendBuffer > 0 {
		if err := tcp.SetWriteBuffer(o.SendBuffer); err != nil {
			return err
		}
	}

	return nil
}
