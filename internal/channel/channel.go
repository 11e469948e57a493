// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package channel

import "net"

// Channel is a closable network endpoint tracked by a [Group].
//
// Server channels (listeners) report a nil RemoteAddr.
type Channel interface {
	// ID returns the unique identifier assigned when the channel was opened.
	ID() string

	LocalAddr() net.Addr
	RemoteAddr() net.Addr

	// Close closes the channel. Implementations must be idempotent and must
	// remove themselves from the group they were added to.
	Close() error
}

// Info is a point-in-time description of a tracked channel.
type Info struct {
	ID     string `json:"id"`
	Local  string `json:"local"`
	Remote string `json:"remote,omitempty"`
	Server bool   `json:"server"`
}

func describe(ch Channel) Info {
	info := Info{ID: ch.ID(), Server: ch.RemoteAddr() == nil}
	if addr := ch.LocalAddr(); addr != nil {
		info.Local = addr.String()
	}
	if addr := ch.RemoteAddr(); addr != nil {
		info.Remote = addr.String()
	}
	return info
}
