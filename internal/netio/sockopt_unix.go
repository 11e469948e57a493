// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build unix

package netio

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func (o SocketOptions) control() func(network, address string, c syscall.RawConn) error {
	if !o.ReuseAddress {
		return nil
	}

	return func(_, _ string, c syscall.RawConn) error {
		var sockErr error
		err := c.Control(func(fd uintptr) {
			sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
		})
		if err != nil {
			return err
		}
		return sockErr
	}
}
