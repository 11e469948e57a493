// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build !unix

package netio

import "syscall"

// SO_REUSEADDR is left to the platform default outside unix.
func (o SocketOptions) control() func(network, address string, c syscall.RawConn) error {
	return nil
}
