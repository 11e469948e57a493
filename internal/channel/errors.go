// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package channel

import "errors"

var (
	// ErrCloseChannels is wrapped by [Group.Close] when one or more channels
	// failed to close.
	ErrCloseChannels = errors.New("failed to close channels")
)
