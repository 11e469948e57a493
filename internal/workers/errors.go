// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import "errors"

var (
	ErrPoolStopped  = errors.New("pool is stopped")
	ErrDrainTimeout = errors.New("pool drain did not finish in time")
	ErrInvalidSize  = errors.New("pool size must be positive")
)
