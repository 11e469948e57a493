// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when configuration groups are incomplete or
// invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing admin address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidBootstrapConfigs indicates invalid shared pool settings.
	ErrInvalidBootstrapConfigs = errors.New("invalid bootstrap configuration")
	// ErrInvalidTransportConfigs indicates an invalid or duplicate
	// transport definition.
	ErrInvalidTransportConfigs = errors.New("invalid transport configuration")
)
