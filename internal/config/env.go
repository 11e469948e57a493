// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads the process environment into a new config layer. Fields are
// mapped through the `env` and `envPrefix` tags of [StructuredConfig].
func parseEnv() (*StructuredConfig, error) {
	return parseEnvFrom(nil)
}

// parseEnvFrom reads environ in place of the process environment when it is
// non-nil. Unset variables leave their fields zero, and unset socket flags
// nil, so lower layers can still fill them.
func parseEnvFrom(environ map[string]string) (*StructuredConfig, error) {
	cfg, err := env.ParseAsWithOptions[StructuredConfig](env.Options{Environment: environ})
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return &cfg, nil
}
