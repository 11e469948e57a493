// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the admin HTTP API of a nifty node.
//
// It exposes health, version, status and Prometheus metrics endpoints on a
// chi router. Cross-cutting concerns such as panic recovery, request tracing,
// access logging and bearer-token authentication are handled by middleware
// in this package.
package http
