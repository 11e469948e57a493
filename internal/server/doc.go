// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the node process lifecycle.
//
// It listens for SIGINT, SIGTERM and SIGQUIT before starting the transport
// coordinator, so a signal during a slow start cancels it. After a
// successful start it waits for a signal or for the parent context to end,
// then stops the coordinator within the configured shutdown timeout.
package server
