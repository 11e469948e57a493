// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the status application: it queries a running
// node's admin API and prints health, version and runtime status as tables.
package client
