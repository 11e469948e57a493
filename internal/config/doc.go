// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for a nifty node and its status client.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// Boolean socket options are pointers so that an explicit false in a higher
// source overrides a true in a lower one.
//
// The main entry points are [GetStructuredConfig] for the node and
// [GetClientConfig] for the status client.
package config
