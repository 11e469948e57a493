// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package bootstrap coordinates the lifecycle of the node's transports.
//
// A [Bootstrap] is built from an ordered list of transport definitions. It
// builds one transport per definition up front, allocates the shared
// resources (boss and worker pools, the timer, the connection factory bound
// to the channel registry) exactly once on [Bootstrap.Start], and hands the
// same factory to every transport. [Bootstrap.Stop] stops every transport in
// construction order, records a per-transport outcome in a [StopReport] and
// releases the shared resources exactly once.
//
// State moves one way only:
//
//	constructed ──Start──▶ started ──Stop──▶ stopped
//	     │                                    ▲
//	     └────────── Start failure ───────────┘
//
// A failed Start stops the transports that were already started, releases
// the shared resources and leaves the coordinator stopped; it cannot be
// restarted.
package bootstrap
