// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides the bounded goroutine pools shared by every
// transport: the boss pool running accept loops and the worker pool running
// per-connection work.
//
// Pools are built on github.com/gammazero/workerpool. Unlike the raw
// workerpool, a [Pool] refuses work after shutdown instead of panicking, and
// its shutdown drain is bounded by a context.
package workers

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/executor_mock.go -package=mock

// Executor runs tasks on a pool.
//
// Example implementation:
//
//	type inline struct{}
//
//	func (inline) Submit(task func()) error { task(); return nil }
//	func (inline) SubmitWait(_ context.Context, task func()) error { task(); return nil }
type Executor interface {
	// Submit queues task and returns without waiting for it.
	Submit(task func()) error

	// SubmitWait queues task and blocks until it has run or ctx is done.
	// A task that has not started when ctx is done is never run.
	SubmitWait(ctx context.Context, task func()) error
}
