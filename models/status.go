// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// NodeStatus is the introspection document served by the admin endpoint
// GET /api/status and decoded by the status client.
type NodeStatus struct {
	Version         string         `json:"version"`
	Listeners       []ListenerInfo `json:"listeners"`
	Channels        []ChannelInfo  `json:"channels"`
	Pools           []PoolStats    `json:"pools"`
	TimeoutsPending int            `json:"timeouts_pending"`
}

// ListenerInfo describes one bound server channel.
type ListenerInfo struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Connections int    `json:"connections"`
}

// ChannelInfo describes one channel tracked by the channel registry.
type ChannelInfo struct {
	ID     string `json:"id"`
	Local  string `json:"local"`
	Remote string `json:"remote,omitempty"`
	Server bool   `json:"server"`
}

// PoolStats describes the boss or worker pool.
type PoolStats struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Running  int    `json:"running"`
	Queued   int    `json:"queued"`
	Stopped  bool   `json:"stopped"`
}
