// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exposes Prometheus collectors for the bootstrap, the shared
// pools and the transports.
//
// Every recorder method is safe to call on a nil *Metrics, so components can
// take an optional *Metrics without guarding each call site.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nifty"

// Metrics holds all collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	lifecycleState      prometheus.Gauge
	transportsRunning   prometheus.Gauge
	transportStops      *prometheus.CounterVec
	connectionsAccepted *prometheus.CounterVec
	connectionsRejected *prometheus.CounterVec
	channelsOpen        prometheus.Gauge
	poolTasks           *prometheus.GaugeVec
	timeoutsPending     prometheus.Gauge
	adminRequests       *prometheus.CounterVec
}

// New creates the collectors and registers them, together with the Go runtime
// and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		lifecycleState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lifecycle_state",
			Help:      "Bootstrap state: 0 constructed, 1 started, 2 stopped.",
		}),
		transportsRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transports_running",
			Help:      "Number of transports currently started.",
		}),
		transportStops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transport_stops_total",
			Help:      "Transport stop calls by outcome.",
		}, []string{"transport", "outcome"}),
		connectionsAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_accepted_total",
			Help:      "Connections accepted per server channel.",
		}, []string{"listener"}),
		connectionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_rejected_total",
			Help:      "Connections rejected per server channel because of the connection limit.",
		}, []string{"listener"}),
		channelsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channels_open",
			Help:      "Channels currently tracked by the channel registry.",
		}),
		poolTasks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_tasks",
			Help:      "Tasks per pool and state (running, queued).",
		}, []string{"pool", "state"}),
		timeoutsPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "timer_timeouts_pending",
			Help:      "Timeouts scheduled on the shared timer and not yet expired or cancelled.",
		}),
		adminRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_requests_total",
			Help:      "Admin API requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.lifecycleState,
		m.transportsRunning,
		m.transportStops,
		m.connectionsAccepted,
		m.connectionsRejected,
		m.channelsOpen,
		m.poolTasks,
		m.timeoutsPending,
		m.adminRequests,
	)

	return m
}

// Registry returns the private registry. Nil receivers return nil.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) SetLifecycleState(state int) {
	if m == nil {
		return
	}
	m.lifecycleState.Set(float64(state))
}

func (m *Metrics) SetTransportsRunning(n int) {
	if m == nil {
		return
	}
	m.transportsRunning.Set(float64(n))
}

func (m *Metrics) RecordTransportStop(transport, outcome string) {
	if m == nil {
		return
	}
	m.transportStops.WithLabelValues(transport, outcome).Inc()
}

func (m *Metrics) RecordConnectionAccepted(listener string) {
	if m == nil {
		return
	}
	m.connectionsAccepted.WithLabelValues(listener).Inc()
}

func (m *Metrics) RecordConnectionRejected(listener string) {
	if m == nil {
		return
	}
	m.connectionsRejected.WithLabelValues(listener).Inc()
}

func (m *Metrics) SetChannelsOpen(n int) {
	if m == nil {
		return
	}
	m.channelsOpen.Set(float64(n))
}

// SetPoolTasks records the running and queued task counts of a pool.
func (m *Metrics) SetPoolTasks(pool string, running, queued int) {
	if m == nil {
		return
	}
	m.poolTasks.WithLabelValues(pool, "running").Set(float64(running))
	m.poolTasks.WithLabelValues(pool, "queued").Set(float64(queued))
}

func (m *Metrics) SetTimeoutsPending(n int) {
	if m == nil {
		return
	}
	m.timeoutsPending.Set(float64(n))
}

// RecordAdminRequest counts one served admin API request. route is the
// matched pattern, not the raw path, to keep the label set bounded.
func (m *Metrics) RecordAdminRequest(route, method string, code int) {
	if m == nil {
		return
	}
	m.adminRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
}
