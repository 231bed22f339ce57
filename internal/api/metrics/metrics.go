// Package metrics defines and registers all custom Prometheus metrics for
// the CSV manager API. It is the single source of truth for metric names,
// labels, and help strings; metrics register themselves with the default
// registry via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "csvmanager"

// ── Connection metrics ────────────────────────────────────────────────────────

// ConnectionsActive tracks the current number of registered websocket
// connections.
var ConnectionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections_active",
		Help:      "Current number of registered websocket connections.",
	},
)

// BroadcastsTotal counts change-event broadcasts triggered by file mutations.
var BroadcastsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_broadcasts_total",
		Help:      "Total number of change-event broadcasts.",
	},
)

// BroadcastSendFailuresTotal counts per-connection send failures during a
// broadcast. Each failure also unregisters the offending connection.
var BroadcastSendFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_broadcast_send_failures_total",
		Help:      "Total number of failed per-connection broadcast sends.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "missing_header", "invalid_header", "invalid_token"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// ── File metrics ──────────────────────────────────────────────────────────────

// FileUploadsTotal counts successfully uploaded CSV files.
var FileUploadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "file_uploads_total",
		Help:      "Total number of CSV files uploaded.",
	},
)

// FileDeletesTotal counts successfully deleted CSV files.
var FileDeletesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "file_deletes_total",
		Help:      "Total number of CSV files deleted.",
	},
)
