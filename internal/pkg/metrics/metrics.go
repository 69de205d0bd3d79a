// Package metrics defines and registers the domain Prometheus metrics for the
// storefront API. It is the single source of truth for their names, labels,
// and help strings. HTTP request metrics come from the echoprometheus
// middleware registered by the router.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation through promauto; /metrics serves that registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "missing_header", "malformed_header", "invalid_credentials", "invalid_token"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication attempts.",
	},
	[]string{"reason"},
)

// UsersRegisteredTotal counts accounts created through registration.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered users.",
	},
)

// ── Catalogue metrics ─────────────────────────────────────────────────────────

// ProductCacheTotal counts product listing cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var ProductCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_cache_total",
		Help:      "Total number of product listing cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts persisted orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
)

// OrderEventsTotal counts order event deliveries.
// Label:
//   - result: "published", "failed" or "dropped" (queue full)
var OrderEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_events_total",
		Help:      "Total number of order events, labelled by delivery result.",
	},
	[]string{"result"},
)

// OrderEventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var OrderEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "order_events_queue_depth",
		Help:      "Current number of order events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// OrderEventPublishDuration measures broker publish latency.
var OrderEventPublishDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_event_publish_duration_seconds",
		Help:      "Duration of publishing a single order event to the broker.",
		Buckets:   prometheus.DefBuckets,
	},
)
