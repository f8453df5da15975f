package reportbot

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	prometheus.MustRegister(webhookUpdatesCounter)
	prometheus.MustRegister(webhookDuplicatesCounter)
	prometheus.MustRegister(ordersSubmittedCounter)
	prometheus.MustRegister(ordersResolvedCounter)
	prometheus.MustRegister(notificationFailuresCounter)
}

var webhookUpdatesCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "reportbot_webhook_updates_total",
		Help: "Total number of webhook updates received",
	},
)

var webhookDuplicatesCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "reportbot_webhook_duplicates_total",
		Help: "Total number of webhook updates dropped as redeliveries",
	},
)

var ordersSubmittedCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reportbot_orders_submitted_total",
		Help: "Total number of orders created from valid submissions",
	},
	[]string{"type"},
)

var ordersResolvedCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reportbot_orders_resolved_total",
		Help: "Total number of orders transitioned to a terminal status",
	},
	[]string{"status", "surface"},
)

var notificationFailuresCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "reportbot_notification_failures_total",
		Help: "Total number of best-effort notification sends/edits that failed",
	},
)
