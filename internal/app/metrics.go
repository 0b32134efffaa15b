package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scheduling metrics, exposed on the /-/metrics endpoint.
var (
	metricRotationScheduled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "growdaily_rotation_notifications_scheduled_total",
		Help: "Rotation-family notification requests handed to the gateway.",
	})

	metricRotationCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "growdaily_rotation_notifications_cancelled_total",
		Help: "Rotation-family notification requests cancelled during reconcile.",
	})

	metricOverrideScheduled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "growdaily_override_notifications_scheduled_total",
		Help: "Override-family notification requests handed to the gateway.",
	})

	metricDeliveredPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "growdaily_delivered_notifications_pruned_total",
		Help: "Stale delivered notifications removed from the visible list.",
	})

	metricGatewayErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "growdaily_gateway_errors_total",
		Help: "Notification gateway operations that failed and were dropped.",
	})
)
