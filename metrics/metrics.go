package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOperations The total number of document store operations (counter)
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "store",
			Name:      "operations_total",
			Help:      "The total number of document store operations",
		},
		[]string{"operation", "collection"},
	)

	// StoreOperationsFailed The total number of failed document store operations (counter)
	StoreOperationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "store",
			Name:      "operations_failed_total",
			Help:      "The total number of failed document store operations",
		},
		[]string{"operation", "collection"},
	)

	// StoreOperationDuration Time spent in document store operations (summary with quantiles 0.5, 0.9, and 0.99)
	StoreOperationDuration = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "store",
			Name:       "operation_duration_seconds",
			Help:       "Time spent in document store operations",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"operation", "collection"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "http",
			Name:      "requests_total",
			Help:      "The total number of handled HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	MessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messages",
			Name:      "published_total",
			Help:      "The total number of published announcements",
		},
		[]string{"name"},
	)

	MessagesPublishFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messages",
			Name:      "publish_failed_total",
			Help:      "The total number of announcements that could not be published",
		},
		[]string{"name"},
	)
)
