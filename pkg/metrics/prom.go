package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pgrest_client_requests_total",
			Help: "Total number of completed HTTP exchanges by method and status code",
		},
		[]string{"method", "status"},
	)

	RequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pgrest_client_request_errors_total",
			Help: "Total number of transport-level request failures by method",
		},
		[]string{"method"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pgrest_client_request_duration_seconds",
			Help:    "Duration of HTTP exchanges",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)
