package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ResizeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_resize_duration_seconds",
			Help:    "Time to render a single banner variant",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"dimension"},
	)

	ResizeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_resize_errors_total",
			Help: "Total number of failed resize operations",
		},
		[]string{"stage"},
	)

	TwitterRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_twitter_requests_total",
			Help: "Total number of outbound Twitter API requests",
		},
		[]string{"operation", "status"},
	)

	TwitterRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_twitter_request_duration_seconds",
			Help:    "Outbound Twitter API request latency in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	OAuthCallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_oauth_callbacks_total",
			Help: "Total number of OAuth callbacks by outcome",
		},
		[]string{"outcome"},
	)

	MediaAttachedPerPost = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    Namespace + "_media_attached_per_post",
			Help:    "Number of media identifiers attached to each created post",
			Buckets: []float64{1, 2, 3, 4},
		},
	)

	RateLimitedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: Namespace + "_rate_limited_requests_total",
			Help: "Total number of requests rejected by the inbound rate limiter",
		},
	)
)
