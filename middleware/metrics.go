// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusboard_requests_total",
		Help: "HTTP requests served, by method and route pattern.",
	}, []string{"method", "pattern"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "campusboard_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "pattern"})
)

// WithMetrics records a request count and latency observation per route.
// pattern is the registered route pattern, not the concrete path, to keep
// label cardinality bounded.
func WithMetrics(pattern string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		requestsTotal.WithLabelValues(r.Method, pattern).Inc()
		requestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	}
}
