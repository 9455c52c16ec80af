// Package metrics holds the Prometheus collectors for authentication and HTTP traffic.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Result labels shared by the auth counters.
const (
	ResultSuccess            = "success"
	ResultInvalidCredentials = "invalid_credentials"
	ResultMalformedToken     = "malformed_token"
	ResultExpiredToken       = "expired_token"
	ResultPrincipalNotFound  = "principal_not_found"
	ResultInactive           = "inactive"
	ResultDuplicate          = "duplicate"
	ResultUnavailable        = "unavailable"
	ResultError              = "error"
)

// AuthMetrics tracks authentication outcomes and request latency.
//
// All metrics use the "erp_" prefix. Methods handle a nil receiver, so a nil
// *AuthMetrics is a no-op when metrics are disabled.
type AuthMetrics struct {
	// Logins counts password logins by result.
	Logins *prometheus.CounterVec

	// Registrations counts registration attempts by result.
	Registrations *prometheus.CounterVec

	// TokenResolutions counts bearer token resolutions by result.
	TokenResolutions *prometheus.CounterVec

	// RequestDuration tracks HTTP handling time by method, route and status.
	RequestDuration *prometheus.HistogramVec
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

// NewAuthMetrics creates the collectors and registers them with registerer.
// A nil registerer falls back to prometheus.DefaultRegisterer.
func NewAuthMetrics(registerer prometheus.Registerer) *AuthMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &AuthMetrics{
		Logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "erp_auth_logins_total",
				Help: "Total password login attempts by result",
			},
			[]string{"result"},
		),
		Registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "erp_auth_registrations_total",
				Help: "Total registration attempts by result",
			},
			[]string{"result"},
		),
		TokenResolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "erp_auth_token_resolutions_total",
				Help: "Total bearer token resolutions by result",
			},
			[]string{"result"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "erp_http_request_duration_seconds",
				Help:    "HTTP request processing duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	registerer.MustRegister(
		m.Logins,
		m.Registrations,
		m.TokenResolutions,
		m.RequestDuration,
	)

	return m
}

// RecordLogin increments the login counter for result.
func (m *AuthMetrics) RecordLogin(result string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(result).Inc()
}

// RecordRegistration increments the registration counter for result.
func (m *AuthMetrics) RecordRegistration(result string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(result).Inc()
}

// RecordTokenResolution increments the token resolution counter for result.
func (m *AuthMetrics) RecordTokenResolution(result string) {
	if m == nil {
		return
	}
	m.TokenResolutions.WithLabelValues(result).Inc()
}

// ObserveRequest records how long a request took.
func (m *AuthMetrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
}
