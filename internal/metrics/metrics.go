// Package metrics holds Prometheus instruments that are used across the
// toolkit.  All collectors are registered with the global registry, so
// importing this package in cmd/web is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RegistryWrites = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "select2_registry_writes_total",
			Help: "Widget specs written to the registry (one per heavy render).",
		})

	RegistryHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "select2_registry_hits_total",
			Help: "Registry resolutions that found a live widget spec.",
		})

	RegistryMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "select2_registry_misses_total",
			Help: "Registry resolutions of unknown or expired keys.",
		})

	RegistryTamper = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "select2_registry_tamper_total",
			Help: "Tokens that failed signature verification.",
		})

	AjaxRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "select2_ajax_requests_total",
			Help: "Central Ajax view requests by outcome.",
		},
		[]string{"outcome"}, // ok, miss, bad_request, error
	)
)

func init() {
	prometheus.MustRegister(
		RegistryWrites,
		RegistryHits,
		RegistryMisses,
		RegistryTamper,
		AjaxRequests,
	)
}
