// Package metrics holds Prometheus instruments that are used across the
// agent.  All collectors are registered with the global registry, so
// importing this package in cmd/agent is enough to expose them on the
// listener's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ConfigLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_config_load_total",
			Help: "Cumulative number of successful configuration loads.",
		})

	ConfigLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_config_load_errors_total",
			Help: "Cumulative number of configuration load failures.",
		})

	OverrideAppliedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_override_applied_total",
			Help: "Cumulative number of base-URL overrides written to disk.",
		})

	OverrideErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_override_errors_total",
			Help: "Cumulative number of base-URL override attempts that were skipped on error.",
		})

	ResultsReceivedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_results_received_total",
			Help: "Cumulative number of result payloads accepted by the listener.",
		})

	ResultsSpoolErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_results_spool_errors_total",
			Help: "Cumulative number of result payloads that failed to spool.",
		})
)

func init() {
	prometheus.MustRegister(
		ConfigLoadTotal,
		ConfigLoadErrorsTotal,
		OverrideAppliedTotal,
		OverrideErrorsTotal,
		ResultsReceivedTotal,
		ResultsSpoolErrorsTotal,
	)
}
