package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProvisionsTotal counts provisioning runs by final outcome.
	ProvisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_provisions_total",
			Help: "Total number of site provisioning runs by outcome",
		},
		[]string{"outcome"},
	)

	// ServerFailovers counts retryable creation failures that pushed the
	// workflow to the next candidate server.
	ServerFailovers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "site_provision_server_failovers_total",
			Help: "Total number of server failovers during site provisioning",
		},
	)

	// DeprovisionsTotal counts deprovisioning runs by final outcome.
	DeprovisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_deprovisions_total",
			Help: "Total number of site deprovisioning runs by outcome",
		},
		[]string{"outcome"},
	)
)

// Provisioning outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeFailed   = "failed"
	OutcomePartial  = "partial"
)
