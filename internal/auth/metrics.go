package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeAdmitted        = "admitted"
	outcomeUnauthenticated = "unauthenticated"
	outcomeUnauthorized    = "unauthorized"
	outcomeError           = "error"
)

var decisions = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "authz_decisions_total",
		Help: "Number of guard decisions, by resource, action and outcome.",
	},
	[]string{"resource", "action", "outcome"},
)
