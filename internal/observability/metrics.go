// Package observability holds the Prometheus metrics of the auth flows.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Event label values.
const (
	EventOTPRequested  = "otp_requested"
	EventOTPVerified   = "otp_verified"
	EventRegistered    = "registered"
	EventLogin         = "login"
	EventLogout        = "logout"
	EventSessionDenied = "session_denied"
)

// AuthEvents counts auth flow steps by event and outcome.
// Use RegisterMetrics to register this with a Prometheus registry.
var AuthEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_events_total",
		Help: "Total number of authentication events",
	},
	[]string{"event", "outcome"},
)

// RegisterMetrics registers the package metrics with reg. Panics if
// registration fails.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(AuthEvents)
}

// RecordAuthEvent increments AuthEvents, deriving the outcome from err.
func RecordAuthEvent(event string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	AuthEvents.WithLabelValues(event, outcome).Inc()
}
