package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		attemptsTotal,
		entitlementGrantsTotal,
	)
}

var (
	// Attempts by lifecycle event: started|method_selected|cancelled|verified|failed|swept
	attemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchase_attempts_total",
			Help: "Purchase attempt lifecycle events.",
		},
		[]string{"event"},
	)

	entitlementGrantsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entitlement_grants_total",
			Help: "Premium grants by plan.",
		},
		[]string{"plan"},
	)
)

func IncAttempt(event string) {
	attemptsTotal.WithLabelValues(norm(event)).Inc()
}

func IncEntitlementGrant(plan string) {
	entitlementGrantsTotal.WithLabelValues(norm(plan)).Inc()
}
