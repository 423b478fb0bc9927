package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		receiptVerifyTotal,
		receiptVerifyDuration,
		classifierLatencyMs,
	)
}

var (
	// Count of evidence verifications grouped by result and bounded reason.
	// result: accepted|rejected|error
	// reason (non-accepted only): policy_reject|classifier_error|timeout|superseded|unknown
	receiptVerifyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receipt_verify_total",
			Help: "Count of receipt verifications by result and reason.",
		},
		[]string{"result", "reason"},
	)

	// End-to-end duration from submission to applied resolution.
	receiptVerifyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "receipt_verify_duration_seconds",
			Help:    "Duration of one evidence verification in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"result"},
	)

	classifierLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "classifier_call_latency_ms",
			Help:    "Receipt classifier call latency distribution in milliseconds.",
			Buckets: []float64{50, 100, 200, 400, 800, 1600, 3000, 5000, 10000, 30000},
		},
		[]string{"provider", "success"},
	)
)

func ObserveVerify(result, reason string, elapsed time.Duration) {
	receiptVerifyTotal.WithLabelValues(norm(result), norm(reason)).Inc()
	receiptVerifyDuration.WithLabelValues(norm(result)).Observe(elapsed.Seconds())
}

func ObserveClassifierCall(provider string, success bool, elapsed time.Duration) {
	classifierLatencyMs.WithLabelValues(norm(provider), strconv.FormatBool(success)).
		Observe(float64(elapsed.Milliseconds()))
}
