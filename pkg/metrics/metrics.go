package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of every HTTP handler, by route template
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roktosheba_http_request_duration_seconds",
		Help:    "Latency of HTTP handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roktosheba_http_requests_total",
		Help: "Total number of HTTP requests served",
	}, []string{"method", "route", "status"})

	AuthFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roktosheba_auth_failures_total",
		Help: "Requests rejected by the access control layer",
	})

	BloodRequestsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roktosheba_blood_requests_created_total",
		Help: "Blood requests created",
	})

	CheckoutSessionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roktosheba_checkout_sessions_created_total",
		Help: "Hosted checkout sessions started",
	})

	PaymentsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roktosheba_payments_finalized_total",
		Help: "Payment finalization outcomes",
	}, []string{"outcome"})
)

func Init() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		AuthFailuresTotal,
		BloodRequestsCreated,
		CheckoutSessionsCreated,
		PaymentsRecorded,
	)
}
