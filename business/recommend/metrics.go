package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Count of combined recommendation requests served.",
		},
	)

	FallbackServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_fallback_books_total",
			Help: "Count of recommended books served by fallback tier.",
		},
		[]string{"tier"},
	)
)

func init() {
	prometheus.MustRegister(RecommendRequestsTotal, FallbackServedTotal)
}
